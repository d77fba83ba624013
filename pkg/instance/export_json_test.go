package instance_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aethiopicuschan/dts-go/pkg/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactsAsJSONDTOs(t *testing.T) {
	t.Parallel()

	doc := parseSample(t)

	dtos := doc.FactsAsJSONDTOs()
	require.Len(t, dtos, 2)

	assert.Equal(t, "{http://example.com/tax}Sales", dtos[0].Name)
	assert.Equal(t, "1000", dtos[0].Value)
	assert.Equal(t, "C1", dtos[0].ContextRef)
	assert.Equal(t, "U1", dtos[0].UnitRef)
	assert.False(t, dtos[0].Nil)

	// Nil facts export an empty value.
	assert.True(t, dtos[1].Nil)
	assert.Equal(t, "", dtos[1].Value)
}

func TestEncodeFactsJSON(t *testing.T) {
	t.Parallel()

	doc := parseSample(t)

	var buf bytes.Buffer
	require.NoError(t, doc.EncodeFactsJSON(&buf, false))

	var decoded []instance.FactJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc.FactsAsJSONDTOs(), decoded)

	// Pretty output is still valid JSON.
	buf.Reset()
	require.NoError(t, doc.EncodeFactsJSON(&buf, true))
	decoded = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
}
