package taxonomy

import (
	"fmt"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// A DanglingLocatorError reports an XLink locator whose href points at
// a fragment that exists in no collected document.
type DanglingLocatorError struct {
	Href string
	Key  xmlx.FragmentKey
}

func (e *DanglingLocatorError) Error() string {
	return fmt.Sprintf("taxonomy: dangling locator %q at %s", e.Href, e.Key)
}

// A ClassificationError reports an arc that matches no dispatch entry
// in strict mode.
type ClassificationError struct {
	Arcrole string
	ArcName xmlx.EName
	Reason  string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("taxonomy: cannot classify arc %s with arcrole %q: %s", e.ArcName, e.Arcrole, e.Reason)
}

// An InvalidConceptError reports a global element declaration whose
// substitution groups are mutually exclusive.
type InvalidConceptError struct {
	Target xmlx.EName
	Reason string
}

func (e *InvalidConceptError) Error() string {
	return fmt.Sprintf("taxonomy: invalid concept declaration %s: %s", e.Target, e.Reason)
}

// A NetworkComputationError reports an inconsistent priority/use
// combination during network resolution.
type NetworkComputationError struct {
	BaseSet BaseSetKey
	Reason  string
}

func (e *NetworkComputationError) Error() string {
	return fmt.Sprintf("taxonomy: network for base set %+v: %s", e.BaseSet, e.Reason)
}

// A MissingElementError reports a Get* lookup whose subject is absent.
type MissingElementError struct {
	What string
	Name xmlx.EName
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("taxonomy: no %s named %s", e.What, e.Name)
}
