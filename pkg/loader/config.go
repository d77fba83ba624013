package loader

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aethiopicuschan/dts-go/pkg/dts"
)

// Config is the file form of the recognized build options.
type Config struct {
	// CacheSize caps the document cache (default 5000).
	CacheSize int `yaml:"cache-size"`
	// Lenient tolerates per-item failures (default false).
	Lenient bool `yaml:"lenient"`
	// MirrorRoot, when set, maps remote URIs into this local mirror
	// directory.
	MirrorRoot string `yaml:"mirror-root"`
	// Trivial selects the "load these files and nothing else"
	// strategy.
	Trivial bool `yaml:"trivial"`
	// EntryPoints are the DTS entry-point URIs.
	EntryPoints []string `yaml:"entry-points"`
}

// LoadConfigFile reads and decodes a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loader: read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("loader: decode config: %w", err)
	}
	return cfg, nil
}

// Options converts the config into build options.
func (c Config) Options() Options {
	opts := Options{
		CacheSize: c.CacheSize,
		Lenient:   c.Lenient,
	}
	if c.Trivial {
		opts.Mode = CollectTrivial
	}
	if c.MirrorRoot != "" {
		opts.Resolver = dts.LocalMirrorResolver{Root: c.MirrorRoot}
	}
	return opts
}

// EntryPointURLs parses the configured entry points.
func (c Config) EntryPointURLs() ([]*url.URL, error) {
	out := make([]*url.URL, 0, len(c.EntryPoints))
	for _, s := range c.EntryPoints {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("loader: entry point %q: %w", s, err)
		}
		out = append(out, u)
	}
	return out, nil
}
