// Package config loads and persists the Catty IRI registry config.
//
// The on-disk format (.catty/iri-config.yaml by convention) is a
// restricted YAML subset: nested mappings of scalar string keys to
// scalar string values, two-space indentation. Sequences, anchors,
// aliases, and block scalars are outside the subset and rejected at
// load time rather than silently dropped.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPath is the conventional location of the IRI config within a
// repository.
const DefaultPath = ".catty/iri-config.yaml"

// contextFile is the filename of the shared JSON-LD context document.
const contextFile = "context.jsonld"

// Config is the parsed IRI registry document.
//
// The document is user-owned: content the tool does not model is kept
// in the Extra fields and written back verbatim, so a registry persist
// never silently drops anything the restricted subset accepted.
type Config struct {
	// Metadata carries free-form registry metadata (version,
	// description, arbitrarily nested scalar mappings).
	Metadata map[string]any

	// Localhost is the local development environment.
	Localhost Environment

	// Production is the published environment.
	Production Environment

	// Ontologies maps ontology name to its registry entry. Always
	// non-nil, even when the registry is empty.
	Ontologies map[string]*Ontology

	// Extra holds top-level sections outside the modeled ones,
	// preserved across load and save. Nil when there are none.
	Extra map[string]any
}

// Environment describes where one deployment serves its ontology
// namespace from.
type Environment struct {
	// BaseURL is the environment origin, e.g. "http://localhost:8080".
	BaseURL string

	// NamespacePath is the path under which ontologies are served,
	// e.g. "/ontology".
	NamespacePath string

	// Extra holds unmodeled keys in the environment section,
	// preserved across load and save.
	Extra map[string]any
}

// Ontology is a single registry entry.
type Ontology struct {
	// LocalhostIRI is the canonical localhost base IRI, ending in "#".
	LocalhostIRI string

	// ProductionIRI is the canonical production base IRI, ending in "#".
	ProductionIRI string

	// ContextURL points at the shared context document.
	ContextURL string

	// File is the repository-relative path to the JSON-LD file.
	File string

	// Extra holds unmodeled keys in the entry, preserved across load
	// and save.
	Extra map[string]any
}

// ContextURL returns the canonical shared-context URL for the
// environment.
func (e Environment) ContextURL() string {
	return e.namespace() + "/" + contextFile
}

// BaseIRI returns the canonical base IRI for an ontology name in this
// environment.
func (e Environment) BaseIRI(name string) string {
	return e.namespace() + "/" + name + "#"
}

func (e Environment) namespace() string {
	return strings.TrimRight(e.BaseURL, "/") + strings.TrimRight(e.NamespacePath, "/")
}

// Load reads and parses the IRI config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("IRI config not found: %s", path)
		}
		return nil, fmt.Errorf("read IRI config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses an IRI config document from YAML-subset text.
func Parse(data []byte) (*Config, error) {
	tree, err := parseMapping(data)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML in IRI config: %w", err)
	}

	cfg := &Config{
		Metadata:   map[string]any{},
		Ontologies: map[string]*Ontology{},
	}

	// Metadata is kept as parsed, nested mappings included.
	if meta, ok := tree["metadata"].(map[string]any); ok {
		cfg.Metadata = meta
	}

	var envErr error
	cfg.Localhost, envErr = parseEnvironment(tree, "localhost")
	if envErr != nil {
		return nil, envErr
	}
	cfg.Production, envErr = parseEnvironment(tree, "production")
	if envErr != nil {
		return nil, envErr
	}

	ontologies, ok := tree["ontologies"].(map[string]any)
	if !ok {
		return nil, errors.New("IRI config must contain an 'ontologies' mapping")
	}
	for name, raw := range ontologies {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ontology entry %q must be a mapping", name)
		}
		cfg.Ontologies[name] = &Ontology{
			LocalhostIRI:  scalarField(entry, "localhost_iri"),
			ProductionIRI: scalarField(entry, "production_iri"),
			ContextURL:    scalarField(entry, "context_url"),
			File:          scalarField(entry, "file"),
			Extra: extraFields(entry,
				"localhost_iri", "production_iri", "context_url", "file"),
		}
	}

	// Unknown top-level sections survive the round trip.
	cfg.Extra = extraFields(tree, "metadata", "localhost", "production", "ontologies")

	return cfg, nil
}

// extraFields returns the entries of m outside the known keys, or nil
// when there are none.
func extraFields(m map[string]any, known ...string) map[string]any {
	var extra map[string]any
	for key, value := range m {
		modeled := false
		for _, k := range known {
			if key == k {
				modeled = true
				break
			}
		}
		if modeled {
			continue
		}
		if extra == nil {
			extra = map[string]any{}
		}
		extra[key] = value
	}
	return extra
}

func parseEnvironment(tree map[string]any, key string) (Environment, error) {
	section, ok := tree[key].(map[string]any)
	if !ok {
		return Environment{}, fmt.Errorf("IRI config is missing the %q mapping", key)
	}
	env := Environment{
		BaseURL:       scalarField(section, "base_url"),
		NamespacePath: scalarField(section, "namespace_path"),
		Extra:         extraFields(section, "base_url", "namespace_path"),
	}
	if env.BaseURL == "" {
		return Environment{}, fmt.Errorf("IRI config is missing %s.base_url", key)
	}
	if env.NamespacePath == "" {
		return Environment{}, fmt.Errorf("IRI config is missing %s.namespace_path", key)
	}
	return env, nil
}

func scalarField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// Save writes the config back to disk as YAML-subset text. The whole
// file is rewritten in one shot; there is no partial write.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write IRI config: %w", err)
	}
	return nil
}

// Names returns the registered ontology names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Ontologies))
	for name := range c.Ontologies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
