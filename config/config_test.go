package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `metadata:
  version: "1.0"
  description: "Test Registry"

localhost:
  base_url: "http://localhost:8080"
  namespace_path: "/ontology"

production:
  base_url: "https://example.com"
  namespace_path: "/ontology"

ontologies:
  a:
    localhost_iri: "http://localhost:8080/ontology/a#"
    production_iri: "https://example.com/ontology/a#"
    context_url: "http://localhost:8080/ontology/context.jsonld"
    file: "ontology/a.jsonld"
`

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, "1.0", cfg.Metadata["version"])
	assert.Equal(t, "http://localhost:8080", cfg.Localhost.BaseURL)
	assert.Equal(t, "/ontology", cfg.Localhost.NamespacePath)
	assert.Equal(t, "https://example.com", cfg.Production.BaseURL)

	require.Contains(t, cfg.Ontologies, "a")
	entry := cfg.Ontologies["a"]
	assert.Equal(t, "http://localhost:8080/ontology/a#", entry.LocalhostIRI)
	assert.Equal(t, "https://example.com/ontology/a#", entry.ProductionIRI)
	assert.Equal(t, "ontology/a.jsonld", entry.File)
}

func TestParseEmptyOntologies(t *testing.T) {
	cfg, err := Parse([]byte(`localhost:
  base_url: "http://localhost:8080"
  namespace_path: "/ontology"
production:
  base_url: "https://example.com"
  namespace_path: "/ontology"
ontologies:
`))
	require.NoError(t, err)
	assert.NotNil(t, cfg.Ontologies)
	assert.Empty(t, cfg.Ontologies)
}

func TestParseRejectsOutsideSubset(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "sequence",
			text: "ontologies:\n  - a\n  - b\n",
		},
		{
			name: "anchor and alias",
			text: "localhost: &env\n  base_url: \"http://localhost:8080\"\n  namespace_path: \"/ontology\"\nproduction: *env\nontologies:\n",
		},
		{
			name: "block scalar",
			text: "localhost:\n  base_url: |\n    http://localhost:8080\n  namespace_path: \"/ontology\"\nproduction:\n  base_url: \"https://example.com\"\n  namespace_path: \"/ontology\"\nontologies:\n",
		},
		{
			name: "missing ontologies mapping",
			text: "localhost:\n  base_url: \"http://localhost:8080\"\n  namespace_path: \"/ontology\"\nproduction:\n  base_url: \"https://example.com\"\n  namespace_path: \"/ontology\"\n",
		},
		{
			name: "missing environment",
			text: "ontologies:\n",
		},
		{
			name: "not valid YAML",
			text: "ontologies: [unclosed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.text))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IRI config not found")
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ".catty", "iri-config.yaml")
	require.NoError(t, cfg.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Metadata, reloaded.Metadata)
	assert.Equal(t, cfg.Localhost, reloaded.Localhost)
	assert.Equal(t, cfg.Production, reloaded.Production)
	assert.Equal(t, cfg.Ontologies, reloaded.Ontologies)
}

func TestRoundTripPreservesUnmodeledContent(t *testing.T) {
	// The registry file is user-owned: nested metadata, unknown
	// top-level sections, and custom entry fields inside the subset
	// must all survive a load and persist untouched.
	const text = `metadata:
  version: "1.0"
  authors:
    lead: "N. Bourbaki"

localhost:
  base_url: "http://localhost:8080"
  namespace_path: "/ontology"
  notes: "dev only"

production:
  base_url: "https://example.com"
  namespace_path: "/ontology"

publishing:
  branch: "gh-pages"

ontologies:
  a:
    localhost_iri: "http://localhost:8080/ontology/a#"
    production_iri: "https://example.com/ontology/a#"
    context_url: "http://localhost:8080/ontology/context.jsonld"
    file: "ontology/a.jsonld"
    custom_note: "keep me"
`

	cfg, err := Parse([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"lead": "N. Bourbaki"}, cfg.Metadata["authors"])
	assert.Equal(t, "dev only", cfg.Localhost.Extra["notes"])
	assert.Equal(t, map[string]any{"branch": "gh-pages"}, cfg.Extra["publishing"])
	assert.Equal(t, "keep me", cfg.Ontologies["a"].Extra["custom_note"])

	data, err := cfg.Marshal()
	require.NoError(t, err)
	for _, fragment := range []string{
		"authors:",
		`lead: "N. Bourbaki"`,
		`notes: "dev only"`,
		"publishing:",
		"branch: gh-pages",
		`custom_note: "keep me"`,
	} {
		assert.Contains(t, string(data), fragment)
	}

	reloaded, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestMarshalQuotesSpecialScalars(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	data, err := cfg.Marshal()
	require.NoError(t, err)

	// Values carrying ':' must be quoted so the restricted subset
	// reads them back verbatim.
	assert.Contains(t, string(data), `base_url: "http://localhost:8080"`)
	assert.Contains(t, string(data), `localhost_iri: "http://localhost:8080/ontology/a#"`)
}

func TestEnvironmentDerivedURLs(t *testing.T) {
	env := Environment{BaseURL: "http://localhost:8080/", NamespacePath: "/ontology/"}

	assert.Equal(t, "http://localhost:8080/ontology/context.jsonld", env.ContextURL())
	assert.Equal(t, "http://localhost:8080/ontology/new-onto#", env.BaseIRI("new-onto"))
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "iri-config.yaml")
	require.NoError(t, cfg.Save(path))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
