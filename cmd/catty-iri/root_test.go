package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `localhost:
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

func writeFixture(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	cfgPath := filepath.Join(root, ".catty", "iri-config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o644))
	return root, cfgPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRebindCommand(t *testing.T) {
	root, cfgPath := writeFixture(t)

	input := filepath.Join(root, "a.jsonld")
	output := filepath.Join(root, "a.prod.jsonld")
	require.NoError(t, os.WriteFile(input, []byte(
		`{"@context": [
  "http://localhost:8080/ontology/context.jsonld",
  {"@base": "http://localhost:8080/ontology/a#"}
], "@graph": [{"@id": "X"}]}`), 0o644))

	_, err := runCommand(t,
		"--config", cfgPath,
		"rebind", "--ontology", "a", "--target", "production",
		"--input", input, "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	ctx := doc["@context"].([]any)
	assert.Equal(t, "https://example.com/ontology/context.jsonld", ctx[0])
	assert.Equal(t, "https://example.com/ontology/a#", ctx[1].(map[string]any)["@base"])
}

func TestRebindCommandInvalidTarget(t *testing.T) {
	root, cfgPath := writeFixture(t)
	input := filepath.Join(root, "a.jsonld")
	require.NoError(t, os.WriteFile(input, []byte(`{}`), 0o644))

	_, err := runCommand(t,
		"--config", cfgPath,
		"rebind", "--ontology", "a", "--target", "staging",
		"--input", input, "--output", filepath.Join(root, "out.jsonld"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid target")
}

func TestValidateCommand(t *testing.T) {
	root, cfgPath := writeFixture(t)

	good := filepath.Join(root, "good.jsonld")
	require.NoError(t, os.WriteFile(good, []byte(
		`{"@context": [
  "http://localhost:8080/ontology/context.jsonld",
  {"@base": "http://localhost:8080/ontology/a#"}
], "@graph": [{"@id": "X"}]}`), 0o644))

	out, err := runCommand(t, "--config", cfgPath, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "IRI validation successful")

	bad := filepath.Join(root, "bad.jsonld")
	require.NoError(t, os.WriteFile(bad, []byte(
		`{"@context": {"@base": "http://evil.example/x#"}}`), 0o644))

	out, err = runCommand(t, "--config", cfgPath, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "[ERROR]")
}

func TestNewCommandWritesSkeleton(t *testing.T) {
	root, cfgPath := writeFixture(t)
	output := filepath.Join(root, "fresh.jsonld")

	_, err := runCommand(t,
		"--config", cfgPath,
		"new", "fresh", "--description", "d", "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "http://localhost:8080/ontology/fresh#",
		doc["@context"].([]any)[1].(map[string]any)["@base"])
}

func TestNewCommandRejectsBadName(t *testing.T) {
	_, cfgPath := writeFixture(t)

	_, err := runCommand(t, "--config", cfgPath, "new", "Bad Name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kebab-case")
}

func TestRegisterAndListCommands(t *testing.T) {
	_, cfgPath := writeFixture(t)

	_, err := runCommand(t,
		"--config", cfgPath,
		"register", "fresh", "--file", "ontology/fresh.jsonld")
	require.NoError(t, err)

	out, err := runCommand(t, "--config", cfgPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "fresh")
	assert.Contains(t, out, "http://localhost:8080/ontology/fresh#")
	assert.Contains(t, out, "https://example.com/ontology/fresh#")
}

func TestRegisterCommandDuplicate(t *testing.T) {
	_, cfgPath := writeFixture(t)

	_, err := runCommand(t,
		"--config", cfgPath,
		"register", "a", "--file", "ontology/a.jsonld")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}
