package config

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// parseMapping decodes YAML-subset text into nested string maps. The
// registry only relies on nested scalar mappings, so anything else in
// the document is a hard error: losing a sequence or an anchored value
// silently would corrupt the registry on the next persist.
func parseMapping(data []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("document is empty")
	}
	return mappingSubset(doc.Content[0])
}

// mappingSubset converts a mapping node into nested maps, enforcing
// the scalar-mapping subset.
func mappingSubset(node *yaml.Node) (map[string]any, error) {
	if err := rejectOutsideSubset(node); err != nil {
		return nil, err
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", node.Line)
	}

	out := make(map[string]any, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
		}
		if err := rejectOutsideSubset(value); err != nil {
			return nil, err
		}

		switch value.Kind {
		case yaml.MappingNode:
			child, err := mappingSubset(value)
			if err != nil {
				return nil, err
			}
			out[key.Value] = child
		case yaml.ScalarNode:
			if value.Tag == "!!null" {
				// A bare "key:" opens an empty nested mapping.
				out[key.Value] = map[string]any{}
			} else {
				out[key.Value] = value.Value
			}
		default:
			return nil, fmt.Errorf("line %d: unsupported node for key %q", value.Line, key.Value)
		}
	}
	return out, nil
}

func rejectOutsideSubset(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return fmt.Errorf("line %d: sequences are not supported in the IRI config", node.Line)
	case yaml.AliasNode:
		return fmt.Errorf("line %d: aliases are not supported in the IRI config", node.Line)
	}
	if node.Anchor != "" {
		return fmt.Errorf("line %d: anchors are not supported in the IRI config", node.Line)
	}
	if node.Kind == yaml.ScalarNode &&
		(node.Style == yaml.LiteralStyle || node.Style == yaml.FoldedStyle) {
		return fmt.Errorf("line %d: block scalars are not supported in the IRI config", node.Line)
	}
	return nil
}

// Marshal serializes the config as YAML-subset text: fixed section
// order, sorted ontology names, two-space indentation.
func (c *Config) Marshal() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	if len(c.Metadata) > 0 {
		appendEntry(root, "metadata", anyNode(c.Metadata))
	}
	appendEntry(root, "localhost", environmentNode(c.Localhost))
	appendEntry(root, "production", environmentNode(c.Production))

	ontologies := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range c.Names() {
		entry := c.Ontologies[name]
		node := &yaml.Node{Kind: yaml.MappingNode}
		appendEntry(node, "localhost_iri", scalarNode(entry.LocalhostIRI))
		appendEntry(node, "production_iri", scalarNode(entry.ProductionIRI))
		appendEntry(node, "context_url", scalarNode(entry.ContextURL))
		appendEntry(node, "file", scalarNode(entry.File))
		appendExtras(node, entry.Extra)
		appendEntry(ontologies, name, node)
	}
	appendEntry(root, "ontologies", ontologies)
	appendExtras(root, c.Extra)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("marshal IRI config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal IRI config: %w", err)
	}
	return buf.Bytes(), nil
}

func appendEntry(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

// scalarNode builds a string scalar, quoting values that carry
// whitespace, ':', or '#' so the restricted parser reads them back
// verbatim.
func scalarNode(value string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	if strings.ContainsAny(value, ":#") || strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		node.Style = yaml.DoubleQuotedStyle
	}
	return node
}

// anyNode builds the node tree for a parsed subset value: a string
// scalar or a nested mapping with sorted keys.
func anyNode(value any) *yaml.Node {
	m, ok := value.(map[string]any)
	if !ok {
		s, _ := value.(string)
		return scalarNode(s)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		appendEntry(node, k, anyNode(m[k]))
	}
	return node
}

// appendExtras writes unmodeled keys after the modeled ones, sorted.
func appendExtras(mapping *yaml.Node, extra map[string]any) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		appendEntry(mapping, k, anyNode(extra[k]))
	}
}

func environmentNode(env Environment) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	appendEntry(node, "base_url", scalarNode(env.BaseURL))
	appendEntry(node, "namespace_path", scalarNode(env.NamespacePath))
	appendExtras(node, env.Extra)
	return node
}
