// Package scaffold generates skeleton JSON-LD documents for new
// ontologies.
package scaffold

import (
	"fmt"
	"regexp"

	"github.com/metavacua/catty/config"
)

// namePattern enforces kebab-case ontology names: lowercase letters
// and digits, hyphen-separated.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Generator builds skeleton documents bound to the localhost
// environment of one registry config.
type Generator struct {
	localhost config.Environment
}

// New creates a Generator for the given localhost environment.
func New(localhost config.Environment) *Generator {
	return &Generator{localhost: localhost}
}

// ValidName reports whether name is a valid kebab-case ontology name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Ontology returns a minimal, schema-conformant skeleton document for
// a newly named ontology: the shared context by its canonical relative
// name, a localhost @base derived from the environment, and a single
// owl:Ontology root node.
//
// The skeleton is not registered. Authoring a document and committing
// it to the registry are two explicit, independently failable steps;
// callers register once the file is written to disk.
func (g *Generator) Ontology(name, description string) (map[string]any, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf(
			"invalid ontology name %q: expected kebab-case (lowercase letters, digits, hyphens)", name)
	}

	return map[string]any{
		"@context": []any{
			"context.jsonld",
			map[string]any{"@base": g.localhost.BaseIRI(name)},
		},
		"@graph": []any{
			map[string]any{
				"@id":          "",
				"@type":        "owl:Ontology",
				"rdfs:label":   name,
				"rdfs:comment": description,
			},
		},
	}, nil
}
