// Package rebind rewrites JSON-LD documents between deployment
// environments.
//
// Rewriting is content-oblivious: every string value anywhere in the
// document tree goes through the same replacement set, so free text
// that happens to contain a registered IRI as a substring is rewritten
// too. That is a known, accepted limitation of the substring approach,
// not a bug; a structural JSON-LD-aware rewrite would be the stricter
// alternative.
package rebind

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/metavacua/catty/registry"
)

// Target selects the environment a document is rebound to.
type Target string

// The two deployment environments.
const (
	TargetLocalhost  Target = "localhost"
	TargetProduction Target = "production"
)

// valid reports whether t is one of the two environment literals.
func (t Target) valid() bool {
	return t == TargetLocalhost || t == TargetProduction
}

// relativeContexts are the conventional relative spellings of the
// shared context reference; both rebind to the target's absolute
// context URL.
var relativeContexts = []string{"context.jsonld", "./context.jsonld"}

// Rebinder rewrites documents against one registry.
type Rebinder struct {
	reg *registry.Registry
}

// New creates a Rebinder over the given registry.
func New(reg *registry.Registry) *Rebinder {
	return &Rebinder{reg: reg}
}

// Rebind rewrites every occurrence of registered source-environment
// IRIs (and the shared context URL) in content to their
// target-environment counterparts. The ontology name is validated
// against the registry but does not narrow the replacement set: a
// document may reference several registered ontologies and all of
// them must land in the same environment.
//
// The output is the canonical serialization of the rewritten
// document, so Rebind is a pure function of content, registry state,
// and target.
func (rb *Rebinder) Rebind(content []byte, ontology string, target Target) ([]byte, error) {
	if !target.valid() {
		return nil, fmt.Errorf("invalid target %q: expected %q or %q",
			target, TargetLocalhost, TargetProduction)
	}
	if _, err := rb.reg.Entry(ontology); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON-LD (malformed JSON): %w", err)
	}

	replacer := rb.replacer(target)
	return Marshal(rewrite(doc, replacer))
}

// replacer builds the replacement set for a target environment.
//
// Sources are ordered longest first so a shorter base sharing a prefix
// with a longer one can never partially consume it. The pairs feed a
// strings.Replacer, which substitutes in a single pass: an already
// written target URL is never re-matched by a later, shorter source
// (the relative "context.jsonld" spelling appears inside every
// absolute context URL).
func (rb *Rebinder) replacer(target Target) *strings.Replacer {
	type pair struct{ src, dst string }
	var pairs []pair

	for _, name := range rb.reg.Names() {
		entry, err := rb.reg.Entry(name)
		if err != nil {
			continue
		}
		if entry.LocalhostIRI == "" || entry.ProductionIRI == "" {
			continue
		}
		if target == TargetProduction {
			pairs = append(pairs, pair{entry.LocalhostIRI, entry.ProductionIRI})
		} else {
			pairs = append(pairs, pair{entry.ProductionIRI, entry.LocalhostIRI})
		}
	}

	srcCtx, dstCtx := rb.reg.ProductionContextURL(), rb.reg.LocalhostContextURL()
	if target == TargetProduction {
		srcCtx, dstCtx = dstCtx, srcCtx
	}
	pairs = append(pairs, pair{srcCtx, dstCtx})
	for _, rc := range relativeContexts {
		pairs = append(pairs, pair{rc, dstCtx})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return len(pairs[i].src) > len(pairs[j].src)
	})

	oldnew := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		oldnew = append(oldnew, p.src, p.dst)
	}
	return strings.NewReplacer(oldnew...)
}

// rewrite applies the replacement set to every string in the decoded
// document tree.
func rewrite(value any, replacer *strings.Replacer) any {
	switch v := value.(type) {
	case string:
		return replacer.Replace(v)
	case []any:
		for i := range v {
			v[i] = rewrite(v[i], replacer)
		}
		return v
	case map[string]any:
		for key, item := range v {
			v[key] = rewrite(item, replacer)
		}
		return v
	default:
		// Numbers (json.Number), booleans, and nulls pass through.
		return value
	}
}

// Marshal is the canonical JSON-LD serialization shared by rebound
// output and scaffolded documents: sorted keys, two-space indent, no
// HTML escaping, trailing newline.
func Marshal(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return buf.Bytes(), nil
}
