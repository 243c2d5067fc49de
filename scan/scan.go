// Package scan audits JSON-LD documents for fabricated identifiers.
//
// A fabricated IRI is one that does not trace back to a registered
// ontology base, a trusted external namespace, or a known compact-IRI
// prefix. The scanner is a read-only pass: it never mutates its input,
// and findings accumulate into a Report instead of aborting at the
// first violation.
package scan

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/metavacua/catty/iri"
	"github.com/metavacua/catty/registry"
	"github.com/metavacua/catty/vocabulary"
)

// Report is the result of one fabrication scan.
type Report struct {
	// OK is true when no errors were found.
	OK bool `json:"ok"`

	// Errors describes each violation, one entry per finding.
	Errors []string `json:"errors"`

	// Warnings carries non-fatal findings.
	Warnings []string `json:"warnings"`

	// FoundIRIs lists every identifier seen, expanded, sorted, deduplicated.
	FoundIRIs []string `json:"found_iris"`

	// UnauthorizedIRIs lists the identifiers that failed authorization.
	UnauthorizedIRIs []string `json:"unauthorized_iris"`

	// BaseIRI is the @base extracted from @context, if any.
	BaseIRI string `json:"base_iri,omitempty"`
}

// Scanner audits documents against one registry.
type Scanner struct {
	reg *registry.Registry
}

// New creates a Scanner over the given registry.
func New(reg *registry.Registry) *Scanner {
	return &Scanner{reg: reg}
}

// Scan walks a JSON-LD document and reports every @id and @base value
// that is not traceable to an authorized namespace. Malformed JSON is
// itself a finding, not a failure: batch scans over many files keep
// going past one bad document.
func (s *Scanner) Scan(content []byte) *Report {
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return &Report{
			Errors:           []string{fmt.Sprintf("Invalid JSON-LD (malformed JSON): %v", err)},
			Warnings:         []string{},
			FoundIRIs:        []string{},
			UnauthorizedIRIs: []string{},
		}
	}

	base := ExtractBase(doc)
	ids := collectIDs(doc)

	var found, unauthorized, errs []string

	if base != "" {
		found = append(found, base)
		if !s.reg.IsRegisteredBase(base) {
			unauthorized = append(unauthorized, base)
			errs = append(errs, "Unregistered @base IRI: "+base)
		}
	}

	for _, raw := range ids {
		expanded := iri.Expand(raw, base)
		found = append(found, expanded)
		if !s.authorized(raw, expanded) {
			unauthorized = append(unauthorized, expanded)
			errs = append(errs, fmt.Sprintf("Unauthorized @id IRI: %s (expanded: %s)", raw, expanded))
		}
	}

	if errs == nil {
		errs = []string{}
	}
	return &Report{
		OK:               len(errs) == 0,
		Errors:           errs,
		Warnings:         []string{},
		FoundIRIs:        sortedSet(found),
		UnauthorizedIRIs: sortedSet(unauthorized),
		BaseIRI:          base,
	}
}

// authorized applies the per-identifier authorization rule.
func (s *Scanner) authorized(raw, expanded string) bool {
	// Blank nodes are always authorized.
	if iri.Classify(raw) == iri.KindBlank {
		return true
	}

	// Absolute IRIs (including relative tokens expanded via @base)
	// must sit under a registered base or a trusted external namespace.
	if iri.Validate(expanded) {
		return s.allowedAbsolute(expanded)
	}

	// Compact IRIs must use a known prefix.
	if prefix := iri.Prefix(raw); prefix != "" {
		return vocabulary.KnownPrefix(prefix)
	}

	// Relative identifiers with no base are scoped by @base, which is
	// checked separately.
	return true
}

func (s *Scanner) allowedAbsolute(expanded string) bool {
	for _, base := range s.reg.Bases() {
		if strings.HasPrefix(expanded, base) {
			return true
		}
	}
	return vocabulary.AllowedExternal(expanded)
}

// ExtractBase returns the @base declared in the document's @context,
// or an empty string. For array contexts the first object carrying
// @base wins; a string context cannot carry @base.
func ExtractBase(doc any) string {
	obj, ok := doc.(map[string]any)
	if !ok {
		return ""
	}

	switch ctx := obj["@context"].(type) {
	case map[string]any:
		base, _ := ctx["@base"].(string)
		return base
	case []any:
		for _, item := range ctx {
			if m, ok := item.(map[string]any); ok {
				if base, ok := m["@base"].(string); ok {
					return base
				}
			}
		}
	}
	return ""
}

// collectIDs gathers every string @id value in the document tree.
// Object keys are visited in sorted order so findings come out in a
// deterministic order.
func collectIDs(doc any) []string {
	var ids []string
	var walk func(any)
	walk = func(node any) {
		switch v := node.(type) {
		case map[string]any:
			if id, ok := v["@id"].(string); ok {
				ids = append(ids, id)
			}
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(v[k])
			}
		case []any:
			for _, item := range v {
				walk(item)
			}
		}
	}
	walk(doc)
	return ids
}

func sortedSet(values []string) []string {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
