package scan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/metavacua/catty/registry"
)

// Severity grades a validation finding.
type Severity string

// Finding severities.
const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Finding is a single validation finding attributed to a file.
type Finding struct {
	File     string
	Message  string
	Severity Severity
}

// Validator runs the collaborator-facing ontology file checks: the
// document must be valid JSON, declare a registered @base, and pass
// the fabrication scan. A context URL that does not match the
// canonical one for the detected environment is a warning, not a
// failure.
type Validator struct {
	reg     *registry.Registry
	scanner *Scanner
	root    string

	// Errors and Warnings accumulate across ValidateFile calls so a
	// batch run reports every violation in one pass.
	Errors   []Finding
	Warnings []Finding
}

// NewValidator creates a Validator. Registered ontology file entries
// are resolved relative to root ("." if empty).
func NewValidator(reg *registry.Registry, root string) *Validator {
	if root == "" {
		root = "."
	}
	return &Validator{reg: reg, scanner: New(reg), root: root}
}

// ValidateFile validates a single ontology file. It returns true when
// the file produced no errors; warnings do not fail a file.
func (v *Validator) ValidateFile(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		v.errorf(path, "unable to read ontology file: %v", err)
		return false
	}

	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		v.errorf(path, "Invalid JSON-LD (malformed JSON): %v", err)
		return false
	}

	base := ExtractBase(doc)
	if base == "" {
		v.errorf(path, "missing @base in @context")
		return false
	}
	if !v.reg.IsRegisteredBase(base) {
		v.errorf(path, "@base IRI is not registered in %s: %s", v.reg.Path(), base)
		return false
	}

	if expected := v.expectedContextURL(base); !contextIncludes(doc, expected) {
		v.warnf(path, "@context does not include expected context URL: %s", expected)
	}

	report := v.scanner.Scan(content)
	if !report.OK {
		for _, msg := range report.Errors {
			v.errorf(path, "%s", msg)
		}
		return false
	}
	return true
}

// ValidateAll validates every ontology referenced by the registry,
// resolving each entry's file path against the validator root. It
// returns true when every file validates without errors.
func (v *Validator) ValidateAll() bool {
	ok := true
	for _, name := range v.reg.Names() {
		entry, err := v.reg.Entry(name)
		if err != nil {
			continue
		}
		if entry.File == "" {
			v.errorf(v.reg.Path(), "ontology %q is missing a 'file' entry", name)
			ok = false
			continue
		}
		if !v.ValidateFile(filepath.Join(v.root, entry.File)) {
			ok = false
		}
	}
	return ok
}

// Report writes a human-readable summary of accumulated findings and
// returns true when there are no errors.
func (v *Validator) Report(w io.Writer) bool {
	if len(v.Errors) > 0 {
		fmt.Fprintln(w, "IRI validation failed:")
		for _, f := range v.Errors {
			fmt.Fprintf(w, "  [ERROR] %s: %s\n", f.File, f.Message)
		}
	}
	if len(v.Warnings) > 0 {
		fmt.Fprintln(w, "IRI validation warnings:")
		for _, f := range v.Warnings {
			fmt.Fprintf(w, "  [WARN]  %s: %s\n", f.File, f.Message)
		}
	}
	if len(v.Errors) == 0 {
		fmt.Fprintln(w, "IRI validation successful: all ontologies conform.")
		return true
	}
	return false
}

// expectedContextURL picks the canonical context URL for the
// environment the document's @base belongs to.
func (v *Validator) expectedContextURL(base string) string {
	production := strings.TrimRight(v.reg.Production().BaseURL, "/")
	if production != "" && strings.HasPrefix(base, production) {
		return v.reg.ProductionContextURL()
	}
	return v.reg.LocalhostContextURL()
}

// contextIncludes reports whether the document's @context references
// the expected context URL. The conventional relative spellings count
// as a match since they denote the canonical shared context.
func contextIncludes(doc any, expected string) bool {
	obj, ok := doc.(map[string]any)
	if !ok {
		return false
	}

	matches := func(s string) bool {
		return s == expected || s == "context.jsonld" || s == "./context.jsonld"
	}

	switch ctx := obj["@context"].(type) {
	case string:
		return matches(ctx)
	case []any:
		for _, item := range ctx {
			if s, ok := item.(string); ok && matches(s) {
				return true
			}
		}
	}
	return false
}

func (v *Validator) errorf(file, format string, args ...any) {
	v.Errors = append(v.Errors, Finding{
		File:     file,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
	})
}

func (v *Validator) warnf(file, format string, args ...any) {
	v.Warnings = append(v.Warnings, Finding{
		File:     file,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityWarning,
	})
}
