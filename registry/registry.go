// Package registry manages the Catty ontology IRI registry.
//
// A Registry is constructed once per process from the on-disk config
// and owns it for the process lifetime. Register mutates the in-memory
// table and immediately rewrites the whole file. There is no file
// locking: two concurrent writers against the same config path can
// lose one writer's update, which is an accepted single-writer
// constraint.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/metavacua/catty/config"
	"github.com/metavacua/catty/iri"
)

// Sentinel errors for registry operations.
var (
	ErrUnknownOntology = errors.New("unknown ontology")
	ErrOntologyExists  = errors.New("ontology already registered")
)

// Registry is the in-memory ontology IRI table backed by one config
// file.
type Registry struct {
	path string
	cfg  *config.Config
}

// Load reads the config at path and wraps it in a Registry.
func Load(path string) (*Registry, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return &Registry{path: path, cfg: cfg}, nil
}

// Path returns the config file path backing this registry.
func (r *Registry) Path() string { return r.path }

// Localhost returns the localhost environment settings.
func (r *Registry) Localhost() config.Environment { return r.cfg.Localhost }

// Production returns the production environment settings.
func (r *Registry) Production() config.Environment { return r.cfg.Production }

// Names returns the registered ontology names in sorted order.
func (r *Registry) Names() []string { return r.cfg.Names() }

// Entry returns the registry entry for an ontology name.
func (r *Registry) Entry(name string) (*config.Ontology, error) {
	entry, ok := r.cfg.Ontologies[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)",
			ErrUnknownOntology, name, strings.Join(r.Names(), ", "))
	}
	return entry, nil
}

// LocalhostIRI returns the localhost base IRI for a registered
// ontology.
func (r *Registry) LocalhostIRI(name string) (string, error) {
	entry, err := r.Entry(name)
	if err != nil {
		return "", err
	}
	return entry.LocalhostIRI, nil
}

// ProductionIRI returns the production base IRI for a registered
// ontology.
func (r *Registry) ProductionIRI(name string) (string, error) {
	entry, err := r.Entry(name)
	if err != nil {
		return "", err
	}
	return entry.ProductionIRI, nil
}

// Bases returns the union of all registered localhost and production
// base IRIs, sorted.
func (r *Registry) Bases() []string {
	set := make(map[string]struct{}, len(r.cfg.Ontologies)*2)
	for _, entry := range r.cfg.Ontologies {
		if entry.LocalhostIRI != "" {
			set[entry.LocalhostIRI] = struct{}{}
		}
		if entry.ProductionIRI != "" {
			set[entry.ProductionIRI] = struct{}{}
		}
	}
	bases := make([]string, 0, len(set))
	for base := range set {
		bases = append(bases, base)
	}
	sort.Strings(bases)
	return bases
}

// IsRegisteredBase reports whether base is exactly one of the
// registered base IRIs.
func (r *Registry) IsRegisteredBase(base string) bool {
	for _, entry := range r.cfg.Ontologies {
		if base == entry.LocalhostIRI || base == entry.ProductionIRI {
			return true
		}
	}
	return false
}

// LocalhostContextURL returns the canonical localhost context URL.
func (r *Registry) LocalhostContextURL() string {
	return r.cfg.Localhost.ContextURL()
}

// ProductionContextURL returns the canonical production context URL.
func (r *Registry) ProductionContextURL() string {
	return r.cfg.Production.ContextURL()
}

// ValidateIRIFormat reports whether a candidate IRI is syntactically
// safe: http/https scheme, non-empty host, no whitespace.
func ValidateIRIFormat(candidate string) bool {
	return iri.Validate(candidate)
}

// Register adds an ontology entry and persists the whole config file.
// All validation happens before the table is touched, so a rejected
// registration leaves both memory and disk unchanged.
func (r *Registry) Register(name, localhostIRI, productionIRI, filePath string) error {
	if _, ok := r.cfg.Ontologies[name]; ok {
		return fmt.Errorf("%w: %q", ErrOntologyExists, name)
	}
	if !iri.Validate(localhostIRI) {
		return fmt.Errorf("invalid localhost IRI format: %s", localhostIRI)
	}
	if !iri.Validate(productionIRI) {
		return fmt.Errorf("invalid production IRI format: %s", productionIRI)
	}
	if !strings.HasSuffix(localhostIRI, "#") || !strings.HasSuffix(productionIRI, "#") {
		return errors.New("ontology IRIs must end with '#'")
	}
	if filePath == "" {
		return errors.New("file path is required")
	}

	r.cfg.Ontologies[name] = &config.Ontology{
		LocalhostIRI:  localhostIRI,
		ProductionIRI: productionIRI,
		ContextURL:    r.LocalhostContextURL(),
		File:          filePath,
	}
	if err := r.cfg.Save(r.path); err != nil {
		return fmt.Errorf("persist registry: %w", err)
	}
	return nil
}
