// Package vocabulary fixes the namespace tables used to audit Catty
// ontology identifiers.
//
// Two closed sets live here: the compact-IRI prefixes a document may
// use, and the external absolute-IRI namespaces that are trusted
// without registration. Both are deliberately static; extending them
// is a code change, not configuration.
package vocabulary

import "strings"

// Standard namespace IRIs referenced by Catty ontologies.
const (
	// OWL is the Web Ontology Language namespace.
	OWL = "http://www.w3.org/2002/07/owl#"

	// RDF is the RDF syntax namespace.
	RDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RDFS is the RDF Schema namespace.
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// XSD is the XML Schema datatypes namespace.
	XSD = "http://www.w3.org/2001/XMLSchema#"

	// SKOS is the Simple Knowledge Organization System namespace.
	SKOS = "http://www.w3.org/2004/02/skos/core#"

	// DCT is the Dublin Core terms namespace.
	DCT = "http://purl.org/dc/terms/"

	// PROV is the W3C provenance namespace.
	PROV = "http://www.w3.org/ns/prov#"

	// BIBO is the Bibliographic Ontology namespace.
	BIBO = "http://purl.org/ontology/bibo/"
)

// knownPrefixes is the closed set of compact-IRI prefixes allowed in
// ontology documents, each mapped to its namespace IRI. The Catty
// ontology families resolve through the document @base and the
// registry rather than a fixed namespace, so they map to "".
var knownPrefixes = map[string]string{
	// Catty ontology prefixes.
	"catty":   "",
	"lao":     "",
	"mc":      "",
	"lattice": "",
	"ch":      "",
	"ex":      "",
	"cit":     "",
	"cu":      "",
	"math":    "",

	// Standard vocabulary prefixes.
	"owl":  OWL,
	"rdf":  RDF,
	"rdfs": RDFS,
	"xsd":  XSD,
	"dct":  DCT,
	"prov": PROV,
	"bibo": BIBO,
	"skos": SKOS,
	"dbo":  "http://dbpedia.org/ontology/",
	"wd":   "http://www.wikidata.org/entity/",
}

// externalNamespaces lists absolute-IRI prefixes that are authorized
// without appearing in the registry: standards bodies, citation
// authorities, and the project's own GitHub Pages domain. Both schemes
// are listed because upstream sources are inconsistent about http vs
// https.
var externalNamespaces = []string{
	"http://www.w3.org/",
	"https://www.w3.org/",
	"http://purl.org/",
	"https://purl.org/",
	"http://dbpedia.org/",
	"https://dbpedia.org/",
	"http://www.wikidata.org/",
	"https://www.wikidata.org/",
	"http://doi.org/",
	"https://doi.org/",
	"http://en.wikipedia.org/",
	"https://en.wikipedia.org/",
	"http://arxiv.org/",
	"https://arxiv.org/",
	"http://metavacua.github.io/",
	"https://metavacua.github.io/",
}

// KnownPrefix reports whether a compact-IRI prefix is in the closed
// set of allowed namespace prefixes.
func KnownPrefix(prefix string) bool {
	_, ok := knownPrefixes[prefix]
	return ok
}

// NamespaceIRI returns the namespace IRI a compact-IRI prefix expands
// to, or "" when the prefix is unknown or resolves through the
// document @base instead of a fixed namespace.
func NamespaceIRI(prefix string) string {
	return knownPrefixes[prefix]
}

// AllowedExternal reports whether an absolute IRI falls under one of
// the trusted external namespaces.
func AllowedExternal(iri string) bool {
	for _, ns := range externalNamespaces {
		if strings.HasPrefix(iri, ns) {
			return true
		}
	}
	return false
}
