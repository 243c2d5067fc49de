// Package iri classifies and expands JSON-LD identifier tokens.
//
// Tokens fall into four kinds: blank nodes, absolute IRIs, compact
// IRIs (prefix:local), and relative identifiers resolved against the
// document @base. Catty base IRIs always end in "#", so base
// resolution is plain string concatenation rather than full RFC 3986
// reference resolution.
package iri

import (
	"net/url"
	"strings"
	"unicode"
)

// Kind describes how an identifier token resolves to a full IRI.
type Kind int

const (
	// KindBlank is a blank node identifier ("_:"-prefixed).
	KindBlank Kind = iota

	// KindAbsolute is an absolute http/https IRI.
	KindAbsolute

	// KindCompact is a prefix:local shorthand resolved via a
	// namespace table rather than string expansion.
	KindCompact

	// KindRelative is a token resolved against the document @base.
	KindRelative
)

// String returns the kind name for logging and error messages.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindAbsolute:
		return "absolute"
	case KindCompact:
		return "compact"
	case KindRelative:
		return "relative"
	default:
		return "unknown"
	}
}

// Validate reports whether iri is a syntactically safe absolute IRI.
// It requires an explicit http or https scheme, a non-empty host, and
// no whitespace anywhere in the string.
func Validate(iri string) bool {
	if iri == "" || strings.IndexFunc(iri, unicode.IsSpace) >= 0 {
		return false
	}

	parsed, err := url.Parse(iri)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// Classify determines the kind of an identifier token.
func Classify(token string) Kind {
	switch {
	case strings.HasPrefix(token, "_:"):
		return KindBlank
	case Validate(token):
		return KindAbsolute
	case strings.Contains(token, ":") &&
		!strings.HasPrefix(token, "http:") &&
		!strings.HasPrefix(token, "https:"):
		return KindCompact
	default:
		return KindRelative
	}
}

// Expand resolves a token against a base IRI.
//
// Blank nodes, absolute IRIs, and compact IRIs are returned unchanged;
// compact-IRI prefix resolution is the scanner's job, not string
// expansion. Relative tokens are concatenated onto the base. An empty
// base leaves the token unchanged.
func Expand(token, base string) string {
	switch Classify(token) {
	case KindBlank, KindAbsolute, KindCompact:
		return token
	default:
		if base == "" {
			return token
		}
		return base + token
	}
}

// Prefix returns the namespace prefix of a compact IRI token, or an
// empty string if the token is not a compact IRI.
func Prefix(token string) string {
	if Classify(token) != KindCompact {
		return ""
	}
	prefix, _, _ := strings.Cut(token, ":")
	return prefix
}
