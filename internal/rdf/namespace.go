package rdf

import (
	"fmt"
	"io"
	"strings"
)

// Namespace IRIs behind the fixed prefixes every export uses.
const (
	RDFNamespace       = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	GCCNamespace       = "http://www.gcc.org/"
	FunctionsNamespace = "http://www.functions.com/"
	LocationsNamespace = "http://www.locations.com/"

	xsdNamespace = "http://www.w3.org/2001/XMLSchema#"
)

// Fixed prefixes.
const (
	PrefixRDF       = "rdf"
	PrefixGCC       = "gcc"
	PrefixFunctions = "functions"
	PrefixLocations = "loc"
)

// FunctionBase returns the namespace IRI behind a per-function prefix.
func FunctionBase(prefix string) string {
	return GCCNamespace + "fn/" + prefix + "#"
}

// StandardPrefixes returns the fixed prefix table. Callers add their
// per-function prefixes before expanding names.
func StandardPrefixes() map[string]string {
	return map[string]string{
		PrefixRDF:       RDFNamespace,
		PrefixGCC:       GCCNamespace,
		PrefixFunctions: FunctionsNamespace,
		PrefixLocations: LocationsNamespace,
	}
}

// WriteHeader writes the @prefix declarations for the fixed namespaces.
// Callers emit it once per output, before any function prefix.
func WriteHeader(w io.Writer) error {
	for _, p := range []struct{ prefix, iri string }{
		{PrefixRDF, RDFNamespace},
		{PrefixGCC, GCCNamespace},
		{PrefixFunctions, FunctionsNamespace},
		{PrefixLocations, LocationsNamespace},
	} {
		if err := WritePrefix(w, p.prefix, p.iri); err != nil {
			return err
		}
	}
	return nil
}

// WriteFunctionPrefix writes the @prefix declaration binding one
// per-function prefix to its namespace.
func WriteFunctionPrefix(w io.Writer, prefix string) error {
	return WritePrefix(w, prefix, FunctionBase(prefix))
}

// WritePrefix writes a single @prefix declaration.
func WritePrefix(w io.Writer, prefix, iri string) error {
	_, err := fmt.Fprintf(w, "@prefix %s: <%s> .\n", prefix, iri)
	return err
}

// ExpandName resolves a prefixed name against a prefix table and returns
// the absolute IRI.
func ExpandName(name string, prefixes map[string]string) (string, error) {
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return "", fmt.Errorf("not a prefixed name: %q", name)
	}
	base, ok := prefixes[prefix]
	if !ok {
		return "", fmt.Errorf("unknown prefix %q in %q", prefix, name)
	}
	return base + local, nil
}

// SanitizeLocal maps an arbitrary string onto the local-name grammar:
// an ASCII letter or underscore, then letters, digits, '_', '-' and '.'.
// Offending bytes become underscores; an invalid leading byte is kept and
// prefixed with one.
func SanitizeLocal(s string) string {
	if s == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(s) + 1)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if i == 0 && !isNameStartChar(ch) {
			b.WriteByte('_')
		}
		if isNameChar(ch) {
			b.WriteByte(ch)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SanitizePrefix maps an arbitrary string onto the prefix grammar, which
// additionally forbids dots.
func SanitizePrefix(s string) string {
	out := []byte(SanitizeLocal(s))
	for i, ch := range out {
		if ch == '.' {
			out[i] = '_'
		}
	}
	return string(out)
}

func isNameStartChar(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStartChar(ch) || (ch >= '0' && ch <= '9') || ch == '-' || ch == '.'
}
