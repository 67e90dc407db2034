package rdf

import (
	"fmt"
	"strings"

	"github.com/piprate/json-gold/ld"
)

// ToJSONLD converts a statement set to expanded JSON-LD. Statements are
// expanded to N-Quads against the prefix table first; inline lists become
// rdf:first/rdf:rest chains on the way.
func ToJSONLD(stmts []Statement, prefixes map[string]string) (any, error) {
	nquads, err := ToNQuads(stmts, prefixes)
	if err != nil {
		return nil, err
	}
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	doc, err := proc.FromRDF(nquads, opts)
	if err != nil {
		return nil, fmt.Errorf("jsonld conversion: %w", err)
	}
	return doc, nil
}

// ToNQuads expands statements to N-Quads text. Every prefixed name must
// resolve through the prefix table.
func ToNQuads(stmts []Statement, prefixes map[string]string) (string, error) {
	var b strings.Builder
	blanks := 0
	for _, st := range stmts {
		subject, err := ExpandName(st.Subject, prefixes)
		if err != nil {
			return "", fmt.Errorf("statement %q: %w", st.String(), err)
		}

		predicate := RDFNamespace + "type"
		if st.Predicate != TypePredicate {
			predicate, err = ExpandName(st.Predicate, prefixes)
			if err != nil {
				return "", fmt.Errorf("statement %q: %w", st.String(), err)
			}
		}

		value, err := parseObjectText(st.Object)
		if err != nil {
			return "", fmt.Errorf("statement %q: %w", st.String(), err)
		}
		object, extra, err := expandValue(value, prefixes, &blanks)
		if err != nil {
			return "", fmt.Errorf("statement %q: %w", st.String(), err)
		}

		fmt.Fprintf(&b, "<%s> <%s> %s .\n", subject, predicate, object)
		for _, line := range extra {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// expandValue renders one parsed object as an N-Quads term. Lists return
// the head blank node plus the chain quads that define it.
func expandValue(v objectValue, prefixes map[string]string, blanks *int) (string, []string, error) {
	switch v.kind {
	case objectName:
		iri, err := ExpandName(v.name, prefixes)
		if err != nil {
			return "", nil, err
		}
		return "<" + iri + ">", nil, nil

	case objectText:
		return `"` + escapeNQuad(v.text) + `"`, nil, nil

	case objectInt:
		return fmt.Sprintf(`"%d"^^<%sinteger>`, v.num, xsdNamespace), nil, nil

	case objectBool:
		return fmt.Sprintf(`"%s"^^<%sboolean>`, FormatBool(v.b), xsdNamespace), nil, nil

	case objectList:
		if len(v.list) == 0 {
			return "<" + RDFNamespace + "nil>", nil, nil
		}
		ids := make([]string, len(v.list))
		for i := range v.list {
			ids[i] = fmt.Sprintf("_:l%d", *blanks)
			*blanks++
		}
		var chain []string
		for i, elem := range v.list {
			term, extra, err := expandValue(elem, prefixes, blanks)
			if err != nil {
				return "", nil, err
			}
			chain = append(chain, fmt.Sprintf("%s <%sfirst> %s .", ids[i], RDFNamespace, term))
			rest := "<" + RDFNamespace + "nil>"
			if i+1 < len(v.list) {
				rest = ids[i+1]
			}
			chain = append(chain, fmt.Sprintf("%s <%srest> %s .", ids[i], RDFNamespace, rest))
			chain = append(chain, extra...)
		}
		return ids[0], chain, nil
	}
	return "", nil, fmt.Errorf("unrenderable object")
}

// escapeNQuad escapes a string for an N-Quads literal.
func escapeNQuad(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
