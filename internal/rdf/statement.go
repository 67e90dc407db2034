package rdf

import (
	"fmt"
	"strconv"
	"strings"
)

// TypePredicate is the type-assertion predicate.
const TypePredicate = "a"

// EmptyList is the rendering of a list with no elements.
const EmptyList = "()"

// Statement is one triple line. Subject and Predicate are prefixed names
// (Predicate may be the type-assertion keyword); Object is any rendered
// value: a prefixed name, a literal, or an inline list.
type Statement struct {
	Subject   string
	Predicate string
	Object    string
}

// String renders the statement as one line, without the trailing newline.
func (s Statement) String() string {
	return s.Subject + " " + s.Predicate + " " + s.Object + "."
}

// Prefixed joins a namespace prefix and a local name.
func Prefixed(prefix, local string) string {
	return prefix + ":" + local
}

// FormatText renders a string literal. The quoting round-trips through
// strconv.Unquote, so no information is lost.
func FormatText(s string) string {
	return strconv.Quote(s)
}

// FormatInt renders an integer literal.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatBool renders a boolean literal.
func FormatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// FormatList renders an inline list of already-rendered elements.
func FormatList(elems []string) string {
	if len(elems) == 0 {
		return EmptyList
	}
	return "( " + strings.Join(elems, " ") + " )"
}

// ParseLiteral recovers the value behind a rendered literal token as a
// bool, int64 or string. Names and lists are not literals and are
// rejected; the round trip through FormatBool/FormatInt/FormatText is
// lossless.
func ParseLiteral(token string) (any, error) {
	token = strings.TrimSpace(token)
	switch {
	case token == "true":
		return true, nil
	case token == "false":
		return false, nil
	case strings.HasPrefix(token, `"`):
		s, err := strconv.Unquote(token)
		if err != nil {
			return nil, fmt.Errorf("bad text literal %s: %w", token, err)
		}
		return s, nil
	case isIntegerToken(token):
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad integer literal %q: %w", token, err)
		}
		return n, nil
	}
	return nil, fmt.Errorf("not a literal token: %q", token)
}
