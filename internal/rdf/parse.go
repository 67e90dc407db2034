package rdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNotStatement reports a line that is valid in an output file but is
// not a statement: blank lines, comments and @prefix declarations.
var ErrNotStatement = errors.New("not a statement line")

// maxLine bounds a single statement line when reading files.
const maxLine = 4 * 1024 * 1024

// ParseStatement parses one output line into a Statement. The object is
// re-rendered canonically, so statements that differ only in spacing
// compare equal after parsing.
func ParseStatement(line string) (Statement, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "@prefix") {
		return Statement{}, ErrNotStatement
	}

	c := &cursor{input: trimmed}

	subject, err := c.readBareToken()
	if err != nil {
		return Statement{}, fmt.Errorf("subject: %w", err)
	}
	if !validName(subject) {
		return Statement{}, fmt.Errorf("subject: not a prefixed name: %q", subject)
	}

	predicate, err := c.readBareToken()
	if err != nil {
		return Statement{}, fmt.Errorf("predicate: %w", err)
	}
	if predicate != TypePredicate && !validName(predicate) {
		return Statement{}, fmt.Errorf("predicate: not a prefixed name: %q", predicate)
	}

	obj, err := c.parseObject()
	if err != nil {
		return Statement{}, fmt.Errorf("object: %w", err)
	}

	c.skipWS()
	if !c.consume('.') {
		return Statement{}, c.errorf("expected '.' at end of statement")
	}
	c.skipWS()
	if c.pos < len(c.input) {
		return Statement{}, c.errorf("trailing input after statement")
	}

	return Statement{Subject: subject, Predicate: predicate, Object: obj.render()}, nil
}

// ReadStatements parses every statement line from r, skipping blanks,
// comments and @prefix declarations. Errors carry the line number.
func ReadStatements(r io.Reader) ([]Statement, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	var stmts []Statement
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		stmt, err := ParseStatement(scanner.Text())
		if errors.Is(err, ErrNotStatement) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		stmts = append(stmts, stmt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return stmts, nil
}

// Document is a parsed statement file: the statements plus the prefix
// directives from its header.
type Document struct {
	Statements []Statement
	Prefixes   map[string]string
}

// ReadDocument parses a statement file wholesale. Unlike ReadStatements
// it keeps @prefix directives instead of skipping them, and a malformed
// directive is an error. Blank lines and comments are skipped. Errors
// carry the line number.
func ReadDocument(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	doc := &Document{Prefixes: make(map[string]string)}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@prefix") {
			name, iri, err := parsePrefixDirective(trimmed)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			doc.Prefixes[name] = iri
			continue
		}
		stmt, err := ParseStatement(line)
		if errors.Is(err, ErrNotStatement) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		doc.Statements = append(doc.Statements, stmt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return doc, nil
}

// FunctionPrefix returns the per-function prefix declared in the
// document header, or "" when the header carries none. If several are
// declared, the lexically smallest wins.
func (d *Document) FunctionPrefix() string {
	base := GCCNamespace + "fn/"
	found := ""
	for name, iri := range d.Prefixes {
		if !strings.HasPrefix(iri, base) {
			continue
		}
		if found == "" || name < found {
			found = name
		}
	}
	return found
}

// parsePrefixDirective parses "@prefix name: <iri> .". The caller has
// already checked for the @prefix keyword.
func parsePrefixDirective(line string) (name, iri string, err error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "@prefix"))
	name, rest, found := strings.Cut(rest, ":")
	if !found {
		return "", "", errors.New("prefix directive: missing ':'")
	}
	name = strings.TrimSpace(name)
	if !validNamePart(name) {
		return "", "", fmt.Errorf("prefix directive: invalid prefix name %q", name)
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "<") {
		return "", "", errors.New("prefix directive: expected '<' before IRI")
	}
	end := strings.IndexByte(rest, '>')
	if end < 0 {
		return "", "", errors.New("prefix directive: unterminated IRI")
	}
	iri = rest[1:end]
	if tail := strings.TrimSpace(rest[end+1:]); tail != "." {
		return "", "", errors.New("prefix directive: expected trailing '.'")
	}
	return name, iri, nil
}

type objectKind int

const (
	objectName objectKind = iota
	objectText
	objectInt
	objectBool
	objectList
)

// objectValue is a parsed statement object.
type objectValue struct {
	kind objectKind
	name string
	text string
	num  int64
	b    bool
	list []objectValue
}

func (v objectValue) render() string {
	switch v.kind {
	case objectName:
		return v.name
	case objectText:
		return FormatText(v.text)
	case objectInt:
		return FormatInt(v.num)
	case objectBool:
		return FormatBool(v.b)
	case objectList:
		elems := make([]string, len(v.list))
		for i, e := range v.list {
			elems[i] = e.render()
		}
		return FormatList(elems)
	}
	return ""
}

// parseObjectText parses a rendered object in isolation.
func parseObjectText(s string) (objectValue, error) {
	c := &cursor{input: s}
	v, err := c.parseObject()
	if err != nil {
		return objectValue{}, err
	}
	c.skipWS()
	if c.pos < len(c.input) {
		return objectValue{}, c.errorf("trailing input after object")
	}
	return v, nil
}

// cursor is a single-line lexical scanner.
type cursor struct {
	input string
	pos   int
}

func (c *cursor) errorf(format string, args ...any) error {
	return fmt.Errorf("col %d: %s", c.pos+1, fmt.Sprintf(format, args...))
}

func (c *cursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r':
			c.pos++
		default:
			return
		}
	}
}

func (c *cursor) consume(ch byte) bool {
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) parseObject() (objectValue, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return objectValue{}, c.errorf("unexpected end of line")
	}
	switch c.input[c.pos] {
	case '"':
		return c.parseText()
	case '(':
		return c.parseList()
	default:
		return c.parseBareObject()
	}
}

func (c *cursor) parseText() (objectValue, error) {
	start := c.pos
	c.pos++ // opening quote
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case '\\':
			c.pos += 2
		case '"':
			c.pos++
			raw := c.input[start:c.pos]
			text, err := strconv.Unquote(raw)
			if err != nil {
				return objectValue{}, c.errorf("bad string literal %s", raw)
			}
			return objectValue{kind: objectText, text: text}, nil
		default:
			c.pos++
		}
	}
	return objectValue{}, c.errorf("unterminated string literal")
}

func (c *cursor) parseList() (objectValue, error) {
	c.pos++ // opening paren
	list := objectValue{kind: objectList}
	for {
		c.skipWS()
		if c.pos >= len(c.input) {
			return objectValue{}, c.errorf("unterminated list")
		}
		if c.consume(')') {
			return list, nil
		}
		elem, err := c.parseObject()
		if err != nil {
			return objectValue{}, err
		}
		list.list = append(list.list, elem)
	}
}

func (c *cursor) parseBareObject() (objectValue, error) {
	tok, err := c.readBareToken()
	if err != nil {
		return objectValue{}, err
	}
	switch {
	case tok == "true":
		return objectValue{kind: objectBool, b: true}, nil
	case tok == "false":
		return objectValue{kind: objectBool, b: false}, nil
	case isIntegerToken(tok):
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return objectValue{}, c.errorf("bad integer literal %q", tok)
		}
		return objectValue{kind: objectInt, num: n}, nil
	case validName(tok):
		return objectValue{kind: objectName, name: tok}, nil
	default:
		return objectValue{}, c.errorf("unrecognized token %q", tok)
	}
}

// readBareToken reads up to the next delimiter. Trailing dots are given
// back to the cursor: a dot is valid inside a name but the final one on a
// line terminates the statement.
func (c *cursor) readBareToken() (string, error) {
	c.skipWS()
	start := c.pos
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == ')' || ch == '(' || ch == '"' {
			break
		}
		c.pos++
	}
	tok := c.input[start:c.pos]
	for strings.HasSuffix(tok, ".") {
		tok = tok[:len(tok)-1]
		c.pos--
	}
	if tok == "" {
		return "", c.errorf("expected token")
	}
	return tok, nil
}

func validName(name string) bool {
	prefix, local, ok := strings.Cut(name, ":")
	if !ok || strings.Contains(local, ":") {
		return false
	}
	return validNamePart(prefix) && validNamePart(local)
}

func validNamePart(part string) bool {
	if part == "" || !isNameStartChar(part[0]) {
		return false
	}
	for i := 1; i < len(part); i++ {
		if !isNameChar(part[i]) {
			return false
		}
	}
	return true
}

func isIntegerToken(tok string) bool {
	if tok == "" {
		return false
	}
	digits := tok
	if tok[0] == '-' {
		digits = tok[1:]
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}
