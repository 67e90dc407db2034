package rdf

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrefixes() map[string]string {
	p := StandardPrefixes()
	p["p"] = FunctionBase("p")
	return p
}

func TestToNQuadsExpandsTerms(t *testing.T) {
	stmts := []Statement{
		{Subject: "p:Function_1", Predicate: "a", Object: "gcc:Function"},
		{Subject: "p:BasicBlock_1", Predicate: "gcc:index", Object: "2"},
		{Subject: "p:Edge_1", Predicate: "gcc:fallthru", Object: "true"},
		{Subject: "loc:t.c_3", Predicate: "gcc:file", Object: `"t.c"`},
	}

	nquads, err := ToNQuads(stmts, testPrefixes())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(nquads, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "<http://www.gcc.org/fn/p#Function_1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.gcc.org/Function> .", lines[0])
	assert.Equal(t, `<http://www.gcc.org/fn/p#BasicBlock_1> <http://www.gcc.org/index> "2"^^<http://www.w3.org/2001/XMLSchema#integer> .`, lines[1])
	assert.Equal(t, `<http://www.gcc.org/fn/p#Edge_1> <http://www.gcc.org/fallthru> "true"^^<http://www.w3.org/2001/XMLSchema#boolean> .`, lines[2])
	assert.Equal(t, `<http://www.locations.com/t.c_3> <http://www.gcc.org/file> "t.c" .`, lines[3])
}

func TestToNQuadsExpandsLists(t *testing.T) {
	stmts := []Statement{
		{Subject: "p:TypeA_1", Predicate: "gcc:children", Object: "( p:TypeB_1 p:TypeB_2 )"},
	}

	nquads, err := ToNQuads(stmts, testPrefixes())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(nquads, "\n"), "\n")
	require.Len(t, lines, 5, "head statement plus first/rest pairs for two elements")
	assert.Equal(t, "<http://www.gcc.org/fn/p#TypeA_1> <http://www.gcc.org/children> _:l0 .", lines[0])
	assert.Contains(t, lines[1], "_:l0 <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> <http://www.gcc.org/fn/p#TypeB_1>")
	assert.Contains(t, lines[2], "_:l0 <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> _:l1")
	assert.Contains(t, lines[3], "_:l1 <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> <http://www.gcc.org/fn/p#TypeB_2>")
	assert.Contains(t, lines[4], "_:l1 <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> <http://www.w3.org/1999/02/22-rdf-syntax-ns#nil>")
}

func TestToNQuadsEmptyList(t *testing.T) {
	stmts := []Statement{
		{Subject: "p:Function_1", Predicate: "gcc:local_decls", Object: "()"},
	}

	nquads, err := ToNQuads(stmts, testPrefixes())
	require.NoError(t, err)
	assert.Equal(t,
		"<http://www.gcc.org/fn/p#Function_1> <http://www.gcc.org/local_decls> <http://www.w3.org/1999/02/22-rdf-syntax-ns#nil> .\n",
		nquads)
}

func TestToNQuadsUnknownPrefix(t *testing.T) {
	stmts := []Statement{{Subject: "q:TypeA_1", Predicate: "a", Object: "gcc:TypeA"}}
	_, err := ToNQuads(stmts, testPrefixes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown prefix "q"`)
}

func TestToJSONLD(t *testing.T) {
	stmts := []Statement{
		{Subject: "p:Function_1", Predicate: "a", Object: "gcc:Function"},
		{Subject: "p:Function_1", Predicate: "gcc:cfg", Object: "p:Cfg_1"},
		{Subject: "p:BasicBlock_1", Predicate: "gcc:index", Object: "2"},
	}

	doc, err := ToJSONLD(stmts, testPrefixes())
	require.NoError(t, err)
	require.NotNil(t, doc)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "http://www.gcc.org/fn/p#Function_1")
	assert.Contains(t, string(raw), "http://www.gcc.org/Function")
}

func TestEscapeNQuad(t *testing.T) {
	assert.Equal(t, `a\"b\\c`, escapeNQuad(`a"b\c`))
	assert.Equal(t, `line\nbreak\ttab`, escapeNQuad("line\nbreak\ttab"))
	assert.Equal(t, `bell\u0007`, escapeNQuad("bell\a"))
}
