package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grdf/gimple2rdf/internal/gimple"
)

// fakeNode is a minimal graph node for exercising the engine in
// isolation from the gimple model. Props must be listed in ascending
// name order, like the model guarantees.
type fakeNode struct {
	kind  string
	props []gimple.Property
}

func (f *fakeNode) Kind() string                  { return f.kind }
func (f *fakeNode) Properties() []gimple.Property { return f.props }

// fakeIdentified carries all three identity capabilities with settable
// values; an empty value means the capability yields nothing.
type fakeIdentified struct {
	fakeNode
	name string
	file string
	line int
	form string
}

func (f *fakeIdentified) GlobalName() string       { return f.name }
func (f *fakeIdentified) SourceKey() (string, int) { return f.file, f.line }
func (f *fakeIdentified) CanonicalForm() string    { return f.form }

func exportString(t *testing.T, exp *Exporter, root gimple.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, exp.Export(root, &buf))
	return buf.String()
}

func lines(ss ...string) string { return strings.Join(ss, "\n") + "\n" }

func TestExportLinkedNodes(t *testing.T) {
	policy := NewPolicy(map[string]PropList{"TypeA": Props("next")}, nil, nil)
	b := &fakeNode{kind: "TypeB"}
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{{Name: "next", Value: b}}}

	out := exportString(t, New("p", WithPolicy(policy)), a)

	assert.Equal(t, lines(
		"p:TypeA_1 a gcc:TypeA.",
		"p:TypeA_1 gcc:next p:TypeB_1.",
		"p:TypeB_1 a gcc:TypeB.",
	), out)
}

func TestExportList(t *testing.T) {
	policy := NewPolicy(map[string]PropList{"TypeA": Props("children")}, nil, nil)
	b1 := &fakeNode{kind: "TypeB"}
	b2 := &fakeNode{kind: "TypeB"}
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{
		{Name: "children", Value: []gimple.Node{b1, b2}},
	}}

	out := exportString(t, New("p", WithPolicy(policy)), a)

	assert.Equal(t, lines(
		"p:TypeA_1 a gcc:TypeA.",
		"p:TypeA_1 gcc:children ( p:TypeB_1 p:TypeB_2 ).",
		"p:TypeB_1 a gcc:TypeB.",
		"p:TypeB_2 a gcc:TypeB.",
	), out, "ids follow list order and every element keeps its own type statement")
}

func TestExportEmptyList(t *testing.T) {
	policy := NewPolicy(map[string]PropList{"TypeA": Props("children")}, nil, nil)
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{
		{Name: "children", Value: []gimple.Node{}},
	}}

	out := exportString(t, New("p", WithPolicy(policy)), a)

	assert.Equal(t, lines(
		"p:TypeA_1 a gcc:TypeA.",
		"p:TypeA_1 gcc:children ().",
	), out, "an empty list is a literal, not an absence")
}

func TestExportSharedChildMintedOnce(t *testing.T) {
	policy := NewPolicy(map[string]PropList{"TypeA": Props("left", "right")}, nil, nil)
	b := &fakeNode{kind: "TypeB"}
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{
		{Name: "left", Value: b},
		{Name: "right", Value: b},
	}}

	out := exportString(t, New("p", WithPolicy(policy)), a)

	assert.Equal(t, lines(
		"p:TypeA_1 a gcc:TypeA.",
		"p:TypeA_1 gcc:left p:TypeB_1.",
		"p:TypeA_1 gcc:right p:TypeB_1.",
		"p:TypeB_1 a gcc:TypeB.",
	), out)
}

func TestExportCycleTerminates(t *testing.T) {
	policy := NewPolicy(map[string]PropList{
		"TypeA": Props("next"),
		"TypeB": Props("back"),
	}, nil, nil)
	a := &fakeNode{kind: "TypeA"}
	b := &fakeNode{kind: "TypeB", props: []gimple.Property{{Name: "back", Value: a}}}
	a.props = []gimple.Property{{Name: "next", Value: b}}

	out := exportString(t, New("p", WithPolicy(policy)), a)

	assert.Equal(t, lines(
		"p:TypeA_1 a gcc:TypeA.",
		"p:TypeA_1 gcc:next p:TypeB_1.",
		"p:TypeB_1 a gcc:TypeB.",
		"p:TypeB_1 gcc:back p:TypeA_1.",
	), out)
}

func TestExportSuppressedPropertyTraverses(t *testing.T) {
	policy := NewPolicy(map[string]PropList{"TypeA": Props("[next]")}, nil, nil)
	b := &fakeNode{kind: "TypeB"}
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{{Name: "next", Value: b}}}

	out := exportString(t, New("p", WithPolicy(policy)), a)

	assert.Equal(t, lines(
		"p:TypeA_1 a gcc:TypeA.",
		"p:TypeB_1 a gcc:TypeB.",
	), out, "the edge stays out of the output but its target is still reached")
}

func TestExportOmitsAbsentAndDeniedValues(t *testing.T) {
	policy := NewPolicy(
		map[string]PropList{"TypeA": Props("gone", "kept", "skipped")},
		nil,
		[]string{"Hidden"},
	)
	b := &fakeNode{kind: "TypeB"}
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{
		{Name: "gone", Value: (*fakeNode)(nil)},
		{Name: "kept", Value: b},
		{Name: "skipped", Value: &fakeNode{kind: "Hidden"}},
	}}

	out := exportString(t, New("p", WithPolicy(policy)), a)

	assert.Equal(t, lines(
		"p:TypeA_1 a gcc:TypeA.",
		"p:TypeA_1 gcc:kept p:TypeB_1.",
		"p:TypeB_1 a gcc:TypeB.",
	), out, "statements whose object is absent or denied are dropped whole")
	assert.NotContains(t, out, "Hidden")
}

func TestExportDropsDeniedListElements(t *testing.T) {
	policy := NewPolicy(
		map[string]PropList{"TypeA": Props("children")},
		nil,
		[]string{"Hidden"},
	)
	b1 := &fakeNode{kind: "TypeB"}
	b2 := &fakeNode{kind: "TypeB"}
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{
		{Name: "children", Value: []gimple.Node{b1, &fakeNode{kind: "Hidden"}, b2}},
	}}

	out := exportString(t, New("p", WithPolicy(policy)), a)
	assert.Contains(t, out, "p:TypeA_1 gcc:children ( p:TypeB_1 p:TypeB_2 ).")

	allHidden := &fakeNode{kind: "TypeA", props: []gimple.Property{
		{Name: "children", Value: []gimple.Node{&fakeNode{kind: "Hidden"}}},
	}}
	out = exportString(t, New("p", WithPolicy(policy)), allHidden)
	assert.Contains(t, out, "p:TypeA_1 gcc:children ().", "a list emptied by filtering still renders")
}

func TestExportUnlistedKindGetsTypeOnly(t *testing.T) {
	policy := NewPolicy(map[string]PropList{"TypeA": Props("next")}, nil, nil)
	b := &fakeNode{kind: "TypeB", props: []gimple.Property{
		{Name: "next", Value: &fakeNode{kind: "TypeC"}},
	}}

	out := exportString(t, New("p", WithPolicy(policy)), b)

	assert.Equal(t, lines("p:TypeB_1 a gcc:TypeB."), out,
		"a kind without a whitelist contributes its type statement and nothing else")
}

func TestExportLiteralValues(t *testing.T) {
	policy := NewPolicy(map[string]PropList{"TypeA": Props("flag", "label", "n")}, nil, nil)
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{
		{Name: "flag", Value: true},
		{Name: "label", Value: "hi\n"},
		{Name: "n", Value: 42},
	}}

	out := exportString(t, New("p", WithPolicy(policy)), a)

	assert.Equal(t, lines(
		"p:TypeA_1 a gcc:TypeA.",
		"p:TypeA_1 gcc:flag true.",
		"p:TypeA_1 gcc:label \"hi\\n\".",
		"p:TypeA_1 gcc:n 42.",
	), out)
}

func TestExportCanonicalFormMergesNodes(t *testing.T) {
	policy := NewPolicy(map[string]PropList{"TypeA": Props("children")}, nil, nil)
	s1 := &fakeIdentified{fakeNode: fakeNode{kind: "Stmt"}, form: "x + 1"}
	s2 := &fakeIdentified{fakeNode: fakeNode{kind: "Stmt"}, form: "x + 1"}
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{
		{Name: "children", Value: []gimple.Node{s1, s2}},
	}}

	out := exportString(t, New("p", WithPolicy(policy)), a)

	assert.Equal(t, lines(
		"p:TypeA_1 a gcc:TypeA.",
		"p:TypeA_1 gcc:children ( p:Stmt_1 p:Stmt_1 ).",
		"p:Stmt_1 a gcc:Stmt.",
	), out, "distinct objects with one canonical form collapse into one subject")
}

func TestExportGlobalAndLocationIdentities(t *testing.T) {
	policy := NewPolicy(map[string]PropList{"TypeA": Props("decl", "loc")}, nil, nil)
	decl := &fakeIdentified{fakeNode: fakeNode{kind: "NamedThing"}, name: "main"}
	loc := &fakeIdentified{fakeNode: fakeNode{kind: "Spot"}, file: "t.c", line: 3}
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{
		{Name: "decl", Value: decl},
		{Name: "loc", Value: loc},
	}}

	out := exportString(t, New("p", WithPolicy(policy)), a)

	assert.Equal(t, lines(
		"p:TypeA_1 a gcc:TypeA.",
		"p:TypeA_1 gcc:decl functions:main.",
		"p:TypeA_1 gcc:loc loc:t.c_3.",
		"functions:main a gcc:NamedThing.",
		"loc:t.c_3 a gcc:Spot.",
	), out)
}

func TestExportSanitizesPrefix(t *testing.T) {
	exp := New("9t.c main")
	assert.Equal(t, "_9t_c_main", exp.Prefix())

	out := exportString(t, exp, &fakeNode{kind: "TypeA"})
	assert.Equal(t, lines("_9t_c_main:TypeA_1 a gcc:TypeA."), out)
}

func TestDerivePrefix(t *testing.T) {
	tests := []struct {
		name string
		fn   *gimple.Function
		want string
	}{
		{
			name: "file and name",
			fn:   sumFunction(),
			want: "sum_sum",
		},
		{
			name: "nested path keeps only the base name",
			fn: &gimple.Function{Decl: &gimple.FunctionDecl{
				Name:     "main",
				Location: &gimple.Location{File: "src/app/main.c", Line: 1},
			}},
			want: "main_main",
		},
		{
			name: "no location",
			fn:   &gimple.Function{Decl: &gimple.FunctionDecl{Name: "helper"}},
			want: "helper",
		},
		{
			name: "no declaration",
			fn:   &gimple.Function{},
			want: "function",
		},
		{
			name: "nil function",
			fn:   nil,
			want: "function",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePrefix(tt.fn))
		})
	}
}

func TestExportNilRoot(t *testing.T) {
	exp := New("p")
	var buf bytes.Buffer

	require.Error(t, exp.Export(nil, &buf))

	var typed *fakeNode
	require.Error(t, exp.Export(typed, &buf))
	assert.Zero(t, buf.Len())
}

func TestExportUnrepresentableValue(t *testing.T) {
	policy := NewPolicy(map[string]PropList{"TypeA": Props("weight")}, nil, nil)
	a := &fakeNode{kind: "TypeA", props: []gimple.Property{{Name: "weight", Value: 3.14}}}

	var buf bytes.Buffer
	err := New("p", WithPolicy(policy)).Export(a, &buf)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrepresentable)
	assert.ErrorContains(t, err, "float64")
}

func TestExportDeterministic(t *testing.T) {
	exp := New("sum.c_sum")
	first := exportString(t, exp, sumFunction())
	second := exportString(t, exp, sumFunction())
	fresh := exportString(t, New("sum.c_sum"), sumFunction())

	assert.Equal(t, first, second, "re-export over one exporter is stable")
	assert.Equal(t, first, fresh, "export is a pure function of graph, policy and prefix")
}

func TestExportFunctionGraph(t *testing.T) {
	exp := New("sum.c_sum")
	require.Equal(t, "sum_c_sum", exp.Prefix())

	var buf bytes.Buffer
	require.NoError(t, exp.Export(sumFunction(), &buf))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "function_sum", buf.Bytes())
}

// sumFunction builds the graph for
//
//	int sum(int a) { int x; x = a + 2; return x; }
//
// with an entry block, one body block and an exit block.
func sumFunction() *gimple.Function {
	intType := &gimple.IntegerType{Name: "int", Precision: 32}
	loc1 := &gimple.Location{File: "sum.c", Line: 1, Column: 5}
	loc3 := &gimple.Location{File: "sum.c", Line: 3, Column: 3}
	loc4 := &gimple.Location{File: "sum.c", Line: 4, Column: 3}

	parmA := &gimple.ParmDecl{Location: loc1, Name: "a", StrNoUID: "a", Type: intType}
	varX := &gimple.VarDecl{Location: loc1, Name: "x", StrNoUID: "x", Type: intType}

	bb0 := &gimple.BasicBlock{Index: 0}
	bb1 := &gimple.BasicBlock{Index: 1}
	bb2 := &gimple.BasicBlock{Index: 2}

	ssaA := &gimple.SSAName{StrNoUID: "a_2", Type: intType, Var: parmA, Version: 2}
	cst2 := &gimple.IntegerCst{Constant: 2, StrNoUID: "2", Type: intType}
	assign := &gimple.GimpleAssign{Block: bb2, Loc: loc3, RHS: []gimple.Node{ssaA, cst2}, StrNoUID: "x_1 = a_2 + 2;"}
	ssaX := &gimple.SSAName{DefStmt: assign, StrNoUID: "x_1", Type: intType, Var: varX, Version: 1}
	assign.LHS = ssaX
	ret := &gimple.GimpleReturn{Block: bb2, Loc: loc4, Retval: ssaX, StrNoUID: "return x_1;"}

	e02 := &gimple.Edge{Dest: bb2, Fallthru: true, Src: bb0}
	e21 := &gimple.Edge{Dest: bb1, Src: bb2}
	bb0.Succs = []*gimple.Edge{e02}
	bb2.Gimple = []gimple.Node{assign, ret}
	bb2.Preds = []*gimple.Edge{e02}
	bb2.Succs = []*gimple.Edge{e21}
	bb1.Preds = []*gimple.Edge{e21}

	cfg := &gimple.CFG{BasicBlocks: []*gimple.BasicBlock{bb0, bb1, bb2}, Entry: bb0, Exit: bb1}
	decl := &gimple.FunctionDecl{
		Arguments: []*gimple.ParmDecl{parmA},
		Location:  loc1,
		Name:      "sum",
		Result:    &gimple.ResultDecl{StrNoUID: "D.1"},
		StrNoUID:  "sum",
	}
	fn := &gimple.Function{
		CFG:        cfg,
		Decl:       decl,
		End:        &gimple.Location{File: "sum.c", Line: 5, Column: 1},
		LocalDecls: []*gimple.VarDecl{varX},
	}
	decl.Function = fn
	return fn
}
