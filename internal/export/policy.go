package export

import "strings"

// PropRule is one whitelist entry for a kind. A suppressed rule keeps the
// property on the traversal path but out of the output.
type PropRule struct {
	Name     string
	Suppress bool
}

// PropList is a kind's property whitelist: either everything the node
// exposes, or an explicit ordered rule list.
type PropList struct {
	All   bool
	Rules []PropRule
}

// AllProps is the whitelist admitting every property a kind exposes.
func AllProps() PropList { return PropList{All: true} }

// Props builds an ordered whitelist from rule spellings. A name wrapped
// in brackets ("[loc]") is suppressed: traversed, never emitted.
func Props(spellings ...string) PropList {
	rules := make([]PropRule, len(spellings))
	for i, s := range spellings {
		rules[i] = parseRule(s)
	}
	return PropList{Rules: rules}
}

func parseRule(spelling string) PropRule {
	if strings.HasPrefix(spelling, "[") && strings.HasSuffix(spelling, "]") && len(spelling) > 2 {
		return PropRule{Name: spelling[1 : len(spelling)-1], Suppress: true}
	}
	return PropRule{Name: spelling}
}

// Policy decides which kinds are walked and which properties are walked
// and emitted. A miss is a denial, never an error: a kind without a
// whitelist contributes only its type statement, and unlisted property
// names never pass.
type Policy struct {
	kinds     map[string]PropList
	denyProps map[string]struct{}
	denyKinds map[string]struct{}
}

// NewPolicy builds a policy from a per-kind whitelist, a global property
// denylist and a kind denylist. The denylists win over the whitelist.
func NewPolicy(kinds map[string]PropList, denyProps, denyKinds []string) *Policy {
	p := &Policy{
		kinds:     make(map[string]PropList, len(kinds)),
		denyProps: make(map[string]struct{}, len(denyProps)),
		denyKinds: make(map[string]struct{}, len(denyKinds)),
	}
	for kind, list := range kinds {
		p.kinds[kind] = list
	}
	for _, name := range denyProps {
		p.denyProps[name] = struct{}{}
	}
	for _, kind := range denyKinds {
		p.denyKinds[kind] = struct{}{}
	}
	return p
}

// Traversable reports whether values of a kind may enter the graph at
// all. A denied kind is cut off silently: no statements, no expansion.
func (p *Policy) Traversable(kind string) bool {
	_, denied := p.denyKinds[kind]
	return !denied
}

// ForTraversal reports whether a property's value is followed during
// traversal.
func (p *Policy) ForTraversal(kind, prop string) bool {
	if _, denied := p.denyProps[prop]; denied {
		return false
	}
	list, ok := p.kinds[kind]
	if !ok {
		return false
	}
	if list.All {
		return true
	}
	for _, r := range list.Rules {
		if r.Name == prop {
			return true
		}
	}
	return false
}

// ForEmission reports whether a property appears in the output. Emission
// implies traversal; a suppressed rule walks without emitting.
func (p *Policy) ForEmission(kind, prop string) bool {
	if !p.ForTraversal(kind, prop) {
		return false
	}
	list := p.kinds[kind]
	if list.All {
		return true
	}
	for _, r := range list.Rules {
		if r.Name == prop {
			return !r.Suppress
		}
	}
	return false
}

// DefaultPolicy reproduces the exporter's built-in filtering tables: the
// structural kinds export everything, statements and operands export their
// semantic core, internal bookkeeping names are denied globally, and the
// type kinds are cut off entirely so indirection chains stay finite.
func DefaultPolicy() *Policy {
	return NewPolicy(
		map[string]PropList{
			"BasicBlock":   AllProps(),
			"Edge":         AllProps(),
			"Cfg":          AllProps(),
			"Function":     Props("cfg", "decl", "end", "local_decls"),
			"FunctionDecl": Props("arguments", "function", "location", "name", "result"),
			"GimpleAssign": Props("lhs", "loc", "rhs"),
			"GimpleCond":   Props("block", "lhs", "loc", "rhs"),
			"GimpleCall":   Props("args", "block", "fn", "fndecl", "loc", "noreturn", "rhs"),
			"GimpleReturn": Props("block", "loc"),
			"GimpleLabel":  Props("label"),
			"SsaName":      Props("def_stmt"),
			"IntegerCst":   Props("constant"),
			"ArrayRef":     Props("array", "index", "location"),
			"MemRef":       Props("location", "operand"),
			"AddrExpr":     Props("location", "operand"),
			"VarDecl":      Props("location", "name"),
			"ParmDecl":     Props("location", "name"),
			"LabelDecl":    Props("location"),
			"Location":     Props("file", "line"),
		},
		[]string{"unsigned_equivalent", "signed_equivalent", "sizeof", "fullname", "callgraph_node", "str_no_uid"},
		[]string{"PointerType", "IntegerType", "VoidType", "RealType", "BooleanType", "TypeDecl"},
	)
}
