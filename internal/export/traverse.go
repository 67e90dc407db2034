package export

import (
	"fmt"
	"reflect"

	"github.com/grdf/gimple2rdf/internal/gimple"
)

// closedEntry is one registered node: minted URI plus the node itself,
// held in registration order.
type closedEntry struct {
	uri  string
	node gimple.Node
}

// propEntry is one admitted property in traversal order.
type propEntry struct {
	name  string
	value any
	emit  bool
}

// traversal is the per-export walk context: worklist, ordered closed set
// and the identity tables behind it. It is created per Export call and
// discarded after emission.
type traversal struct {
	policy *Policy
	minter *minter
	repr   *representer
	closed []closedEntry
	seen   map[string]struct{}
}

func newTraversal(prefix string, policy *Policy, identityProps map[string][]string) *traversal {
	m := newMinter(prefix, identityProps)
	return &traversal{
		policy: policy,
		minter: m,
		repr:   &representer{policy: policy, minter: m},
		seen:   make(map[string]struct{}),
	}
}

// walk drains the worklist starting from root. Literals contribute
// nothing, lists dissolve into their elements, nodes register once and
// push their admitted property values. Children push in reverse so they
// pop in property order, which fixes the id sequence minted along the
// way.
func (t *traversal) walk(root gimple.Node) error {
	stack := []any{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch val := v.(type) {
		case nil, bool, int, int64, string:
			continue
		case gimple.Node:
			if isNilNode(val) {
				continue
			}
			t.visit(val, &stack)
			continue
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			for i := rv.Len() - 1; i >= 0; i-- {
				stack = append(stack, rv.Index(i).Interface())
			}
			continue
		}

		return fmt.Errorf("%w: %T", ErrUnrepresentable, v)
	}
	return nil
}

// visit registers one node and schedules its children. Denied kinds are
// discarded before minting, so they never enter the identity tables.
func (t *traversal) visit(n gimple.Node, stack *[]any) {
	if !t.policy.Traversable(n.Kind()) {
		return
	}
	uri := t.minter.mint(n)
	if _, done := t.seen[uri]; done {
		return
	}
	t.seen[uri] = struct{}{}
	t.closed = append(t.closed, closedEntry{uri: uri, node: n})

	props := t.enumerate(n)
	for i := len(props) - 1; i >= 0; i-- {
		*stack = append(*stack, props[i].value)
	}
}

// enumerate lists a node's admitted properties in deterministic order:
// whitelist rule order for listed kinds, the node's own enumeration order
// under an all-props whitelist. The global denylist wins either way.
func (t *traversal) enumerate(n gimple.Node) []propEntry {
	kind := n.Kind()
	list, ok := t.policy.kinds[kind]
	if !ok {
		return nil
	}
	props := n.Properties()

	if list.All {
		out := make([]propEntry, 0, len(props))
		for _, p := range props {
			if !t.policy.ForTraversal(kind, p.Name) {
				continue
			}
			out = append(out, propEntry{name: p.Name, value: p.Value, emit: true})
		}
		return out
	}

	out := make([]propEntry, 0, len(list.Rules))
	for _, rule := range list.Rules {
		if !t.policy.ForTraversal(kind, rule.Name) {
			continue
		}
		value, ok := findProp(props, rule.Name)
		if !ok {
			continue
		}
		out = append(out, propEntry{name: rule.Name, value: value, emit: !rule.Suppress})
	}
	return out
}
