package export

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/grdf/gimple2rdf/internal/gimple"
	"github.com/grdf/gimple2rdf/internal/rdf"
)

// Hash domains for minted identities. The null separator keeps the
// domain/payload boundary unambiguous.
const (
	domainCanonical = "gimple2rdf/canon/v1"
	domainProps     = "gimple2rdf/props/v1"
)

// DefaultIdentityProps maps kinds with neither global nor canonical
// identity to the property tuple that identifies them within a function.
func DefaultIdentityProps() map[string][]string {
	return map[string][]string{
		"BasicBlock": {"index"},
	}
}

// minter assigns URIs. Global identities (symbol names, source positions)
// derive directly, so separate runs agree on them. Everything else goes
// through a per-kind table from identity hash to sequential id, assigned
// in first-seen order, with raw object identity as the last resort.
//
// Hash collisions between structurally different identity keys are not
// detected; two colliding entities within one run would share a URI.
type minter struct {
	prefix        string
	identityProps map[string][]string
	kinds         map[string]*kindTable
}

type kindTable struct {
	byHash map[uint64]int
	byNode map[gimple.Node]int
}

func newMinter(prefix string, identityProps map[string][]string) *minter {
	return &minter{
		prefix:        prefix,
		identityProps: identityProps,
		kinds:         make(map[string]*kindTable),
	}
}

// mint returns the node's URI, assigning a fresh id on first sight.
// Minting is idempotent for the lifetime of the minter.
func (m *minter) mint(n gimple.Node) string {
	if g, ok := n.(gimple.GloballyNamed); ok {
		if name := g.GlobalName(); name != "" {
			return rdf.Prefixed(rdf.PrefixFunctions, rdf.SanitizeLocal(name))
		}
	}
	if l, ok := n.(gimple.Located); ok {
		if file, line := l.SourceKey(); file != "" {
			return rdf.Prefixed(rdf.PrefixLocations, rdf.SanitizeLocal(file)+"_"+strconv.Itoa(line))
		}
	}

	kind := n.Kind()
	table := m.kinds[kind]
	if table == nil {
		table = &kindTable{byHash: make(map[uint64]int), byNode: make(map[gimple.Node]int)}
		m.kinds[kind] = table
	}

	if c, ok := n.(gimple.Canonical); ok {
		if form := c.CanonicalForm(); form != "" {
			h := hashWithDomain(domainCanonical, norm.NFC.String(form))
			return m.local(kind, table.idForHash(h))
		}
	}
	if names, ok := m.identityProps[kind]; ok {
		if payload, ok := identityTuple(n, names); ok {
			return m.local(kind, table.idForHash(hashWithDomain(domainProps, payload)))
		}
	}
	return m.local(kind, table.idForNode(n))
}

func (m *minter) local(kind string, id int) string {
	return rdf.Prefixed(m.prefix, kind+"_"+strconv.Itoa(id))
}

func (t *kindTable) idForHash(h uint64) int {
	if id, ok := t.byHash[h]; ok {
		return id
	}
	id := t.next()
	t.byHash[h] = id
	return id
}

func (t *kindTable) idForNode(n gimple.Node) int {
	if id, ok := t.byNode[n]; ok {
		return id
	}
	id := t.next()
	t.byNode[n] = id
	return id
}

// next is the kind's shared sequence: first identity seen gets 1.
func (t *kindTable) next() int {
	return len(t.byHash) + len(t.byNode) + 1
}

// hashWithDomain computes xxhash64(domain + 0x00 + payload).
func hashWithDomain(domain, payload string) uint64 {
	return xxhash.Sum64String(domain + "\x00" + payload)
}

// identityTuple serializes the named properties as an ordered (name,
// value) tuple for hashing. All names must be present with scalar values;
// anything else falls back to object identity.
func identityTuple(n gimple.Node, names []string) (string, bool) {
	props := n.Properties()
	var b strings.Builder
	for _, name := range names {
		val, ok := findProp(props, name)
		if !ok {
			return "", false
		}
		text, ok := scalarText(val)
		if !ok {
			return "", false
		}
		b.WriteString(name)
		b.WriteByte(0)
		b.WriteString(text)
		b.WriteByte(0)
	}
	return b.String(), true
}

func findProp(props []gimple.Property, name string) (any, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func scalarText(v any) (string, bool) {
	switch val := v.(type) {
	case bool:
		return rdf.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case string:
		return norm.NFC.String(val), true
	}
	return "", false
}
