package export

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/grdf/gimple2rdf/internal/gimple"
	"github.com/grdf/gimple2rdf/internal/rdf"
)

// Exporter serializes function graphs under one namespace prefix. It
// carries configuration only; identity state is created per Export call,
// so an Exporter may be reused but a single instance must not run
// concurrent Export calls over the same writer.
type Exporter struct {
	prefix        string
	policy        *Policy
	identityProps map[string][]string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithPolicy replaces the default filtering policy.
func WithPolicy(p *Policy) Option {
	return func(e *Exporter) { e.policy = p }
}

// WithIdentityProps replaces the identity-property table consulted for
// kinds with neither global nor canonical identity.
func WithIdentityProps(table map[string][]string) Option {
	return func(e *Exporter) { e.identityProps = table }
}

// New creates an Exporter minting local names under prefix. The prefix is
// sanitized onto the namespace-prefix grammar.
func New(prefix string, opts ...Option) *Exporter {
	e := &Exporter{
		prefix:        rdf.SanitizePrefix(prefix),
		policy:        DefaultPolicy(),
		identityProps: DefaultIdentityProps(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Prefix returns the sanitized namespace prefix local names mint under.
func (e *Exporter) Prefix() string { return e.prefix }

// Export walks the graph under root and writes its statements to w. The
// walk is single-threaded and synchronous; the caller must not mutate the
// graph during the call. Output is byte-identical for identical graphs,
// policy and prefix.
func (e *Exporter) Export(root gimple.Node, w io.Writer) error {
	if root == nil || isNilNode(root) {
		return errors.New("export: nil root")
	}

	t := newTraversal(e.prefix, e.policy, e.identityProps)
	if err := t.walk(root); err != nil {
		return err
	}
	if err := t.emit(w); err != nil {
		return err
	}

	slog.Debug("export complete", "prefix", e.prefix, "kind", root.Kind(), "nodes", len(t.closed))
	return nil
}

// DerivePrefix builds the conventional namespace prefix for a function:
// the base name of the declaration's source file without its extension,
// joined to the function name with an underscore. Pieces that are absent
// drop out; a function with no declaration gets the generic prefix. The
// result is raw text; New sanitizes it onto the prefix grammar.
func DerivePrefix(fn *gimple.Function) string {
	if fn == nil || fn.Decl == nil {
		return "function"
	}
	name := fn.Decl.Name
	if name == "" {
		name = "function"
	}
	if fn.Decl.Location == nil || fn.Decl.Location.File == "" {
		return name
	}
	base := filepath.Base(fn.Decl.Location.File)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		return name
	}
	return base + "_" + name
}
