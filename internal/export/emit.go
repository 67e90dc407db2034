package export

import (
	"fmt"
	"io"

	"github.com/grdf/gimple2rdf/internal/rdf"
)

// emit serializes the closed set in registration order: the node's type
// statement first, then one statement per emitted property. Minting here
// is lookup only; every referenced admitted node was already registered
// by the walk.
func (t *traversal) emit(w io.Writer) error {
	for _, entry := range t.closed {
		typeStmt := rdf.Statement{
			Subject:   entry.uri,
			Predicate: rdf.TypePredicate,
			Object:    rdf.Prefixed(rdf.PrefixGCC, entry.node.Kind()),
		}
		if err := writeLine(w, typeStmt); err != nil {
			return err
		}

		for _, prop := range t.enumerate(entry.node) {
			if !prop.emit {
				continue
			}
			text, ok, err := t.repr.repr(prop.value)
			if err != nil {
				return fmt.Errorf("emit %s %s: %w", entry.uri, prop.name, err)
			}
			if !ok {
				continue
			}
			stmt := rdf.Statement{
				Subject:   entry.uri,
				Predicate: rdf.Prefixed(rdf.PrefixGCC, prop.name),
				Object:    text,
			}
			if err := writeLine(w, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeLine(w io.Writer, stmt rdf.Statement) error {
	if _, err := io.WriteString(w, stmt.String()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
