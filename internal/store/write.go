package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/grdf/gimple2rdf/internal/rdf"
)

// Run is one merged export: where the statements came from and the
// namespace prefix their local names mint under. Seq is the merge
// order, starting at 1.
type Run struct {
	ID     string
	Source string
	Prefix string
	Seq    int64
}

// MergeStats reports the outcome of one merge.
type MergeStats struct {
	Inserted  int
	Duplicate int
}

// Merge writes an exported statement set into the store as one run.
// Statements already present, from this run or any earlier one, are
// silently skipped and counted as duplicates; the first writer owns the
// statement. The whole merge runs in a single transaction, so a failed
// merge leaves no trace.
func (s *Store) Merge(ctx context.Context, source, prefix string, stmts []rdf.Statement) (Run, MergeStats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, MergeStats{}, fmt.Errorf("merge: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	run := Run{ID: uuid.NewString(), Source: source, Prefix: prefix}
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq)
	if err != nil {
		return Run{}, MergeStats{}, fmt.Errorf("merge: next run seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, prefix, seq)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Source, run.Prefix, run.Seq)
	if err != nil {
		return Run{}, MergeStats{}, fmt.Errorf("merge: insert run: %w", err)
	}

	var stats MergeStats
	for i, stmt := range stmts {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO triples (subject, predicate, object, run_id, seq)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(subject, predicate, object) DO NOTHING
		`, stmt.Subject, stmt.Predicate, stmt.Object, run.ID, i+1)
		if err != nil {
			return Run{}, MergeStats{}, fmt.Errorf("merge: insert triple: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return Run{}, MergeStats{}, fmt.Errorf("merge: rows affected: %w", err)
		}
		if affected > 0 {
			stats.Inserted++
		} else {
			stats.Duplicate++
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, MergeStats{}, fmt.Errorf("merge: commit: %w", err)
	}

	return run, stats, nil
}
