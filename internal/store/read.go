package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/grdf/gimple2rdf/internal/rdf"
)

// All returns every stored statement ordered by subject, predicate,
// object under binary collation.
//
// Returns an empty slice (not nil) if the store holds no statements.
func (s *Store) All(ctx context.Context) ([]rdf.Statement, error) {
	return s.queryStatements(ctx, `
		SELECT subject, predicate, object
		FROM triples
		ORDER BY subject COLLATE BINARY ASC, predicate COLLATE BINARY ASC, object COLLATE BINARY ASC
	`)
}

// BySubject returns the statements about one subject.
func (s *Store) BySubject(ctx context.Context, subject string) ([]rdf.Statement, error) {
	return s.queryStatements(ctx, `
		SELECT subject, predicate, object
		FROM triples
		WHERE subject = ?
		ORDER BY predicate COLLATE BINARY ASC, object COLLATE BINARY ASC
	`, subject)
}

// ByPredicate returns the statements carrying one predicate.
func (s *Store) ByPredicate(ctx context.Context, predicate string) ([]rdf.Statement, error) {
	return s.queryStatements(ctx, `
		SELECT subject, predicate, object
		FROM triples
		WHERE predicate = ?
		ORDER BY subject COLLATE BINARY ASC, object COLLATE BINARY ASC
	`, predicate)
}

func (s *Store) queryStatements(ctx context.Context, query string, args ...any) ([]rdf.Statement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query statements: %w", err)
	}
	defer rows.Close()

	stmts := []rdf.Statement{}
	for rows.Next() {
		var stmt rdf.Statement
		if err := rows.Scan(&stmt.Subject, &stmt.Predicate, &stmt.Object); err != nil {
			return nil, fmt.Errorf("scan statement: %w", err)
		}
		stmts = append(stmts, stmt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statements: %w", err)
	}

	return stmts, nil
}

// Functions returns the global function names present in the store,
// stripped of their namespace prefix, in sorted order.
func (s *Store) Functions(ctx context.Context) ([]string, error) {
	marker := rdf.PrefixFunctions + ":"
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT subject
		FROM triples
		WHERE subject LIKE ?
		ORDER BY subject COLLATE BINARY ASC
	`, marker+"%")
	if err != nil {
		return nil, fmt.Errorf("query functions: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, fmt.Errorf("scan function: %w", err)
		}
		names = append(names, strings.TrimPrefix(subject, marker))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate functions: %w", err)
	}

	return names, nil
}

// Runs returns the merge history in merge order.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, prefix, seq
		FROM runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Source, &run.Prefix, &run.Seq); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// Count returns the number of stored statements.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM triples`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count statements: %w", err)
	}
	return count, nil
}
