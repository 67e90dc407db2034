// Package store provides SQLite-backed storage for merged RDF exports.
//
// The store is an accumulating statement set with run provenance:
//   - Runs: one record per merged export (source dump, namespace prefix)
//   - Triples: the statements themselves, deduplicated across runs
//
// Duplicate statements merge silently: UNIQUE(subject, predicate, object)
// with ON CONFLICT DO NOTHING keeps the first write and counts the rest
// as duplicates. Ordering uses seq INTEGER columns (merge order for runs,
// statement position within a run for triples), never timestamps, and
// every query carries an ORDER BY so results are identical across
// processes.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: triples always reference their run
package store
