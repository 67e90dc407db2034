// Package rdf carries the statement grammar shared by the exporter, the
// merge store and the CLI: the triple line format, its literal and list
// renderings, the namespace table, a line parser for re-reading emitted
// output, and JSON-LD conversion of statement sets.
package rdf
