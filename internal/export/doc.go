// Package export is the object-graph-to-triple serializer: a policy-driven
// worklist traversal over gimple nodes, stable URI minting, and statement
// emission.
//
// The pipeline is traverse-then-emit. Traversal discovers reachable nodes
// under the policy and registers them in an ordered closed set; emission
// walks that set and prints one type statement per node plus one statement
// per admitted property. Identity state lives in a per-call context, so an
// Exporter can serve many functions while their local ids stay independent
// and their global identifiers (symbol names, source positions) agree by
// derivation.
package export
