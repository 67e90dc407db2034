// Package policy loads exporter filtering policies from files. A policy
// file carries the same three tables the built-in default does: the
// per-kind property whitelist, the global property denylist and the kind
// denylist. Both the YAML and the CUE spelling decode into one File shape,
// and a loaded file replaces the default policy wholesale.
package policy
