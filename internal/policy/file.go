package policy

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/grdf/gimple2rdf/internal/export"
)

// File is the decoded shape of a policy document:
//
//	kinds:
//	  BasicBlock: all
//	  GimpleAssign: [lhs, loc, rhs]
//	  SsaName: ["[def_stmt]"]
//	deny: [str_no_uid]
//	deny_kinds: [PointerType]
//
// Kinds absent from the table keep the default miss semantics: their nodes
// contribute a type statement and nothing else.
type File struct {
	Kinds     map[string]KindRules `yaml:"kinds"`
	Deny      []string             `yaml:"deny"`
	DenyKinds []string             `yaml:"deny_kinds"`
}

// KindRules is one kind's whitelist: the spelling "all", or an ordered
// rule list where a bracketed name ("[loc]") marks a suppressed rule.
type KindRules struct {
	All   bool
	Rules []string
}

// UnmarshalYAML accepts either the scalar "all" or a sequence of rule
// spellings.
func (k *KindRules) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s != "all" {
			return fmt.Errorf("line %d: kind rules must be \"all\" or a list, got %q", value.Line, s)
		}
		k.All = true
		return nil
	case yaml.SequenceNode:
		return value.Decode(&k.Rules)
	default:
		return fmt.Errorf("line %d: kind rules must be \"all\" or a list", value.Line)
	}
}

// DecodeYAML parses a YAML policy document. Unknown fields are rejected so
// a typo fails loudly instead of silently widening the policy.
func DecodeYAML(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing policy YAML: %w", err)
	}
	return &f, nil
}

// Policy converts the decoded file into an exporter policy.
func (f *File) Policy() *export.Policy {
	kinds := make(map[string]export.PropList, len(f.Kinds))
	for kind, rules := range f.Kinds {
		if rules.All {
			kinds[kind] = export.AllProps()
		} else {
			kinds[kind] = export.Props(rules.Rules...)
		}
	}
	return export.NewPolicy(kinds, f.Deny, f.DenyKinds)
}
