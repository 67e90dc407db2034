package policy

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Compile parses a CUE value into a policy File. Uses the CUE SDK's Go
// API directly (not a CLI subprocess).
//
// The CUE value should be the policy document itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`kinds: BasicBlock: "all"`)
//	file, err := policy.Compile(v)
func Compile(v cue.Value) (*File, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	// Reject unknown top-level fields so the CUE spelling stays in
	// lockstep with the strict YAML decoder.
	fields, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for fields.Next() {
		switch fields.Label() {
		case "kinds", "deny", "deny_kinds":
		default:
			return nil, &CompileError{
				Field:   fields.Label(),
				Message: fmt.Sprintf("unknown policy field %q", fields.Label()),
				Pos:     fields.Value().Pos(),
			}
		}
	}

	f := &File{}

	kindsVal := v.LookupPath(cue.ParsePath("kinds"))
	if kindsVal.Exists() {
		iter, err := kindsVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		f.Kinds = make(map[string]KindRules)
		for iter.Next() {
			rules, err := compileKindRules(iter.Label(), iter.Value())
			if err != nil {
				return nil, err
			}
			f.Kinds[iter.Label()] = rules
		}
	}

	f.Deny, err = compileNameList("deny", v)
	if err != nil {
		return nil, err
	}
	f.DenyKinds, err = compileNameList("deny_kinds", v)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// compileKindRules parses one kind's whitelist: the string "all" or a
// list of rule spellings.
func compileKindRules(kind string, v cue.Value) (KindRules, error) {
	if s, err := v.String(); err == nil {
		if s != "all" {
			return KindRules{}, &CompileError{
				Field:   "kinds." + kind,
				Message: fmt.Sprintf("kind rules must be \"all\" or a list, got %q", s),
				Pos:     v.Pos(),
			}
		}
		return KindRules{All: true}, nil
	}

	iter, err := v.List()
	if err != nil {
		return KindRules{}, &CompileError{
			Field:   "kinds." + kind,
			Message: "kind rules must be \"all\" or a list",
			Pos:     v.Pos(),
		}
	}
	rules := []string{}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return KindRules{}, &CompileError{
				Field:   "kinds." + kind,
				Message: "rule spellings must be strings",
				Pos:     iter.Value().Pos(),
			}
		}
		rules = append(rules, s)
	}
	return KindRules{Rules: rules}, nil
}

// compileNameList parses an optional top-level list of names (deny,
// deny_kinds).
func compileNameList(field string, v cue.Value) ([]string, error) {
	listVal := v.LookupPath(cue.ParsePath(field))
	if !listVal.Exists() {
		return nil, nil
	}

	iter, err := listVal.List()
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: field + " must be a list of names",
			Pos:     listVal.Pos(),
		}
	}
	var names []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   field,
				Message: "names must be strings",
				Pos:     iter.Value().Pos(),
			}
		}
		names = append(names, s)
	}
	return names, nil
}

// CompileError represents a policy compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
