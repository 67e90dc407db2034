package export

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/grdf/gimple2rdf/internal/gimple"
	"github.com/grdf/gimple2rdf/internal/rdf"
)

// ErrUnrepresentable reports a property value outside the literal, list
// and node vocabulary. The engine fails loudly on it instead of dropping
// data silently.
var ErrUnrepresentable = errors.New("unrepresentable property value")

// representer renders property values for emission: literals by their
// canonical print, nodes by minted URI, slices as inline lists.
type representer struct {
	policy *Policy
	minter *minter
}

// repr renders one value. ok reports whether the value produces output at
// all: absent values and denied-kind nodes render nothing, and the
// statement that would carry them is dropped.
func (r *representer) repr(v any) (text string, ok bool, err error) {
	switch val := v.(type) {
	case nil:
		return "", false, nil
	case bool:
		return rdf.FormatBool(val), true, nil
	case int:
		return rdf.FormatInt(int64(val)), true, nil
	case int64:
		return rdf.FormatInt(val), true, nil
	case string:
		return rdf.FormatText(val), true, nil
	case gimple.Node:
		if isNilNode(val) {
			return "", false, nil
		}
		if !r.policy.Traversable(val.Kind()) {
			return "", false, nil
		}
		return r.minter.mint(val), true, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		elems := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, ok, err := r.repr(rv.Index(i).Interface())
			if err != nil {
				return "", false, err
			}
			if ok {
				elems = append(elems, elem)
			}
		}
		// A list is always rendered, even when every element dropped:
		// an empty list is a literal, not an absence.
		return rdf.FormatList(elems), true, nil
	}

	return "", false, fmt.Errorf("%w: %T", ErrUnrepresentable, v)
}

// isNilNode spots typed-nil references hiding behind the Node interface.
func isNilNode(n gimple.Node) bool {
	rv := reflect.ValueOf(n)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
