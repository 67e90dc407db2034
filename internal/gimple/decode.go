package gimple

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
)

// DumpFormat is the function-dump format version this decoder accepts.
const DumpFormat = 1

// DecodeError describes why a function dump was rejected. Node and Field
// narrow the fault to one property when they are set.
type DecodeError struct {
	Node    string
	Field   string
	Message string
}

func (e *DecodeError) Error() string {
	switch {
	case e.Node != "" && e.Field != "":
		return fmt.Sprintf("dump: node %s: property %s: %s", e.Node, e.Field, e.Message)
	case e.Node != "":
		return fmt.Sprintf("dump: node %s: %s", e.Node, e.Message)
	default:
		return fmt.Sprintf("dump: %s", e.Message)
	}
}

// kindFactories allocates an empty node for every kind a dump may carry.
var kindFactories = map[string]func() Node{
	"Function":     func() Node { return new(Function) },
	"FunctionDecl": func() Node { return new(FunctionDecl) },
	"Cfg":          func() Node { return new(CFG) },
	"BasicBlock":   func() Node { return new(BasicBlock) },
	"Edge":         func() Node { return new(Edge) },
	"GimpleAssign": func() Node { return new(GimpleAssign) },
	"GimpleCond":   func() Node { return new(GimpleCond) },
	"GimpleCall":   func() Node { return new(GimpleCall) },
	"GimpleReturn": func() Node { return new(GimpleReturn) },
	"GimpleLabel":  func() Node { return new(GimpleLabel) },
	"GimplePhi":    func() Node { return new(GimplePhi) },
	"SsaName":      func() Node { return new(SSAName) },
	"IntegerCst":   func() Node { return new(IntegerCst) },
	"ArrayRef":     func() Node { return new(ArrayRef) },
	"MemRef":       func() Node { return new(MemRef) },
	"AddrExpr":     func() Node { return new(AddrExpr) },
	"VarDecl":      func() Node { return new(VarDecl) },
	"ParmDecl":     func() Node { return new(ParmDecl) },
	"LabelDecl":    func() Node { return new(LabelDecl) },
	"ResultDecl":   func() Node { return new(ResultDecl) },
	"TypeDecl":     func() Node { return new(TypeDecl) },
	"Location":     func() Node { return new(Location) },
	"PointerType":  func() Node { return new(PointerType) },
	"IntegerType":  func() Node { return new(IntegerType) },
	"RealType":     func() Node { return new(RealType) },
	"VoidType":     func() Node { return new(VoidType) },
	"BooleanType":  func() Node { return new(BooleanType) },
}

type rawDump struct {
	Format int                `json:"format"`
	Root   string             `json:"root"`
	Nodes  map[string]rawNode `json:"nodes"`
}

type rawNode struct {
	Kind  string                     `json:"kind"`
	Props map[string]json.RawMessage `json:"props"`
}

// Decode reads one function dump and reconstructs its node graph. The
// decode is two-pass (allocate, then fill) so cyclic references such as
// statement/block back-edges resolve. The root node must be a Function.
func Decode(r io.Reader) (*Function, error) {
	var raw rawDump
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse dump: %w", err)
	}
	if raw.Format != DumpFormat {
		return nil, &DecodeError{Message: fmt.Sprintf("unsupported format version %d", raw.Format)}
	}
	if raw.Root == "" {
		return nil, &DecodeError{Message: "missing root node id"}
	}

	nodes := make(map[string]Node, len(raw.Nodes))
	ids := make([]string, 0, len(raw.Nodes))
	for id, rn := range raw.Nodes {
		factory, ok := kindFactories[rn.Kind]
		if !ok {
			return nil, &DecodeError{Node: id, Message: fmt.Sprintf("unknown kind %q", rn.Kind)}
		}
		nodes[id] = factory()
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := fillNode(id, nodes[id], raw.Nodes[id].Props, nodes); err != nil {
			return nil, err
		}
	}

	root, ok := nodes[raw.Root]
	if !ok {
		return nil, &DecodeError{Message: fmt.Sprintf("root references unknown node %q", raw.Root)}
	}
	fn, ok := root.(*Function)
	if !ok {
		return nil, &DecodeError{Node: raw.Root, Message: fmt.Sprintf("root must be a Function, got %s", root.Kind())}
	}
	return fn, nil
}

func fillNode(id string, n Node, props map[string]json.RawMessage, nodes map[string]Node) error {
	v := reflect.ValueOf(n).Elem()
	t := v.Type()
	byTag := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("gimple"); tag != "" {
			byTag[tag] = i
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		idx, ok := byTag[name]
		if !ok {
			return &DecodeError{Node: id, Field: name, Message: fmt.Sprintf("unknown property for kind %s", n.Kind())}
		}
		raw := bytes.TrimSpace(props[name])
		if isJSONNull(raw) {
			continue
		}
		if err := fillValue(id, name, v.Field(idx), raw, nodes); err != nil {
			return err
		}
	}
	return nil
}

func fillValue(id, name string, f reflect.Value, raw json.RawMessage, nodes map[string]Node) error {
	switch f.Kind() {
	case reflect.Bool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return &DecodeError{Node: id, Field: name, Message: "expected a boolean"}
		}
		f.SetBool(b)

	case reflect.Int, reflect.Int64:
		if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
			return &DecodeError{Node: id, Field: name, Message: "expected an integer"}
		}
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return &DecodeError{Node: id, Field: name, Message: "expected an integer"}
		}
		i, err := num.Int64()
		if err != nil {
			return &DecodeError{Node: id, Field: name, Message: fmt.Sprintf("expected an integer, got %s", num)}
		}
		f.SetInt(i)

	case reflect.String:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return &DecodeError{Node: id, Field: name, Message: "expected a string"}
		}
		f.SetString(s)

	case reflect.Pointer, reflect.Interface:
		target, ok := parseRef(raw)
		if !ok {
			return &DecodeError{Node: id, Field: name, Message: "expected a node reference"}
		}
		ref, ok := nodes[target]
		if !ok {
			return &DecodeError{Node: id, Field: name, Message: fmt.Sprintf("reference to unknown node %q", target)}
		}
		rv := reflect.ValueOf(ref)
		if !rv.Type().AssignableTo(f.Type()) {
			return &DecodeError{Node: id, Field: name, Message: fmt.Sprintf("%s node cannot be used as %s", ref.Kind(), f.Type())}
		}
		f.Set(rv)

	case reflect.Slice:
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return &DecodeError{Node: id, Field: name, Message: "expected a list"}
		}
		out := reflect.MakeSlice(f.Type(), len(elems), len(elems))
		for i, e := range elems {
			e = bytes.TrimSpace(e)
			if isJSONNull(e) {
				return &DecodeError{Node: id, Field: name, Message: fmt.Sprintf("null list element at index %d", i)}
			}
			if err := fillValue(id, name, out.Index(i), e, nodes); err != nil {
				return err
			}
		}
		f.Set(out)

	default:
		return &DecodeError{Node: id, Field: name, Message: fmt.Sprintf("unsupported field type %s", f.Type())}
	}
	return nil
}

func parseRef(raw []byte) (string, bool) {
	var obj struct {
		Ref *string `json:"$ref"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.Ref == nil {
		return "", false
	}
	return *obj.Ref, true
}

func isJSONNull(raw []byte) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
