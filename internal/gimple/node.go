package gimple

import (
	"reflect"
	"sort"
)

// Node is the graph-introspection capability every exportable IR entity
// implements. Kind returns the runtime-type tag without reflection;
// Properties returns the present (name, value) pairs in ascending name
// order.
//
// Property values are bool, int, int64, string, a Node, or a slice of
// those. Absent members are omitted from the list.
type Node interface {
	Kind() string
	Properties() []Property
}

// Property is a single named attribute of a node.
type Property struct {
	Name  string
	Value any
}

// GloballyNamed marks nodes whose identity is a program-global symbol name,
// stable across translation units.
type GloballyNamed interface {
	Node
	GlobalName() string
}

// Located marks nodes whose identity is a source position. SourceKey
// returns the file path and line number.
type Located interface {
	Node
	SourceKey() (string, int)
}

// Canonical marks nodes that carry a UID-independent printed form, stable
// across compiler runs. An empty form means the node has none.
type Canonical interface {
	Node
	CanonicalForm() string
}

// properties builds the ordered property list for a node from its gimple
// struct tags. Untagged fields are invisible. Nil references, nil slices
// and empty strings are absent; zero ints, false bools and empty non-nil
// slices are present.
func properties(n Node) []Property {
	v := reflect.ValueOf(n).Elem()
	t := v.Type()
	props := make([]Property, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("gimple")
		if name == "" {
			continue
		}
		f := v.Field(i)
		switch f.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice:
			if f.IsNil() {
				continue
			}
		case reflect.String:
			if f.Len() == 0 {
				continue
			}
		}
		props = append(props, Property{Name: name, Value: f.Interface()})
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	return props
}
