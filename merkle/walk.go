package merkle

import (
	"github.com/sstone1/concerto/record"
	"github.com/sstone1/concerto/schema"
)

// walker is the single depth-first walker the salt, root, and proof
// engines share, parameterised by two node actions: what to do at a
// primitive leaf, and how to reduce a class node's children into the
// value the engine emits for it. This is the "tagged variant with a
// direct match in each engine" the design notes ask for, factored once
// instead of duplicated three times.
//
// Verify has no record to walk, so it is not built on this type; see
// verify.go.
type walker[T any] struct {
	registry schema.Registry

	onPrimitive func(path []string, prop schema.Property, rec *record.Record) (T, error)
	onClass     func(path []string, class *schema.Class, children []T) (T, error)
}

// walkClass visits every own property of class, in declaration order,
// against rec, and reduces the results with onClass. path is the path of
// class itself (nil at the top of a call).
func (w *walker[T]) walkClass(class *schema.Class, rec *record.Record, path []string) (T, error) {
	var zero T

	children := make([]T, 0, len(class.Properties))
	for _, prop := range class.Properties {
		childPath := append(append([]string(nil), path...), prop.Name)

		switch prop.Classifier {
		case schema.Primitive:
			v, err := w.onPrimitive(childPath, prop, rec)
			if err != nil {
				return zero, err
			}
			children = append(children, v)

		case schema.NestedClass:
			nestedVal, ok := rec.Get(prop.Name)
			if !ok {
				return zero, pathError(ErrTypeMismatch, childPath)
			}
			nestedRec, ok := nestedVal.(*record.Record)
			if !ok {
				return zero, pathError(ErrTypeMismatch, childPath)
			}
			nestedClass, ok := w.registry.Class(prop.ClassName)
			if !ok {
				return zero, pathError(ErrTypeMismatch, childPath)
			}
			v, err := w.walkClass(nestedClass, nestedRec, childPath)
			if err != nil {
				return zero, err
			}
			children = append(children, v)

		default: // Array, Enum, Relationship
			return zero, pathError(ErrNotImplemented, childPath)
		}
	}
	return w.onClass(path, class, children)
}

// pathsEqual reports whether two property-name paths address the same
// leaf.
func pathsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// classOf resolves a record's own class declaration.
func classOf(reg schema.Registry, rec *record.Record) (*schema.Class, error) {
	class, ok := reg.Class(rec.Type)
	if !ok {
		return nil, pathError(ErrTypeMismatch, nil)
	}
	return class, nil
}
