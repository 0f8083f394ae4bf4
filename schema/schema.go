// Package schema defines the narrow schema-introspection contract the
// Merkle engines consume. It knows nothing about parsing, imports, or
// type resolution; a real schema compiler's adapter need only satisfy
// Registry.
package schema

import "fmt"

// Classifier tags the shape of a property. Only Primitive and NestedClass
// are implemented by the Merkle engines; Array, Enum, and Relationship are
// reserved extension points that Salt, Root, and Proof reject with
// merkle.ErrNotImplemented and Verify reports as a failed verification.
type Classifier int

const (
	Primitive Classifier = iota
	NestedClass
	Array
	Enum
	Relationship
)

func (c Classifier) String() string {
	switch c {
	case Primitive:
		return "Primitive"
	case NestedClass:
		return "NestedClass"
	case Array:
		return "Array"
	case Enum:
		return "Enum"
	case Relationship:
		return "Relationship"
	default:
		return fmt.Sprintf("Classifier(%d)", int(c))
	}
}

// PrimitiveType is the tag of a primitive field's declared type.
type PrimitiveType int

const (
	String PrimitiveType = iota
	Boolean
	Integer
	Long
	Double
	DateTime
)

func (t PrimitiveType) String() string {
	switch t {
	case String:
		return "String"
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Long:
		return "Long"
	case Double:
		return "Double"
	case DateTime:
		return "DateTime"
	default:
		return fmt.Sprintf("PrimitiveType(%d)", int(t))
	}
}

// Property is one declared slot of a Class, in declaration order.
// Declaration order is part of the hash contract: a Registry must return
// Properties in the order they were declared, never in some other
// (e.g. hash-map iteration) order.
type Property struct {
	Name string

	Classifier Classifier

	// PrimitiveType is meaningful only when Classifier == Primitive.
	PrimitiveType PrimitiveType

	// ClassName is the fully-qualified ns.Name of the nested class and is
	// meaningful only when Classifier == NestedClass.
	ClassName string
}

// Class is a class declaration: a fully-qualified name and its own
// properties, in declaration order. Only what the Merkle engines need is
// modelled here; super-types, imports, and identifiers are invisible to
// this package by design.
type Class struct {
	Name       string
	Properties []Property
}

// Registry resolves a fully-qualified class name to its declaration. It is
// the entire surface the core requires from a schema compiler.
type Registry interface {
	Class(name string) (*Class, bool)
}
