package schema

import "fmt"

// MapRegistry is an in-memory Registry backed by a map, the same shape as
// the teacher's hasher registry (crypto/hashers.RegisterHasher): register
// once at construction time, look up by name afterwards.
type MapRegistry struct {
	classes map[string]*Class
}

// NewMapRegistry returns an empty MapRegistry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{classes: make(map[string]*Class)}
}

// Register adds a class declaration to the registry. It panics if a class
// of the same name is already registered, since two conflicting
// declarations of the same fully-qualified name is a schema-compiler bug,
// not a recoverable runtime condition.
func (r *MapRegistry) Register(class *Class) {
	if _, ok := r.classes[class.Name]; ok {
		panic(fmt.Sprintf("schema: %s is already registered", class.Name))
	}
	r.classes[class.Name] = class
}

// Class implements Registry.
func (r *MapRegistry) Class(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

var _ Registry = (*MapRegistry)(nil)
