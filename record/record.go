// Package record defines the typed-record contract the Merkle engines
// read from and (for the salt engine only) write to. A record is owned by
// its caller; the engines only ever take a pointer to one they were
// handed.
package record

// Record is a runtime instance of a schema class: a name->value mapping
// for its declared properties, plus a salt store over its own primitive
// leaves. Nested class values are themselves *Record, carrying their own
// independent salt store.
//
// Concurrent calls into a single Record are safe as long as none of them
// is Set or SetSalt; Get/GetSalt never mutate. The salt engine is the
// only caller that writes, and it must own exclusive access to the record
// (and every nested record reachable from it) for the duration of the
// call. Abandoning a salt call partway through leaves the salt store
// partially populated; such a record must be discarded, never reused.
type Record struct {
	// Type is the record's fully-qualified class name, e.g. "ns.Name".
	Type string

	values map[string]interface{}
	salts  map[string][]byte
}

// New returns an empty Record of the given class.
func New(className string) *Record {
	return &Record{
		Type:   className,
		values: make(map[string]interface{}),
		salts:  make(map[string][]byte),
	}
}

// Set assigns the value of a declared property. value is a primitive
// scalar (string, bool, int64, float64, time.Time) for primitive fields,
// or *Record for nested class fields.
func (r *Record) Set(name string, value interface{}) {
	r.values[name] = value
}

// Get returns the value of a declared property, and whether it was set.
func (r *Record) Get(name string) (interface{}, bool) {
	v, ok := r.values[name]
	return v, ok
}

// GetSalt returns the 32-byte salt bound to a primitive leaf of this
// record, and whether one has been generated.
func (r *Record) GetSalt(name string) ([]byte, bool) {
	s, ok := r.salts[name]
	return s, ok
}

// SetSalt stores the salt bound to a primitive leaf of this record. It
// copies salt so the caller may reuse its backing array.
func (r *Record) SetSalt(name string, salt []byte) {
	r.salts[name] = append([]byte(nil), salt...)
}
