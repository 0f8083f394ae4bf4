package merkle

import (
	"crypto/rand"

	"github.com/sstone1/concerto/canon"
	"github.com/sstone1/concerto/record"
	"github.com/sstone1/concerto/schema"
)

// Salt walks rec's class declaration in declaration order and generates a
// fresh, cryptographically random 32-byte salt for every primitive leaf
// reachable from it, writing each one into the owning record's salt
// store. Nested records get their own salts written into their own
// store, never into the parent's.
//
// Salt mutates rec (and any nested record reachable from it) in place. If
// it returns a non-nil error, the salt store is left partially populated;
// the record must be treated as discarded, not reused.
func Salt(reg schema.Registry, rec *record.Record) error {
	class, err := classOf(reg, rec)
	if err != nil {
		return err
	}

	w := &walker[struct{}]{
		registry: reg,
		onPrimitive: func(path []string, prop schema.Property, r *record.Record) (struct{}, error) {
			salt, err := newSalt()
			if err != nil {
				return struct{}{}, pathError(err, path)
			}
			r.SetSalt(prop.Name, salt)
			return struct{}{}, nil
		},
		onClass: func(path []string, class *schema.Class, children []struct{}) (struct{}, error) {
			return struct{}{}, nil
		},
	}
	_, err = w.walkClass(class, rec, nil)
	return err
}

// newSalt draws HashSize bytes from a cryptographically secure source. A
// failure to do so is fatal: salts must never be derivable from the
// value, so there is no fallback source to degrade to.
func newSalt() ([]byte, error) {
	salt := make([]byte, canon.HashSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, &wrappedRandErr{err}
	}
	return salt, nil
}

type wrappedRandErr struct{ cause error }

func (e *wrappedRandErr) Error() string { return ErrRandomnessUnavailable.Error() + ": " + e.cause.Error() }
func (e *wrappedRandErr) Unwrap() error { return ErrRandomnessUnavailable }
