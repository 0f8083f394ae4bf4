package merkle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sstone1/concerto/canon"
)

// The error taxonomy of §7: abstract kinds checked with errors.Is, not
// numeric codes. ErrTypeMismatch is canon's sentinel, re-exported here so
// callers of this package never need to import canon just to compare
// errors.
var (
	ErrNotImplemented        = errors.New("merkle: not implemented")
	ErrSaltMissing           = errors.New("merkle: salt missing")
	ErrTypeMismatch          = canon.ErrTypeMismatch
	ErrPathInvalid           = errors.New("merkle: invalid path")
	ErrRandomnessUnavailable = errors.New("merkle: randomness unavailable")
	ErrMalformedProof        = errors.New("merkle: malformed proof")
)

// PathError augments one of the sentinel errors above with the schema
// path at which the walk encountered it, which is essential for debugging
// a proof over a deep record.
type PathError struct {
	Err  error
	Path []string
}

func (e *PathError) Error() string {
	where := "<root>"
	if len(e.Path) > 0 {
		where = strings.Join(e.Path, ".")
	}
	return fmt.Sprintf("%v: at %s", e.Err, where)
}

func (e *PathError) Unwrap() error { return e.Err }

func pathError(err error, path []string) error {
	return &PathError{Err: err, Path: append([]string(nil), path...)}
}
