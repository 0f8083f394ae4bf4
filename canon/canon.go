// Package canon defines the one and only byte encoding of a primitive
// value used for hashing, and the SHA-256 wrappers built on top of it.
// It is deterministic and schema-independent: the same (value, type) pair
// canonicalises to the same bytes on every platform, every run.
package canon

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sstone1/concerto/schema"
)

// HashSize is the size, in bytes, of every digest and every salt.
const HashSize = sha256.Size

// ErrTypeMismatch indicates a value could not be canonicalised for its
// declared primitive type.
var ErrTypeMismatch = errors.New("canon: value does not match declared primitive type")

// isoLayout fixes the DateTime wire format to ISO-8601 UTC with
// millisecond precision, per the spec's open-question resolution: the
// teacher's date library's default string form is not reproducible
// across languages, so the layout is pinned here instead.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Canonicalize returns the canonical UTF-8 byte encoding of value as
// declared by typ. Strings, booleans, and numbers are encoded exactly as
// encoding/json would encode them (quoted/escaped strings, true/false,
// the shortest decimal that round-trips); this is not a coincidence, it's
// literally what the spec's "JSON-style encoding" and "shortest
// round-tripping decimal form" describe. DateTime is the one case that
// needs a layout encoding/json doesn't give us, so it's formatted by
// hand.
func Canonicalize(value interface{}, typ schema.PrimitiveType) ([]byte, error) {
	switch typ {
	case schema.String:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: want string, got %T", ErrTypeMismatch, value)
		}
		return json.Marshal(s)

	case schema.Boolean:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: want bool, got %T", ErrTypeMismatch, value)
		}
		return json.Marshal(b)

	case schema.Integer, schema.Long:
		n, ok := toInt64(value)
		if !ok {
			return nil, fmt.Errorf("%w: want integer, got %T", ErrTypeMismatch, value)
		}
		return json.Marshal(n)

	case schema.Double:
		f, ok := toFloat64(value)
		if !ok {
			return nil, fmt.Errorf("%w: want float, got %T", ErrTypeMismatch, value)
		}
		return json.Marshal(f)

	case schema.DateTime:
		t, ok := toTime(value)
		if !ok {
			return nil, fmt.Errorf("%w: want DateTime, got %T", ErrTypeMismatch, value)
		}
		return []byte(`"` + t.UTC().Format(isoLayout) + `"`), nil

	default:
		return nil, fmt.Errorf("%w: unsupported primitive type %v", ErrTypeMismatch, typ)
	}
}

// toInt64 accepts the Go integer kinds a factory would plausibly use, plus
// a whole-valued float64: the latter is what a value looks like after a
// round trip through encoding/json's untyped interface{} decoding (as
// happens when a Disclosure arrives over the wire for verification).
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// toTime accepts a time.Time directly, or a string in either the
// canonical layout or RFC3339, the latter being what a time.Time looks
// like after its default JSON round trip.
func toTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		if t, err := time.Parse(isoLayout, v); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Digest hashes all passed byte slices, in order, with no delimiter
// between them. The passed slices are not mutated.
func Digest(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// LeafHash computes H_leaf(value, salt) = SHA256(canonicalValue || salt).
func LeafHash(canonicalValue, salt []byte) []byte {
	return Digest(canonicalValue, salt)
}

// NodeHash computes H_node over ordered child digests:
// SHA256(d1 || d2 || ... || dn). There is no domain separator and no
// length prefix between children; this matches the wire contract and must
// never change.
func NodeHash(children ...[]byte) []byte {
	return Digest(children...)
}
