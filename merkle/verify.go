package merkle

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/sstone1/concerto/canon"
	"github.com/sstone1/concerto/schema"
)

// Verify recomputes a root from proof and compares it against rootHex.
// It never touches a record: className, path, and proof are all it has.
//
// A structurally invalid proof (bad hex, wrong-sized salt or root, a
// hashes sequence with too few entries) returns (false, err) with err
// wrapping ErrMalformedProof. A hashes sequence with too many entries,
// an array/enum/relationship encountered while walking the schema, or a
// cryptographic mismatch returns (false, nil): those are verification
// failures, not exceptions.
func Verify(reg schema.Registry, className string, path []string, rootHex string, proof *Disclosure) (bool, error) {
	if len(path) == 0 || proof == nil {
		return false, malformed("empty path or nil proof")
	}

	expectedRoot, err := decodeFixedHex(rootHex)
	if err != nil {
		return false, malformed("root: %v", err)
	}
	salt, err := decodeFixedHex(proof.Salt)
	if err != nil {
		return false, malformed("salt: %v", err)
	}

	class, ok := reg.Class(className)
	if !ok {
		return false, malformed("unknown class %q", className)
	}

	idx := 0
	digest, err := verifyClass(reg, class, nil, path, proof, salt, &idx)
	if err != nil {
		if errors.Is(err, ErrNotImplemented) {
			return false, nil
		}
		return false, err
	}
	if digest == nil {
		// path never matched a primitive leaf.
		return false, nil
	}
	if idx != len(proof.Hashes) {
		// surplus entries in the hashes sequence: proof doesn't describe
		// this exact path/tree shape.
		return false, nil
	}

	return bytes.Equal(digest, expectedRoot), nil
}

// verifyClass mirrors walker.walkClass but without a record: it consumes
// proof.Hashes positionally (leaf-first) instead of reading values, and
// returns the recomputed digest of whichever child matched path, or nil
// if the path doesn't pass through this class node at all.
func verifyClass(reg schema.Registry, class *schema.Class, path, target []string, proof *Disclosure, salt []byte, idx *int) ([]byte, error) {
	var matched []byte

	for _, prop := range class.Properties {
		childPath := append(append([]string(nil), path...), prop.Name)

		switch prop.Classifier {
		case schema.Primitive:
			if pathsEqual(childPath, target) {
				cv, err := canon.Canonicalize(proof.Value, prop.PrimitiveType)
				if err == nil {
					matched = canon.LeafHash(cv, salt)
				}
				// A disclosed value that doesn't fit this path's
				// declared type is a cryptographic mismatch, not a
				// malformed proof: leave matched nil and let it
				// propagate as (false, nil).
			}
			// A non-matching primitive contributes nothing here: its
			// digest is read from the enclosing node's before/after
			// entry, never recomputed from scratch.

		case schema.NestedClass:
			nestedClass, ok := reg.Class(prop.ClassName)
			if !ok {
				return nil, pathError(fmt.Errorf("%w: unknown nested class %q", ErrMalformedProof, prop.ClassName), childPath)
			}
			d, err := verifyClass(reg, nestedClass, childPath, target, proof, salt, idx)
			if err != nil {
				return nil, err
			}
			if d != nil {
				matched = d
			}

		default: // Array, Enum, Relationship
			return nil, pathError(ErrNotImplemented, childPath)
		}
	}

	if matched == nil {
		return nil, nil
	}

	if *idx >= len(proof.Hashes) {
		return nil, pathError(fmt.Errorf("%w: missing sibling digests", ErrMalformedProof), path)
	}
	pair := proof.Hashes[*idx]
	*idx++

	before, err := decodeHexList(pair.Before)
	if err != nil {
		return nil, pathError(fmt.Errorf("%w: before: %v", ErrMalformedProof, err), path)
	}
	after, err := decodeHexList(pair.After)
	if err != nil {
		return nil, pathError(fmt.Errorf("%w: after: %v", ErrMalformedProof, err), path)
	}

	parts := make([][]byte, 0, len(before)+1+len(after))
	parts = append(parts, before...)
	parts = append(parts, matched)
	parts = append(parts, after...)
	return canon.NodeHash(parts...), nil
}

func decodeFixedHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != canon.HashSize {
		return nil, fmt.Errorf("expected %d bytes, got %d", canon.HashSize, len(b))
	}
	return b, nil
}

func decodeHexList(hexes []string) ([][]byte, error) {
	out := make([][]byte, len(hexes))
	for i, h := range hexes {
		b, err := decodeFixedHex(h)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedProof, fmt.Sprintf(format, args...))
}
