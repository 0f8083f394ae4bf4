package merkle

import (
	"encoding/hex"

	"github.com/sstone1/concerto/canon"
	"github.com/sstone1/concerto/record"
	"github.com/sstone1/concerto/schema"
)

// Root computes the 32-byte Merkle root of rec: the node hash of its
// class, where every primitive leaf contributes H_leaf(value, salt) and
// every nested class contributes the node hash of its own subtree. Root
// is pure: it reads rec and its salts but never mutates either, and
// calling it twice on the same record yields identical bytes.
func Root(reg schema.Registry, rec *record.Record) ([]byte, error) {
	class, err := classOf(reg, rec)
	if err != nil {
		return nil, err
	}

	w := &walker[[]byte]{
		registry:    reg,
		onPrimitive: leafDigest,
		onClass: func(path []string, class *schema.Class, children [][]byte) ([]byte, error) {
			return canon.NodeHash(children...), nil
		},
	}
	return w.walkClass(class, rec, nil)
}

// RootHex is Root, hex-encoded as the public API boundary (§6) demands:
// 64 lowercase hex characters.
func RootHex(reg schema.Registry, rec *record.Record) (string, error) {
	digest, err := Root(reg, rec)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest), nil
}

// leafDigest computes H_leaf for the primitive property named by prop,
// reading its value and salt from rec. It is Root's leaf action; Proof
// computes the same digest for every non-disclosed leaf from leafInputs.
func leafDigest(path []string, prop schema.Property, rec *record.Record) ([]byte, error) {
	_, cv, salt, err := leafInputs(path, prop, rec)
	if err != nil {
		return nil, err
	}
	return canon.LeafHash(cv, salt), nil
}

// leafInputs resolves and validates the value, its canonical encoding,
// and the salt of a primitive property, in the shape every engine that
// reads a record's leaves needs.
func leafInputs(path []string, prop schema.Property, rec *record.Record) (value interface{}, canonicalValue, salt []byte, err error) {
	value, ok := rec.Get(prop.Name)
	if !ok {
		return nil, nil, nil, pathError(ErrTypeMismatch, path)
	}
	salt, ok = rec.GetSalt(prop.Name)
	if !ok || len(salt) != canon.HashSize {
		return nil, nil, nil, pathError(ErrSaltMissing, path)
	}
	canonicalValue, err = canon.Canonicalize(value, prop.PrimitiveType)
	if err != nil {
		return nil, nil, nil, pathError(err, path)
	}
	return value, canonicalValue, salt, nil
}
