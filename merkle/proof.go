package merkle

import (
	"encoding/hex"

	"github.com/sstone1/concerto/canon"
	"github.com/sstone1/concerto/record"
	"github.com/sstone1/concerto/schema"
)

// HashPair is one level of a Disclosure's hashes sequence: the sibling
// digests, hex-encoded, that appear before and after the disclosed
// subtree at that level, in declaration order.
type HashPair struct {
	Before []string `json:"before"`
	After  []string `json:"after"`
}

// Disclosure is a proof that a particular leaf value occurs at a
// particular path in a record, without revealing any other field. Hashes
// is ordered leaf-first-to-root: Hashes[0] describes the leaf's immediate
// siblings, Hashes[len(Hashes)-1] the top-level siblings.
type Disclosure struct {
	Value  interface{} `json:"value"`
	Salt   string      `json:"salt"`
	Hashes []HashPair  `json:"hashes"`
}

// rawKind tags one entry of the raw (unflattened) proof structure the
// walker produces for a class node.
type rawKind int

const (
	rawDigest rawKind = iota
	rawDisclose
	rawNested
)

// rawEntry is at most one of: a sibling digest, the sentinel disclosure of
// the requested leaf, or the entire child list of a nested class that
// contains the disclosure somewhere inside it.
type rawEntry struct {
	kind   rawKind
	digest []byte

	value interface{}
	salt  []byte

	nested []rawEntry
}

// Proof builds a Disclosure for the primitive leaf at path in rec. Salts
// must already be populated (call Salt first). An empty path, or one that
// does not resolve to a primitive leaf, is ErrPathInvalid; an array, enum
// or relationship property anywhere in the walked classes is
// ErrNotImplemented.
func Proof(reg schema.Registry, rec *record.Record, path []string) (*Disclosure, error) {
	if len(path) == 0 {
		return nil, pathError(ErrPathInvalid, nil)
	}

	class, err := classOf(reg, rec)
	if err != nil {
		return nil, err
	}

	w := &walker[rawEntry]{
		registry: reg,
		onPrimitive: func(childPath []string, prop schema.Property, r *record.Record) (rawEntry, error) {
			value, cv, salt, err := leafInputs(childPath, prop, r)
			if err != nil {
				return rawEntry{}, err
			}
			if pathsEqual(childPath, path) {
				return rawEntry{kind: rawDisclose, value: value, salt: salt}, nil
			}
			return rawEntry{kind: rawDigest, digest: canon.LeafHash(cv, salt)}, nil
		},
		onClass: func(childPath []string, class *schema.Class, children []rawEntry) (rawEntry, error) {
			return reduceClassEntries(children), nil
		},
	}

	top, err := w.walkClass(class, rec, nil)
	if err != nil {
		return nil, err
	}
	if top.kind != rawNested {
		// The requested path never matched a primitive leaf anywhere in
		// the walk: every property reduced to a plain digest.
		return nil, pathError(ErrPathInvalid, path)
	}

	value, salt, levels, err := flatten(top.nested)
	if err != nil {
		return nil, err
	}

	hashes := make([]HashPair, len(levels))
	for i, lvl := range levels {
		hashes[i] = HashPair{Before: hexList(lvl.before), After: hexList(lvl.after)}
	}

	return &Disclosure{
		Value:  value,
		Salt:   hex.EncodeToString(salt),
		Hashes: hashes,
	}, nil
}

// reduceClassEntries is the class-node action: if exactly one child
// carries the disclosure (directly, or nested further down), wrap the
// whole child list as a rawNested entry so the parent level can treat it
// as a single non-digest entry. Otherwise every child is a plain digest
// and the class node reduces to its own node hash, exactly as Root would
// compute it.
func reduceClassEntries(children []rawEntry) rawEntry {
	for _, c := range children {
		if c.kind != rawDigest {
			return rawEntry{kind: rawNested, nested: children}
		}
	}
	digests := make([][]byte, len(children))
	for i, c := range children {
		digests[i] = c.digest
	}
	return rawEntry{kind: rawDigest, digest: canon.NodeHash(digests...)}
}

// levelSplit is one level's (before, after) digest lists, still as raw
// bytes; hexList encodes them at the public boundary.
type levelSplit struct {
	before, after [][]byte
}

// flatten splits level at its single non-digest entry and descends into
// it, building the hashes sequence leaf-first. level is always the
// ordered child list of some class node along the disclosure path.
func flatten(level []rawEntry) (value interface{}, salt []byte, levels []levelSplit, err error) {
	idx := -1
	for i, e := range level {
		if e.kind != rawDigest {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil, nil, pathError(ErrPathInvalid, nil)
	}

	before := digestsOf(level[:idx])
	after := digestsOf(level[idx+1:])
	thisLevel := levelSplit{before: before, after: after}

	switch level[idx].kind {
	case rawDisclose:
		return level[idx].value, level[idx].salt, []levelSplit{thisLevel}, nil
	case rawNested:
		innerValue, innerSalt, innerLevels, err := flatten(level[idx].nested)
		if err != nil {
			return nil, nil, nil, err
		}
		return innerValue, innerSalt, append(innerLevels, thisLevel), nil
	default:
		return nil, nil, nil, pathError(ErrPathInvalid, nil)
	}
}

func digestsOf(entries []rawEntry) [][]byte {
	out := make([][]byte, len(entries))
	for i, e := range entries {
		out[i] = e.digest
	}
	return out
}

func hexList(digests [][]byte) []string {
	out := make([]string, len(digests))
	for i, d := range digests {
		out[i] = hex.EncodeToString(d)
	}
	return out
}
