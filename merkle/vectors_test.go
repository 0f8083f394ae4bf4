package merkle_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/sstone1/concerto/merkle"
	"github.com/sstone1/concerto/record"
	"github.com/sstone1/concerto/schema"
)

// The scenarios below reproduce §8 of the spec (S1-S6) byte-exactly,
// recomputing every expected digest independently with crypto/sha256 and
// encoding/json-shaped literals rather than by calling back into the
// package under test.

func repeat(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func sha256Concat(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

func thingRegistry() *schema.MapRegistry {
	reg := schema.NewMapRegistry()
	reg.Register(&schema.Class{
		Name: "org.test.Thing",
		Properties: []schema.Property{
			{Name: "name", Classifier: schema.Primitive, PrimitiveType: schema.String},
		},
	})
	return reg
}

// S1 — single-primitive class.
func TestScenarioS1(t *testing.T) {
	reg := thingRegistry()
	rec := record.New("org.test.Thing")
	rec.Set("name", "alice")
	zero := make([]byte, 32)
	rec.SetSalt("name", zero)

	leaf := sha256Concat([]byte(`"alice"`), zero)
	wantRoot := sha256Concat(leaf)

	root, err := merkle.Root(reg, rec)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(root, wantRoot) {
		t.Errorf("root = %x, want %x", root, wantRoot)
	}

	proof, err := merkle.Proof(reg, rec, []string{"name"})
	if err != nil {
		t.Fatal(err)
	}
	if proof.Value != "alice" {
		t.Errorf("value = %v, want alice", proof.Value)
	}
	if proof.Salt != hex.EncodeToString(zero) {
		t.Errorf("salt = %s, want %s", proof.Salt, hex.EncodeToString(zero))
	}
	if len(proof.Hashes) != 1 || len(proof.Hashes[0].Before) != 0 || len(proof.Hashes[0].After) != 0 {
		t.Fatalf("hashes = %+v, want one empty pair", proof.Hashes)
	}

	rootHex := hex.EncodeToString(wantRoot)
	ok, err := merkle.Verify(reg, "org.test.Thing", []string{"name"}, rootHex, proof)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected verify to succeed")
	}

	tampered := *proof
	tampered.Value = "bob"
	ok, err = merkle.Verify(reg, "org.test.Thing", []string{"name"}, rootHex, &tampered)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected verify to fail after tampering with value")
	}
}

func twoFieldRegistry() *schema.MapRegistry {
	reg := schema.NewMapRegistry()
	reg.Register(&schema.Class{
		Name: "org.test.Pair",
		Properties: []schema.Property{
			{Name: "a", Classifier: schema.Primitive, PrimitiveType: schema.String},
			{Name: "b", Classifier: schema.Primitive, PrimitiveType: schema.Boolean},
		},
	})
	return reg
}

// S2 — two-primitive class, disclose first.
func TestScenarioS2(t *testing.T) {
	reg := twoFieldRegistry()
	rec := record.New("org.test.Pair")
	rec.Set("a", "x")
	rec.Set("b", true)
	sa, sb := repeat(0xAA), repeat(0xBB)
	rec.SetSalt("a", sa)
	rec.SetSalt("b", sb)

	leafA := sha256Concat([]byte(`"x"`), sa)
	leafB := sha256Concat([]byte(`true`), sb)
	wantRoot := sha256Concat(leafA, leafB)

	root, err := merkle.Root(reg, rec)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(root, wantRoot) {
		t.Fatalf("root = %x, want %x", root, wantRoot)
	}

	proof, err := merkle.Proof(reg, rec, []string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	if proof.Value != "x" || proof.Salt != hex.EncodeToString(sa) {
		t.Errorf("unexpected disclosure %+v", proof)
	}
	if len(proof.Hashes) != 1 || len(proof.Hashes[0].Before) != 0 || len(proof.Hashes[0].After) != 1 {
		t.Fatalf("hashes = %+v, want [[], [leafB]]", proof.Hashes)
	}
	if proof.Hashes[0].After[0] != hex.EncodeToString(leafB) {
		t.Errorf("after[0] = %s, want %s", proof.Hashes[0].After[0], hex.EncodeToString(leafB))
	}

	ok, err := merkle.Verify(reg, "org.test.Pair", []string{"a"}, hex.EncodeToString(wantRoot), proof)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected verify to succeed")
	}
}

// S3 — two-primitive class, disclose second.
func TestScenarioS3(t *testing.T) {
	reg := twoFieldRegistry()
	rec := record.New("org.test.Pair")
	rec.Set("a", "x")
	rec.Set("b", true)
	sa, sb := repeat(0xAA), repeat(0xBB)
	rec.SetSalt("a", sa)
	rec.SetSalt("b", sb)

	leafA := sha256Concat([]byte(`"x"`), sa)
	wantRoot := sha256Concat(leafA, sha256Concat([]byte(`true`), sb))

	proof, err := merkle.Proof(reg, rec, []string{"b"})
	if err != nil {
		t.Fatal(err)
	}
	if proof.Value != true || proof.Salt != hex.EncodeToString(sb) {
		t.Errorf("unexpected disclosure %+v", proof)
	}
	if len(proof.Hashes) != 1 || len(proof.Hashes[0].After) != 0 || len(proof.Hashes[0].Before) != 1 {
		t.Fatalf("hashes = %+v, want [[leafA], []]", proof.Hashes)
	}
	if proof.Hashes[0].Before[0] != hex.EncodeToString(leafA) {
		t.Errorf("before[0] = %s, want %s", proof.Hashes[0].Before[0], hex.EncodeToString(leafA))
	}

	ok, err := merkle.Verify(reg, "org.test.Pair", []string{"b"}, hex.EncodeToString(wantRoot), proof)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected verify to succeed")
	}
}

func nestedRegistry() *schema.MapRegistry {
	reg := schema.NewMapRegistry()
	reg.Register(&schema.Class{
		Name: "org.test.Inner",
		Properties: []schema.Property{
			{Name: "k", Classifier: schema.Primitive, PrimitiveType: schema.String},
		},
	})
	reg.Register(&schema.Class{
		Name: "org.test.Outer",
		Properties: []schema.Property{
			{Name: "inner", Classifier: schema.NestedClass, ClassName: "org.test.Inner"},
		},
	})
	return reg
}

// S4 — nested class.
func TestScenarioS4(t *testing.T) {
	reg := nestedRegistry()
	inner := record.New("org.test.Inner")
	inner.Set("k", "v")
	sk := repeat(0xCC)
	inner.SetSalt("k", sk)

	outer := record.New("org.test.Outer")
	outer.Set("inner", inner)

	leafK := sha256Concat([]byte(`"v"`), sk)
	innerNode := sha256Concat(leafK)
	wantRoot := sha256Concat(innerNode)

	root, err := merkle.Root(reg, outer)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(root, wantRoot) {
		t.Fatalf("root = %x, want %x", root, wantRoot)
	}

	proof, err := merkle.Proof(reg, outer, []string{"inner", "k"})
	if err != nil {
		t.Fatal(err)
	}
	if proof.Value != "v" || proof.Salt != hex.EncodeToString(sk) {
		t.Errorf("unexpected disclosure %+v", proof)
	}
	if len(proof.Hashes) != 2 {
		t.Fatalf("hashes = %+v, want 2 entries", proof.Hashes)
	}
	for i, pair := range proof.Hashes {
		if len(pair.Before) != 0 || len(pair.After) != 0 {
			t.Errorf("hashes[%d] = %+v, want empty pair", i, pair)
		}
	}

	ok, err := merkle.Verify(reg, "org.test.Outer", []string{"inner", "k"}, hex.EncodeToString(wantRoot), proof)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected verify to succeed")
	}
}

func tripleRegistry() *schema.MapRegistry {
	reg := schema.NewMapRegistry()
	reg.Register(&schema.Class{
		Name: "org.test.Triple",
		Properties: []schema.Property{
			{Name: "a", Classifier: schema.Primitive, PrimitiveType: schema.Integer},
			{Name: "b", Classifier: schema.Primitive, PrimitiveType: schema.Integer},
			{Name: "c", Classifier: schema.Primitive, PrimitiveType: schema.Integer},
		},
	})
	return reg
}

// S5 — sibling-order split.
func TestScenarioS5(t *testing.T) {
	reg := tripleRegistry()
	rec := record.New("org.test.Triple")
	rec.Set("a", int64(1))
	rec.Set("b", int64(2))
	rec.Set("c", int64(3))
	sa, sb, sc := repeat(0x01), repeat(0x02), repeat(0x03)
	rec.SetSalt("a", sa)
	rec.SetSalt("b", sb)
	rec.SetSalt("c", sc)

	leafA := sha256Concat([]byte(`1`), sa)
	leafB := sha256Concat([]byte(`2`), sb)
	leafC := sha256Concat([]byte(`3`), sc)
	wantRoot := sha256Concat(leafA, leafB, leafC)

	proof, err := merkle.Proof(reg, rec, []string{"b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(proof.Hashes) != 1 || len(proof.Hashes[0].Before) != 1 || len(proof.Hashes[0].After) != 1 {
		t.Fatalf("hashes = %+v, want [[leafA],[leafC]]", proof.Hashes)
	}
	if proof.Hashes[0].Before[0] != hex.EncodeToString(leafA) || proof.Hashes[0].After[0] != hex.EncodeToString(leafC) {
		t.Fatalf("hashes = %+v, want before=[leafA] after=[leafC]", proof.Hashes)
	}

	rootHex := hex.EncodeToString(wantRoot)
	ok, err := merkle.Verify(reg, "org.test.Triple", []string{"b"}, rootHex, proof)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected verify to succeed")
	}

	swapped := *proof
	swapped.Hashes = []merkle.HashPair{{Before: proof.Hashes[0].After, After: proof.Hashes[0].Before}}
	ok, err = merkle.Verify(reg, "org.test.Triple", []string{"b"}, rootHex, &swapped)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected verify to fail after swapping before/after")
	}
}

// S6 — unsupported feature.
func TestScenarioS6(t *testing.T) {
	reg := schema.NewMapRegistry()
	reg.Register(&schema.Class{
		Name: "org.test.Tagged",
		Properties: []schema.Property{
			{Name: "tags", Classifier: schema.Array},
		},
	})
	rec := record.New("org.test.Tagged")

	err := merkle.Salt(reg, rec)
	if err == nil {
		t.Fatal("expected Salt to reject an array field")
	}
	var pe *merkle.PathError
	if !errors.As(err, &pe) || len(pe.Path) == 0 || pe.Path[0] != "tags" {
		t.Errorf("Salt error = %v, want a PathError naming tags", err)
	}
	if !errors.Is(err, merkle.ErrNotImplemented) {
		t.Errorf("Salt error = %v, want ErrNotImplemented", err)
	}

	if _, err := merkle.Root(reg, rec); err == nil {
		t.Error("expected Root to reject an array field")
	}

	if _, err := merkle.Proof(reg, rec, []string{"tags"}); err == nil {
		t.Error("expected Proof to reject an array field")
	}
}
