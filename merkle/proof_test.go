package merkle_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/sstone1/concerto/merkle"
	"github.com/sstone1/concerto/record"
	"github.com/sstone1/concerto/schema"
)

func fullNestedRecord(t *testing.T) (*record.Record, *record.Record) {
	t.Helper()
	inner := record.New("org.test.Inner")
	inner.Set("k", "v")
	outer := record.New("org.test.Outer")
	outer.Set("inner", inner)
	return outer, inner
}

// TestRoundTrip establishes testable property 3: for every record and
// every primitive-leaf path, Verify(Root(record), Proof(record, path))
// is true.
func TestRoundTrip(t *testing.T) {
	reg := nestedRegistry()
	outer, _ := fullNestedRecord(t)

	if err := merkle.Salt(reg, outer); err != nil {
		t.Fatal(err)
	}
	rootHex, err := merkle.RootHex(reg, outer)
	if err != nil {
		t.Fatal(err)
	}

	proof, err := merkle.Proof(reg, outer, []string{"inner", "k"})
	if err != nil {
		t.Fatal(err)
	}

	ok, err := merkle.Verify(reg, "org.test.Outer", []string{"inner", "k"}, rootHex, proof)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected round trip to verify")
	}
}

func setupPairProof(t *testing.T) (reg schema.Registry, root string, proof *merkle.Disclosure) {
	t.Helper()
	reg2 := twoFieldRegistry()
	rec := record.New("org.test.Pair")
	rec.Set("a", "x")
	rec.Set("b", true)
	if err := merkle.Salt(reg2, rec); err != nil {
		t.Fatal(err)
	}
	rootHex, err := merkle.RootHex(reg2, rec)
	if err != nil {
		t.Fatal(err)
	}
	p, err := merkle.Proof(reg2, rec, []string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	return reg2, rootHex, p
}

func TestSoundnessValueTamper(t *testing.T) {
	reg, root, proof := setupPairProof(t)
	tampered := *proof
	tampered.Value = "y"
	ok, err := merkle.Verify(reg, "org.test.Pair", []string{"a"}, root, &tampered)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected verify to fail after tampering with value")
	}
}

func TestSoundnessSaltTamper(t *testing.T) {
	reg, root, proof := setupPairProof(t)
	tampered := *proof
	saltBytes, err := hex.DecodeString(proof.Salt)
	if err != nil {
		t.Fatal(err)
	}
	saltBytes[0] ^= 0xFF
	tampered.Salt = hex.EncodeToString(saltBytes)
	ok, err := merkle.Verify(reg, "org.test.Pair", []string{"a"}, root, &tampered)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected verify to fail after tampering with salt")
	}
}

func TestSoundnessSiblingTamper(t *testing.T) {
	reg, root, proof := setupPairProof(t)
	tampered := *proof
	after := append([]string(nil), proof.Hashes[0].After...)
	digest, err := hex.DecodeString(after[0])
	if err != nil {
		t.Fatal(err)
	}
	digest[0] ^= 0xFF
	after[0] = hex.EncodeToString(digest)
	tampered.Hashes = []merkle.HashPair{{Before: proof.Hashes[0].Before, After: after}}

	ok, err := merkle.Verify(reg, "org.test.Pair", []string{"a"}, root, &tampered)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected verify to fail after tampering with a sibling digest")
	}
}

// TestPathConfusion establishes testable property 7: a proof for path A
// verified against path B != A returns false.
func TestPathConfusion(t *testing.T) {
	reg, root, proof := setupPairProof(t)
	ok, err := merkle.Verify(reg, "org.test.Pair", []string{"b"}, root, proof)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected verify to fail for the wrong path")
	}
}

func TestProofRejectsEmptyPath(t *testing.T) {
	reg := thingRegistry()
	rec := record.New("org.test.Thing")
	rec.Set("name", "alice")
	rec.SetSalt("name", make([]byte, 32))

	_, err := merkle.Proof(reg, rec, nil)
	if !errors.Is(err, merkle.ErrPathInvalid) {
		t.Errorf("err = %v, want ErrPathInvalid", err)
	}
}

func TestProofRejectsPathStoppingAtNestedClass(t *testing.T) {
	reg := nestedRegistry()
	outer, _ := fullNestedRecord(t)
	if err := merkle.Salt(reg, outer); err != nil {
		t.Fatal(err)
	}

	_, err := merkle.Proof(reg, outer, []string{"inner"})
	if !errors.Is(err, merkle.ErrPathInvalid) {
		t.Errorf("err = %v, want ErrPathInvalid", err)
	}
}
