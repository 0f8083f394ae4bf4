/*
Package merkle implements the four cooperating traversal engines of the
selective-disclosure Merkle commitment scheme:

Salt assigns a fresh 32-byte random salt to every primitive leaf of a
typed record and stores the salts on the record.

Root produces the 32-byte Merkle root of a typed record from its values
and salts.

Proof produces a path-indexed Disclosure revealing one leaf value, its
salt, and the digests of sibling/ancestor subtrees, without revealing any
other field.

Verify recomputes a root from a Disclosure and compares it against an
expected root, without access to the original record.

Salt, Root, and Proof share one depth-first walk over a schema.Registry's
class declarations, in declaration order; see walk.go. Verify has no record
and follows the same order in its own walk; see verify.go. None of them
holds state across calls.
*/
package merkle
