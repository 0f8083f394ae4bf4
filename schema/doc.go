// Package schema is one of two contracts shared by the Merkle engines
// (canon, merkle): the schema-introspection side. See package record for
// the record side.
package schema
