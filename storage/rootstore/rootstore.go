// Package rootstore persists the Merkle root committed for a record
// under its record ID, so a verifier can later look up "what root did
// we commit to for this record" without needing the original record.
package rootstore

import (
	"errors"

	"github.com/sstone1/concerto/storage/kv"
)

// ErrNotFound is returned when no commitment has been stored for a
// record ID.
var ErrNotFound = errors.New("rootstore: no commitment for record")

// recordIdentifier prefixes every key so the key space can be shared
// with other data the caller stores in the same db.
const recordIdentifier = 'R'

// Store records the Merkle root committed for each record ID.
type Store struct {
	db kv.DB
}

// New wraps an existing key-value database as a Store.
func New(db kv.DB) *Store {
	return &Store{db: db}
}

// Put stores root as the commitment for recordID, overwriting any
// previous commitment.
func (s *Store) Put(recordID string, root []byte) error {
	wb := s.db.NewBatch()
	wb.Put(recordKey(recordID), root)
	return s.db.Write(wb)
}

// Get returns the root most recently committed for recordID. It
// returns ErrNotFound if no commitment has been stored.
func (s *Store) Get(recordID string) ([]byte, error) {
	root, err := s.db.Get(recordKey(recordID))
	if err != nil {
		if err == s.db.ErrNotFound() {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return root, nil
}

// Delete removes any commitment stored for recordID.
func (s *Store) Delete(recordID string) error {
	return s.db.Delete(recordKey(recordID))
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func recordKey(recordID string) []byte {
	key := make([]byte, 0, 1+len(recordID))
	key = append(key, recordIdentifier)
	key = append(key, []byte(recordID)...)
	return key
}
