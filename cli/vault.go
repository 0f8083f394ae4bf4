package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sstone1/concerto/fixtures"
	"github.com/sstone1/concerto/merkle"
	"github.com/sstone1/concerto/record"
	"github.com/sstone1/concerto/schema"
)

func vaultPath(vaultDir, recordID string) string {
	return filepath.Join(vaultDir, recordID+".vault.json")
}

// loadOrSaltParty returns the Party record for recordID, salting a
// fresh one and persisting its vault on first use.
func loadOrSaltParty(reg schema.Registry, vaultDir, recordID string) (*record.Record, error) {
	path := vaultPath(vaultDir, recordID)

	if _, err := os.Stat(path); err == nil {
		v, err := fixtures.LoadVault(path)
		if err != nil {
			return nil, fmt.Errorf("load vault: %w", err)
		}
		party, err := fixtures.Apply(v)
		if err != nil {
			return nil, fmt.Errorf("apply vault: %w", err)
		}
		return party, nil
	}

	party := fixtures.NewParty()
	if err := merkle.Salt(reg, party); err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}
	v, err := fixtures.ExtractVault(party)
	if err != nil {
		return nil, fmt.Errorf("extract vault: %w", err)
	}
	if err := fixtures.SaveVault(path, v); err != nil {
		return nil, fmt.Errorf("save vault: %w", err)
	}
	return party, nil
}
