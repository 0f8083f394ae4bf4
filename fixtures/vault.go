package fixtures

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sstone1/concerto/record"
)

// leafEntry is one primitive leaf of a Party record: its value and the
// salt that was drawn for it.
type leafEntry struct {
	Value interface{} `json:"value"`
	Salt  string      `json:"salt"`
}

// Vault is the demonstration record owner's private store: the Party
// record's values and the salts drawn for them, keyed by dotted path.
// A real deployment would keep this encrypted at rest; the concerto
// CLI keeps it as plain JSON purely to let separate invocations of
// "commit" and "disclose" agree on the same salted record.
type Vault map[string]leafEntry

var leafPaths = []string{
	"fullName",
	"dateOfBirth",
	"creditScore",
	"address.street",
	"address.city",
	"address.postalCode",
}

// ExtractVault reads every primitive leaf's value and salt off a
// salted Party record into a Vault.
func ExtractVault(party *record.Record) (Vault, error) {
	address, ok := party.Get("address")
	if !ok {
		return nil, fmt.Errorf("fixtures: party record missing address")
	}
	addressRec, ok := address.(*record.Record)
	if !ok {
		return nil, fmt.Errorf("fixtures: party.address is not a record")
	}

	v := make(Vault, len(leafPaths))
	for _, path := range leafPaths {
		rec, name := resolve(party, addressRec, path)
		value, ok := rec.Get(name)
		if !ok {
			return nil, fmt.Errorf("fixtures: missing value at %s", path)
		}
		salt, ok := rec.GetSalt(name)
		if !ok {
			return nil, fmt.Errorf("fixtures: missing salt at %s", path)
		}
		v[path] = leafEntry{Value: value, Salt: hex.EncodeToString(salt)}
	}
	return v, nil
}

// Apply rebuilds a Party record from the demonstration schema's
// defaults and overwrites its values and salts with v's.
func Apply(v Vault) (*record.Record, error) {
	party := NewParty()
	address, _ := party.Get("address")
	addressRec := address.(*record.Record)

	for _, path := range leafPaths {
		entry, ok := v[path]
		if !ok {
			return nil, fmt.Errorf("fixtures: vault missing %s", path)
		}
		salt, err := hex.DecodeString(entry.Salt)
		if err != nil {
			return nil, fmt.Errorf("fixtures: malformed salt at %s: %w", path, err)
		}
		rec, name := resolve(party, addressRec, path)
		rec.Set(name, entry.Value)
		rec.SetSalt(name, salt)
	}
	return party, nil
}

func resolve(party, address *record.Record, path string) (rec *record.Record, name string) {
	switch path {
	case "address.street":
		return address, "street"
	case "address.city":
		return address, "city"
	case "address.postalCode":
		return address, "postalCode"
	default:
		return party, path
	}
}

// LoadVault reads a Vault from a JSON file.
func LoadVault(path string) (Vault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v := make(Vault)
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// SaveVault writes v to a JSON file.
func SaveVault(path string, v Vault) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
