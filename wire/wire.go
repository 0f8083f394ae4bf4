// Package wire defines the JSON encoding used to transport a
// disclosure proof between the party producing it and the party
// verifying it.
package wire

import (
	"encoding/json"

	"github.com/sstone1/concerto/merkle"
)

// Envelope bundles a Disclosure with everything a remote verifier
// needs besides the root it already trusts: the class the record
// belongs to and the path the disclosure discloses.
type Envelope struct {
	ClassName string             `json:"className"`
	Path      []string           `json:"path"`
	Proof     *merkle.Disclosure `json:"proof"`
}

// MarshalEnvelope encodes an Envelope as JSON.
func MarshalEnvelope(env *Envelope) ([]byte, error) {
	return json.Marshal(env)
}

// UnmarshalEnvelope decodes an Envelope previously produced by
// MarshalEnvelope.
func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	env := new(Envelope)
	if err := json.Unmarshal(data, env); err != nil {
		return nil, err
	}
	return env, nil
}
