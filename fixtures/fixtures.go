// Package fixtures provides a small demonstration schema and record
// factory used by the concerto command-line tool when no external
// schema/record source is wired in.
package fixtures

import (
	"github.com/sstone1/concerto/record"
	"github.com/sstone1/concerto/schema"
)

// PartyClassName is the class name of the demonstration record
// returned by NewParty.
const PartyClassName = "org.concerto.demo.Party"

// addressClassName is the nested class referenced by PartyClassName.
const addressClassName = "org.concerto.demo.Address"

// Registry returns a schema.Registry describing a small "Party"
// record: a name, a date of birth, a credit score, and a nested mailing
// address.
func Registry() schema.Registry {
	reg := schema.NewMapRegistry()
	reg.Register(&schema.Class{
		Name: addressClassName,
		Properties: []schema.Property{
			{Name: "street", Classifier: schema.Primitive, PrimitiveType: schema.String},
			{Name: "city", Classifier: schema.Primitive, PrimitiveType: schema.String},
			{Name: "postalCode", Classifier: schema.Primitive, PrimitiveType: schema.String},
		},
	})
	reg.Register(&schema.Class{
		Name: PartyClassName,
		Properties: []schema.Property{
			{Name: "fullName", Classifier: schema.Primitive, PrimitiveType: schema.String},
			{Name: "dateOfBirth", Classifier: schema.Primitive, PrimitiveType: schema.DateTime},
			{Name: "creditScore", Classifier: schema.Primitive, PrimitiveType: schema.Integer},
			{Name: "address", Classifier: schema.NestedClass, ClassName: addressClassName},
		},
	})
	return reg
}

// NewParty returns a demonstration Party record with its values
// populated, ready to be passed to merkle.Salt.
func NewParty() *record.Record {
	address := record.New(addressClassName)
	address.Set("street", "1 Market Street")
	address.Set("city", "San Francisco")
	address.Set("postalCode", "94105")

	party := record.New(PartyClassName)
	party.Set("fullName", "Alice Smith")
	party.Set("dateOfBirth", "1990-05-14T00:00:00.000Z")
	party.Set("creditScore", int64(742))
	party.Set("address", address)
	return party
}
