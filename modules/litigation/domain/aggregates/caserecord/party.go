package caserecord

import "strings"

type PartyType string

const (
	PartyPetitioner PartyType = "petitioner"
	PartyRespondent PartyType = "respondent"
)

func (t PartyType) Valid() bool {
	return t == PartyPetitioner || t == PartyRespondent
}

// Party is a named participant on one side of a case. Number is the 1-based
// slot from the source document; slots are not compacted when earlier ones
// are empty.
type Party struct {
	partyType PartyType
	number    int
	name      string
	address   string
}

func NewParty(partyType PartyType, number int, name, address string) Party {
	return Party{
		partyType: partyType,
		number:    number,
		name:      strings.TrimSpace(name),
		address:   strings.TrimSpace(address),
	}
}

func (p Party) Type() PartyType { return p.partyType }
func (p Party) Number() int     { return p.number }
func (p Party) Name() string    { return p.name }
func (p Party) Address() string { return p.address }
func (p Party) IsZero() bool    { return p.name == "" }
