package caserecord

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/courtdesk/courtdesk/pkg/constants"
	"github.com/courtdesk/courtdesk/pkg/serrors"
)

// AddPartyDTO attaches one more participant to a case; the slot number is
// assigned by storage as the next free one on that side.
type AddPartyDTO struct {
	PartyType string `json:"party_type" validate:"required"`
	Name      string `json:"name" validate:"required,max=200"`
	Address   string `json:"address"`
}

func (d *AddPartyDTO) Normalize() {
	d.PartyType = strings.ToLower(strings.TrimSpace(d.PartyType))
	d.Name = strings.TrimSpace(d.Name)
	d.Address = strings.TrimSpace(d.Address)
}

func (d *AddPartyDTO) Ok(_ context.Context) (serrors.ValidationErrors, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	out := serrors.ValidationErrors{}
	if errs != nil {
		out = serrors.FromValidator(errs.(validator.ValidationErrors), fieldLabel)
	}

	if d.PartyType != "" && !PartyType(d.PartyType).Valid() {
		out["PartyType"] = "Party Type must be petitioner or respondent"
	}
	return out, !out.Has()
}
