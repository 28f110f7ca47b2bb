package hearing

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/courtdesk/courtdesk/pkg/constants"
	"github.com/courtdesk/courtdesk/pkg/serrors"
)

type AddDTO struct {
	Date  string `json:"hearing_date" validate:"required,datetime=2006-01-02"`
	Brief string `json:"brief"`
}

func (d *AddDTO) Normalize() {
	d.Date = strings.TrimSpace(d.Date)
	d.Brief = strings.TrimSpace(d.Brief)
}

func (d *AddDTO) Ok(_ context.Context) (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	out := serrors.FromValidator(errs.(validator.ValidationErrors), func(field string) string {
		if field == "Date" {
			return "Hearing Date"
		}
		return ""
	})
	return out, false
}

func (d *AddDTO) ToEntity(caseID uuid.UUID, actor int64) (Hearing, error) {
	date, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return Hearing{}, err
	}
	return New(caseID, date, d.Brief, actor), nil
}
