package caserecord

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/courtdesk/courtdesk/pkg/constants"
	"github.com/courtdesk/courtdesk/pkg/serrors"
)

// CreateDTO carries the manual "new case" form. Dates are ISO strings;
// parties and hearings are attached through their own endpoints.
type CreateDTO struct {
	Forum               string `json:"forum" validate:"required"`
	CaseType            string `json:"case_type" validate:"max=100"`
	CaseNo              string `json:"case_no" validate:"max=50"`
	ConnectedCaseNos    string `json:"connected_case_nos"`
	IsAppeal            bool   `json:"is_appeal"`
	LowerCourt          string `json:"lower_court" validate:"max=100"`
	LowerCourtCaseNo    string `json:"lower_court_case_no" validate:"max=50"`
	LowerCourtOrderDate string `json:"lower_court_order_date" validate:"omitempty,datetime=2006-01-02"`
	CounselName         string `json:"counsel_name" validate:"max=100"`
	CounselContact      string `json:"counsel_contact" validate:"max=20"`
	ASGEngaged          bool   `json:"asg_engaged"`
	BriefFacts          string `json:"brief_facts"`
	LastHearingDate     string `json:"last_hearing_date" validate:"omitempty,datetime=2006-01-02"`
	NextHearingDate     string `json:"next_hearing_date" validate:"omitempty,datetime=2006-01-02"`
	AffidavitStatus     string `json:"affidavit_status"`
	CaseStatus          string `json:"case_status"`
}

func (d *CreateDTO) Normalize() {
	d.Forum = strings.TrimSpace(d.Forum)
	d.CaseType = strings.TrimSpace(d.CaseType)
	d.CaseNo = strings.TrimSpace(d.CaseNo)
	d.ConnectedCaseNos = strings.TrimSpace(d.ConnectedCaseNos)
	d.LowerCourt = strings.TrimSpace(d.LowerCourt)
	d.LowerCourtCaseNo = strings.TrimSpace(d.LowerCourtCaseNo)
	d.CounselName = strings.TrimSpace(d.CounselName)
	d.CounselContact = strings.TrimSpace(d.CounselContact)
	d.BriefFacts = strings.TrimSpace(d.BriefFacts)
	d.AffidavitStatus = strings.TrimSpace(d.AffidavitStatus)
	d.CaseStatus = strings.TrimSpace(d.CaseStatus)
}

func (d *CreateDTO) Ok(_ context.Context) (serrors.ValidationErrors, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	out := serrors.ValidationErrors{}
	if errs != nil {
		out = serrors.FromValidator(errs.(validator.ValidationErrors), fieldLabel)
	}

	if d.Forum != "" && !Forum(d.Forum).Valid() {
		out["Forum"] = "Forum must be one of: CAT, HC, SC, Other Tribunals"
	}
	if d.CaseStatus != "" && !Status(d.CaseStatus).Valid() {
		out["CaseStatus"] = "Case Status is not a recognized value"
	}
	if d.AffidavitStatus != "" && !AffidavitStatus(d.AffidavitStatus).Valid() {
		out["AffidavitStatus"] = "Affidavit Status is not a recognized value"
	}
	return out, !out.Has()
}

// ToEntity converts the validated DTO; caseID comes from the allocator.
func (d *CreateDTO) ToEntity(caseID string, actor int64) (Case, error) {
	status := StatusFiled
	if d.CaseStatus != "" {
		status = Status(d.CaseStatus)
	}

	opts := []Option{
		WithCaseType(d.CaseType),
		WithCaseNo(d.CaseNo),
		WithConnectedCaseNos(d.ConnectedCaseNos),
		WithIsAppeal(d.IsAppeal),
		WithCounsel(d.CounselName, d.CounselContact),
		WithASGEngaged(d.ASGEngaged),
		WithBriefFacts(d.BriefFacts),
		WithAffidavitStatus(AffidavitStatus(d.AffidavitStatus)),
		WithStatus(status),
	}

	lcDate, err := parseISODate(d.LowerCourtOrderDate)
	if err != nil {
		return Case{}, err
	}
	lastHearing, err := parseISODate(d.LastHearingDate)
	if err != nil {
		return Case{}, err
	}
	nextHearing, err := parseISODate(d.NextHearingDate)
	if err != nil {
		return Case{}, err
	}
	opts = append(opts,
		WithLowerCourt(d.LowerCourt, d.LowerCourtCaseNo, lcDate),
		WithLastHearingDate(lastHearing),
		WithNextHearingDate(nextHearing),
	)

	return New(caseID, Forum(d.Forum), actor, opts...), nil
}

func parseISODate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func fieldLabel(field string) string {
	switch field {
	case "Forum":
		return "Forum"
	case "CaseNo":
		return "Case No."
	case "LowerCourtOrderDate":
		return "Lower Court Order Date"
	case "LastHearingDate":
		return "Last Hearing Date"
	case "NextHearingDate":
		return "Next Hearing Date"
	case "CaseStatus":
		return "Case Status"
	case "AffidavitStatus":
		return "Affidavit Status"
	case "FinalOrderDate":
		return "Final Order Date"
	case "PartyType":
		return "Party Type"
	case "Name":
		return "Name"
	default:
		return ""
	}
}
