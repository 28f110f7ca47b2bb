package mappers

import (
	"time"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/modules/litigation/domain/entities/hearing"
	"github.com/courtdesk/courtdesk/modules/litigation/importing"
	"github.com/courtdesk/courtdesk/modules/litigation/presentation/viewmodels"
	"github.com/courtdesk/courtdesk/modules/litigation/services"
)

func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func CaseToViewModel(c caserecord.Case) viewmodels.Case {
	affidavit := string(c.AffidavitStatus())
	if c.AffidavitStatus() == caserecord.AffidavitNone {
		affidavit = ""
	}
	return viewmodels.Case{
		ID:                  c.ID().String(),
		CaseID:              c.CaseID(),
		Forum:               string(c.Forum()),
		CaseType:            c.CaseType(),
		CaseNo:              c.CaseNo(),
		ConnectedCaseNos:    c.ConnectedCaseNos(),
		IsAppeal:            c.IsAppeal(),
		LowerCourt:          c.LowerCourt(),
		LowerCourtCaseNo:    c.LowerCourtCaseNo(),
		LowerCourtOrderDate: isoDate(c.LowerCourtOrderDate()),
		CounselName:         c.CounselName(),
		CounselContact:      c.CounselContact(),
		ASGEngaged:          c.ASGEngaged(),
		BriefFacts:          c.BriefFacts(),
		LastHearingDate:     isoDate(c.LastHearingDate()),
		NextHearingDate:     isoDate(c.NextHearingDate()),
		AffidavitStatus:     affidavit,
		CaseStatus:          string(c.Status()),
		FinalOrderDate:      isoDate(c.FinalOrderDate()),
		Petitioners:         PartiesToViewModels(c.PartiesOf(caserecord.PartyPetitioner)),
		Respondents:         PartiesToViewModels(c.PartiesOf(caserecord.PartyRespondent)),
		CreatedAt:           c.CreatedAt().Format(time.RFC3339),
		UpdatedAt:           c.UpdatedAt().Format(time.RFC3339),
	}
}

func CasesToViewModels(cases []caserecord.Case) []viewmodels.Case {
	out := make([]viewmodels.Case, 0, len(cases))
	for _, c := range cases {
		out = append(out, CaseToViewModel(c))
	}
	return out
}

func PartyToViewModel(p caserecord.Party) viewmodels.Party {
	return viewmodels.Party{
		PartyType: string(p.Type()),
		Number:    p.Number(),
		Name:      p.Name(),
		Address:   p.Address(),
	}
}

func PartiesToViewModels(parties []caserecord.Party) []viewmodels.Party {
	out := make([]viewmodels.Party, 0, len(parties))
	for _, p := range parties {
		out = append(out, PartyToViewModel(p))
	}
	return out
}

func HearingToViewModel(h hearing.Hearing) viewmodels.Hearing {
	return viewmodels.Hearing{
		ID:          h.ID().String(),
		CaseID:      h.CaseID().String(),
		HearingDate: h.Date().Format("2006-01-02"),
		Brief:       h.Brief(),
		CreatedAt:   h.CreatedAt().Format(time.RFC3339),
	}
}

func HearingsToViewModels(hearings []hearing.Hearing) []viewmodels.Hearing {
	out := make([]viewmodels.Hearing, 0, len(hearings))
	for _, h := range hearings {
		out = append(out, HearingToViewModel(h))
	}
	return out
}

func StatsToViewModel(s *services.Stats) viewmodels.Stats {
	byStatus := make([]viewmodels.StatusCount, 0, len(s.ByStatus))
	for _, sc := range s.ByStatus {
		byStatus = append(byStatus, viewmodels.StatusCount{Status: string(sc.Status), Count: sc.Count})
	}
	byForum := make([]viewmodels.ForumCount, 0, len(s.ByForum))
	for _, fc := range s.ByForum {
		byForum = append(byForum, viewmodels.ForumCount{Forum: string(fc.Forum), Count: fc.Count})
	}
	return viewmodels.Stats{
		TotalCases:      s.TotalCases,
		ByStatus:        byStatus,
		ByForum:         byForum,
		UpcomingCases:   CasesToViewModels(s.UpcomingCases),
		RecentlyUpdated: CasesToViewModels(s.RecentlyUpdated),
	}
}

// OutcomeToViewModel caps the error list at maxErrors; 0 means no cap.
func OutcomeToViewModel(o *importing.Outcome, maxErrors int) viewmodels.ImportResult {
	errs := o.Errors
	omitted := 0
	if maxErrors > 0 && len(errs) > maxErrors {
		omitted = len(errs) - maxErrors
		errs = errs[:maxErrors]
	}
	out := viewmodels.ImportResult{
		BatchID:       o.BatchID.String(),
		Success:       o.Success,
		Failed:        o.Failed,
		Errors:        append([]string{}, errs...),
		ErrorsOmitted: omitted,
		Unrecognized:  o.Unrecognized,
	}
	return out
}
