package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
)

// nullable maps empty strings to SQL NULL so blank import cells do not
// store as empty text.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scanCase(row pgx.Row) (caserecord.Case, error) {
	var (
		id                   uuid.UUID
		caseID, forum        string
		caseType             *string
		caseNo               *string
		connectedCaseNos     *string
		isAppeal             bool
		lowerCourt           *string
		lowerCourtCaseNo     *string
		lowerCourtOrderDate  *time.Time
		counselName          *string
		counselContact       *string
		asgEngaged           bool
		briefFacts           *string
		lastHearingDate      *time.Time
		nextHearingDate      *time.Time
		affidavitStatus      *string
		caseStatus           string
		finalOrderDate       *time.Time
		createdBy, updatedBy *int64
		createdAt, updatedAt time.Time
	)

	err := row.Scan(
		&id, &caseID, &forum, &caseType, &caseNo, &connectedCaseNos, &isAppeal,
		&lowerCourt, &lowerCourtCaseNo, &lowerCourtOrderDate,
		&counselName, &counselContact, &asgEngaged, &briefFacts,
		&lastHearingDate, &nextHearingDate, &affidavitStatus, &caseStatus,
		&finalOrderDate, &createdBy, &updatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return caserecord.Case{}, err
	}

	var actor int64
	if createdBy != nil {
		actor = *createdBy
	}

	affidavit := caserecord.AffidavitNone
	if affidavitStatus != nil {
		affidavit = caserecord.AffidavitStatus(*affidavitStatus)
	}

	opts := []caserecord.Option{
		caserecord.WithID(id),
		caserecord.WithCaseType(deref(caseType)),
		caserecord.WithCaseNo(deref(caseNo)),
		caserecord.WithConnectedCaseNos(deref(connectedCaseNos)),
		caserecord.WithIsAppeal(isAppeal),
		caserecord.WithLowerCourt(deref(lowerCourt), deref(lowerCourtCaseNo), lowerCourtOrderDate),
		caserecord.WithCounsel(deref(counselName), deref(counselContact)),
		caserecord.WithASGEngaged(asgEngaged),
		caserecord.WithBriefFacts(deref(briefFacts)),
		caserecord.WithLastHearingDate(lastHearingDate),
		caserecord.WithNextHearingDate(nextHearingDate),
		caserecord.WithAffidavitStatus(affidavit),
		caserecord.WithStatus(caserecord.Status(caseStatus)),
		caserecord.WithFinalOrderDate(finalOrderDate),
		caserecord.WithTimestamps(createdAt, updatedAt),
	}
	if updatedBy != nil {
		opts = append(opts, caserecord.WithUpdatedBy(*updatedBy))
	}
	return caserecord.New(caseID, caserecord.Forum(forum), actor, opts...), nil
}

func scanCases(rows pgx.Rows) ([]caserecord.Case, error) {
	var out []caserecord.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// hydrationOptions rebuilds the option list for an existing aggregate so a
// copy can be reconstructed with extra options applied.
func hydrationOptions(c caserecord.Case) []caserecord.Option {
	return []caserecord.Option{
		caserecord.WithCaseType(c.CaseType()),
		caserecord.WithCaseNo(c.CaseNo()),
		caserecord.WithConnectedCaseNos(c.ConnectedCaseNos()),
		caserecord.WithIsAppeal(c.IsAppeal()),
		caserecord.WithLowerCourt(c.LowerCourt(), c.LowerCourtCaseNo(), c.LowerCourtOrderDate()),
		caserecord.WithCounsel(c.CounselName(), c.CounselContact()),
		caserecord.WithASGEngaged(c.ASGEngaged()),
		caserecord.WithBriefFacts(c.BriefFacts()),
		caserecord.WithLastHearingDate(c.LastHearingDate()),
		caserecord.WithNextHearingDate(c.NextHearingDate()),
		caserecord.WithAffidavitStatus(c.AffidavitStatus()),
		caserecord.WithStatus(c.Status()),
		caserecord.WithFinalOrderDate(c.FinalOrderDate()),
	}
}

func withParties(c caserecord.Case, parties []caserecord.Party) caserecord.Case {
	return caserecord.New(c.CaseID(), c.Forum(), c.CreatedBy(),
		append(hydrationOptions(c),
			caserecord.WithID(c.ID()),
			caserecord.WithTimestamps(c.CreatedAt(), c.UpdatedAt()),
			caserecord.WithUpdatedBy(c.UpdatedBy()),
			caserecord.WithParties(parties),
		)...)
}
