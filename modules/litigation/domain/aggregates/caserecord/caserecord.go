package caserecord

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Case is a litigation case file. The surrogate id keys storage; CaseID is
// the user-facing identifier in <year><seq> form, e.g. 2024007.
type Case struct {
	id               uuid.UUID
	caseID           string
	forum            Forum
	caseType         string
	caseNo           string
	connectedCaseNos string
	isAppeal         bool
	lowerCourt       string
	lowerCourtCaseNo string
	lowerCourtDate   *time.Time
	counselName      string
	counselContact   string
	asgEngaged       bool
	briefFacts       string
	lastHearingDate  *time.Time
	nextHearingDate  *time.Time
	affidavitStatus  AffidavitStatus
	caseStatus       Status
	finalOrderDate   *time.Time
	parties          []Party
	createdBy        int64
	updatedBy        int64
	createdAt        time.Time
	updatedAt        time.Time
}

type Option func(*Case)

func WithID(id uuid.UUID) Option {
	return func(c *Case) { c.id = id }
}

func WithCaseType(v string) Option {
	return func(c *Case) { c.caseType = strings.TrimSpace(v) }
}

func WithCaseNo(v string) Option {
	return func(c *Case) { c.caseNo = strings.TrimSpace(v) }
}

func WithConnectedCaseNos(v string) Option {
	return func(c *Case) { c.connectedCaseNos = strings.TrimSpace(v) }
}

func WithIsAppeal(v bool) Option {
	return func(c *Case) { c.isAppeal = v }
}

func WithLowerCourt(court, caseNo string, orderDate *time.Time) Option {
	return func(c *Case) {
		c.lowerCourt = strings.TrimSpace(court)
		c.lowerCourtCaseNo = strings.TrimSpace(caseNo)
		c.lowerCourtDate = orderDate
	}
}

func WithCounsel(name, contact string) Option {
	return func(c *Case) {
		c.counselName = strings.TrimSpace(name)
		c.counselContact = strings.TrimSpace(contact)
	}
}

func WithASGEngaged(v bool) Option {
	return func(c *Case) { c.asgEngaged = v }
}

func WithBriefFacts(v string) Option {
	return func(c *Case) { c.briefFacts = strings.TrimSpace(v) }
}

func WithLastHearingDate(d *time.Time) Option {
	return func(c *Case) { c.lastHearingDate = d }
}

func WithNextHearingDate(d *time.Time) Option {
	return func(c *Case) { c.nextHearingDate = d }
}

func WithAffidavitStatus(s AffidavitStatus) Option {
	return func(c *Case) { c.affidavitStatus = s }
}

func WithStatus(s Status) Option {
	return func(c *Case) { c.caseStatus = s }
}

func WithFinalOrderDate(d *time.Time) Option {
	return func(c *Case) { c.finalOrderDate = d }
}

func WithParties(parties []Party) Option {
	return func(c *Case) { c.parties = parties }
}

func WithTimestamps(createdAt, updatedAt time.Time) Option {
	return func(c *Case) {
		c.createdAt = createdAt
		c.updatedAt = updatedAt
	}
}

func WithUpdatedBy(actor int64) Option {
	return func(c *Case) { c.updatedBy = actor }
}

// New builds a case attributed to actor. Persistence hydrates stored rows
// through the same constructor using WithID and WithTimestamps.
func New(caseID string, forum Forum, actor int64, opts ...Option) Case {
	c := Case{
		caseID:     strings.TrimSpace(caseID),
		forum:      forum,
		caseStatus: StatusFiled,
		createdBy:  actor,
		updatedBy:  actor,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Case) ID() uuid.UUID                    { return c.id }
func (c Case) CaseID() string                   { return c.caseID }
func (c Case) Forum() Forum                     { return c.forum }
func (c Case) CaseType() string                 { return c.caseType }
func (c Case) CaseNo() string                   { return c.caseNo }
func (c Case) ConnectedCaseNos() string         { return c.connectedCaseNos }
func (c Case) IsAppeal() bool                   { return c.isAppeal }
func (c Case) LowerCourt() string               { return c.lowerCourt }
func (c Case) LowerCourtCaseNo() string         { return c.lowerCourtCaseNo }
func (c Case) LowerCourtOrderDate() *time.Time  { return c.lowerCourtDate }
func (c Case) CounselName() string              { return c.counselName }
func (c Case) CounselContact() string           { return c.counselContact }
func (c Case) ASGEngaged() bool                 { return c.asgEngaged }
func (c Case) BriefFacts() string               { return c.briefFacts }
func (c Case) LastHearingDate() *time.Time      { return c.lastHearingDate }
func (c Case) NextHearingDate() *time.Time      { return c.nextHearingDate }
func (c Case) AffidavitStatus() AffidavitStatus { return c.affidavitStatus }
func (c Case) Status() Status                   { return c.caseStatus }
func (c Case) FinalOrderDate() *time.Time       { return c.finalOrderDate }
func (c Case) CreatedBy() int64                 { return c.createdBy }
func (c Case) UpdatedBy() int64                 { return c.updatedBy }
func (c Case) CreatedAt() time.Time             { return c.createdAt }
func (c Case) UpdatedAt() time.Time             { return c.updatedAt }
func (c Case) IsZero() bool                     { return c.id == uuid.Nil && c.caseID == "" }

// Parties returns a copy; the aggregate owns the slice.
func (c Case) Parties() []Party {
	out := make([]Party, len(c.parties))
	copy(out, c.parties)
	return out
}

func (c Case) PartiesOf(t PartyType) []Party {
	var out []Party
	for _, p := range c.parties {
		if p.Type() == t {
			out = append(out, p)
		}
	}
	return out
}
