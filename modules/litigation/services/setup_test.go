package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/modules/litigation/domain/entities/hearing"
	"github.com/courtdesk/courtdesk/modules/litigation/infrastructure/persistence"
	"github.com/courtdesk/courtdesk/pkg/composables"
)

// testContext carries a no-op transaction and an acting user so services
// can run their InTx blocks against in-memory repositories.
func testContext(actor int64) context.Context {
	return composables.WithUser(testContextNoUser(), actor)
}

func testContextNoUser() context.Context {
	return composables.WithTx(context.Background(), stubTx{})
}

// stubTx satisfies pgx.Tx; in-memory repositories never touch it.
type stubTx struct{}

func (stubTx) Begin(_ context.Context) (pgx.Tx, error) { return stubTx{}, nil }
func (stubTx) Commit(_ context.Context) error          { return nil }
func (stubTx) Rollback(_ context.Context) error        { return nil }

func (stubTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (stubTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (stubTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (stubTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (stubTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return nil, nil }
func (stubTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row        { return nil }
func (stubTx) Conn() *pgx.Conn                                               { return nil }

// memoryCaseRepo is an in-memory caserecord.Repository for service and
// importer tests.
type memoryCaseRepo struct {
	mu      sync.Mutex
	cases   []caserecord.Case
	lastSeq map[int]int

	createErr error
}

func newMemoryCaseRepo() *memoryCaseRepo {
	return &memoryCaseRepo{lastSeq: map[int]int{}}
}

func (r *memoryCaseRepo) NextCaseID(_ context.Context, year int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSeq[year]++
	return persistence.FormatCaseID(year, r.lastSeq[year]), nil
}

// storedCase rebuilds the aggregate the way persistence hydration does,
// with storage-owned identity and timestamps applied last.
func storedCase(c caserecord.Case, id uuid.UUID, createdAt, updatedAt time.Time, extra ...caserecord.Option) caserecord.Case {
	opts := []caserecord.Option{
		caserecord.WithID(id),
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
		caserecord.WithParties(c.Parties()),
		caserecord.WithUpdatedBy(c.UpdatedBy()),
		caserecord.WithTimestamps(createdAt, updatedAt),
	}
	return caserecord.New(c.CaseID(), c.Forum(), c.CreatedBy(), append(opts, extra...)...)
}

func (r *memoryCaseRepo) Create(_ context.Context, c caserecord.Case) (caserecord.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return caserecord.Case{}, r.createErr
	}
	for _, existing := range r.cases {
		if existing.CaseID() == c.CaseID() {
			return caserecord.Case{}, caserecord.ErrCaseIDTaken
		}
	}
	now := time.Now()
	stored := storedCase(c, uuid.New(), now, now)
	r.cases = append(r.cases, stored)
	return stored, nil
}

func (r *memoryCaseRepo) Update(_ context.Context, c caserecord.Case) (caserecord.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.cases {
		if existing.ID() != c.ID() {
			continue
		}
		stored := storedCase(c, c.ID(), existing.CreatedAt(), time.Now())
		r.cases[i] = stored
		return stored, nil
	}
	return caserecord.Case{}, caserecord.ErrNotFound
}

func (r *memoryCaseRepo) AddParty(_ context.Context, caseID uuid.UUID, partyType caserecord.PartyType, name, address string, actor int64) (caserecord.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.cases {
		if c.ID() != caseID {
			continue
		}
		next := 0
		for _, p := range c.PartiesOf(partyType) {
			if p.Number() > next {
				next = p.Number()
			}
		}
		party := caserecord.NewParty(partyType, next+1, name, address)
		r.cases[i] = storedCase(c, c.ID(), c.CreatedAt(), time.Now(),
			caserecord.WithParties(append(c.Parties(), party)),
			caserecord.WithUpdatedBy(actor),
		)
		return party, nil
	}
	return caserecord.Party{}, caserecord.ErrNotFound
}

func (r *memoryCaseRepo) RemoveParty(_ context.Context, caseID uuid.UUID, partyType caserecord.PartyType, number int, actor int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.cases {
		if c.ID() != caseID {
			continue
		}
		var kept []caserecord.Party
		removed := false
		for _, p := range c.Parties() {
			if p.Type() == partyType && p.Number() == number {
				removed = true
				continue
			}
			kept = append(kept, p)
		}
		if !removed {
			return caserecord.ErrPartyNotFound
		}
		r.cases[i] = storedCase(c, c.ID(), c.CreatedAt(), time.Now(),
			caserecord.WithParties(kept),
			caserecord.WithUpdatedBy(actor),
		)
		return nil
	}
	return caserecord.ErrPartyNotFound
}

func (r *memoryCaseRepo) GetByID(_ context.Context, id uuid.UUID) (caserecord.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cases {
		if c.ID() == id {
			return c, nil
		}
	}
	return caserecord.Case{}, caserecord.ErrNotFound
}

func (r *memoryCaseRepo) GetByCaseID(_ context.Context, caseID string) (caserecord.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cases {
		if c.CaseID() == caseID {
			return c, nil
		}
	}
	return caserecord.Case{}, caserecord.ErrNotFound
}

func (r *memoryCaseRepo) GetPaginated(_ context.Context, params *caserecord.FindParams) ([]caserecord.Case, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []caserecord.Case
	for _, c := range r.cases {
		if params != nil && params.Status != "" && c.Status() != params.Status {
			continue
		}
		if params != nil && params.Forum != "" && c.Forum() != params.Forum {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *memoryCaseRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.cases)), nil
}

func (r *memoryCaseRepo) CountByStatus(_ context.Context) ([]caserecord.StatusCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[caserecord.Status]int64{}
	for _, c := range r.cases {
		counts[c.Status()]++
	}
	var out []caserecord.StatusCount
	for status, n := range counts {
		out = append(out, caserecord.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

func (r *memoryCaseRepo) CountByForum(_ context.Context) ([]caserecord.ForumCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[caserecord.Forum]int64{}
	for _, c := range r.cases {
		counts[c.Forum()]++
	}
	var out []caserecord.ForumCount
	for forum, n := range counts {
		out = append(out, caserecord.ForumCount{Forum: forum, Count: n})
	}
	return out, nil
}

func (r *memoryCaseRepo) UpcomingHearings(_ context.Context, from, to time.Time) ([]caserecord.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []caserecord.Case
	for _, c := range r.cases {
		d := c.NextHearingDate()
		if d == nil || d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryCaseRepo) Recent(_ context.Context, limit int) ([]caserecord.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]caserecord.Case(nil), r.cases...)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *memoryCaseRepo) RefreshLastHearing(_ context.Context, id uuid.UUID, hearingDate time.Time, actor int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.cases {
		if c.ID() != id {
			continue
		}
		r.cases[i] = caserecord.New(c.CaseID(), c.Forum(), c.CreatedBy(),
			caserecord.WithID(c.ID()),
			caserecord.WithStatus(c.Status()),
			caserecord.WithLastHearingDate(&hearingDate),
			caserecord.WithUpdatedBy(actor),
			caserecord.WithTimestamps(c.CreatedAt(), time.Now()),
		)
		return nil
	}
	return caserecord.ErrNotFound
}

type memoryHearingRepo struct {
	mu       sync.Mutex
	hearings []hearing.Hearing
}

func (r *memoryHearingRepo) Create(_ context.Context, h hearing.Hearing) (hearing.Hearing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := hearing.Hydrate(uuid.New(), h.CaseID(), h.Date(), h.Brief(), h.CreatedBy(), time.Now())
	r.hearings = append(r.hearings, stored)
	return stored, nil
}

func (r *memoryHearingRepo) ListByCase(_ context.Context, caseID uuid.UUID) ([]hearing.Hearing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []hearing.Hearing
	for _, h := range r.hearings {
		if h.CaseID() == caseID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *memoryHearingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.hearings {
		if h.ID() == id {
			r.hearings = append(r.hearings[:i], r.hearings[i+1:]...)
			return nil
		}
	}
	return hearing.ErrNotFound
}

// recordingBus captures published events for assertions.
type recordingBus struct {
	mu     sync.Mutex
	events []interface{}
}

func (b *recordingBus) Publish(args ...interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, args...)
}

func (b *recordingBus) Subscribe(_ interface{})   {}
func (b *recordingBus) Unsubscribe(_ interface{}) {}
func (b *recordingBus) Clear()                    {}
func (b *recordingBus) SubscribersCount() int     { return 0 }

func (b *recordingBus) published() []interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]interface{}(nil), b.events...)
}
