package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/pkg/composables"
)

const caseColumns = `
	id, case_id, forum, case_type, case_no, connected_case_nos, is_appeal,
	lower_court, lower_court_case_no, lower_court_order_date,
	counsel_name, counsel_contact, asg_engaged, brief_facts,
	last_hearing_date, next_hearing_date, affidavit_status, case_status,
	final_order_date, created_by, updated_by, created_at, updated_at`

type CaseRepository struct{}

func NewCaseRepository() caserecord.Repository {
	return &CaseRepository{}
}

// NextCaseID picks the highest sequence stored under the year prefix and
// increments it. Must run inside the import transaction so concurrent rows
// of one batch see each other's allocations.
func (r *CaseRepository) NextCaseID(ctx context.Context, year int) (string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return "", err
	}

	prefix := strconv.Itoa(year)
	var lastID string
	err = tx.QueryRow(ctx, `
		SELECT case_id FROM cases
		WHERE case_id LIKE $1
		ORDER BY (substring(case_id FROM 5))::int DESC
		LIMIT 1`, prefix+"%",
	).Scan(&lastID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FormatCaseID(year, 1), nil
		}
		return "", gerrors.Wrap(err, "query last case id")
	}

	seq, err := ParseCaseSequence(lastID)
	if err != nil {
		return "", err
	}
	return FormatCaseID(year, seq+1), nil
}

// FormatCaseID renders <year><seq> with the sequence zero-padded to at
// least 3 digits; larger sequences keep all their digits.
func FormatCaseID(year, seq int) string {
	return fmt.Sprintf("%d%03d", year, seq)
}

// ParseCaseSequence extracts the numeric suffix after the 4-digit year.
func ParseCaseSequence(caseID string) (int, error) {
	if len(caseID) < 5 {
		return 0, gerrors.Errorf("malformed case id %q", caseID)
	}
	seq, err := strconv.Atoi(caseID[4:])
	if err != nil {
		return 0, gerrors.Wrapf(err, "malformed case id %q", caseID)
	}
	return seq, nil
}

func (r *CaseRepository) Create(ctx context.Context, c caserecord.Case) (caserecord.Case, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return caserecord.Case{}, err
	}

	var (
		id                   uuid.UUID
		createdAt, updatedAt time.Time
	)
	err = tx.QueryRow(ctx, `
		INSERT INTO cases (
			case_id, forum, case_type, case_no, connected_case_nos, is_appeal,
			lower_court, lower_court_case_no, lower_court_order_date,
			counsel_name, counsel_contact, asg_engaged, brief_facts,
			last_hearing_date, next_hearing_date, affidavit_status, case_status,
			final_order_date, created_by, updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)
		RETURNING id, created_at, updated_at`,
		c.CaseID(), string(c.Forum()),
		nullable(c.CaseType()), nullable(c.CaseNo()), nullable(c.ConnectedCaseNos()), c.IsAppeal(),
		nullable(c.LowerCourt()), nullable(c.LowerCourtCaseNo()), c.LowerCourtOrderDate(),
		nullable(c.CounselName()), nullable(c.CounselContact()), c.ASGEngaged(), nullable(c.BriefFacts()),
		c.LastHearingDate(), c.NextHearingDate(), nullable(string(c.AffidavitStatus())), string(c.Status()),
		c.FinalOrderDate(), c.CreatedBy(), c.UpdatedBy(),
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return caserecord.Case{}, caserecord.ErrCaseIDTaken
		}
		return caserecord.Case{}, gerrors.Wrap(err, "insert case")
	}

	for _, p := range c.Parties() {
		_, err = tx.Exec(ctx, `
			INSERT INTO parties (case_id, party_type, party_number, name, address)
			VALUES ($1, $2, $3, $4, $5)`,
			id, string(p.Type()), p.Number(), p.Name(), nullable(p.Address()),
		)
		if err != nil {
			return caserecord.Case{}, gerrors.Wrapf(err, "insert %s %d", p.Type(), p.Number())
		}
	}

	hydrateOpts := append(
		hydrationOptions(c),
		caserecord.WithID(id),
		caserecord.WithTimestamps(createdAt, updatedAt),
		caserecord.WithParties(c.Parties()),
	)
	return caserecord.New(c.CaseID(), c.Forum(), c.CreatedBy(), hydrateOpts...), nil
}

func (r *CaseRepository) Update(ctx context.Context, c caserecord.Case) (caserecord.Case, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return caserecord.Case{}, err
	}

	var updatedAt time.Time
	err = tx.QueryRow(ctx, `
		UPDATE cases SET
			forum = $2, case_type = $3, case_no = $4, connected_case_nos = $5,
			is_appeal = $6, lower_court = $7, lower_court_case_no = $8,
			lower_court_order_date = $9, counsel_name = $10, counsel_contact = $11,
			asg_engaged = $12, brief_facts = $13, last_hearing_date = $14,
			next_hearing_date = $15, affidavit_status = $16, case_status = $17,
			final_order_date = $18, updated_by = $19, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		c.ID(), string(c.Forum()),
		nullable(c.CaseType()), nullable(c.CaseNo()), nullable(c.ConnectedCaseNos()), c.IsAppeal(),
		nullable(c.LowerCourt()), nullable(c.LowerCourtCaseNo()), c.LowerCourtOrderDate(),
		nullable(c.CounselName()), nullable(c.CounselContact()), c.ASGEngaged(), nullable(c.BriefFacts()),
		c.LastHearingDate(), c.NextHearingDate(), nullable(string(c.AffidavitStatus())), string(c.Status()),
		c.FinalOrderDate(), c.UpdatedBy(),
	).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return caserecord.Case{}, caserecord.ErrNotFound
		}
		return caserecord.Case{}, gerrors.Wrap(err, "update case")
	}

	hydrateOpts := append(
		hydrationOptions(c),
		caserecord.WithID(c.ID()),
		caserecord.WithTimestamps(c.CreatedAt(), updatedAt),
		caserecord.WithUpdatedBy(c.UpdatedBy()),
		caserecord.WithParties(c.Parties()),
	)
	return caserecord.New(c.CaseID(), c.Forum(), c.CreatedBy(), hydrateOpts...), nil
}

func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (caserecord.Case, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *CaseRepository) GetByCaseID(ctx context.Context, caseID string) (caserecord.Case, error) {
	return r.getOne(ctx, "case_id = $1", caseID)
}

func (r *CaseRepository) getOne(ctx context.Context, where string, arg any) (caserecord.Case, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return caserecord.Case{}, err
	}

	row := tx.QueryRow(ctx, "SELECT "+caseColumns+" FROM cases WHERE "+where, arg)
	c, err := scanCase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return caserecord.Case{}, caserecord.ErrNotFound
		}
		return caserecord.Case{}, err
	}

	parties, err := r.loadParties(ctx, c.ID())
	if err != nil {
		return caserecord.Case{}, err
	}
	return withParties(c, parties), nil
}

func (r *CaseRepository) loadParties(ctx context.Context, caseID uuid.UUID) ([]caserecord.Party, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT party_type, party_number, name, COALESCE(address, '')
		FROM parties
		WHERE case_id = $1
		ORDER BY party_type, party_number`, caseID)
	if err != nil {
		return nil, gerrors.Wrap(err, "query parties")
	}
	defer rows.Close()

	var out []caserecord.Party
	for rows.Next() {
		var (
			partyType string
			number    int
			name      string
			address   string
		)
		if err := rows.Scan(&partyType, &number, &name, &address); err != nil {
			return nil, err
		}
		out = append(out, caserecord.NewParty(caserecord.PartyType(partyType), number, name, address))
	}
	return out, rows.Err()
}

func (r *CaseRepository) GetPaginated(ctx context.Context, params *caserecord.FindParams) ([]caserecord.Case, int64, error) {
	if params == nil {
		params = &caserecord.FindParams{}
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	where, args := buildCaseFilters(params)

	var total int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM cases c"+where, args...).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "count cases")
	}

	query := fmt.Sprintf(
		"SELECT %s FROM cases c%s ORDER BY c.updated_at DESC OFFSET $%d LIMIT $%d",
		prefixColumns(caseColumns, "c"), where, len(args)+1, len(args)+2,
	)
	args = append(args, offset, limit)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "query cases")
	}
	defer rows.Close()

	out, err := scanCases(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func buildCaseFilters(params *caserecord.FindParams) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if q := strings.TrimSpace(params.Search); q != "" {
		args = append(args, "%"+q+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(
			c.case_no ILIKE $%d OR c.case_id ILIKE $%d
			OR EXISTS (SELECT 1 FROM parties p WHERE p.case_id = c.id AND p.name ILIKE $%d)
		)`, n, n, n))
	}
	if params.Status != "" {
		args = append(args, string(params.Status))
		conds = append(conds, fmt.Sprintf("c.case_status = $%d", len(args)))
	}
	if params.Forum != "" {
		args = append(args, string(params.Forum))
		conds = append(conds, fmt.Sprintf("c.forum = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *CaseRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM cases").Scan(&total); err != nil {
		return 0, gerrors.Wrap(err, "count cases")
	}
	return total, nil
}

func (r *CaseRepository) CountByStatus(ctx context.Context) ([]caserecord.StatusCount, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, "SELECT case_status, COUNT(*) FROM cases GROUP BY case_status")
	if err != nil {
		return nil, gerrors.Wrap(err, "count by status")
	}
	defer rows.Close()

	var out []caserecord.StatusCount
	for rows.Next() {
		var sc caserecord.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *CaseRepository) CountByForum(ctx context.Context) ([]caserecord.ForumCount, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, "SELECT forum, COUNT(*) FROM cases GROUP BY forum")
	if err != nil {
		return nil, gerrors.Wrap(err, "count by forum")
	}
	defer rows.Close()

	var out []caserecord.ForumCount
	for rows.Next() {
		var fc caserecord.ForumCount
		if err := rows.Scan(&fc.Forum, &fc.Count); err != nil {
			return nil, err
		}
		out = append(out, fc)
	}
	return out, rows.Err()
}

func (r *CaseRepository) UpcomingHearings(ctx context.Context, from, to time.Time) ([]caserecord.Case, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+caseColumns+` FROM cases
		WHERE next_hearing_date >= $1 AND next_hearing_date <= $2
		ORDER BY next_hearing_date`, from, to)
	if err != nil {
		return nil, gerrors.Wrap(err, "query upcoming hearings")
	}
	defer rows.Close()

	return scanCases(rows)
}

func (r *CaseRepository) Recent(ctx context.Context, limit int) ([]caserecord.Case, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	rows, err := tx.Query(ctx,
		"SELECT "+caseColumns+" FROM cases ORDER BY updated_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, gerrors.Wrap(err, "query recent cases")
	}
	defer rows.Close()

	return scanCases(rows)
}

func (r *CaseRepository) RefreshLastHearing(ctx context.Context, id uuid.UUID, hearingDate time.Time, actor int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE cases
		SET last_hearing_date = $2, updated_by = $3, updated_at = now()
		WHERE id = $1`, id, hearingDate, actor)
	if err != nil {
		return gerrors.Wrap(err, "refresh last hearing")
	}
	if tag.RowsAffected() == 0 {
		return caserecord.ErrNotFound
	}
	return nil
}

func (r *CaseRepository) AddParty(ctx context.Context, caseID uuid.UUID, partyType caserecord.PartyType, name, address string, actor int64) (caserecord.Party, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return caserecord.Party{}, err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE cases SET updated_by = $2, updated_at = now()
		WHERE id = $1`, caseID, actor)
	if err != nil {
		return caserecord.Party{}, gerrors.Wrap(err, "touch case")
	}
	if tag.RowsAffected() == 0 {
		return caserecord.Party{}, caserecord.ErrNotFound
	}

	var number int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(party_number), 0) + 1
		FROM parties
		WHERE case_id = $1 AND party_type = $2`, caseID, string(partyType),
	).Scan(&number)
	if err != nil {
		return caserecord.Party{}, gerrors.Wrap(err, "next party slot")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO parties (case_id, party_type, party_number, name, address)
		VALUES ($1, $2, $3, $4, $5)`,
		caseID, string(partyType), number, name, nullable(address),
	)
	if err != nil {
		return caserecord.Party{}, gerrors.Wrapf(err, "insert %s %d", partyType, number)
	}
	return caserecord.NewParty(partyType, number, name, address), nil
}

func (r *CaseRepository) RemoveParty(ctx context.Context, caseID uuid.UUID, partyType caserecord.PartyType, number int, actor int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM parties
		WHERE case_id = $1 AND party_type = $2 AND party_number = $3`,
		caseID, string(partyType), number)
	if err != nil {
		return gerrors.Wrap(err, "delete party")
	}
	if tag.RowsAffected() == 0 {
		return caserecord.ErrPartyNotFound
	}

	if _, err := tx.Exec(ctx, `
		UPDATE cases SET updated_by = $2, updated_at = now()
		WHERE id = $1`, caseID, actor); err != nil {
		return gerrors.Wrap(err, "touch case")
	}
	return nil
}

func prefixColumns(columns, alias string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
