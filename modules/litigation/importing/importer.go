package importing

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/pkg/composables"
	"github.com/courtdesk/courtdesk/pkg/constants"
	"github.com/courtdesk/courtdesk/pkg/excel"
)

// CaseStore is the slice of the case repository the importer depends on.
type CaseStore interface {
	NextCaseID(ctx context.Context, year int) (string, error)
	Create(ctx context.Context, c caserecord.Case) (caserecord.Case, error)
}

// Outcome is the per-file import report. Errors hold one formatted message
// per failed row ("Row <n>: ..."), or a single file-level message when the
// workbook could not be processed at all.
type Outcome struct {
	BatchID      uuid.UUID
	Success      int
	Failed       int
	Errors       []string
	Unrecognized []string
}

// CompletedEvent is published after an import batch finishes.
type CompletedEvent struct {
	BatchID   uuid.UUID
	Actor     int64
	Strict    bool
	Success   int
	Failed    int
	Timestamp time.Time
}

type Importer struct {
	store   CaseStore
	log     logrus.FieldLogger
	now     func() time.Time
	maxRows int
}

type ImporterOption func(*Importer)

func WithLogger(log logrus.FieldLogger) ImporterOption {
	return func(im *Importer) { im.log = log }
}

// WithClock overrides the year source for case-id allocation.
func WithClock(now func() time.Time) ImporterOption {
	return func(im *Importer) { im.now = now }
}

// WithMaxRows bounds the workbook size; 0 means unbounded.
func WithMaxRows(n int) ImporterOption {
	return func(im *Importer) { im.maxRows = n }
}

func NewImporter(store CaseStore, opts ...ImporterOption) *Importer {
	im := &Importer{
		store: store,
		log:   logrus.New(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImportBytes decodes an xlsx workbook and imports its first sheet. It never
// returns an error: failures at every level land in the Outcome.
func (im *Importer) ImportBytes(ctx context.Context, data []byte, actor int64, strict bool) *Outcome {
	book, err := excel.ReadBook(data)
	if err != nil {
		return &Outcome{
			BatchID: uuid.New(),
			Failed:  1,
			Errors:  []string{fmt.Sprintf("Failed to process Excel file: %v", err)},
		}
	}
	return im.ImportBook(ctx, book, actor, strict)
}

// ImportBook runs the row-by-row import. Rows are processed strictly in
// source order; each row's writes are scoped to a savepoint so a failure
// discards exactly that row. The caller owns the surrounding transaction
// and the final commit.
func (im *Importer) ImportBook(ctx context.Context, book *excel.Book, actor int64, strict bool) *Outcome {
	outcome := &Outcome{BatchID: uuid.New()}

	if len(book.Rows) == 0 {
		outcome.Errors = []string{"Excel file is empty"}
		return outcome
	}
	if im.maxRows > 0 && len(book.Rows) > im.maxRows {
		outcome.Errors = []string{fmt.Sprintf(
			"Workbook has %d data rows; the limit is %d. Split the file and retry.",
			len(book.Rows), im.maxRows,
		)}
		return outcome
	}

	columns := ResolveColumns(book.Headers)
	if len(columns) == 0 {
		outcome.Errors = []string{
			"No recognizable columns found in the Excel file. Please ensure column headers match expected names.",
		}
		return outcome
	}
	if strict && !columns.Has(FieldForum) {
		outcome.Errors = []string{
			"Required column 'Forum' not found. Please add a Forum column to your Excel file.",
		}
		return outcome
	}
	outcome.Unrecognized = UnrecognizedHeaders(book.Headers, columns)

	for i := range book.Rows {
		// 1-based spreadsheet numbering plus the header row.
		rowNum := i + 2

		err := rowScope(ctx, func(rowCtx context.Context) error {
			return im.importRow(rowCtx, book, columns, i, actor, strict)
		})
		if err == nil {
			outcome.Success++
			continue
		}

		outcome.Failed++
		var ve *ValidationError
		msg := ""
		if errors.As(err, &ve) {
			msg = ve.Message
		} else {
			msg = fmt.Sprintf("Unexpected error: %v", err)
		}
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("Row %d: %s", rowNum, msg))
		im.log.WithError(err).Debugf("import: row %d rejected", rowNum)
	}

	return outcome
}

var textFields = []struct {
	field Field
	set   func(string) caserecord.Option
}{
	{FieldCaseType, caserecord.WithCaseType},
	{FieldCaseNo, caserecord.WithCaseNo},
	{FieldConnectedCaseNos, caserecord.WithConnectedCaseNos},
	{FieldBriefFacts, caserecord.WithBriefFacts},
}

// Lower court order date is absent here; it travels with the lower-court
// text fields through WithLowerCourt.
var dateFields = []struct {
	field   Field
	display string
	set     func(*time.Time) caserecord.Option
}{
	{FieldLastHearingDate, "Last Hearing Date", caserecord.WithLastHearingDate},
	{FieldNextHearingDate, "Next Hearing Date", caserecord.WithNextHearingDate},
	{FieldFinalOrderDate, "Final Order Date", caserecord.WithFinalOrderDate},
}

func (im *Importer) importRow(
	ctx context.Context,
	book *excel.Book,
	columns ColumnMap,
	row int,
	actor int64,
	strict bool,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("row processing panicked: %v", r)
		}
	}()

	cell := func(f Field) string {
		if !columns.Has(f) {
			return ""
		}
		return book.Cell(row, columns.Header(f))
	}

	// Forum is the one required field; in strict mode its failure aborts the
	// row before anything else is looked at.
	var forum caserecord.Forum
	if columns.Has(FieldForum) {
		forum, err = ParseForum(cell(FieldForum), strict)
		if err != nil {
			return err
		}
	} else {
		if strict {
			return validationf("Forum", "Forum is required")
		}
		forum = caserecord.ForumOther
	}

	var opts []caserecord.Option

	for _, tf := range textFields {
		if columns.Has(tf.field) {
			opts = append(opts, tf.set(CleanString(cell(tf.field))))
		}
	}

	if columns.Has(FieldIsAppeal) {
		opts = append(opts, caserecord.WithIsAppeal(ParseBool(cell(FieldIsAppeal))))
	}
	if columns.Has(FieldASGEngaged) {
		opts = append(opts, caserecord.WithASGEngaged(ParseBool(cell(FieldASGEngaged))))
	}
	if columns.Has(FieldCounselName) || columns.Has(FieldCounselContact) {
		opts = append(opts, caserecord.WithCounsel(
			CleanString(cell(FieldCounselName)),
			CleanString(cell(FieldCounselContact)),
		))
	}

	parseDate := func(f Field, display string) (*time.Time, error) {
		if !columns.Has(f) {
			return nil, nil
		}
		if strict {
			return ParseDateStrict(cell(f), display)
		}
		return ParseDate(cell(f)), nil
	}

	lcDate, err := parseDate(FieldLowerCourtDate, "Lower Court Order Date")
	if err != nil {
		return err
	}
	opts = append(opts, caserecord.WithLowerCourt(
		CleanString(cell(FieldLowerCourt)),
		CleanString(cell(FieldLowerCourtCaseNo)),
		lcDate,
	))

	for _, df := range dateFields {
		parsed, derr := parseDate(df.field, df.display)
		if derr != nil {
			return derr
		}
		if columns.Has(df.field) {
			opts = append(opts, df.set(parsed))
		}
	}

	status, err := ParseStatus(cell(FieldCaseStatus), strict)
	if err != nil {
		return err
	}
	opts = append(opts, caserecord.WithStatus(status))

	affidavit, err := ParseAffidavitStatus(cell(FieldAffidavitStatus), strict)
	if err != nil {
		return err
	}
	opts = append(opts, caserecord.WithAffidavitStatus(affidavit))

	// Either a case number or at least one petitioner must identify the row.
	// Lenient mode skips the check so historic dumps load as-is.
	if strict {
		hasCaseNo := CleanString(cell(FieldCaseNo)) != ""
		hasPetitioner := false
		for _, slot := range petitionerMap {
			if columns.Has(slot.name) && CleanString(cell(slot.name)) != "" {
				hasPetitioner = true
				break
			}
		}
		if !hasCaseNo && !hasPetitioner {
			return validationf("Case No.",
				"Either Case No. or at least one Petitioner name is required")
		}
	}

	parties := collectParties(columns, cell)
	if len(parties) > 0 {
		opts = append(opts, caserecord.WithParties(parties))
	}

	// The identifier is allocated only once the row is known to pass
	// validation, immediately before the insert, so ids within a batch stay
	// strictly increasing.
	caseID, err := im.store.NextCaseID(ctx, im.now().Year())
	if err != nil {
		return errors.Wrap(err, "allocate case id")
	}

	record := caserecord.New(caseID, forum, actor, opts...)
	if _, err := im.store.Create(ctx, record); err != nil {
		return errors.Wrap(err, "create case")
	}
	return nil
}

// collectParties reads petitioner slots 1..3 then respondent slots 1..3.
// Blank names are skipped without renumbering: slot numbers mirror the
// source columns.
func collectParties(columns ColumnMap, cell func(Field) string) []caserecord.Party {
	var parties []caserecord.Party

	for i, slot := range petitionerMap {
		if !columns.Has(slot.name) {
			continue
		}
		name := CleanString(cell(slot.name))
		if name == "" {
			continue
		}
		address := ""
		if columns.Has(slot.addr) {
			address = CleanString(cell(slot.addr))
		}
		parties = append(parties, caserecord.NewParty(caserecord.PartyPetitioner, i+1, name, address))
	}

	for i, slot := range respondentMap {
		if !columns.Has(slot.name) {
			continue
		}
		name := CleanString(cell(slot.name))
		if name == "" {
			continue
		}
		address := ""
		if columns.Has(slot.addr) {
			address = CleanString(cell(slot.addr))
		}
		parties = append(parties, caserecord.NewParty(caserecord.PartyRespondent, i+1, name, address))
	}

	return parties
}

// rowScope runs fn inside a savepoint when the context carries a pgx
// transaction (pgx maps nested Begin onto SAVEPOINT/RELEASE). Without a
// transaction, e.g. under unit tests with an in-memory store, fn runs bare.
func rowScope(ctx context.Context, fn func(context.Context) error) error {
	tx, ok := ctx.Value(constants.TxKey).(pgx.Tx)
	if !ok || tx == nil {
		return fn(ctx)
	}

	inner, err := tx.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin row savepoint")
	}
	if err := fn(composables.WithTx(ctx, inner)); err != nil {
		_ = inner.Rollback(ctx)
		return err
	}
	return inner.Commit(ctx)
}
