package importing_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/modules/litigation/importing"
	"github.com/courtdesk/courtdesk/pkg/excel"
)

// fakeStore allocates sequential ids and records created cases. Sequence
// numbers burn on allocation; a later failure does not return them.
type fakeStore struct {
	seq       map[int]int
	created   []caserecord.Case
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{seq: map[int]int{}}
}

func (s *fakeStore) NextCaseID(_ context.Context, year int) (string, error) {
	s.seq[year]++
	return fmt.Sprintf("%d%03d", year, s.seq[year]), nil
}

func (s *fakeStore) Create(_ context.Context, c caserecord.Case) (caserecord.Case, error) {
	if s.createErr != nil {
		return caserecord.Case{}, s.createErr
	}
	s.created = append(s.created, c)
	return c, nil
}

func workbook(t *testing.T, headers []string, rows ...[]string) []byte {
	t.Helper()
	b := excel.NewSheetBuilder("Sheet1").Headers(headers...)
	for _, row := range rows {
		b.AddRow(row...)
	}
	data, err := b.Bytes()
	require.NoError(t, err)
	return data
}

func TestImportSingleRowStrict(t *testing.T) {
	store := newFakeStore()
	im := importing.NewImporter(store)

	data := workbook(t,
		[]string{"Forum", "Case Type", "Case No.", "Petitioner 1 Name", "Petitioner 1 Address", "Is Appeal", "Next Hearing Date"},
		[]string{"High Court", "Writ Petition", "WP(C) 1/2026", "Acme Ltd", "1 Main St", "Yes", "2026-04-01"},
	)

	outcome := im.ImportBytes(context.Background(), data, 42, true)
	assert.Equal(t, 1, outcome.Success)
	assert.Zero(t, outcome.Failed)
	assert.Empty(t, outcome.Errors)
	require.Len(t, store.created, 1)

	c := store.created[0]
	assert.Equal(t, caserecord.ForumHC, c.Forum())
	assert.Equal(t, "Writ Petition", c.CaseType())
	assert.Equal(t, "WP(C) 1/2026", c.CaseNo())
	assert.True(t, c.IsAppeal())
	assert.Equal(t, int64(42), c.CreatedBy())
	require.NotNil(t, c.NextHearingDate())
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *c.NextHearingDate())

	parties := c.Parties()
	require.Len(t, parties, 1)
	assert.Equal(t, caserecord.PartyPetitioner, parties[0].Type())
	assert.Equal(t, 1, parties[0].Number())
	assert.Equal(t, "Acme Ltd", parties[0].Name())
	assert.Equal(t, "1 Main St", parties[0].Address())
}

func TestImportMissingIdentificationStrict(t *testing.T) {
	store := newFakeStore()
	im := importing.NewImporter(store)

	data := workbook(t,
		[]string{"Forum", "Case No.", "Petitioner 1 Name"},
		[]string{"HC", "", ""},
	)

	outcome := im.ImportBytes(context.Background(), data, 1, true)
	assert.Zero(t, outcome.Success)
	assert.Equal(t, 1, outcome.Failed)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "Row 2: Either Case No. or at least one Petitioner name is required", outcome.Errors[0])
	assert.Empty(t, store.created)
}

func TestImportMissingIdentificationLenient(t *testing.T) {
	store := newFakeStore()
	im := importing.NewImporter(store)

	data := workbook(t,
		[]string{"Forum", "Case No.", "Petitioner 1 Name"},
		[]string{"HC", "", ""},
	)

	// The identification check is strict-only.
	outcome := im.ImportBytes(context.Background(), data, 1, false)
	assert.Equal(t, 1, outcome.Success)
	assert.Zero(t, outcome.Failed)
	require.Len(t, store.created, 1)
}

func TestImportRowNumbering(t *testing.T) {
	store := newFakeStore()
	im := importing.NewImporter(store)

	data := workbook(t,
		[]string{"Forum", "Case No."},
		[]string{"HC", "WP 1/2026"},
		[]string{"Narnia", "WP 2/2026"},
		[]string{"SC", "SLP 3/2026"},
		[]string{"Atlantis", "WP 4/2026"},
	)

	outcome := im.ImportBytes(context.Background(), data, 1, true)
	assert.Equal(t, 2, outcome.Success)
	assert.Equal(t, 2, outcome.Failed)
	require.Len(t, outcome.Errors, 2)
	assert.Contains(t, outcome.Errors[0], "Row 3:")
	assert.Contains(t, outcome.Errors[1], "Row 5:")
}

func TestImportIDsMonotonicWithGaps(t *testing.T) {
	store := newFakeStore()
	clock := func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	im := importing.NewImporter(store, importing.WithClock(clock))

	// Middle row fails after two successes; its would-be id is never
	// allocated because allocation happens after validation.
	data := workbook(t,
		[]string{"Forum", "Case No."},
		[]string{"HC", "WP 1/2026"},
		[]string{"Narnia", "WP 2/2026"},
		[]string{"SC", "SLP 3/2026"},
	)

	outcome := im.ImportBytes(context.Background(), data, 1, true)
	assert.Equal(t, 2, outcome.Success)
	assert.Equal(t, 1, outcome.Failed)
	require.Len(t, store.created, 2)
	assert.Equal(t, "2026001", store.created[0].CaseID())
	assert.Equal(t, "2026002", store.created[1].CaseID())
}

func TestImportEmptyWorkbook(t *testing.T) {
	im := importing.NewImporter(newFakeStore())

	data := workbook(t, []string{"Forum", "Case No."})
	outcome := im.ImportBytes(context.Background(), data, 1, true)
	assert.Zero(t, outcome.Success)
	assert.Zero(t, outcome.Failed)
	assert.Equal(t, []string{"Excel file is empty"}, outcome.Errors)
}

func TestImportNoRecognizableColumns(t *testing.T) {
	im := importing.NewImporter(newFakeStore())

	data := workbook(t,
		[]string{"Alpha", "Beta"},
		[]string{"1", "2"},
	)
	outcome := im.ImportBytes(context.Background(), data, 1, true)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t,
		"No recognizable columns found in the Excel file. Please ensure column headers match expected names.",
		outcome.Errors[0])
}

func TestImportMissingForumColumnStrict(t *testing.T) {
	im := importing.NewImporter(newFakeStore())

	data := workbook(t,
		[]string{"Case No.", "Petitioner 1 Name"},
		[]string{"WP 1/2026", "Acme"},
	)
	outcome := im.ImportBytes(context.Background(), data, 1, true)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t,
		"Required column 'Forum' not found. Please add a Forum column to your Excel file.",
		outcome.Errors[0])
}

func TestImportMissingForumColumnLenient(t *testing.T) {
	store := newFakeStore()
	im := importing.NewImporter(store)

	data := workbook(t,
		[]string{"Case No.", "Petitioner 1 Name"},
		[]string{"WP 1/2026", "Acme"},
	)
	outcome := im.ImportBytes(context.Background(), data, 1, false)
	assert.Equal(t, 1, outcome.Success)
	require.Len(t, store.created, 1)
	assert.Equal(t, caserecord.ForumOther, store.created[0].Forum())
}

func TestImportGarbageBytes(t *testing.T) {
	im := importing.NewImporter(newFakeStore())

	outcome := im.ImportBytes(context.Background(), []byte("not a workbook"), 1, true)
	assert.Equal(t, 1, outcome.Failed)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "Failed to process Excel file:")
}

func TestImportMaxRows(t *testing.T) {
	im := importing.NewImporter(newFakeStore(), importing.WithMaxRows(1))

	data := workbook(t,
		[]string{"Forum", "Case No."},
		[]string{"HC", "WP 1/2026"},
		[]string{"SC", "SLP 2/2026"},
	)
	outcome := im.ImportBytes(context.Background(), data, 1, true)
	assert.Zero(t, outcome.Success)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "limit is 1")
}

func TestImportStoreFailureIsPerRow(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("disk full")
	im := importing.NewImporter(store)

	data := workbook(t,
		[]string{"Forum", "Case No."},
		[]string{"HC", "WP 1/2026"},
	)
	outcome := im.ImportBytes(context.Background(), data, 1, true)
	assert.Zero(t, outcome.Success)
	assert.Equal(t, 1, outcome.Failed)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "Row 2: Unexpected error:")
	assert.Contains(t, outcome.Errors[0], "disk full")
}

func TestImportNativeDateCellsStrict(t *testing.T) {
	store := newFakeStore()
	im := importing.NewImporter(store)

	// Genuine Excel date cells are stored as serial numbers and rendered by
	// the stock style as "m-d-yy"; the reader must hand the importer the
	// full date regardless.
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1",
		&[]any{"Forum", "Case No.", "Next Hearing Date"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2",
		&[]any{"HC", "WP 1/2026", time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	outcome := im.ImportBytes(context.Background(), buf.Bytes(), 1, true)
	assert.Equal(t, 1, outcome.Success)
	assert.Zero(t, outcome.Failed)
	assert.Empty(t, outcome.Errors)
	require.Len(t, store.created, 1)
	require.NotNil(t, store.created[0].NextHearingDate())
	assert.Equal(t, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), *store.created[0].NextHearingDate())
}

func TestImportStrictDateFailure(t *testing.T) {
	store := newFakeStore()
	im := importing.NewImporter(store)

	data := workbook(t,
		[]string{"Forum", "Case No.", "Next Hearing Date"},
		[]string{"HC", "WP 1/2026", "someday"},
	)

	outcome := im.ImportBytes(context.Background(), data, 1, true)
	assert.Equal(t, 1, outcome.Failed)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "Invalid date format for 'Next Hearing Date': 'someday'")

	// Lenient mode coerces the same cell to no date.
	outcome = im.ImportBytes(context.Background(), data, 1, false)
	assert.Equal(t, 1, outcome.Success)
	require.Len(t, store.created, 1)
	assert.Nil(t, store.created[0].NextHearingDate())
}

func TestImportUnrecognizedColumnsReported(t *testing.T) {
	im := importing.NewImporter(newFakeStore())

	data := workbook(t,
		[]string{"Forum", "Case No.", "Remarks"},
		[]string{"HC", "WP 1/2026", "urgent"},
	)
	outcome := im.ImportBytes(context.Background(), data, 1, true)
	assert.Equal(t, 1, outcome.Success)
	require.Len(t, outcome.Unrecognized, 1)
	assert.Contains(t, outcome.Unrecognized[0], "Remarks")
}

func TestImportPartySlotNumbersMirrorColumns(t *testing.T) {
	store := newFakeStore()
	im := importing.NewImporter(store)

	// Petitioner 1 is blank; petitioner 2 keeps slot number 2.
	data := workbook(t,
		[]string{"Forum", "Case No.", "Petitioner 1 Name", "Petitioner 2 Name", "Respondent 1 Name"},
		[]string{"HC", "WP 1/2026", "", "Beta Ltd", "Union of India"},
	)
	outcome := im.ImportBytes(context.Background(), data, 1, true)
	require.Equal(t, 1, outcome.Success)
	require.Len(t, store.created, 1)

	parties := store.created[0].Parties()
	require.Len(t, parties, 2)
	assert.Equal(t, caserecord.PartyPetitioner, parties[0].Type())
	assert.Equal(t, 2, parties[0].Number())
	assert.Equal(t, "Beta Ltd", parties[0].Name())
	assert.Equal(t, caserecord.PartyRespondent, parties[1].Type())
	assert.Equal(t, 1, parties[1].Number())
}
