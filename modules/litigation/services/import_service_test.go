package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/modules/litigation/importing"
	"github.com/courtdesk/courtdesk/modules/litigation/services"
	"github.com/courtdesk/courtdesk/pkg/excel"
)

func buildWorkbook(t *testing.T, headers []string, rows ...[]string) []byte {
	t.Helper()
	b := excel.NewSheetBuilder("Cases").Headers(headers...)
	for _, row := range rows {
		b.AddRow(row...)
	}
	data, err := b.Bytes()
	require.NoError(t, err)
	return data
}

func TestImportService_Import(t *testing.T) {
	repo := newMemoryCaseRepo()
	bus := &recordingBus{}
	svc := services.NewImportService(importing.NewImporter(repo), bus)
	ctx := testContext(9)

	data := buildWorkbook(t,
		[]string{"Forum", "Case No.", "Petitioner 1 Name"},
		[]string{"HC", "WP(C) 10/2026", "Acme Ltd"},
		[]string{"Supreme Court", "SLP 22/2026", "State of Kerala"},
	)

	outcome, err := svc.Import(ctx, data, true)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Success)
	assert.Zero(t, outcome.Failed)
	assert.Empty(t, outcome.Errors)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	events := bus.published()
	require.Len(t, events, 1)
	ev, ok := events[0].(*importing.CompletedEvent)
	require.True(t, ok)
	assert.Equal(t, outcome.BatchID, ev.BatchID)
	assert.Equal(t, int64(9), ev.Actor)
	assert.True(t, ev.Strict)
	assert.Equal(t, 2, ev.Success)
}

func TestImportService_ImportRequiresUser(t *testing.T) {
	svc := services.NewImportService(importing.NewImporter(newMemoryCaseRepo()), &recordingBus{})
	_, err := svc.Import(testContextNoUser(), []byte("junk"), true)
	require.Error(t, err)
}

func TestImportService_PartialFailureStillCompletes(t *testing.T) {
	repo := newMemoryCaseRepo()
	svc := services.NewImportService(importing.NewImporter(repo), &recordingBus{})
	ctx := testContext(9)

	data := buildWorkbook(t,
		[]string{"Forum", "Case No."},
		[]string{"HC", "WP(C) 10/2026"},
		[]string{"Mars Tribunal", "WP(C) 11/2026"},
	)

	outcome, err := svc.Import(ctx, data, true)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Success)
	assert.Equal(t, 1, outcome.Failed)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "Row 3:")
	assert.Contains(t, outcome.Errors[0], "Invalid forum 'Mars Tribunal'")
}

func TestImportService_Template(t *testing.T) {
	svc := services.NewImportService(importing.NewImporter(newMemoryCaseRepo()), &recordingBus{})

	data, err := svc.Template()
	require.NoError(t, err)

	book, err := excel.ReadBook(data)
	require.NoError(t, err)
	assert.Contains(t, book.Headers, "Forum")
	assert.Contains(t, book.Headers, "Petitioner 1 Name")
	require.Len(t, book.Rows, 1)
	assert.Equal(t, "HC", book.Cell(0, "Forum"))

	// The sample row passes a strict import of the generated template.
	repo := newMemoryCaseRepo()
	importSvc := services.NewImportService(importing.NewImporter(repo), &recordingBus{})
	outcome, err := importSvc.Import(testContext(1), data, true)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Success)
	assert.Zero(t, outcome.Failed)

	created, _, err := repo.GetPaginated(testContext(1), &caserecord.FindParams{})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, caserecord.ForumHC, created[0].Forum())
	assert.Len(t, created[0].PartiesOf(caserecord.PartyPetitioner), 1)
	assert.Len(t, created[0].PartiesOf(caserecord.PartyRespondent), 1)
}
