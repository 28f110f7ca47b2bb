package importing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdesk/courtdesk/modules/litigation/importing"
	"github.com/courtdesk/courtdesk/pkg/excel"
)

func TestSampleTemplate(t *testing.T) {
	data, err := importing.SampleTemplate()
	require.NoError(t, err)

	book, err := excel.ReadBook(data)
	require.NoError(t, err)
	assert.Equal(t, "Cases", book.Sheet)
	require.Len(t, book.Rows, 1)

	// Every template header resolves to a canonical field, and none are
	// flagged as unrecognized.
	m := importing.ResolveColumns(book.Headers)
	for _, h := range book.Headers {
		found := false
		for f := range m {
			if m.Header(f) == h {
				found = true
				break
			}
		}
		assert.True(t, found, "header %q did not resolve", h)
	}
	assert.Empty(t, importing.UnrecognizedHeaders(book.Headers, m))
}

func TestSampleTemplateRowImports(t *testing.T) {
	data, err := importing.SampleTemplate()
	require.NoError(t, err)

	store := newFakeStore()
	im := importing.NewImporter(store)
	outcome := im.ImportBytes(context.Background(), data, 1, true)
	assert.Equal(t, 1, outcome.Success)
	assert.Zero(t, outcome.Failed)
	assert.Empty(t, outcome.Errors)
}
