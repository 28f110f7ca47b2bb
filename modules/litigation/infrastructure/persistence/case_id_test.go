package persistence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdesk/courtdesk/modules/litigation/infrastructure/persistence"
)

func TestFormatCaseID(t *testing.T) {
	assert.Equal(t, "2024001", persistence.FormatCaseID(2024, 1))
	assert.Equal(t, "2024042", persistence.FormatCaseID(2024, 42))
	assert.Equal(t, "2024999", persistence.FormatCaseID(2024, 999))
	// Past three digits the id simply grows; padding is a minimum.
	assert.Equal(t, "20241000", persistence.FormatCaseID(2024, 1000))
}

func TestParseCaseSequence(t *testing.T) {
	seq, err := persistence.ParseCaseSequence("2024007")
	require.NoError(t, err)
	assert.Equal(t, 7, seq)

	seq, err = persistence.ParseCaseSequence("20241000")
	require.NoError(t, err)
	assert.Equal(t, 1000, seq)

	_, err = persistence.ParseCaseSequence("2024")
	require.Error(t, err)

	_, err = persistence.ParseCaseSequence("2024abc")
	require.Error(t, err)
}

func TestCaseIDRoundTrip(t *testing.T) {
	for _, seq := range []int{1, 99, 999, 1000, 12345} {
		id := persistence.FormatCaseID(2025, seq)
		got, err := persistence.ParseCaseSequence(id)
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	}
}
