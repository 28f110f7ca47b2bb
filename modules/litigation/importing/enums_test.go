package importing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/modules/litigation/importing"
)

func TestParseForum(t *testing.T) {
	aliases := map[string]caserecord.Forum{
		"CAT":                             caserecord.ForumCAT,
		"Central Administrative Tribunal": caserecord.ForumCAT,
		"hc":                              caserecord.ForumHC,
		"High Court":                      caserecord.ForumHC,
		"HIGH-COURT":                      caserecord.ForumHC,
		"SC":                              caserecord.ForumSC,
		"supreme court":                   caserecord.ForumSC,
		"NGT":                             caserecord.ForumOther,
		"Tribunal":                        caserecord.ForumOther,
	}
	for input, want := range aliases {
		got, err := importing.ParseForum(input, true)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestParseForumStrictFailures(t *testing.T) {
	_, err := importing.ParseForum("", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Forum is required")

	_, err = importing.ParseForum("District Court", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid forum 'District Court'")
	assert.Contains(t, err.Error(), "Valid values:")
}

func TestParseForumLenientFallsBack(t *testing.T) {
	got, err := importing.ParseForum("", false)
	require.NoError(t, err)
	assert.Equal(t, caserecord.ForumOther, got)

	got, err = importing.ParseForum("District Court", false)
	require.NoError(t, err)
	assert.Equal(t, caserecord.ForumOther, got)
}

func TestParseStatus(t *testing.T) {
	aliases := map[string]caserecord.Status{
		"Filed":                 caserecord.StatusFiled,
		"new":                   caserecord.StatusFiled,
		"Admitted":              caserecord.StatusAdmission,
		"Under Hearing":         caserecord.StatusHearing,
		"Closed":                caserecord.StatusDismissed,
		"Adjourned":             caserecord.StatusAdjourned,
		"Reserved for Judgment": caserecord.StatusReserved,
		"Disposed":              caserecord.StatusAllowed,
	}
	for input, want := range aliases {
		got, err := importing.ParseStatus(input, true)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestParseStatusDefaultsAndFailures(t *testing.T) {
	// Absence defaults to Filed in both modes.
	for _, strict := range []bool{true, false} {
		got, err := importing.ParseStatus("", strict)
		require.NoError(t, err)
		assert.Equal(t, caserecord.StatusFiled, got)
	}

	_, err := importing.ParseStatus("Limbo", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid case status 'Limbo'")

	got, err := importing.ParseStatus("Limbo", false)
	require.NoError(t, err)
	assert.Equal(t, caserecord.StatusFiled, got)
}

func TestParseAffidavitStatus(t *testing.T) {
	got, err := importing.ParseAffidavitStatus("PWC Submitted", true)
	require.NoError(t, err)
	assert.Equal(t, caserecord.AffidavitPWCToSC, got)

	got, err = importing.ParseAffidavitStatus("draft affidavit received", true)
	require.NoError(t, err)
	assert.Equal(t, caserecord.AffidavitDraftRecv, got)

	for _, strict := range []bool{true, false} {
		got, err = importing.ParseAffidavitStatus("", strict)
		require.NoError(t, err)
		assert.Equal(t, caserecord.AffidavitNone, got)
	}

	_, err = importing.ParseAffidavitStatus("misplaced", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid affidavit status 'misplaced'")

	got, err = importing.ParseAffidavitStatus("misplaced", false)
	require.NoError(t, err)
	assert.Equal(t, caserecord.AffidavitNone, got)
}
