package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/modules/litigation/services"
)

func TestStatsService_Snapshot(t *testing.T) {
	repo := newMemoryCaseRepo()
	caseSvc := services.NewCaseService(repo, &recordingBus{})
	svc := services.NewStatsService(repo)
	ctx := testContext(1)

	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	_, err := caseSvc.Create(ctx, &caserecord.CreateDTO{Forum: "HC", NextHearingDate: nextWeek})
	require.NoError(t, err)
	_, err = caseSvc.Create(ctx, &caserecord.CreateDTO{Forum: "HC", CaseStatus: "Dismissed"})
	require.NoError(t, err)
	_, err = caseSvc.Create(ctx, &caserecord.CreateDTO{Forum: "SC"})
	require.NoError(t, err)

	stats, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalCases)
	assert.Len(t, stats.UpcomingCases, 1)
	assert.Len(t, stats.RecentlyUpdated, 3)

	byForum := map[caserecord.Forum]int64{}
	for _, fc := range stats.ByForum {
		byForum[fc.Forum] = fc.Count
	}
	assert.EqualValues(t, 2, byForum[caserecord.ForumHC])
	assert.EqualValues(t, 1, byForum[caserecord.ForumSC])

	byStatus := map[caserecord.Status]int64{}
	for _, sc := range stats.ByStatus {
		byStatus[sc.Status] = sc.Count
	}
	assert.EqualValues(t, 2, byStatus[caserecord.StatusFiled])
	assert.EqualValues(t, 1, byStatus[caserecord.StatusDismissed])
}

func TestStatsService_EmptyDatabase(t *testing.T) {
	svc := services.NewStatsService(newMemoryCaseRepo())

	stats, err := svc.Snapshot(testContext(1))
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCases)
	assert.Empty(t, stats.UpcomingCases)
	assert.Empty(t, stats.RecentlyUpdated)
}
