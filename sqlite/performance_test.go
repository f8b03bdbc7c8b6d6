package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/stagenote"
	"github.com/fwojciec/stagenote/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceService_CreateAndFind(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := sqlite.NewPerformanceService(db)
	ctx := context.Background()

	rec := &stagenote.PerformanceRecord{
		SourceURL:    "https://example.com/concert/1",
		ScrapedAt:    time.Date(2024, 11, 20, 10, 30, 0, 0, time.UTC),
		Title:        "2025 신년음악회",
		Date:         "2024.11.20 (수) 19:30",
		Venue:        "예술의전당 콘서트홀",
		Performers:   []string{"정명훈 - 지휘", "조성진 (피아노)"},
		Program:      []string{"베토벤 교향곡 제9번 '합창'"},
		Price:        "R석 150,000원, S석 100,000원",
		OCRExtracted: true,
		RawText:      "2025 신년음악회 예술의전당",
	}
	require.NoError(t, svc.CreatePerformance(ctx, rec))
	require.NotEmpty(t, rec.ID)

	got, err := svc.FindPerformanceByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Title, got.Title)
	assert.Equal(t, rec.Performers, got.Performers)
	assert.Equal(t, rec.Program, got.Program)
	assert.Equal(t, rec.ScrapedAt, got.ScrapedAt)
	assert.True(t, got.OCRExtracted)
}

func TestPerformanceService_Create_RejectsInvalidRecord(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewPerformanceService(mustOpenDB(t))

	err := svc.CreatePerformance(context.Background(), &stagenote.PerformanceRecord{})
	require.Error(t, err)
	assert.Equal(t, stagenote.EINVALID, stagenote.ErrorCode(err))
}

func TestPerformanceService_Find_SortedAndFiltered(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewPerformanceService(mustOpenDB(t))
	ctx := context.Background()

	base := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	urls := []string{"https://a.example/1", "https://b.example/1", "https://a.example/1"}
	for i, u := range urls {
		require.NoError(t, svc.CreatePerformance(ctx, &stagenote.PerformanceRecord{
			SourceURL: u,
			ScrapedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	recs, err := svc.FindPerformances(ctx, stagenote.PerformanceFilter{})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.True(t, recs[0].ScrapedAt.After(recs[1].ScrapedAt))
	assert.True(t, recs[1].ScrapedAt.After(recs[2].ScrapedAt))

	u := "https://a.example/1"
	recs, err = svc.FindPerformances(ctx, stagenote.PerformanceFilter{SourceURL: &u})
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	recs, err = svc.FindPerformances(ctx, stagenote.PerformanceFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestPerformanceService_FindPerformanceByID_NotFound(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewPerformanceService(mustOpenDB(t))

	_, err := svc.FindPerformanceByID(context.Background(), "missing")
	assert.Equal(t, stagenote.ENOTFOUND, stagenote.ErrorCode(err))
}

func TestPerformanceService_Delete(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewPerformanceService(mustOpenDB(t))
	ctx := context.Background()

	rec := &stagenote.PerformanceRecord{SourceURL: "https://example.com/concert/1"}
	require.NoError(t, svc.CreatePerformance(ctx, rec))
	require.NoError(t, svc.DeletePerformance(ctx, rec.ID))

	_, err := svc.FindPerformanceByID(ctx, rec.ID)
	assert.Equal(t, stagenote.ENOTFOUND, stagenote.ErrorCode(err))

	err = svc.DeletePerformance(ctx, rec.ID)
	assert.Equal(t, stagenote.ENOTFOUND, stagenote.ErrorCode(err))
}

// mustOpenDB opens an in-memory database and closes it when the test ends.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}
