package rollup_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/kiwidressing/Maruschedule/internal/events"
	"github.com/kiwidressing/Maruschedule/internal/rollup"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRollupRepository struct {
	markAppliedFn       func(ctx context.Context, archiveID string) (bool, error)
	addToRollupFn       func(ctx context.Context, companyID string, weekStart time.Time, weekday, saturday, sunday, total float64) error
	findByCompanyWeekFn func(ctx context.Context, companyID string, weekStart time.Time) (*rollup.CompanyWeekRollup, error)
}

func (f *fakeRollupRepository) WithTx(tx *sql.Tx) rollup.Repository { return f }
func (f *fakeRollupRepository) MarkApplied(ctx context.Context, archiveID string) (bool, error) {
	if f.markAppliedFn != nil {
		return f.markAppliedFn(ctx, archiveID)
	}
	return true, nil
}
func (f *fakeRollupRepository) AddToRollup(ctx context.Context, companyID string, weekStart time.Time, weekday, saturday, sunday, total float64) error {
	if f.addToRollupFn != nil {
		return f.addToRollupFn(ctx, companyID, weekStart, weekday, saturday, sunday, total)
	}
	return nil
}
func (f *fakeRollupRepository) FindByCompanyWeek(ctx context.Context, companyID string, weekStart time.Time) (*rollup.CompanyWeekRollup, error) {
	if f.findByCompanyWeekFn != nil {
		return f.findByCompanyWeekFn(ctx, companyID, weekStart)
	}
	return nil, gorm.ErrRecordNotFound
}

type rollupServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service rollup.Service
	repo    *fakeRollupRepository
}

func setupRollupServiceTest(t *testing.T) *rollupServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeRollupRepository{}
	svc := rollup.NewService(db, repo)

	return &rollupServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func archivedEvent(companyID string) events.WeekArchivedEvent {
	return events.WeekArchivedEvent{
		EventType:     "week_archived",
		ArchiveID:     uuid.New().String(),
		UserID:        uuid.New().String(),
		CompanyID:     companyID,
		WeekStart:     "2026-08-24",
		WeekdayHours:  40,
		SaturdayHours: 4,
		SundayHours:   0,
		TotalHours:    44,
		OccurredAt:    time.Now().UTC(),
	}
}

func TestRollupService_HandleWeekArchived(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success adds the archive buckets", func(t *testing.T) {
		deps := setupRollupServiceTest(t)
		defer deps.db.Close()

		event := archivedEvent(companyID)
		expectTx(t, deps.sqlMock, true)
		deps.repo.markAppliedFn = func(ctx context.Context, archiveID string) (bool, error) {
			assert.Equal(t, event.ArchiveID, archiveID)
			return true, nil
		}
		added := false
		deps.repo.addToRollupFn = func(ctx context.Context, cid string, ws time.Time, weekday, saturday, sunday, total float64) error {
			added = true
			assert.Equal(t, companyID, cid)
			assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), ws)
			assert.Equal(t, 40.0, weekday)
			assert.Equal(t, 4.0, saturday)
			assert.Equal(t, 44.0, total)
			return nil
		}

		err := deps.service.HandleWeekArchived(ctx, event)

		assert.NoError(t, err)
		assert.True(t, added)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success redelivered archive applied once", func(t *testing.T) {
		deps := setupRollupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.markAppliedFn = func(ctx context.Context, archiveID string) (bool, error) {
			return false, nil
		}
		deps.repo.addToRollupFn = func(ctx context.Context, cid string, ws time.Time, weekday, saturday, sunday, total float64) error {
			t.Fatal("redelivered archive must not be added again")
			return nil
		}

		err := deps.service.HandleWeekArchived(ctx, archivedEvent(companyID))

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success individual archive is ignored", func(t *testing.T) {
		deps := setupRollupServiceTest(t)
		defer deps.db.Close()

		deps.repo.addToRollupFn = func(ctx context.Context, cid string, ws time.Time, weekday, saturday, sunday, total float64) error {
			t.Fatal("individual archives have no rollup")
			return nil
		}

		err := deps.service.HandleWeekArchived(ctx, archivedEvent(""))

		assert.NoError(t, err)
	})

	t.Run("negative add failure rolls the claim back", func(t *testing.T) {
		deps := setupRollupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.addToRollupFn = func(ctx context.Context, cid string, ws time.Time, weekday, saturday, sunday, total float64) error {
			return assert.AnError
		}

		err := deps.service.HandleWeekArchived(ctx, archivedEvent(companyID))

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestRollupService_Get(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupRollupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByCompanyWeekFn = func(ctx context.Context, cid string, ws time.Time) (*rollup.CompanyWeekRollup, error) {
			return &rollup.CompanyWeekRollup{
				CompanyID:     companyID,
				WeekStart:     ws,
				ArchiveCount:  3,
				WeekdayHours:  120,
				SaturdayHours: 12,
				SundayHours:   8,
				TotalHours:    140,
				UpdatedAt:     time.Now().UTC(),
			}, nil
		}

		resp, err := deps.service.Get(ctx, companyID.String(), "2026-08-24")

		assert.NoError(t, err)
		assert.Equal(t, int64(3), resp.ArchiveCount)
		assert.Equal(t, 140.0, resp.TotalHours)
		assert.Equal(t, "2026-08-24", resp.WeekStart)
	})

	t.Run("negative nothing archived that week", func(t *testing.T) {
		deps := setupRollupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Get(ctx, companyID.String(), "2026-08-24")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no rollup")
	})
}
