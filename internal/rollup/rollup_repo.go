package rollup

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rollup_repo.go -destination=mock/rollup_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	MarkApplied(ctx context.Context, archiveID string) (bool, error)
	AddToRollup(ctx context.Context, companyID string, weekStart time.Time, weekday, saturday, sunday, total float64) error
	FindByCompanyWeek(ctx context.Context, companyID string, weekStart time.Time) (*CompanyWeekRollup, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// MarkApplied claims the archive id. The primary key makes the claim
// exclusive, so a redelivered event returns false here and the caller
// skips the arithmetic.
func (r *repository) MarkApplied(ctx context.Context, archiveID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Exec(
			`INSERT INTO rollup_applied_archives (archive_id, applied_at)
			 VALUES (?, ?) ON CONFLICT (archive_id) DO NOTHING`,
			archiveID, time.Now().UTC(),
		)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) AddToRollup(ctx context.Context, companyID string, weekStart time.Time, weekday, saturday, sunday, total float64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO company_week_rollups
			(company_id, week_start, archive_count,
			 weekday_hours, saturday_hours, sunday_hours, total_hours,
			 created_at, updated_at)
		 VALUES (?, ?, 1, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (company_id, week_start) DO UPDATE SET
			archive_count  = company_week_rollups.archive_count + 1,
			weekday_hours  = company_week_rollups.weekday_hours + EXCLUDED.weekday_hours,
			saturday_hours = company_week_rollups.saturday_hours + EXCLUDED.saturday_hours,
			sunday_hours   = company_week_rollups.sunday_hours + EXCLUDED.sunday_hours,
			total_hours    = company_week_rollups.total_hours + EXCLUDED.total_hours,
			updated_at     = EXCLUDED.updated_at`,
		companyID, weekStart, weekday, saturday, sunday, total, now, now,
	).Error
}

func (r *repository) FindByCompanyWeek(ctx context.Context, companyID string, weekStart time.Time) (*CompanyWeekRollup, error) {
	var rollup CompanyWeekRollup
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("week_start = ?", weekStart).
		Take(&rollup).Error
	if err != nil {
		return nil, err
	}
	return &rollup, nil
}
