package shift

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompanyWeekRow is one shift record joined with its owner, for the
// admin week view and the company exports.
type CompanyWeekRow struct {
	UserID       string
	UserName     string
	MemberNumber *int64
	DayKey       string
	LNStart      string
	LNEnd        string
	LNHours      float64
	DNStart      string
	DNEnd        string
	DNHours      float64
}

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, rec *ShiftRecord) error
	FindWeekByUser(ctx context.Context, userID string, weekStart time.Time) ([]ShiftRecord, error)
	FindWeekByCompany(ctx context.Context, companyID string, weekStart time.Time) ([]CompanyWeekRow, error)
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

// Upsert writes the record and overwrites any existing record in the
// same (user, week, day) slot. Last write wins.
func (r *repository) Upsert(ctx context.Context, rec *ShiftRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "week_start"}, {Name: "day_key"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"company_id",
				"ln_start", "ln_end", "ln_hours",
				"dn_start", "dn_end", "dn_hours",
				"updated_at",
			}),
		}).
		Create(rec).Error
}

func (r *repository) FindWeekByUser(ctx context.Context, userID string, weekStart time.Time) ([]ShiftRecord, error) {
	var records []ShiftRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("week_start = ?", weekStart).
		Find(&records).Error
	return records, err
}

func (r *repository) FindWeekByCompany(ctx context.Context, companyID string, weekStart time.Time) ([]CompanyWeekRow, error) {
	var rows []CompanyWeekRow
	err := r.db.WithContext(ctx).
		Table("shift_records sr").
		Select(`sr.user_id, users.name AS user_name, users.member_number,
			sr.day_key,
			sr.ln_start, sr.ln_end, sr.ln_hours,
			sr.dn_start, sr.dn_end, sr.dn_hours`).
		Joins("JOIN users ON users.id = sr.user_id").
		Where("sr.company_id = ?", companyID).
		Where("sr.week_start = ?", weekStart).
		Order("users.member_number ASC NULLS LAST, users.name ASC, sr.day_key ASC").
		Scan(&rows).Error
	return rows, err
}
