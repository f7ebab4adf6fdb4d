package member

import (
	"context"
	"database/sql"
	"time"

	"github.com/kiwidressing/Maruschedule/internal/tenant"

	"gorm.io/gorm"
)

// MemberRow is the membership view over the users table. The member
// module never touches credentials, so it reads a projection instead
// of the full user record.
type MemberRow struct {
	ID           string
	Name         string
	Email        string
	Role         string
	Status       string
	MemberNumber *int64
	CreatedAt    time.Time
}

//go:generate mockgen -source=member_repo.go -destination=mock/member_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	ListActiveByCompany(ctx context.Context, companyID string) ([]MemberRow, error)
	FindByIDAndCompany(ctx context.Context, companyID, userID string) (*MemberRow, error)
	UpdateRole(ctx context.Context, companyID, userID, role string) error
	SetStatus(ctx context.Context, companyID, userID, status string, clearCompany bool) error
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

const memberColumns = "id, name, email, role, status, member_number, created_at"

func (r *repository) ListActiveByCompany(ctx context.Context, companyID string) ([]MemberRow, error) {
	var rows []MemberRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select(memberColumns).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", "ACTIVE").
		Where("deleted_at IS NULL").
		Order("member_number ASC NULLS LAST, name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, userID string) (*MemberRow, error) {
	var row MemberRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select(memberColumns).
		Where("id = ?", userID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) UpdateRole(ctx context.Context, companyID, userID, role string) error {
	return r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Where("company_id = ?", companyID).
		Updates(map[string]any{
			"role":       role,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repository) SetStatus(ctx context.Context, companyID, userID, status string, clearCompany bool) error {
	updates := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if clearCompany {
		updates["company_id"] = nil
	}

	return r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Where("company_id = ?", companyID).
		Updates(updates).Error
}
