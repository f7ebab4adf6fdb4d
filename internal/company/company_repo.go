package company

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Company) error
	FindByID(ctx context.Context, id string) (*Company, error)
	FindActiveByInviteCode(ctx context.Context, code string) (*Company, error)
	InviteCodeTaken(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, c *Company) error
	HardDelete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindActiveByInviteCode(ctx context.Context, code string) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).
		Where("invite_code = ?", code).
		Where("status = ?", StatusActive).
		First(&c).Error
	return &c, err
}

func (r *repository) InviteCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Company{}).
		Where("invite_code = ?", code).
		Where("status = ?", StatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// HardDelete backs out a company whose owner registration failed part
// way. Regular disbanding keeps the row with status DISBANDED.
func (r *repository) HardDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&Company{}, "id = ?", id).Error
}
