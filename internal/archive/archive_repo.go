package archive

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=archive_repo.go -destination=mock/archive_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *ArchiveRecord) error
	ListByUser(ctx context.Context, userID string) ([]ArchiveRecord, error)
	FindByIDAndUser(ctx context.Context, id, userID string) (*ArchiveRecord, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, rec *ArchiveRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]ArchiveRecord, error) {
	var records []ArchiveRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("archived_at DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, id, userID string) (*ArchiveRecord, error) {
	var rec ArchiveRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Take(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete soft deletes and reports whether a row was hit, so the
// service can tell "not yours" apart from "gone".
func (r *repository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Delete(&ArchiveRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
