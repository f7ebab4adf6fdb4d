package joinrequest

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// PendingRow is a pending request joined with the requesting user,
// for the admin review list.
type PendingRow struct {
	ID            string
	UserID        string
	UserName      string
	UserEmail     string
	RequestedRole string
	CreatedAt     time.Time
}

//go:generate mockgen -source=joinrequest_repo.go -destination=mock/joinrequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, jr *JoinRequest) error
	HasPending(ctx context.Context, companyID, userID string) (bool, error)
	FindPendingByCompany(ctx context.Context, companyID string) ([]PendingRow, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*JoinRequest, error)
	// MarkResolved flips a PENDING request to the target status and
	// reports whether this call won the transition. A false return
	// with no error means someone else resolved it first.
	MarkResolved(ctx context.Context, id, status, resolvedBy string) (bool, error)
	// ActivateMember finalizes the requesting user on approval.
	ActivateMember(ctx context.Context, userID, companyID, role string, memberNumber int64) error
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

func (r *repository) Create(ctx context.Context, jr *JoinRequest) error {
	return r.db.WithContext(ctx).Create(jr).Error
}

func (r *repository) HasPending(ctx context.Context, companyID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&JoinRequest{}).
		Where("company_id = ?", companyID).
		Where("user_id = ?", userID).
		Where("status = ?", StatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindPendingByCompany(ctx context.Context, companyID string) ([]PendingRow, error) {
	var rows []PendingRow
	err := r.db.WithContext(ctx).
		Table("join_requests jr").
		Select(`jr.id, jr.user_id, users.name AS user_name, users.email AS user_email,
			jr.requested_role, jr.created_at`).
		Joins("JOIN users ON users.id = jr.user_id").
		Where("jr.company_id = ?", companyID).
		Where("jr.status = ?", StatusPending).
		Order("jr.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*JoinRequest, error) {
	var jr JoinRequest
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&jr, "id = ?", id).Error
	return &jr, err
}

// MarkResolved and ActivateMember run on the caller's transaction when
// one is set, so a failure between them rolls back both writes together
// with the outbox insert.

func (r *repository) MarkResolved(ctx context.Context, id, status, resolvedBy string) (bool, error) {
	now := time.Now().UTC()

	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx,
			`UPDATE join_requests
			 SET status = $1, resolved_by = $2, resolved_at = $3, updated_at = $3
			 WHERE id = $4 AND status = $5`,
			status, resolvedBy, now, id, StatusPending,
		)
		if err != nil {
			return false, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return false, err
		}
		return affected > 0, nil
	}

	res := r.db.WithContext(ctx).
		Model(&JoinRequest{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":      status,
			"resolved_by": resolvedBy,
			"resolved_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ActivateMember(ctx context.Context, userID, companyID, role string, memberNumber int64) error {
	now := time.Now().UTC()

	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`UPDATE users
			 SET company_id = $1, role = $2, status = 'ACTIVE', member_number = $3, updated_at = $4
			 WHERE id = $5`,
			companyID, role, memberNumber, now, userID,
		)
		return err
	}

	return r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Updates(map[string]any{
			"company_id":    companyID,
			"role":          role,
			"status":        "ACTIVE",
			"member_number": memberNumber,
			"updated_at":    now,
		}).Error
}
