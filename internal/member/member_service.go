package member

import (
	"context"
	"database/sql"
	"errors"
	"time"

	membererrors "github.com/kiwidressing/Maruschedule/internal/member/errors"
	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusActive      = "ACTIVE"
	StatusRemoved     = "REMOVED"
	StatusSelfRemoved = "SELF_REMOVED"
)

//go:generate mockgen -source=member_service.go -destination=mock/member_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, companyID string) (MemberListResponse, error)
	Promote(ctx context.Context, companyID, actorID, userID string) (MemberResponse, error)
	Remove(ctx context.Context, companyID, actorID, userID string) error
	Withdraw(ctx context.Context, companyID, userID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("member.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("member.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, companyID string) (MemberListResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return MemberListResponse{}, membererrors.ErrInvalidCompanyID
	}

	rows, err := s.repo.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return MemberListResponse{}, err
	}

	resp := MemberListResponse{Members: make([]MemberResponse, len(rows))}
	for i, row := range rows {
		resp.Members[i] = mapToMemberResponse(row)
		switch row.Role {
		case policy.RoleOwner:
			resp.Counts.Owners++
		case policy.RoleAdmin:
			resp.Counts.Admins++
		case policy.RoleEmployee:
			resp.Counts.Employees++
		}
	}
	return resp, nil
}

// Promote raises an active employee to admin. Route-level policy
// already restricts this to the owner, so the service only validates
// the target.
func (s *service) Promote(ctx context.Context, companyID, actorID, userID string) (MemberResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return MemberResponse{}, membererrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return MemberResponse{}, membererrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("promote member begin tx failed", zap.Error(err))
		return MemberResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndCompany(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MemberResponse{}, membererrors.ErrMemberNotFound
		}
		return MemberResponse{}, err
	}
	if row.Status != StatusActive {
		return MemberResponse{}, membererrors.ErrMemberNotActive
	}
	if row.Role != policy.RoleEmployee {
		return MemberResponse{}, membererrors.ErrOnlyEmployeesPromotable
	}

	if err := qtx.UpdateRole(ctx, companyID, userID, policy.RoleAdmin); err != nil {
		s.logger.Error("promote member update failed", zap.Error(err))
		return MemberResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("promote member commit failed", zap.Error(err))
		return MemberResponse{}, err
	}
	s.logger.Info("promote member success",
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
		zap.String("actor_id", actorID),
	)

	row.Role = policy.RoleAdmin
	return mapToMemberResponse(*row), nil
}

func (s *service) Remove(ctx context.Context, companyID, actorID, userID string) error {
	if _, err := uuid.Parse(companyID); err != nil {
		return membererrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return membererrors.ErrInvalidUserID
	}
	if actorID == userID {
		return membererrors.ErrCannotRemoveSelf
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove member begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndCompany(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return membererrors.ErrMemberNotFound
		}
		return err
	}
	if row.Role == policy.RoleOwner {
		return membererrors.ErrCannotRemoveOwner
	}
	if row.Status != StatusActive {
		return membererrors.ErrMemberNotActive
	}

	// The company link stays so past shift records keep their tenant.
	if err := qtx.SetStatus(ctx, companyID, userID, StatusRemoved, false); err != nil {
		s.logger.Error("remove member update failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("remove member commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("remove member success",
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
		zap.String("actor_id", actorID),
	)
	return nil
}

func (s *service) Withdraw(ctx context.Context, companyID, userID string) error {
	if _, err := uuid.Parse(companyID); err != nil {
		return membererrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return membererrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("withdraw member begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndCompany(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return membererrors.ErrMemberNotFound
		}
		return err
	}
	if row.Role == policy.RoleOwner {
		return membererrors.ErrOwnerCannotWithdraw
	}
	if row.Status != StatusActive {
		return membererrors.ErrMemberNotActive
	}

	if err := qtx.SetStatus(ctx, companyID, userID, StatusSelfRemoved, true); err != nil {
		s.logger.Error("withdraw member update failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("withdraw member commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("withdraw member success",
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
	)
	return nil
}

func mapToMemberResponse(row MemberRow) MemberResponse {
	return MemberResponse{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		Role:         row.Role,
		Status:       row.Status,
		MemberNumber: row.MemberNumber,
		JoinedAt:     row.CreatedAt.Format(time.RFC3339),
	}
}
