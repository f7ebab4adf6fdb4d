package company

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	companyerrors "github.com/kiwidressing/Maruschedule/internal/company/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	// Create is called from the owner registration flow, never from a
	// route of its own.
	Create(ctx context.Context, name, customCode, createdBy string) (CompanyResponse, error)
	// Discard hard-deletes a company whose owner registration failed
	// after the company row was written.
	Discard(ctx context.Context, id string) error
	GetMine(ctx context.Context, companyID string) (CompanyResponse, error)
	GetByInviteCode(ctx context.Context, code string) (CompanyPublicResponse, error)
	Rename(ctx context.Context, companyID string, req UpdateCompanyRequest) (CompanyResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, name, customCode, createdBy string) (CompanyResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CompanyResponse{}, companyerrors.ErrCompanyNameRequired
	}
	createdByUUID, err := uuid.Parse(createdBy)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCreatedBy
	}

	code := strings.ToUpper(strings.TrimSpace(customCode))
	if code != "" {
		if err := ValidateInviteCode(code); err != nil {
			return CompanyResponse{}, err
		}
		taken, err := s.repo.InviteCodeTaken(ctx, code)
		if err != nil {
			return CompanyResponse{}, err
		}
		if taken {
			s.logger.Warn("create company invite code collision", zap.String("invite_code", code))
			return CompanyResponse{}, companyerrors.ErrInviteCodeTaken
		}
	} else {
		code, err = NewUniqueInviteCode(ctx, s.repo)
		if err != nil {
			s.logger.Error("create company code generation failed", zap.Error(err))
			return CompanyResponse{}, err
		}
	}

	c := &Company{
		ID:         uuid.New(),
		Name:       name,
		InviteCode: code,
		Status:     StatusActive,
		CreatedBy:  createdByUUID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create company begin tx failed", zap.Error(err))
		return CompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, c); err != nil {
		s.logger.Error("create company persist failed", zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create company commit failed", zap.Error(err))
		return CompanyResponse{}, err
	}
	s.logger.Info("create company success",
		zap.String("company_id", c.ID.String()),
		zap.String("invite_code", c.InviteCode),
	)

	return mapToResponse(*c), nil
}

func (s *service) Discard(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return companyerrors.ErrInvalidCompanyID
	}

	s.logger.Warn("discarding company after failed registration", zap.String("company_id", id))
	return s.repo.HardDelete(ctx, id)
}

func (s *service) GetMine(ctx context.Context, companyID string) (CompanyResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	c, err := s.repo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) GetByInviteCode(ctx context.Context, code string) (CompanyPublicResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := ValidateInviteCode(code); err != nil {
		return CompanyPublicResponse{}, err
	}

	c, err := s.repo.FindActiveByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyPublicResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyPublicResponse{}, err
	}
	return CompanyPublicResponse{ID: c.ID.String(), Name: c.Name}, nil
}

func (s *service) Rename(ctx context.Context, companyID string, req UpdateCompanyRequest) (CompanyResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("rename company begin tx failed", zap.Error(err))
		return CompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}
	if c.Status != StatusActive {
		return CompanyResponse{}, companyerrors.ErrCompanyDisbanded
	}

	c.Name = strings.TrimSpace(req.Name)
	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("rename company persist failed", zap.Error(err))
		return CompanyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("rename company commit failed", zap.Error(err))
		return CompanyResponse{}, err
	}
	s.logger.Info("rename company success", zap.String("company_id", companyID))

	return mapToResponse(*c), nil
}

func mapToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		InviteCode: c.InviteCode,
		Status:     c.Status,
		CreatedBy:  c.CreatedBy.String(),
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}
