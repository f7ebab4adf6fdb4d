package rollup

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kiwidressing/Maruschedule/internal/events"
	rolluperrors "github.com/kiwidressing/Maruschedule/internal/rollup/errors"
	"github.com/kiwidressing/Maruschedule/internal/shift"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rollup_service.go -destination=mock/rollup_service_mock.go -package=mock
type Service interface {
	HandleWeekArchived(ctx context.Context, event events.WeekArchivedEvent) error
	Get(ctx context.Context, companyID, weekStart string) (RollupResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("rollup.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rollup.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// HandleWeekArchived folds one archive into its company-week bucket.
// Redeliveries are absorbed through the applied-archives claim, so the
// arithmetic runs at most once per archive id.
func (s *service) HandleWeekArchived(ctx context.Context, event events.WeekArchivedEvent) error {
	if event.CompanyID == "" {
		// Individual accounts have no company bucket to land in.
		return nil
	}
	if _, err := uuid.Parse(event.CompanyID); err != nil {
		s.logger.Warn("week archived event with bad company id",
			zap.String("archive_id", event.ArchiveID),
			zap.String("company_id", event.CompanyID),
		)
		return nil
	}
	weekStart, err := shift.ParseWeekStart(event.WeekStart)
	if err != nil {
		s.logger.Warn("week archived event with bad week start",
			zap.String("archive_id", event.ArchiveID),
			zap.String("week_start", event.WeekStart),
		)
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("rollup begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	first, err := qtx.MarkApplied(ctx, event.ArchiveID)
	if err != nil {
		s.logger.Error("rollup claim failed", zap.Error(err))
		return err
	}
	if !first {
		s.logger.Debug("rollup skipping redelivered archive",
			zap.String("archive_id", event.ArchiveID),
		)
		return nil
	}

	if err := qtx.AddToRollup(ctx, event.CompanyID, weekStart,
		event.WeekdayHours, event.SaturdayHours, event.SundayHours, event.TotalHours,
	); err != nil {
		s.logger.Error("rollup add failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("rollup commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("rollup applied",
		zap.String("archive_id", event.ArchiveID),
		zap.String("company_id", event.CompanyID),
		zap.String("week_start", event.WeekStart),
		zap.Float64("total_hours", event.TotalHours),
	)
	return nil
}

func (s *service) Get(ctx context.Context, companyID, weekStart string) (RollupResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return RollupResponse{}, rolluperrors.ErrInvalidCompanyID
	}
	ws, err := shift.ParseWeekStart(weekStart)
	if err != nil {
		return RollupResponse{}, rolluperrors.ErrInvalidWeekStart
	}

	rollup, err := s.repo.FindByCompanyWeek(ctx, companyID, ws)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RollupResponse{}, rolluperrors.ErrRollupNotFound
		}
		return RollupResponse{}, err
	}

	return RollupResponse{
		CompanyID:     rollup.CompanyID.String(),
		WeekStart:     shift.FormatWeekStart(rollup.WeekStart),
		ArchiveCount:  rollup.ArchiveCount,
		WeekdayHours:  rollup.WeekdayHours,
		SaturdayHours: rollup.SaturdayHours,
		SundayHours:   rollup.SundayHours,
		TotalHours:    rollup.TotalHours,
		UpdatedAt:     rollup.UpdatedAt.Format(time.RFC3339),
	}, nil
}
