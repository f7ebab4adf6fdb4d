package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	archiveerrors "github.com/kiwidressing/Maruschedule/internal/archive/errors"
	"github.com/kiwidressing/Maruschedule/internal/events"
	"github.com/kiwidressing/Maruschedule/internal/messaging/kafka"
	"github.com/kiwidressing/Maruschedule/internal/shared/contextutil"
	"github.com/kiwidressing/Maruschedule/internal/shift"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=archive_service.go -destination=mock/archive_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID, companyID string, req CreateArchiveRequest) (ArchiveResponse, error)
	List(ctx context.Context, userID string) ([]ArchiveListItem, error)
	Get(ctx context.Context, userID, id string) (ArchiveResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	shiftRepo shift.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	shiftRepo shift.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("archive.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("archive.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		shiftRepo: shiftRepo,
		outbox:    outbox,
		logger:    l,
	}
}

// Create snapshots the live week as it exists right now. Totals are
// recomputed from the stored records here; nothing the client sends
// beyond week_start and label makes it into the archive.
func (s *service) Create(ctx context.Context, userID, companyID string, req CreateArchiveRequest) (ArchiveResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ArchiveResponse{}, archiveerrors.ErrInvalidUserID
	}

	weekStart, err := shift.ParseWeekStart(req.WeekStart)
	if err != nil {
		return ArchiveResponse{}, archiveerrors.ErrInvalidWeekStart
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create archive begin tx failed", zap.Error(err))
		return ArchiveResponse{}, err
	}
	defer tx.Rollback()

	records, err := s.shiftRepo.WithTx(tx).FindWeekByUser(ctx, userID, weekStart)
	if err != nil {
		s.logger.Error("create archive load week failed", zap.Error(err))
		return ArchiveResponse{}, err
	}
	if len(records) == 0 {
		return ArchiveResponse{}, archiveerrors.ErrEmptyWeek
	}

	days, totals, err := snapshotWeek(records)
	if err != nil {
		return ArchiveResponse{}, err
	}

	daysJSON, err := json.Marshal(days)
	if err != nil {
		s.logger.Error("create archive marshal days failed", zap.Error(err))
		return ArchiveResponse{}, err
	}

	now := time.Now().UTC()
	rec := &ArchiveRecord{
		ID:            uuid.New(),
		UserID:        uid,
		WeekStart:     weekStart,
		Label:         req.Label,
		Days:          daysJSON,
		WeekdayHours:  totals.Weekday,
		SaturdayHours: totals.Saturday,
		SundayHours:   totals.Sunday,
		TotalHours:    totals.Grand(),
		ArchivedAt:    now,
	}
	if companyID != "" {
		cid, err := uuid.Parse(companyID)
		if err != nil {
			return ArchiveResponse{}, archiveerrors.ErrInvalidCompanyID
		}
		rec.CompanyID = &cid
	}

	if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
		s.logger.Error("create archive persist failed", zap.Error(err))
		return ArchiveResponse{}, err
	}

	event := events.WeekArchivedEvent{
		EventType:     "week_archived",
		ArchiveID:     rec.ID.String(),
		UserID:        userID,
		CompanyID:     companyID,
		WeekStart:     shift.FormatWeekStart(weekStart),
		WeekdayHours:  totals.Weekday,
		SaturdayHours: totals.Saturday,
		SundayHours:   totals.Sunday,
		TotalHours:    totals.Grand(),
		OccurredAt:    now,
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal week archived event failed", zap.Error(err))
			return ArchiveResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "archive",
			AggregateID:   rec.ID.String(),
			EventType:     event.EventType,
			Topic:         events.WeekArchivedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create archive outbox persist failed", zap.Error(err))
			return ArchiveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create archive commit failed", zap.Error(err))
		return ArchiveResponse{}, err
	}
	s.logger.Info("create archive success",
		zap.String("archive_id", rec.ID.String()),
		zap.String("user_id", userID),
		zap.String("week_start", event.WeekStart),
		zap.Float64("total_hours", rec.TotalHours),
	)

	return mapToArchiveResponse(rec, days), nil
}

func (s *service) List(ctx context.Context, userID string) ([]ArchiveListItem, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, archiveerrors.ErrInvalidUserID
	}

	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]ArchiveListItem, len(records))
	for i, rec := range records {
		items[i] = ArchiveListItem{
			ID:        rec.ID.String(),
			WeekStart: shift.FormatWeekStart(rec.WeekStart),
			Label:     rec.Label,
			Totals: shift.TotalsResponse{
				WeekdayHours:  rec.WeekdayHours,
				SaturdayHours: rec.SaturdayHours,
				SundayHours:   rec.SundayHours,
				TotalHours:    rec.TotalHours,
			},
			ArchivedAt: rec.ArchivedAt.Format(time.RFC3339),
		}
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, userID, id string) (ArchiveResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return ArchiveResponse{}, archiveerrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ArchiveResponse{}, archiveerrors.ErrInvalidArchiveID
	}

	rec, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ArchiveResponse{}, archiveerrors.ErrArchiveNotFound
		}
		return ArchiveResponse{}, err
	}

	var days []shift.DayResponse
	if err := json.Unmarshal(rec.Days, &days); err != nil {
		s.logger.Error("archive days blob corrupt",
			zap.String("archive_id", id),
			zap.Error(err),
		)
		return ArchiveResponse{}, err
	}

	return mapToArchiveResponse(rec, days), nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return archiveerrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(id); err != nil {
		return archiveerrors.ErrInvalidArchiveID
	}

	hit, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		s.logger.Error("delete archive failed", zap.Error(err))
		return err
	}
	if !hit {
		return archiveerrors.ErrArchiveNotFound
	}

	s.logger.Info("delete archive success",
		zap.String("archive_id", id),
		zap.String("user_id", userID),
	)
	return nil
}

// snapshotWeek expands the stored records into the fixed mon..sun
// order and folds the bucket totals from the same data.
func snapshotWeek(records []shift.ShiftRecord) ([]shift.DayResponse, shift.WeekTotals, error) {
	byDay := make(map[string]shift.ShiftRecord, len(records))
	hours := make(map[string]shift.DayHours, len(records))
	for _, rec := range records {
		byDay[rec.DayKey] = rec
		hours[rec.DayKey] = shift.DayHours{LN: rec.LNHours, DN: rec.DNHours}
	}

	totals, err := shift.ComputeWeekTotals(hours)
	if err != nil {
		return nil, shift.WeekTotals{}, err
	}

	days := make([]shift.DayResponse, 0, len(shift.DayKeys))
	for _, key := range shift.DayKeys {
		day := shift.DayResponse{DayKey: key}
		if rec, ok := byDay[key]; ok {
			day.LNStart = rec.LNStart
			day.LNEnd = rec.LNEnd
			day.LNHours = rec.LNHours
			day.DNStart = rec.DNStart
			day.DNEnd = rec.DNEnd
			day.DNHours = rec.DNHours
			day.DayTotal = rec.LNHours + rec.DNHours
		}
		days = append(days, day)
	}
	return days, totals, nil
}

func mapToArchiveResponse(rec *ArchiveRecord, days []shift.DayResponse) ArchiveResponse {
	return ArchiveResponse{
		ID:        rec.ID.String(),
		WeekStart: shift.FormatWeekStart(rec.WeekStart),
		Label:     rec.Label,
		Days:      days,
		Totals: shift.TotalsResponse{
			WeekdayHours:  rec.WeekdayHours,
			SaturdayHours: rec.SaturdayHours,
			SundayHours:   rec.SundayHours,
			TotalHours:    rec.TotalHours,
		},
		ArchivedAt: rec.ArchivedAt.Format(time.RFC3339),
	}
}
