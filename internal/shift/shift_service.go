package shift

import (
	"context"
	"database/sql"

	shifterrors "github.com/kiwidressing/Maruschedule/internal/shift/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, userID, companyID string, req UpsertShiftRequest) (DayResponse, error)
	GetWeek(ctx context.Context, userID, weekStart string) (WeekResponse, error)
	GetCompanyWeek(ctx context.Context, companyID, weekStart string) ([]MemberWeekResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Upsert(ctx context.Context, userID, companyID string, req UpsertShiftRequest) (DayResponse, error) {
	s.logger.Debug("upsert shift requested",
		zap.String("user_id", userID),
		zap.String("week_start", req.WeekStart),
		zap.String("day_key", req.DayKey),
	)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return DayResponse{}, shifterrors.ErrInvalidUserID
	}

	var companyUUID *uuid.UUID
	if companyID != "" {
		parsed, err := uuid.Parse(companyID)
		if err != nil {
			return DayResponse{}, shifterrors.ErrInvalidCompanyID
		}
		companyUUID = &parsed
	}

	weekStart, err := ParseWeekStart(req.WeekStart)
	if err != nil {
		return DayResponse{}, err
	}
	if !IsValidDayKey(req.DayKey) {
		return DayResponse{}, shifterrors.ErrInvalidDayKey
	}

	lnHours, err := segmentHoursOrZero(req.LNStart, req.LNEnd)
	if err != nil {
		s.logger.Warn("upsert shift segment invalid", zap.String("segment", "ln"), zap.Error(err))
		return DayResponse{}, err
	}
	dnHours, err := segmentHoursOrZero(req.DNStart, req.DNEnd)
	if err != nil {
		s.logger.Warn("upsert shift segment invalid", zap.String("segment", "dn"), zap.Error(err))
		return DayResponse{}, err
	}

	rec := &ShiftRecord{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		UserID:    userUUID,
		WeekStart: weekStart,
		DayKey:    req.DayKey,
		LNStart:   req.LNStart,
		LNEnd:     req.LNEnd,
		LNHours:   lnHours,
		DNStart:   req.DNStart,
		DNEnd:     req.DNEnd,
		DNHours:   dnHours,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upsert shift begin tx failed", zap.Error(err))
		return DayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Upsert(ctx, rec); err != nil {
		s.logger.Error("upsert shift persist failed", zap.Error(err))
		return DayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("upsert shift commit failed", zap.Error(err))
		return DayResponse{}, err
	}
	s.logger.Info("upsert shift success",
		zap.String("user_id", userID),
		zap.String("week_start", FormatWeekStart(weekStart)),
		zap.String("day_key", req.DayKey),
	)

	return mapToDayResponse(*rec), nil
}

func (s *service) GetWeek(ctx context.Context, userID, weekStart string) (WeekResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return WeekResponse{}, shifterrors.ErrInvalidUserID
	}
	start, err := ParseWeekStart(weekStart)
	if err != nil {
		return WeekResponse{}, err
	}

	records, err := s.repo.FindWeekByUser(ctx, userID, start)
	if err != nil {
		return WeekResponse{}, err
	}

	days, totals, err := buildWeek(records)
	if err != nil {
		return WeekResponse{}, err
	}

	return WeekResponse{
		WeekStart: FormatWeekStart(start),
		Days:      days,
		Totals:    totals,
	}, nil
}

func (s *service) GetCompanyWeek(ctx context.Context, companyID, weekStart string) ([]MemberWeekResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, shifterrors.ErrInvalidCompanyID
	}
	start, err := ParseWeekStart(weekStart)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindWeekByCompany(ctx, companyID, start)
	if err != nil {
		return nil, err
	}

	// Preserve the repo's member ordering while grouping rows per user.
	order := make([]string, 0)
	grouped := make(map[string][]CompanyWeekRow)
	for _, row := range rows {
		if _, seen := grouped[row.UserID]; !seen {
			order = append(order, row.UserID)
		}
		grouped[row.UserID] = append(grouped[row.UserID], row)
	}

	members := make([]MemberWeekResponse, 0, len(order))
	for _, userID := range order {
		userRows := grouped[userID]

		records := make([]ShiftRecord, 0, len(userRows))
		for _, row := range userRows {
			records = append(records, ShiftRecord{
				DayKey:  row.DayKey,
				LNStart: row.LNStart,
				LNEnd:   row.LNEnd,
				LNHours: row.LNHours,
				DNStart: row.DNStart,
				DNEnd:   row.DNEnd,
				DNHours: row.DNHours,
			})
		}

		days, totals, err := buildWeek(records)
		if err != nil {
			return nil, err
		}

		members = append(members, MemberWeekResponse{
			UserID:       userID,
			UserName:     userRows[0].UserName,
			MemberNumber: userRows[0].MemberNumber,
			WeekStart:    FormatWeekStart(start),
			Days:         days,
			Totals:       totals,
		})
	}

	return members, nil
}

// segmentHoursOrZero treats an absent segment (both fields empty) as
// zero hours. A half-filled segment is an input error.
func segmentHoursOrZero(start, end string) (float64, error) {
	if start == "" && end == "" {
		return 0, nil
	}
	if start == "" || end == "" {
		return 0, shifterrors.ErrOpenSegment
	}
	return SegmentHours(start, end)
}

// buildWeek expands stored records into the fixed seven-day view and
// folds their hours into the bucket totals.
func buildWeek(records []ShiftRecord) ([]DayResponse, TotalsResponse, error) {
	byDay := make(map[string]ShiftRecord, len(records))
	hours := make(map[string]DayHours, len(records))
	for _, rec := range records {
		byDay[rec.DayKey] = rec
		hours[rec.DayKey] = DayHours{LN: rec.LNHours, DN: rec.DNHours}
	}

	totals, err := ComputeWeekTotals(hours)
	if err != nil {
		return nil, TotalsResponse{}, err
	}

	days := make([]DayResponse, 0, len(DayKeys))
	for _, key := range DayKeys {
		if rec, ok := byDay[key]; ok {
			days = append(days, mapToDayResponse(rec))
			continue
		}
		days = append(days, DayResponse{DayKey: key})
	}

	return days, TotalsResponse{
		WeekdayHours:  totals.Weekday,
		SaturdayHours: totals.Saturday,
		SundayHours:   totals.Sunday,
		TotalHours:    totals.Grand(),
	}, nil
}

func mapToDayResponse(rec ShiftRecord) DayResponse {
	return DayResponse{
		DayKey:   rec.DayKey,
		LNStart:  rec.LNStart,
		LNEnd:    rec.LNEnd,
		LNHours:  rec.LNHours,
		DNStart:  rec.DNStart,
		DNEnd:    rec.DNEnd,
		DNHours:  rec.DNHours,
		DayTotal: rec.LNHours + rec.DNHours,
	}
}
