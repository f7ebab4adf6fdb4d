package joinrequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/kiwidressing/Maruschedule/internal/events"
	joinrequesterrors "github.com/kiwidressing/Maruschedule/internal/joinrequest/errors"
	"github.com/kiwidressing/Maruschedule/internal/messaging/kafka"
	"github.com/kiwidressing/Maruschedule/internal/shared/contextutil"
	"github.com/kiwidressing/Maruschedule/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=joinrequest_service.go -destination=mock/joinrequest_service_mock.go -package=mock
type Service interface {
	ListPending(ctx context.Context, companyID string) ([]PendingResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (ResolvedResponse, error)
	Reject(ctx context.Context, companyID, actorID, id string) (ResolvedResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	counterRepo counter.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("joinrequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("joinrequest.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		counterRepo: counterRepo,
		outbox:      outbox,
		logger:      l,
	}
}

func (s *service) ListPending(ctx context.Context, companyID string) ([]PendingResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, joinrequesterrors.ErrInvalidCompanyID
	}

	rows, err := s.repo.FindPendingByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]PendingResponse, len(rows))
	for i, row := range rows {
		resp[i] = PendingResponse{
			ID:            row.ID,
			UserID:        row.UserID,
			UserName:      row.UserName,
			UserEmail:     row.UserEmail,
			RequestedRole: row.RequestedRole,
			CreatedAt:     row.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

// Approve resolves the request and activates the member in one
// transaction. The status flip is guarded by the PENDING predicate,
// so of two racing approvals exactly one wins and the other sees
// ErrAlreadyResolved.
func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (ResolvedResponse, error) {
	s.logger.Debug("approve join request",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("request_id", id),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return ResolvedResponse{}, joinrequesterrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return ResolvedResponse{}, joinrequesterrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve join request begin tx failed", zap.Error(err))
		return ResolvedResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	jr, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResolvedResponse{}, joinrequesterrors.ErrRequestNotFound
		}
		return ResolvedResponse{}, err
	}

	won, err := qtx.MarkResolved(ctx, id, StatusApproved, actorID)
	if err != nil {
		s.logger.Error("approve join request mark failed", zap.Error(err))
		return ResolvedResponse{}, err
	}
	if !won {
		s.logger.Warn("approve join request lost resolution race",
			zap.String("request_id", id),
			zap.String("status", jr.Status),
		)
		return ResolvedResponse{}, joinrequesterrors.ErrAlreadyResolved
	}

	memberNumber, err := s.counterRepo.GetNextValue(ctx, companyID, counter.TypeMemberNumber)
	if err != nil {
		s.logger.Error("approve join request member number failed", zap.Error(err))
		return ResolvedResponse{}, err
	}

	if err := qtx.ActivateMember(ctx, jr.UserID.String(), companyID, jr.RequestedRole, memberNumber); err != nil {
		s.logger.Error("approve join request activation failed", zap.Error(err))
		return ResolvedResponse{}, err
	}

	now := time.Now().UTC()
	rid := contextutil.GetRequestID(ctx)
	event := events.MemberApprovedEvent{
		EventType:    "member_approved",
		CompanyID:    companyID,
		UserID:       jr.UserID.String(),
		Role:         jr.RequestedRole,
		MemberNumber: memberNumber,
		ApprovedBy:   actorID,
		OccurredAt:   now,
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal member approved event failed", zap.Error(err))
			return ResolvedResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "join_request",
			AggregateID:   id,
			EventType:     event.EventType,
			Topic:         events.MemberApprovedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("approve join request outbox persist failed", zap.Error(err))
			return ResolvedResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve join request commit failed", zap.Error(err))
		return ResolvedResponse{}, err
	}
	s.logger.Info("approve join request success",
		zap.String("request_id", id),
		zap.String("user_id", jr.UserID.String()),
		zap.Int64("member_number", memberNumber),
	)

	return ResolvedResponse{
		ID:           id,
		UserID:       jr.UserID.String(),
		Status:       StatusApproved,
		Role:         jr.RequestedRole,
		MemberNumber: &memberNumber,
		ResolvedBy:   actorID,
		ResolvedAt:   now.Format(time.RFC3339),
	}, nil
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id string) (ResolvedResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return ResolvedResponse{}, joinrequesterrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return ResolvedResponse{}, joinrequesterrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject join request begin tx failed", zap.Error(err))
		return ResolvedResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	jr, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResolvedResponse{}, joinrequesterrors.ErrRequestNotFound
		}
		return ResolvedResponse{}, err
	}

	won, err := qtx.MarkResolved(ctx, id, StatusRejected, actorID)
	if err != nil {
		s.logger.Error("reject join request mark failed", zap.Error(err))
		return ResolvedResponse{}, err
	}
	if !won {
		return ResolvedResponse{}, joinrequesterrors.ErrAlreadyResolved
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject join request commit failed", zap.Error(err))
		return ResolvedResponse{}, err
	}
	s.logger.Info("reject join request success",
		zap.String("request_id", id),
		zap.String("user_id", jr.UserID.String()),
	)

	return ResolvedResponse{
		ID:         id,
		UserID:     jr.UserID.String(),
		Status:     StatusRejected,
		ResolvedBy: actorID,
		ResolvedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
