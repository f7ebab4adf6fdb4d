package auth

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"time"

	autherrors "github.com/kiwidressing/Maruschedule/internal/auth/errors"
	"github.com/kiwidressing/Maruschedule/internal/company"
	"github.com/kiwidressing/Maruschedule/internal/joinrequest"
	"github.com/kiwidressing/Maruschedule/internal/policy"
	"github.com/kiwidressing/Maruschedule/internal/shared/counter"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = time.Minute * 15
	refreshTokenTTL = time.Hour * 24 * 7
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	UpdateMe(ctx context.Context, userID string, req UpdateMeRequest) (*AuthResponse, error)

	RegisterIndividual(ctx context.Context, req RegisterIndividualRequest) (AuthResponse, error)
	RegisterWithCompany(ctx context.Context, req RegisterCompanyRequest) (AuthResponse, error)
	RegisterWithInvite(ctx context.Context, req RegisterJoinRequest) (AuthResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	companySvc  company.Service
	joinRepo    joinrequest.Repository
	counterRepo counter.Repository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	companySvc company.Service,
	joinRepo joinrequest.Repository,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		companySvc:  companySvc,
		joinRepo:    joinRepo,
		counterRepo: counterRepo,
		logger:      l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// The status gate runs after the credential check so a removed
	// user learns they are removed, not that their password is wrong.
	if err := ensureActive(user); err != nil {
		s.logger.Warn("login rejected by status gate",
			zap.String("user_id", user.ID.String()),
			zap.String("status", user.Status),
		)
		return "", "", AuthResponse{}, err
	}

	accessToken, err := s.generateToken(user, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("user_id", user.ID.String()))
	return accessToken, refreshToken, mapToAuthResponse(*user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}
	if err := ensureActive(user); err != nil {
		return "", "", AuthResponse{}, err
	}

	newAccessToken, err := s.generateToken(user, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(user, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapToAuthResponse(*user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}
	if err := ensureActive(user); err != nil {
		return nil, err
	}

	resp := mapToAuthResponse(*user)
	return &resp, nil
}

// UpdateMe renames the caller's own account. Display name is the only
// self-editable field; email and role changes go through other flows.
func (s *service) UpdateMe(ctx context.Context, userID string, req UpdateMeRequest) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}
	if err := ensureActive(user); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.repo.UpdateName(ctx, id, name); err != nil {
		s.logger.Error("update name failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("profile renamed", zap.String("user_id", userID))
	user.Name = name
	resp := mapToAuthResponse(*user)
	return &resp, nil
}

func (s *service) RegisterIndividual(ctx context.Context, req RegisterIndividualRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     string(hashed),
		Role:         policy.RoleIndividual,
		Status:       StatusActive,
		AuthProvider: "password",
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Warn("register individual failed", zap.Error(err))
		return AuthResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("register individual success", zap.String("user_id", user.ID.String()))
	return mapToAuthResponse(*user), nil
}

// RegisterWithCompany creates the company and its owner account. The
// company row is written first so the invite code collision surfaces
// before the user exists; if the user insert then fails the company
// is discarded again.
func (s *service) RegisterWithCompany(ctx context.Context, req RegisterCompanyRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	userID := uuid.New()
	companyResp, err := s.companySvc.Create(ctx, req.CompanyName, req.InviteCode, userID.String())
	if err != nil {
		return AuthResponse{}, err
	}
	companyUUID := uuid.MustParse(companyResp.ID)

	memberNumber, err := s.counterRepo.GetNextValue(ctx, companyResp.ID, counter.TypeMemberNumber)
	if err != nil {
		s.discardCompany(ctx, companyResp.ID)
		return AuthResponse{}, err
	}

	user := &User{
		ID:           userID,
		CompanyID:    &companyUUID,
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     string(hashed),
		Role:         policy.RoleOwner,
		Status:       StatusActive,
		AuthProvider: "password",
		MemberNumber: &memberNumber,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Warn("register owner failed, backing out company",
			zap.String("company_id", companyResp.ID),
			zap.Error(err),
		)
		s.discardCompany(ctx, companyResp.ID)
		return AuthResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("register with company success",
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", companyResp.ID),
	)
	return mapToAuthResponse(*user), nil
}

// RegisterWithInvite creates a PENDING account and opens the join
// request in one transaction. The user cannot log in until an admin
// approves the request.
func (s *service) RegisterWithInvite(ctx context.Context, req RegisterJoinRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	target, err := s.companySvc.GetByInviteCode(ctx, req.InviteCode)
	if err != nil {
		return AuthResponse{}, err
	}
	companyUUID := uuid.MustParse(target.ID)

	user := &User{
		ID:           uuid.New(),
		CompanyID:    &companyUUID,
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     string(hashed),
		Role:         req.RequestedRole,
		Status:       StatusPending,
		AuthProvider: "password",
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register with invite begin tx failed", zap.Error(err))
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
		s.logger.Warn("register with invite user create failed", zap.Error(err))
		return AuthResponse{}, mapRepositoryError(err)
	}

	jr := &joinrequest.JoinRequest{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		UserID:        user.ID,
		RequestedRole: req.RequestedRole,
		Status:        joinrequest.StatusPending,
	}
	if err := s.joinRepo.WithTx(tx).Create(ctx, jr); err != nil {
		s.logger.Error("register with invite join request create failed", zap.Error(err))
		return AuthResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register with invite commit failed", zap.Error(err))
		return AuthResponse{}, err
	}

	s.logger.Info("register with invite success",
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", target.ID),
		zap.String("requested_role", req.RequestedRole),
	)
	return mapToAuthResponse(*user), nil
}

func (s *service) discardCompany(ctx context.Context, companyID string) {
	if err := s.companySvc.Discard(ctx, companyID); err != nil {
		s.logger.Error("company discard failed, row is orphaned",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func ensureActive(user *User) error {
	switch user.Status {
	case StatusActive:
		return nil
	case StatusPending:
		return autherrors.ErrAccountPending
	default:
		return autherrors.ErrAccountInactive
	}
}

func (s *service) generateToken(user *User, expiry time.Duration) (string, error) {
	companyID := ""
	if user.CompanyID != nil {
		companyID = user.CompanyID.String()
	}

	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"company_id": companyID,
		"role":       user.Role,
		"exp":        time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(u User) AuthResponse {
	resp := AuthResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Status:       u.Status,
		MemberNumber: u.MemberNumber,
		PhotoURL:     u.PhotoURL,
	}
	if u.CompanyID != nil {
		resp.CompanyID = u.CompanyID.String()
	}
	return resp
}
