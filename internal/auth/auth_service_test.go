package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/kiwidressing/Maruschedule/internal/auth"
	"github.com/kiwidressing/Maruschedule/internal/company"
	"github.com/kiwidressing/Maruschedule/internal/joinrequest"
	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	withTxFn     func(tx *sql.Tx) auth.Repository
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	updateNameFn func(ctx context.Context, id uuid.UUID, name string) error
}

func (f *fakeAuthRepository) WithTx(tx *sql.Tx) auth.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	if f.updateNameFn != nil {
		return f.updateNameFn(ctx, id, name)
	}
	return nil
}

type fakeCompanyService struct {
	createFn          func(ctx context.Context, name, customCode, createdBy string) (company.CompanyResponse, error)
	discardFn         func(ctx context.Context, id string) error
	getMineFn         func(ctx context.Context, companyID string) (company.CompanyResponse, error)
	getByInviteCodeFn func(ctx context.Context, code string) (company.CompanyPublicResponse, error)
	renameFn          func(ctx context.Context, companyID string, req company.UpdateCompanyRequest) (company.CompanyResponse, error)
}

func (f *fakeCompanyService) Create(ctx context.Context, name, customCode, createdBy string) (company.CompanyResponse, error) {
	return f.createFn(ctx, name, customCode, createdBy)
}
func (f *fakeCompanyService) Discard(ctx context.Context, id string) error {
	if f.discardFn != nil {
		return f.discardFn(ctx, id)
	}
	return nil
}
func (f *fakeCompanyService) GetMine(ctx context.Context, companyID string) (company.CompanyResponse, error) {
	return f.getMineFn(ctx, companyID)
}
func (f *fakeCompanyService) GetByInviteCode(ctx context.Context, code string) (company.CompanyPublicResponse, error) {
	return f.getByInviteCodeFn(ctx, code)
}
func (f *fakeCompanyService) Rename(ctx context.Context, companyID string, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	return f.renameFn(ctx, companyID, req)
}

type fakeJoinRepository struct {
	withTxFn func(tx *sql.Tx) joinrequest.Repository
	createFn func(ctx context.Context, jr *joinrequest.JoinRequest) error
}

func (f *fakeJoinRepository) WithTx(tx *sql.Tx) joinrequest.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeJoinRepository) Create(ctx context.Context, jr *joinrequest.JoinRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, jr)
	}
	return nil
}
func (f *fakeJoinRepository) HasPending(ctx context.Context, companyID, userID string) (bool, error) {
	return false, nil
}
func (f *fakeJoinRepository) FindPendingByCompany(ctx context.Context, companyID string) ([]joinrequest.PendingRow, error) {
	return nil, nil
}
func (f *fakeJoinRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*joinrequest.JoinRequest, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeJoinRepository) MarkResolved(ctx context.Context, id, status, resolvedBy string) (bool, error) {
	return false, nil
}
func (f *fakeJoinRepository) ActivateMember(ctx context.Context, userID, companyID, role string, memberNumber int64) error {
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, companyID, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, companyID, counterType)
	}
	return 1, nil
}

type authServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    auth.Service
	repo       *fakeAuthRepository
	companySvc *fakeCompanyService
	joinRepo   *fakeJoinRepository
	counter    *fakeCounterRepository
}

func setupAuthServiceTest(t *testing.T) *authServiceDeps {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAuthRepository{}
	companySvc := &fakeCompanyService{}
	joinRepo := &fakeJoinRepository{}
	counterRepo := &fakeCounterRepository{}
	svc := auth.NewService(db, repo, companySvc, joinRepo, counterRepo)

	return &authServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		repo:       repo,
		companySvc: companySvc,
		joinRepo:   joinRepo,
		counter:    counterRepo,
	}
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func activeUser(t *testing.T, password string) *auth.User {
	t.Helper()
	companyID := uuid.New()
	return &auth.User{
		ID:        uuid.New(),
		CompanyID: &companyID,
		Name:      "Alice",
		Email:     "alice@example.com",
		Password:  hashPassword(t, password),
		Role:      policy.RoleEmployee,
		Status:    auth.StatusActive,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		user := activeUser(t, "secret123")
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			assert.Equal(t, "alice@example.com", email)
			return user, nil
		}

		accessToken, refreshToken, resp, err := deps.service.Login(ctx, "Alice@Example.com ", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, policy.RoleEmployee, resp.Role)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		user := activeUser(t, "secret123")
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		}

		_, _, _, err := deps.service.Login(ctx, "alice@example.com", "wrong")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("negative pending user with valid credentials", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		user := activeUser(t, "secret123")
		user.Status = auth.StatusPending
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		}

		_, _, _, err := deps.service.Login(ctx, "alice@example.com", "secret123")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "waiting for approval")
	})

	t.Run("negative removed user with valid credentials", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		for _, status := range []string{auth.StatusRemoved, auth.StatusSelfRemoved} {
			user := activeUser(t, "secret123")
			user.Status = status
			deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			}

			_, _, _, err := deps.service.Login(ctx, "alice@example.com", "secret123")

			assert.Error(t, err, status)
			assert.Contains(t, err.Error(), "no longer active")
		}
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		user := activeUser(t, "secret123")
		deps.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		}

		resp, err := deps.service.GetMe(ctx, user.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("negative session restore blocked for pending user", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		user := activeUser(t, "secret123")
		user.Status = auth.StatusPending
		deps.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			return user, nil
		}

		_, err := deps.service.GetMe(ctx, user.ID.String())
		assert.Error(t, err)
	})
}

func TestAuthService_UpdateMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success renames and returns updated profile", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		user := activeUser(t, "secret123")
		deps.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		}
		deps.repo.updateNameFn = func(ctx context.Context, id uuid.UUID, name string) error {
			assert.Equal(t, user.ID, id)
			assert.Equal(t, "Alice Cooper", name)
			return nil
		}

		resp, err := deps.service.UpdateMe(ctx, user.ID.String(), auth.UpdateMeRequest{Name: "  Alice Cooper  "})

		assert.NoError(t, err)
		assert.Equal(t, "Alice Cooper", resp.Name)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("negative pending user cannot rename", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		user := activeUser(t, "secret123")
		user.Status = auth.StatusPending
		deps.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			return user, nil
		}
		deps.repo.updateNameFn = func(ctx context.Context, id uuid.UUID, name string) error {
			t.Fatal("rename must not reach the repository for a pending user")
			return nil
		}

		_, err := deps.service.UpdateMe(ctx, user.ID.String(), auth.UpdateMeRequest{Name: "Alice Cooper"})
		assert.Error(t, err)
	})

	t.Run("negative malformed user id", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateMe(ctx, "not-a-uuid", auth.UpdateMeRequest{Name: "Alice Cooper"})
		assert.Error(t, err)
	})
}

func TestAuthService_RegisterIndividual(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, user *auth.User) error {
			assert.Equal(t, policy.RoleIndividual, user.Role)
			assert.Equal(t, auth.StatusActive, user.Status)
			assert.Nil(t, user.CompanyID)
			assert.Equal(t, "solo@example.com", user.Email)
			assert.NotEqual(t, "secret123", user.Password)
			return nil
		}

		resp, err := deps.service.RegisterIndividual(ctx, auth.RegisterIndividualRequest{
			Name:     "Solo",
			Email:    "Solo@Example.com",
			Password: "secret123",
		})

		assert.NoError(t, err)
		assert.Equal(t, policy.RoleIndividual, resp.Role)
		assert.Empty(t, resp.CompanyID)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, user *auth.User) error {
			return errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
		}

		_, err := deps.service.RegisterIndividual(ctx, auth.RegisterIndividualRequest{
			Name:     "Solo",
			Email:    "solo@example.com",
			Password: "secret123",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})
}

func TestAuthService_RegisterWithCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("success owner gets member number one", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		companyID := uuid.New().String()
		deps.companySvc.createFn = func(ctx context.Context, name, customCode, createdBy string) (company.CompanyResponse, error) {
			assert.Equal(t, "Night Owls", name)
			return company.CompanyResponse{ID: companyID, Name: name, InviteCode: "AB12CD"}, nil
		}
		deps.counter.getNextValueFn = func(ctx context.Context, cid, counterType string) (int64, error) {
			assert.Equal(t, companyID, cid)
			return 1, nil
		}
		deps.repo.createFn = func(ctx context.Context, user *auth.User) error {
			assert.Equal(t, policy.RoleOwner, user.Role)
			assert.Equal(t, auth.StatusActive, user.Status)
			assert.Equal(t, companyID, user.CompanyID.String())
			assert.Equal(t, int64(1), *user.MemberNumber)
			return nil
		}

		resp, err := deps.service.RegisterWithCompany(ctx, auth.RegisterCompanyRequest{
			Name:        "Boss",
			Email:       "boss@example.com",
			Password:    "secret123",
			CompanyName: "Night Owls",
		})

		assert.NoError(t, err)
		assert.Equal(t, policy.RoleOwner, resp.Role)
		assert.Equal(t, companyID, resp.CompanyID)
	})

	t.Run("negative user create failure discards company", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		companyID := uuid.New().String()
		discarded := false
		deps.companySvc.createFn = func(ctx context.Context, name, customCode, createdBy string) (company.CompanyResponse, error) {
			return company.CompanyResponse{ID: companyID}, nil
		}
		deps.companySvc.discardFn = func(ctx context.Context, id string) error {
			discarded = true
			assert.Equal(t, companyID, id)
			return nil
		}
		deps.repo.createFn = func(ctx context.Context, user *auth.User) error {
			return errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
		}

		_, err := deps.service.RegisterWithCompany(ctx, auth.RegisterCompanyRequest{
			Name:        "Boss",
			Email:       "boss@example.com",
			Password:    "secret123",
			CompanyName: "Night Owls",
		})

		assert.Error(t, err)
		assert.True(t, discarded)
	})

	t.Run("negative invite code collision bubbles up", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.companySvc.createFn = func(ctx context.Context, name, customCode, createdBy string) (company.CompanyResponse, error) {
			return company.CompanyResponse{}, errors.New("invite code already in use")
		}

		_, err := deps.service.RegisterWithCompany(ctx, auth.RegisterCompanyRequest{
			Name:        "Boss",
			Email:       "boss@example.com",
			Password:    "secret123",
			CompanyName: "Night Owls",
			InviteCode:  "AB12CD",
		})

		assert.Error(t, err)
	})
}

func TestAuthService_RegisterWithInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("success creates pending user and join request", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		companyID := uuid.New().String()
		deps.companySvc.getByInviteCodeFn = func(ctx context.Context, code string) (company.CompanyPublicResponse, error) {
			assert.Equal(t, "AB12CD", code)
			return company.CompanyPublicResponse{ID: companyID, Name: "Night Owls"}, nil
		}

		var createdUserID uuid.UUID
		deps.repo.createFn = func(ctx context.Context, user *auth.User) error {
			assert.Equal(t, auth.StatusPending, user.Status)
			assert.Equal(t, policy.RoleEmployee, user.Role)
			assert.Equal(t, companyID, user.CompanyID.String())
			createdUserID = user.ID
			return nil
		}
		deps.joinRepo.createFn = func(ctx context.Context, jr *joinrequest.JoinRequest) error {
			assert.Equal(t, joinrequest.StatusPending, jr.Status)
			assert.Equal(t, createdUserID, jr.UserID)
			assert.Equal(t, companyID, jr.CompanyID.String())
			assert.Equal(t, policy.RoleEmployee, jr.RequestedRole)
			return nil
		}

		resp, err := deps.service.RegisterWithInvite(ctx, auth.RegisterJoinRequest{
			Name:          "Newbie",
			Email:         "newbie@example.com",
			Password:      "secret123",
			InviteCode:    "AB12CD",
			RequestedRole: policy.RoleEmployee,
		})

		assert.NoError(t, err)
		assert.Equal(t, auth.StatusPending, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown invite code", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.companySvc.getByInviteCodeFn = func(ctx context.Context, code string) (company.CompanyPublicResponse, error) {
			return company.CompanyPublicResponse{}, errors.New("company not found")
		}

		_, err := deps.service.RegisterWithInvite(ctx, auth.RegisterJoinRequest{
			Name:          "Newbie",
			Email:         "newbie@example.com",
			Password:      "secret123",
			InviteCode:    "ZZZZZZ",
			RequestedRole: policy.RoleEmployee,
		})

		assert.Error(t, err)
	})

	t.Run("negative join request create rolls back", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.companySvc.getByInviteCodeFn = func(ctx context.Context, code string) (company.CompanyPublicResponse, error) {
			return company.CompanyPublicResponse{ID: uuid.New().String()}, nil
		}
		deps.joinRepo.createFn = func(ctx context.Context, jr *joinrequest.JoinRequest) error {
			return errors.New("db error")
		}

		_, err := deps.service.RegisterWithInvite(ctx, auth.RegisterJoinRequest{
			Name:          "Newbie",
			Email:         "newbie@example.com",
			Password:      "secret123",
			InviteCode:    "AB12CD",
			RequestedRole: policy.RoleEmployee,
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
