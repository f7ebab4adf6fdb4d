package company_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/kiwidressing/Maruschedule/internal/company"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCompanyRepository struct {
	withTxFn                 func(tx *sql.Tx) company.Repository
	createFn                 func(ctx context.Context, c *company.Company) error
	findByIDFn               func(ctx context.Context, id string) (*company.Company, error)
	findActiveByInviteCodeFn func(ctx context.Context, code string) (*company.Company, error)
	inviteCodeTakenFn        func(ctx context.Context, code string) (bool, error)
	updateFn                 func(ctx context.Context, c *company.Company) error
	hardDeleteFn             func(ctx context.Context, id string) error
}

func (f *fakeCompanyRepository) WithTx(tx *sql.Tx) company.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeCompanyRepository) FindByID(ctx context.Context, id string) (*company.Company, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) FindActiveByInviteCode(ctx context.Context, code string) (*company.Company, error) {
	if f.findActiveByInviteCodeFn != nil {
		return f.findActiveByInviteCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) InviteCodeTaken(ctx context.Context, code string) (bool, error) {
	if f.inviteCodeTakenFn != nil {
		return f.inviteCodeTakenFn(ctx, code)
	}
	return false, nil
}

func (f *fakeCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeCompanyRepository) HardDelete(ctx context.Context, id string) error {
	if f.hardDeleteFn != nil {
		return f.hardDeleteFn(ctx, id)
	}
	return nil
}

type companyServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service company.Service
	repo    *fakeCompanyRepository
}

func setupCompanyServiceTest(t *testing.T) *companyServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeCompanyRepository{}
	svc := company.NewService(db, repo)

	return &companyServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestGenerateInviteCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	seen := map[byte]bool{}
	for i := 0; i < 500; i++ {
		code, err := company.GenerateInviteCode()
		assert.NoError(t, err)
		assert.Regexp(t, pattern, code)
		for j := 0; j < len(code); j++ {
			seen[code[j]] = true
		}
	}
	// 3000 uniform draws over 36 characters miss one with odds
	// below 1e-30, so every charset member should have appeared.
	assert.Len(t, seen, 36)
}

func TestValidateInviteCode(t *testing.T) {
	assert.NoError(t, company.ValidateInviteCode("AB12CD"))
	assert.Error(t, company.ValidateInviteCode("ab12cd"))
	assert.Error(t, company.ValidateInviteCode("ABC"))
	assert.Error(t, company.ValidateInviteCode("ABCDEFG"))
	assert.Error(t, company.ValidateInviteCode("AB 2CD"))
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()
	createdBy := uuid.New().String()

	t.Run("success with generated code", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, c *company.Company) error {
			assert.Equal(t, "Night Owls", c.Name)
			assert.Regexp(t, `^[A-Z0-9]{6}$`, c.InviteCode)
			assert.Equal(t, company.StatusActive, c.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, "Night Owls", "", createdBy)

		assert.NoError(t, err)
		assert.Regexp(t, `^[A-Z0-9]{6}$`, resp.InviteCode)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success with custom code", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.inviteCodeTakenFn = func(ctx context.Context, code string) (bool, error) {
			assert.Equal(t, "AB12CD", code)
			return false, nil
		}

		resp, err := deps.service.Create(ctx, "Night Owls", "ab12cd", createdBy)

		assert.NoError(t, err)
		assert.Equal(t, "AB12CD", resp.InviteCode)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative custom code collision", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.inviteCodeTakenFn = func(ctx context.Context, code string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, "Night Owls", "AB12CD", createdBy)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already in use")
	})

	t.Run("negative custom code bad format", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, "Night Owls", "nope", createdBy)
		assert.Error(t, err)
	})

	t.Run("negative generation exhausted", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.inviteCodeTakenFn = func(ctx context.Context, code string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, "Night Owls", "", createdBy)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "free invite code")
	})

	t.Run("negative empty name", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, "  ", "", createdBy)
		assert.Error(t, err)
	})
}

func TestCompanyService_GetByInviteCode(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes case", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		companyID := uuid.New()
		deps.repo.findActiveByInviteCodeFn = func(ctx context.Context, code string) (*company.Company, error) {
			assert.Equal(t, "AB12CD", code)
			return &company.Company{ID: companyID, Name: "Night Owls", InviteCode: code}, nil
		}

		resp, err := deps.service.GetByInviteCode(ctx, " ab12cd ")

		assert.NoError(t, err)
		assert.Equal(t, companyID.String(), resp.ID)
		assert.Equal(t, "Night Owls", resp.Name)
	})

	t.Run("negative unknown code", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByInviteCode(ctx, "ZZZZZZ")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestCompanyService_Rename(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*company.Company, error) {
			return &company.Company{
				ID:     uuid.MustParse(id),
				Name:   "Old Name",
				Status: company.StatusActive,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, c *company.Company) error {
			assert.Equal(t, "New Name", c.Name)
			return nil
		}

		resp, err := deps.service.Rename(ctx, companyID, company.UpdateCompanyRequest{Name: "New Name"})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative disbanded company", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*company.Company, error) {
			return &company.Company{
				ID:     uuid.MustParse(id),
				Status: company.StatusDisbanded,
			}, nil
		}

		_, err := deps.service.Rename(ctx, companyID, company.UpdateCompanyRequest{Name: "New Name"})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestCompanyService_Discard(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		companyID := uuid.New().String()
		called := false
		deps.repo.hardDeleteFn = func(ctx context.Context, id string) error {
			called = true
			assert.Equal(t, companyID, id)
			return nil
		}

		assert.NoError(t, deps.service.Discard(ctx, companyID))
		assert.True(t, called)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.hardDeleteFn = func(ctx context.Context, id string) error {
			return errors.New("delete failed")
		}

		assert.Error(t, deps.service.Discard(ctx, uuid.New().String()))
	})
}
