package joinrequest_test

import (
	"context"
	"testing"

	"github.com/kiwidressing/Maruschedule/internal/joinrequest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRepository_TransactionalWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("success resolution and activation ride the caller's tx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE join_requests").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		tx, err := db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		repo := joinrequest.NewRepository(nil).WithTx(tx)

		won, err := repo.MarkResolved(ctx, uuid.NewString(), joinrequest.StatusApproved, uuid.NewString())
		assert.NoError(t, err)
		assert.True(t, won)

		err = repo.ActivateMember(ctx, uuid.NewString(), uuid.NewString(), "EMPLOYEE", 7)
		assert.NoError(t, err)

		// Rolling back must undo both writes together; nothing may
		// have escaped to a separate connection.
		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative losing the resolution race reports no win", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE join_requests").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		repo := joinrequest.NewRepository(nil).WithTx(tx)

		won, err := repo.MarkResolved(ctx, uuid.NewString(), joinrequest.StatusApproved, uuid.NewString())
		assert.NoError(t, err)
		assert.False(t, won)

		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
