package company

import (
	"errors"
	"strings"

	companyerrors "github.com/kiwidressing/Maruschedule/internal/company/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "invite_code") {
			return companyerrors.ErrInviteCodeTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "invite_code") {
		return companyerrors.ErrInviteCodeTaken
	}

	return err
}
