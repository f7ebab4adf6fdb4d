package rolluperrors

import (
	"net/http"

	"github.com/kiwidressing/Maruschedule/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidWeekStart = apperror.New(
		apperror.CodeInvalidInput,
		"week_start must be a valid YYYY-MM-DD date",
		http.StatusBadRequest,
	)
	ErrRollupNotFound = apperror.New(
		apperror.CodeNotFound,
		"no rollup recorded for that week",
		http.StatusNotFound,
	)
)
