package exporterrors

import (
	"net/http"

	"github.com/kiwidressing/Maruschedule/internal/shared/apperror"
)

var (
	ErrInvalidFormat = apperror.New(
		apperror.CodeInvalidInput,
		"format must be xlsx or pdf",
		http.StatusBadRequest,
	)
	ErrInvalidWeekStart = apperror.New(
		apperror.CodeInvalidInput,
		"week_start must be a valid YYYY-MM-DD date",
		http.StatusBadRequest,
	)
	ErrNothingToExport = apperror.New(
		apperror.CodeInvalidState,
		"no hours recorded for that week",
		http.StatusConflict,
	)
)
