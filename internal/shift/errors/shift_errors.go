package shifterrors

import (
	"net/http"

	"github.com/kiwidressing/Maruschedule/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidWeekStart = apperror.New(
		apperror.CodeInvalidInput,
		"invalid week_start, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDayKey = apperror.New(
		apperror.CodeInvalidInput,
		"invalid day key, expected mon..sun",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrZeroLengthSegment = apperror.New(
		apperror.CodeInvalidInput,
		"segment start and end are equal",
		http.StatusBadRequest,
	)
	ErrOpenSegment = apperror.New(
		apperror.CodeInvalidInput,
		"segment needs both start and end or neither",
		http.StatusBadRequest,
	)
	ErrNegativeHours = apperror.New(
		apperror.CodeInvalidInput,
		"segment hours cannot be negative",
		http.StatusBadRequest,
	)
	ErrCompanyRequired = apperror.New(
		apperror.CodeForbidden,
		"company membership required",
		http.StatusForbidden,
	)
)
