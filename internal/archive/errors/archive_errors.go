package archiveerrors

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
	ErrInvalidArchiveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid archive id",
		http.StatusBadRequest,
	)
	ErrInvalidWeekStart = apperror.New(
		apperror.CodeInvalidInput,
		"week_start must be a valid YYYY-MM-DD date",
		http.StatusBadRequest,
	)
	ErrEmptyWeek = apperror.New(
		apperror.CodeInvalidState,
		"cannot archive a week without any shift records",
		http.StatusConflict,
	)
	ErrArchiveNotFound = apperror.New(
		apperror.CodeNotFound,
		"archive not found",
		http.StatusNotFound,
	)
)
