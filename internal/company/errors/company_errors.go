package companyerrors

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
	ErrInvalidCreatedBy = apperror.New(
		apperror.CodeInvalidInput,
		"invalid creator id",
		http.StatusBadRequest,
	)
	ErrCompanyNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"company name is required",
		http.StatusBadRequest,
	)
	ErrInvalidInviteCode = apperror.New(
		apperror.CodeInvalidInput,
		"invite code must be 6 uppercase letters or digits",
		http.StatusBadRequest,
	)
	ErrInviteCodeTaken = apperror.New(
		apperror.CodeConflict,
		"invite code already in use",
		http.StatusConflict,
	)
	ErrInviteCodeExhausted = apperror.New(
		apperror.CodeInternalError,
		"could not allocate a free invite code",
		http.StatusInternalServerError,
	)
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrCompanyDisbanded = apperror.New(
		apperror.CodeInvalidState,
		"company is disbanded",
		http.StatusConflict,
	)
)
