package joinrequesterrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidRequestedRole = apperror.New(
		apperror.CodeInvalidInput,
		"requested role must be ADMIN or EMPLOYEE",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"join request not found",
		http.StatusNotFound,
	)
	ErrAlreadyResolved = apperror.New(
		apperror.CodeInvalidState,
		"join request already resolved",
		http.StatusConflict,
	)
	ErrDuplicatePending = apperror.New(
		apperror.CodeConflict,
		"a pending join request already exists",
		http.StatusConflict,
	)
)
