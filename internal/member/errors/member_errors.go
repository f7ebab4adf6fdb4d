package membererrors

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
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrMemberNotFound = apperror.New(
		apperror.CodeNotFound,
		"member not found",
		http.StatusNotFound,
	)
	ErrMemberNotActive = apperror.New(
		apperror.CodeInvalidState,
		"member is not active",
		http.StatusConflict,
	)
	ErrOnlyEmployeesPromotable = apperror.New(
		apperror.CodeInvalidState,
		"only employees can be promoted",
		http.StatusConflict,
	)
	ErrCannotRemoveSelf = apperror.New(
		apperror.CodeInvalidInput,
		"use withdraw to leave the company",
		http.StatusBadRequest,
	)
	ErrCannotRemoveOwner = apperror.New(
		apperror.CodeForbidden,
		"the owner cannot be removed",
		http.StatusForbidden,
	)
	ErrOwnerCannotWithdraw = apperror.New(
		apperror.CodeInvalidState,
		"the owner cannot withdraw from their own company",
		http.StatusConflict,
	)
)
