package usererrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"Email is already registered",
		http.StatusConflict,
	)
	ErrEmployeeAlreadyLinked = apperror.New(
		apperror.CodeConflict,
		"Employee already has a user account",
		http.StatusConflict,
	)
	ErrEmployeeLinkRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Employee accounts must be linked to an employee record",
		http.StatusBadRequest,
	)
	ErrEmployeeLinkNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"Only employee accounts may be linked to an employee record",
		http.StatusBadRequest,
	)
)
