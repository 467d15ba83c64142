package reporterrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrSummaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Monthly summary not found",
		http.StatusNotFound,
	)
	ErrInvalidSummaryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid summary ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be between 2020 and 2030",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrAlreadyFinalized = apperror.New(
		apperror.CodeInvalidState,
		"Monthly summary is already finalized",
		http.StatusConflict,
	)
)
