package expenseerrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrExpenseNotFound = apperror.New(
		apperror.CodeNotFound,
		"Expense not found",
		http.StatusNotFound,
	)
	ErrInvalidExpenseID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid expense ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidExpenseDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid expense_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Expense status transition not allowed",
		http.StatusConflict,
	)
	ErrNotEditableInStatus = apperror.New(
		apperror.CodeInvalidState,
		"Expense can no longer be edited in its current status",
		http.StatusConflict,
	)
	ErrNotDeletableInStatus = apperror.New(
		apperror.CodeInvalidState,
		"Only draft expenses can be deleted",
		http.StatusConflict,
	)
)
