package timesheeterrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Timesheet not found",
		http.StatusNotFound,
	)
	ErrDuplicateWorkDate = apperror.New(
		apperror.CodeConflict,
		"A timesheet already exists for this employee and date",
		http.StatusConflict,
	)
	ErrInvalidTimesheetID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid timesheet ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidWorkDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid work_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidShiftTime = apperror.New(
		apperror.CodeInvalidInput,
		"invalid shift time, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Timesheet status transition not allowed",
		http.StatusConflict,
	)
	ErrNotEditableInStatus = apperror.New(
		apperror.CodeInvalidState,
		"Timesheet can no longer be edited in its current status",
		http.StatusConflict,
	)
	ErrNotDeletableInStatus = apperror.New(
		apperror.CodeInvalidState,
		"Only draft timesheets can be deleted",
		http.StatusConflict,
	)
)
