package timesheet

type CreateTimesheetRequest struct {
	// Optional for employee principals; defaults to the caller's own record.
	EmployeeID     string `json:"employee_id"`
	WorkDate       string `json:"work_date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	BreakMinutes   int    `json:"break_minutes" binding:"gte=0,lte=480"`
	IsVacationWork bool   `json:"is_vacation_work"`
	IsHolidayWork  bool   `json:"is_holiday_work"`
	Notes          string `json:"notes" binding:"max=500"`
}

type UpdateTimesheetRequest struct {
	WorkDate       string `json:"work_date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	BreakMinutes   int    `json:"break_minutes" binding:"gte=0,lte=480"`
	IsVacationWork bool   `json:"is_vacation_work"`
	IsHolidayWork  bool   `json:"is_holiday_work"`
	Notes          string `json:"notes" binding:"max=500"`
	Status         string `json:"status" binding:"required,oneof=DRAFT SUBMITTED APPROVED REJECTED"`
}

type TimesheetResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	WorkDate       string  `json:"work_date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	BreakMinutes   int     `json:"break_minutes"`
	HoursWorked    float64 `json:"hours_worked"`
	OTHours        float64 `json:"ot_hours"`
	IsVacationWork bool    `json:"is_vacation_work"`
	IsHolidayWork  bool    `json:"is_holiday_work"`
	Notes          string  `json:"notes,omitempty"`
	Status         string  `json:"status"`
	CreatedBy      string  `json:"created_by"`
	LastModifiedBy string  `json:"last_modified_by"`
}
