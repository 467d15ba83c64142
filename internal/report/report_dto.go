package report

type MonthlySummaryResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name,omitempty"`
	EmployeeNumber string `json:"employee_number,omitempty"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`

	TotalRegularHours  float64 `json:"total_regular_hours"`
	TotalOTHours       float64 `json:"total_ot_hours"`
	TotalVacationHours float64 `json:"total_vacation_hours"`
	TotalHolidayHours  float64 `json:"total_holiday_hours"`

	RegularPay         float64 `json:"regular_pay"`
	OTPay              float64 `json:"ot_pay"`
	VacationPay        float64 `json:"vacation_pay"`
	HolidayPay         float64 `json:"holiday_pay"`
	TotalPayableAmount float64 `json:"total_payable_amount"`

	Status      string  `json:"status"`
	GeneratedBy string  `json:"generated_by"`
	FinalizedAt *string `json:"finalized_at,omitempty"`
	PaidAt      *string `json:"paid_at,omitempty"`
}

type GenerateSummariesResponse struct {
	Year               int `json:"year"`
	Month              int `json:"month"`
	EmployeesProcessed int `json:"employees_processed"`
	SummariesUpserted  int `json:"summaries_upserted"`
}
