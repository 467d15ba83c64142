package employee

type CreateEmployeeRequest struct {
	EmployeeNumber   string  `json:"employee_number"`
	FullName         string  `json:"full_name" binding:"required"`
	Position         string  `json:"position"`
	HireDate         string  `json:"hire_date" binding:"required"`
	PayRate          float64 `json:"pay_rate" binding:"gte=0"`
	OTRate           float64 `json:"ot_rate" binding:"gte=0"`
	VacationPayRate  float64 `json:"vacation_pay_rate" binding:"gte=0"`
	BreakTimePaid    bool    `json:"break_time_paid"`
	BreakTimeMinutes int     `json:"break_time_minutes" binding:"gte=0,lte=480"`
	Email            string  `json:"email" binding:"omitempty,email"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	DateOfBirth      string  `json:"date_of_birth"`
}

type UpdateEmployeeRequest struct {
	FullName         string  `json:"full_name" binding:"required"`
	Position         string  `json:"position"`
	HireDate         string  `json:"hire_date" binding:"required"`
	PayRate          float64 `json:"pay_rate" binding:"gte=0"`
	OTRate           float64 `json:"ot_rate" binding:"gte=0"`
	VacationPayRate  float64 `json:"vacation_pay_rate" binding:"gte=0"`
	BreakTimePaid    bool    `json:"break_time_paid"`
	BreakTimeMinutes int     `json:"break_time_minutes" binding:"gte=0,lte=480"`
	Email            string  `json:"email" binding:"omitempty,email"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	DateOfBirth      string  `json:"date_of_birth"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	EmployeeNumber   string  `json:"employee_number"`
	FullName         string  `json:"full_name"`
	Position         string  `json:"position"`
	HireDate         string  `json:"hire_date"`
	PayRate          float64 `json:"pay_rate"`
	OTRate           float64 `json:"ot_rate"`
	VacationPayRate  float64 `json:"vacation_pay_rate"`
	BreakTimePaid    bool    `json:"break_time_paid"`
	BreakTimeMinutes int     `json:"break_time_minutes"`
	Status           string  `json:"status"`
	Email            string  `json:"email,omitempty"`
	Phone            string  `json:"phone,omitempty"`
	Address          string  `json:"address,omitempty"`
	DateOfBirth      string  `json:"date_of_birth,omitempty"`
}

type EmployeeOptionResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}
