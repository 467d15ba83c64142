package expense

type CreateExpenseRequest struct {
	// Optional for employee principals; defaults to the caller's own record.
	EmployeeID  string  `json:"employee_id"`
	ExpenseDate string  `json:"expense_date" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=TRANSPORT MEALS ACCOMMODATION SUPPLIES OTHER"`
	Description string  `json:"description" binding:"required,max=255"`
	Amount      float64 `json:"amount" binding:"gte=0"`
	Currency    string  `json:"currency" binding:"required,oneof=LKR USD EUR"`
	Receipt     string  `json:"receipt" binding:"max=255"`
	Notes       string  `json:"notes" binding:"max=1000"`
}

type UpdateExpenseRequest struct {
	ExpenseDate string  `json:"expense_date" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=TRANSPORT MEALS ACCOMMODATION SUPPLIES OTHER"`
	Description string  `json:"description" binding:"required,max=255"`
	Amount      float64 `json:"amount" binding:"gte=0"`
	Currency    string  `json:"currency" binding:"required,oneof=LKR USD EUR"`
	Receipt     string  `json:"receipt" binding:"max=255"`
	Notes       string  `json:"notes" binding:"max=1000"`
}

type RejectExpenseRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"max=500"`
}

type ExpenseResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	EmployeeNumber  string  `json:"employee_number,omitempty"`
	ExpenseDate     string  `json:"expense_date"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Receipt         string  `json:"receipt,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedBy       string  `json:"created_by"`
	LastModifiedBy  string  `json:"last_modified_by"`
}
