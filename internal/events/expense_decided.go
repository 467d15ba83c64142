package events

import "time"

const ExpenseLifecycleTopic = "wfm.expense.lifecycle.v1"

// ExpenseDecidedEvent is emitted when an expense is approved or rejected,
// so the notification consumer can tell the employee.
type ExpenseDecidedEvent struct {
	EventType  string    `json:"event_type"`
	ExpenseID  string    `json:"expense_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	DecidedBy  string    `json:"decided_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
