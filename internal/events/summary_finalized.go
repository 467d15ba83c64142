package events

import "time"

const ReportLifecycleTopic = "wfm.report.lifecycle.v1"

type SummaryFinalizedEvent struct {
	EventType   string    `json:"event_type"`
	SummaryID   string    `json:"summary_id"`
	EmployeeID  string    `json:"employee_id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	TotalAmount float64   `json:"total_amount"`
	FinalizedBy string    `json:"finalized_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
