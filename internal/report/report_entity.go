package report

import (
	"time"

	"go-workforce/internal/employee"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MonthlySummary struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_summary_employee_period"`
	Year       int       `gorm:"column:year;type:int;not null;uniqueIndex:uq_summary_employee_period"`
	Month      int       `gorm:"column:month;type:int;not null;uniqueIndex:uq_summary_employee_period"`

	TotalRegularHours  float64 `gorm:"column:total_regular_hours;type:numeric(8,2);not null;default:0"`
	TotalOTHours       float64 `gorm:"column:total_ot_hours;type:numeric(8,2);not null;default:0"`
	TotalVacationHours float64 `gorm:"column:total_vacation_hours;type:numeric(8,2);not null;default:0"`
	TotalHolidayHours  float64 `gorm:"column:total_holiday_hours;type:numeric(8,2);not null;default:0"`

	RegularPay         float64 `gorm:"column:regular_pay;type:numeric(14,2);not null;default:0"`
	OTPay              float64 `gorm:"column:ot_pay;type:numeric(14,2);not null;default:0"`
	VacationPay        float64 `gorm:"column:vacation_pay;type:numeric(14,2);not null;default:0"`
	HolidayPay         float64 `gorm:"column:holiday_pay;type:numeric(14,2);not null;default:0"`
	TotalPayableAmount float64 `gorm:"column:total_payable_amount;type:numeric(14,2);not null;default:0"`

	Status      string     `gorm:"column:status;type:varchar(20);not null;default:DRAFT"`
	GeneratedBy uuid.UUID  `gorm:"column:generated_by;type:uuid;not null"`
	FinalizedAt *time.Time `gorm:"column:finalized_at"`
	PaidAt      *time.Time `gorm:"column:paid_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}

func (MonthlySummary) TableName() string {
	return "monthly_summaries"
}
