package timesheet

import (
	"time"

	"go-workforce/internal/employee"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Timesheet struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_timesheet_employee_workdate;index:idx_timesheets_employee_status"`
	WorkDate   time.Time `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_timesheet_employee_workdate"`

	StartTime    string `gorm:"column:start_time;type:varchar(5);not null"`
	EndTime      string `gorm:"column:end_time;type:varchar(5);not null"`
	BreakMinutes int    `gorm:"column:break_minutes;type:int;not null;default:0"`

	// Derived by the time calculator; never taken from clients.
	HoursWorked float64 `gorm:"column:hours_worked;type:numeric(5,2);not null;default:0"`
	OTHours     float64 `gorm:"column:ot_hours;type:numeric(5,2);not null;default:0"`

	IsVacationWork bool   `gorm:"column:is_vacation_work;not null;default:false"`
	IsHolidayWork  bool   `gorm:"column:is_holiday_work;not null;default:false"`
	Notes          string `gorm:"column:notes;type:varchar(500)"`

	Status         string    `gorm:"column:status;type:varchar(20);not null;default:DRAFT;index:idx_timesheets_employee_status"`
	CreatedBy      uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	LastModifiedBy uuid.UUID `gorm:"column:last_modified_by;type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}
