package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string    `gorm:"column:employee_number;type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"column:full_name;type:varchar(255);not null"`
	Position       string    `gorm:"column:position;type:varchar(100)"`
	HireDate       time.Time `gorm:"column:hire_date;type:date;not null"`

	PayRate         float64 `gorm:"column:pay_rate;type:numeric(12,2);not null;default:0"`
	OTRate          float64 `gorm:"column:ot_rate;type:numeric(12,2);not null;default:0"`
	VacationPayRate float64 `gorm:"column:vacation_pay_rate;type:numeric(12,2);not null;default:0"`

	BreakTimePaid    bool `gorm:"column:break_time_paid;not null;default:false"`
	BreakTimeMinutes int  `gorm:"column:break_time_minutes;not null;default:0"`

	Status string `gorm:"column:status;type:varchar(20);not null;default:ACTIVE;index"`

	Email       string     `gorm:"column:email;type:varchar(255);uniqueIndex:uq_employee_email"`
	Phone       string     `gorm:"column:phone;type:varchar(50)"`
	Address     string     `gorm:"column:address;type:text"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth;type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
