package expense

import (
	"time"

	"go-workforce/internal/employee"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryTransport     = "TRANSPORT"
	CategoryMeals         = "MEALS"
	CategoryAccommodation = "ACCOMMODATION"
	CategorySupplies      = "SUPPLIES"
	CategoryOther         = "OTHER"
)

const (
	CurrencyLKR = "LKR"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

type Expense struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_expenses_employee_status"`
	ExpenseDate time.Time `gorm:"column:expense_date;type:date;not null"`

	Category    string  `gorm:"column:category;type:varchar(20);not null;default:OTHER"`
	Description string  `gorm:"column:description;type:varchar(255);not null"`
	Amount      float64 `gorm:"column:amount;type:numeric(12,2);not null;default:0"`
	Currency    string  `gorm:"column:currency;type:varchar(3);not null;default:LKR"`

	// Opaque reference to an externally stored receipt.
	Receipt string `gorm:"column:receipt;type:varchar(255)"`
	Notes   string `gorm:"column:notes;type:varchar(1000)"`

	Status          string     `gorm:"column:status;type:varchar(20);not null;default:DRAFT;index:idx_expenses_employee_status"`
	ApprovedBy      *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:varchar(500)"`

	CreatedBy      uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	LastModifiedBy uuid.UUID `gorm:"column:last_modified_by;type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}

func (Expense) TableName() string {
	return "expenses"
}
