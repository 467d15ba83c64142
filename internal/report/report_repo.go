package report

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRateRow is the slice of the employee record the aggregator needs.
type EmployeeRateRow struct {
	ID              uuid.UUID
	EmployeeNumber  string
	FullName        string
	Position        string
	PayRate         float64
	OTRate          float64
	VacationPayRate float64
}

// TimesheetHoursRow carries the derived hour fields of one timesheet.
type TimesheetHoursRow struct {
	HoursWorked    float64
	OTHours        float64
	IsVacationWork bool
	IsHolidayWork  bool
}

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindActiveEmployees(ctx context.Context) ([]EmployeeRateRow, error)
	FindTimesheetHours(ctx context.Context, employeeID string, from, to time.Time) ([]TimesheetHoursRow, error)
	FindByEmployeeAndPeriod(ctx context.Context, employeeID string, year, month int) (*MonthlySummary, error)
	Create(ctx context.Context, s *MonthlySummary) error
	Update(ctx context.Context, s *MonthlySummary) error
	FindByID(ctx context.Context, id string) (*MonthlySummary, error)
	FindAllByPeriod(ctx context.Context, year, month int) ([]MonthlySummary, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]MonthlySummary, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindActiveEmployees(ctx context.Context) ([]EmployeeRateRow, error) {
	var rows []EmployeeRateRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, employee_number, full_name, position, pay_rate, ot_rate, vacation_pay_rate").
		Where("status = ?", "ACTIVE").
		Where("deleted_at IS NULL").
		Order("employee_number ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindTimesheetHours(ctx context.Context, employeeID string, from, to time.Time) ([]TimesheetHoursRow, error) {
	var rows []TimesheetHoursRow
	err := r.db.WithContext(ctx).
		Table("timesheets").
		Select("hours_worked, ot_hours, is_vacation_work, is_holiday_work").
		Where("employee_id = ?", employeeID).
		Where("work_date BETWEEN ? AND ?", from, to).
		Where("deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, employeeID string, year, month int) (*MonthlySummary, error) {
	var s MonthlySummary
	err := r.db.WithContext(ctx).
		First(&s, "employee_id = ? AND year = ? AND month = ?", employeeID, year, month).Error
	return &s, err
}

func (r *repository) Create(ctx context.Context, s *MonthlySummary) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) Update(ctx context.Context, s *MonthlySummary) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(s).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*MonthlySummary, error) {
	var s MonthlySummary
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindAllByPeriod(ctx context.Context, year, month int) ([]MonthlySummary, error) {
	var rows []MonthlySummary
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Joins("JOIN employees ON employees.id = monthly_summaries.employee_id").
		Where("monthly_summaries.year = ? AND monthly_summaries.month = ?", year, month).
		Order("employees.employee_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]MonthlySummary, error) {
	var rows []MonthlySummary
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("year DESC, month DESC").
		Find(&rows).Error
	return rows, err
}
