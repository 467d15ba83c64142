package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/policy"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/contextutil"

	reporterrors "go-workforce/internal/report/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusFinalized = "FINALIZED"
	StatusPaid      = "PAID"
)

const (
	MinYear = 2020
	MaxYear = 2030
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, actor policy.Principal, year, month int) (GenerateSummariesResponse, error)
	GetByPeriod(ctx context.Context, year, month int) ([]MonthlySummaryResponse, error)
	GetByEmployee(ctx context.Context, actor policy.Principal, employeeID string) ([]MonthlySummaryResponse, error)
	Finalize(ctx context.Context, actor policy.Principal, id string) (MonthlySummaryResponse, error)
	Export(ctx context.Context, year, month int) (string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	policy policy.Service
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	policyService policy.Service,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		policy: policyService,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func validatePeriod(year, month int) error {
	if year < MinYear || year > MaxYear {
		return reporterrors.ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return reporterrors.ErrInvalidMonth
	}
	return nil
}

func periodBounds(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return from, to
}

// Generate aggregates the month's timesheets into one summary per active
// employee. Each employee commits in its own transaction: a mid-batch
// failure keeps the summaries already written and aborts the rest, and a
// re-run completes the batch because the upsert overwrites in place.
func (s *service) Generate(ctx context.Context, actor policy.Principal, year, month int) (GenerateSummariesResponse, error) {
	s.logger.Debug("generate summaries requested",
		zap.String("actor_id", actor.UserID),
		zap.Int("year", year),
		zap.Int("month", month),
	)

	if err := validatePeriod(year, month); err != nil {
		return GenerateSummariesResponse{}, err
	}
	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return GenerateSummariesResponse{}, apperror.ErrUnauthorized
	}

	employees, err := s.repo.FindActiveEmployees(ctx)
	if err != nil {
		s.logger.Error("generate summaries employee fetch failed", zap.Error(err))
		return GenerateSummariesResponse{}, err
	}

	from, to := periodBounds(year, month)
	upserted := 0

	for _, emp := range employees {
		if err := s.generateForEmployee(ctx, emp, year, month, from, to, actorUUID); err != nil {
			s.logger.Error("generate summaries aborted mid-batch",
				zap.String("employee_id", emp.ID.String()),
				zap.Int("upserted_so_far", upserted),
				zap.Error(err),
			)
			return GenerateSummariesResponse{}, err
		}
		upserted++
	}

	s.invalidateExportCache(ctx, year, month)
	s.logger.Info("generate summaries success",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("employees_processed", len(employees)),
	)

	return GenerateSummariesResponse{
		Year:               year,
		Month:              month,
		EmployeesProcessed: len(employees),
		SummariesUpserted:  upserted,
	}, nil
}

func (s *service) generateForEmployee(ctx context.Context, emp EmployeeRateRow, year, month int, from, to time.Time, actorUUID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sheets, err := qtx.FindTimesheetHours(ctx, emp.ID.String(), from, to)
	if err != nil {
		return err
	}

	var regular, ot, vacation, holiday float64
	for _, sheet := range sheets {
		r := sheet.HoursWorked - sheet.OTHours
		if r < 0 {
			r = 0
		}
		regular += r
		ot += sheet.OTHours
		// Vacation and holiday work count their full worked hours on top
		// of the regular/OT split.
		if sheet.IsVacationWork {
			vacation += sheet.HoursWorked
		}
		if sheet.IsHolidayWork {
			holiday += sheet.HoursWorked
		}
	}

	regularPay := regular * emp.PayRate
	otPay := ot * emp.OTRate
	vacationPay := vacation * emp.VacationPayRate
	holidayPay := holiday * emp.PayRate

	summary, err := qtx.FindByEmployeeAndPeriod(ctx, emp.ID.String(), year, month)
	switch {
	case err == nil:
		// Overwrite totals in place; status survives re-generation.
		summary.TotalRegularHours = regular
		summary.TotalOTHours = ot
		summary.TotalVacationHours = vacation
		summary.TotalHolidayHours = holiday
		summary.RegularPay = regularPay
		summary.OTPay = otPay
		summary.VacationPay = vacationPay
		summary.HolidayPay = holidayPay
		summary.TotalPayableAmount = regularPay + otPay + vacationPay + holidayPay
		summary.GeneratedBy = actorUUID
		if err := qtx.Update(ctx, summary); err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		summary = &MonthlySummary{
			ID:                 uuid.New(),
			EmployeeID:         emp.ID,
			Year:               year,
			Month:              month,
			TotalRegularHours:  regular,
			TotalOTHours:       ot,
			TotalVacationHours: vacation,
			TotalHolidayHours:  holiday,
			RegularPay:         regularPay,
			OTPay:              otPay,
			VacationPay:        vacationPay,
			HolidayPay:         holidayPay,
			TotalPayableAmount: regularPay + otPay + vacationPay + holidayPay,
			Status:             StatusDraft,
			GeneratedBy:        actorUUID,
		}
		if err := qtx.Create(ctx, summary); err != nil {
			return err
		}
	default:
		return err
	}

	return tx.Commit()
}

func (s *service) GetByPeriod(ctx context.Context, year, month int) ([]MonthlySummaryResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindAllByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, actor policy.Principal, employeeID string) ([]MonthlySummaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, reporterrors.ErrInvalidEmployeeID
	}

	decision, err := s.policy.AuthorizeOwned(actor, employeeID, policy.ResourceReport, policy.ActionRead)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, apperror.ErrForbidden
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Finalize(ctx context.Context, actor policy.Principal, id string) (MonthlySummaryResponse, error) {
	s.logger.Debug("finalize summary requested",
		zap.String("summary_id", id),
		zap.String("actor_id", actor.UserID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return MonthlySummaryResponse{}, reporterrors.ErrInvalidSummaryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("finalize summary begin tx failed", zap.Error(err))
		return MonthlySummaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	summary, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MonthlySummaryResponse{}, reporterrors.ErrSummaryNotFound
		}
		return MonthlySummaryResponse{}, err
	}

	if summary.Status != StatusDraft {
		return MonthlySummaryResponse{}, reporterrors.ErrAlreadyFinalized
	}

	now := time.Now().UTC()
	summary.Status = StatusFinalized
	summary.FinalizedAt = &now

	if err := qtx.Update(ctx, summary); err != nil {
		s.logger.Error("finalize summary persist failed",
			zap.String("summary_id", id),
			zap.Error(err),
		)
		return MonthlySummaryResponse{}, err
	}

	if s.outbox != nil {
		payload, err := json.Marshal(events.SummaryFinalizedEvent{
			EventType:   "summary_finalized",
			SummaryID:   summary.ID.String(),
			EmployeeID:  summary.EmployeeID.String(),
			Year:        summary.Year,
			Month:       summary.Month,
			TotalAmount: summary.TotalPayableAmount,
			FinalizedBy: actor.UserID,
			OccurredAt:  now,
		})
		if err != nil {
			return MonthlySummaryResponse{}, err
		}
		err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "monthly_summary",
			AggregateID:   summary.ID.String(),
			EventType:     "summary_finalized",
			Topic:         events.ReportLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
		if err != nil {
			s.logger.Error("finalize summary outbox failed", zap.Error(err))
			return MonthlySummaryResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("finalize summary commit failed", zap.Error(err))
		return MonthlySummaryResponse{}, err
	}

	s.logger.Info("finalize summary success",
		zap.String("summary_id", id),
		zap.Int("year", summary.Year),
		zap.Int("month", summary.Month),
	)
	return mapToResponse(*summary), nil
}

func exportCacheKey(year, month int) string {
	return fmt.Sprintf("reports:export:%04d:%02d", year, month)
}

// Export renders the month's summaries as tab-delimited text, one row per
// employee in employee-number order. The rendered document is cached until
// the next Generate for the same period.
func (s *service) Export(ctx context.Context, year, month int) (string, error) {
	if err := validatePeriod(year, month); err != nil {
		return "", err
	}

	key := exportCacheKey(year, month)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			return cached, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		rows, err := s.repo.FindAllByPeriod(ctx, year, month)
		if err != nil {
			return "", err
		}

		doc := renderExport(rows)
		if s.rdb != nil {
			_ = s.rdb.Set(ctx, key, doc, 10*time.Minute).Err()
		}
		return doc, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func renderExport(rows []MonthlySummary) string {
	var b strings.Builder
	b.WriteString("employee_number\tname\tposition\tregular_hours\tot_hours\tvacation_hours\tholiday_hours\ttotal_payable\n")
	for _, row := range rows {
		number, name, position := "", "", ""
		if row.Employee != nil {
			number = row.Employee.EmployeeNumber
			name = row.Employee.FullName
			position = row.Employee.Position
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			number, name, position,
			row.TotalRegularHours, row.TotalOTHours,
			row.TotalVacationHours, row.TotalHolidayHours,
			row.TotalPayableAmount,
		)
	}
	return b.String()
}

func (s *service) invalidateExportCache(ctx context.Context, year, month int) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, exportCacheKey(year, month)).Err()
	}
}

func mapToResponse(m MonthlySummary) MonthlySummaryResponse {
	resp := MonthlySummaryResponse{
		ID:                 m.ID.String(),
		EmployeeID:         m.EmployeeID.String(),
		Year:               m.Year,
		Month:              m.Month,
		TotalRegularHours:  m.TotalRegularHours,
		TotalOTHours:       m.TotalOTHours,
		TotalVacationHours: m.TotalVacationHours,
		TotalHolidayHours:  m.TotalHolidayHours,
		RegularPay:         m.RegularPay,
		OTPay:              m.OTPay,
		VacationPay:        m.VacationPay,
		HolidayPay:         m.HolidayPay,
		TotalPayableAmount: m.TotalPayableAmount,
		Status:             m.Status,
		GeneratedBy:        m.GeneratedBy.String(),
	}
	if m.Employee != nil {
		resp.EmployeeName = m.Employee.FullName
		resp.EmployeeNumber = m.Employee.EmployeeNumber
	}
	if m.FinalizedAt != nil {
		v := m.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &v
	}
	if m.PaidAt != nil {
		v := m.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func mapToListResponse(rows []MonthlySummary) []MonthlySummaryResponse {
	resp := make([]MonthlySummaryResponse, len(rows))
	for i, m := range rows {
		resp[i] = mapToResponse(m)
	}
	return resp
}
