package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/payroll"
	"github.com/cmlabs-hris/workledger/internal/handler/http/response"
)

type PayrollHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	EmployeeStat(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	loc            *time.Location
	now            func() time.Time
}

func NewPayrollHandler(payrollService payroll.PayrollService, loc *time.Location) PayrollHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &payrollHandlerImpl{
		payrollService: payrollService,
		loc:            loc,
		now:            time.Now,
	}
}

// period reads year and month, defaulting each to the current month.
func (h *payrollHandlerImpl) period(r *http.Request) (payroll.PeriodRequest, error) {
	today := h.now().In(h.loc)

	year, err := queryInt(r, "year", today.Year())
	if err != nil {
		return payroll.PeriodRequest{}, err
	}
	month, err := queryInt(r, "month", int(today.Month()))
	if err != nil {
		return payroll.PeriodRequest{}, err
	}
	return payroll.PeriodRequest{Year: year, Month: month}, nil
}

// Monthly implements PayrollHandler.
func (h *payrollHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	period, err := h.period(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.MonthlyPayroll(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// EmployeeStat implements PayrollHandler.
func (h *payrollHandlerImpl) EmployeeStat(w http.ResponseWriter, r *http.Request) {
	employeeID, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	period, err := h.period(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stat, err := h.payrollService.ComputeEmployeeStat(r.Context(), payroll.EmployeeStatRequest{
		EmployeeID:    employeeID,
		PeriodRequest: period,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stat)
}

// Report implements PayrollHandler.
func (h *payrollHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	period, err := h.period(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	scope := payroll.ScopeKind(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = payroll.ScopeSingleMonth
	}

	report, err := h.payrollService.ComputePeriodReport(r.Context(), payroll.PeriodReportRequest{
		Scope:         scope,
		PeriodRequest: period,
		EmployeeName:  r.URL.Query().Get("name"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

// Export implements PayrollHandler.
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	period, err := h.period(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	export, err := h.payrollService.Export(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, export)
}
