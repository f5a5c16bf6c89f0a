package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workledger/internal/domain/attendance"
	"github.com/cmlabs-hris/workledger/internal/handler/http/response"
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Record(w http.ResponseWriter, r *http.Request)
	Clear(w http.ResponseWriter, r *http.Request)
	TeamMatrix(w http.ResponseWriter, r *http.Request)
	TeamBatch(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListAttendance(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, records, response.NewListMeta(len(records), validator.ClampLimit(limit, attendance.DefaultListLimit, attendance.MaxListLimit)))
}

// Record implements AttendanceHandler.
func (h *attendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Record attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.RecordAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance recorded successfully", record)
}

// Clear implements AttendanceHandler.
func (h *attendanceHandlerImpl) Clear(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClearAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Clear attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ClearAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance cleared successfully", result)
}

// TeamMatrix implements AttendanceHandler.
func (h *attendanceHandlerImpl) TeamMatrix(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	matrix, err := h.attendanceService.GetAttendanceMatrix(r.Context(), teamID, r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, matrix)
}

// TeamBatch implements AttendanceHandler.
func (h *attendanceHandlerImpl) TeamBatch(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.BatchAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Batch attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TeamID = teamID

	result, err := h.attendanceService.RecordBatchAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
