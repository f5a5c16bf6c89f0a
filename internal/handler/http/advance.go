package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workledger/internal/domain/advance"
	"github.com/cmlabs-hris/workledger/internal/handler/http/response"
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
)

type AdvanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Record(w http.ResponseWriter, r *http.Request)
}

type advanceHandlerImpl struct {
	advanceService advance.AdvanceService
}

func NewAdvanceHandler(advanceService advance.AdvanceService) AdvanceHandler {
	return &advanceHandlerImpl{advanceService: advanceService}
}

// List implements AdvanceHandler.
func (h *advanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	advances, err := h.advanceService.ListAdvances(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, advances, response.NewListMeta(len(advances), validator.ClampLimit(limit, advance.DefaultListLimit, advance.MaxListLimit)))
}

// Record implements AdvanceHandler.
func (h *advanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req advance.RecordAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Record advance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.advanceService.RecordAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Advance recorded successfully", created)
}
