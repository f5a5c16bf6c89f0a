package http

import (
	"net/http"

	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/handler/http/response"
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{auditService: auditService}
}

// List implements AuditHandler.
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	logs, err := h.auditService.ListLogs(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, logs, response.NewListMeta(len(logs), validator.ClampLimit(limit, audit.DefaultListLimit, audit.MaxListLimit)))
}
