package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/handler/http/response"
)

type AdminHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type adminHandlerImpl struct {
	adminService user.AdminService
}

func NewAdminHandler(adminService user.AdminService) AdminHandler {
	return &adminHandlerImpl{adminService: adminService}
}

// List implements AdminHandler.
func (h *adminHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminService.ListAdmins(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, admins)
}

// Create implements AdminHandler.
func (h *adminHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create admin decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.adminService.CreateAdmin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Admin created successfully", created)
}

// Delete implements AdminHandler.
func (h *adminHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.adminService.DeleteAdmin(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Admin deleted successfully", nil)
}
