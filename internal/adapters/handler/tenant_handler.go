package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

type TenantHandler struct {
	allocationService ports.AllocationService
	tenantService     ports.TenantService
}

func NewTenantHandler(allocation ports.AllocationService, tenants ports.TenantService) *TenantHandler {
	return &TenantHandler{
		allocationService: allocation,
		tenantService:     tenants,
	}
}

type AdmitTenantRequest struct {
	RoomID           string `json:"room_id"`
	Kind             string `json:"kind"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
}

type AdmitTenantResponse struct {
	Tenant    *domain.Tenant    `json:"tenant"`
	Occupancy *domain.Occupancy `json:"occupancy"`
}

type TenantIDRequest struct {
	TenantID string `json:"tenant_id"`
}

type AttachContractRequest struct {
	TenantID string `json:"tenant_id"`
	ImageURL string `json:"image_url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *TenantHandler) Admit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AdmitTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	kind := domain.TenantKind(req.Kind)
	switch kind {
	case "":
		kind = domain.KindPrimary
	case domain.KindPrimary, domain.KindDependent:
	default:
		http.Error(w, "Unsupported tenant kind", http.StatusBadRequest)
		return
	}

	draft := domain.TenantDraft{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
	}

	tenant, occ, err := h.allocationService.AdmitTenant(r.Context(), req.RoomID, draft, kind)
	if err != nil {
		h.writeAdmitError(w, err)
		return
	}
	admissionsTotal.WithLabelValues("admitted").Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(AdmitTenantResponse{Tenant: tenant, Occupancy: occ}); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// writeAdmitError maps the allocation error taxonomy onto HTTP statuses.
// The occupancy-create partial failure gets its own body so callers can
// tell an orphaned tenant from an ordinary failed request.
func (h *TenantHandler) writeAdmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomFull):
		admissionsTotal.WithLabelValues("room_full").Inc()
		writeJSONError(w, http.StatusConflict, "room is at full capacity")
	case errors.Is(err, domain.ErrRoomLookupFailed):
		admissionsTotal.WithLabelValues("failed").Inc()
		writeJSONError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, domain.ErrOccupancyCreateFailed):
		admissionsTotal.WithLabelValues("partial").Inc()
		log.Printf("admission partially applied: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "tenant created but occupancy assignment failed; manual reconciliation required")
	default:
		admissionsTotal.WithLabelValues("failed").Inc()
		log.Printf("admission failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "admission failed")
	}
}

func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tenants, err := h.tenantService.ListTenants(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("tenant list failed: %v", err)
		http.Error(w, "failed to list tenants", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tenants); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func (h *TenantHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.tenantAction(w, r, h.tenantService.Checkout)
}

func (h *TenantHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.tenantAction(w, r, h.tenantService.Deactivate)
}

func (h *TenantHandler) AttachContract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AttachContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.TenantID == "" || req.ImageURL == "" {
		http.Error(w, "tenant_id and image_url are required", http.StatusBadRequest)
		return
	}

	if err := h.tenantService.AttachContract(r.Context(), req.TenantID, req.ImageURL); err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			writeJSONError(w, http.StatusNotFound, "tenant not found")
			return
		}
		log.Printf("attach contract failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to attach contract")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TenantHandler) tenantAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id string) error) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TenantIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.TenantID == "" {
		http.Error(w, "tenant_id is required", http.StatusBadRequest)
		return
	}

	if err := action(r.Context(), req.TenantID); err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			writeJSONError(w, http.StatusNotFound, "tenant not found")
			return
		}
		log.Printf("tenant action failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "operation failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
