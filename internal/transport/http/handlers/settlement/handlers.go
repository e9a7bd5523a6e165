package settlementhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"finiquitos/internal/domain/audit"
	"finiquitos/internal/domain/auth"
	"finiquitos/internal/domain/settlement"
	"finiquitos/internal/transport/http/api"
	"finiquitos/internal/transport/http/middleware"
	"finiquitos/internal/transport/http/shared"
)

type Handler struct {
	Service *settlement.Service
	Audit   *audit.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *settlement.Service, auditSvc *audit.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settlements", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermSettlementRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermSettlementWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermSettlementRead, h.Perms)).Get("/{settlementID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermSettlementWrite, h.Perms)).Patch("/{settlementID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermSettlementDelete, h.Perms)).Delete("/{settlementID}", h.handleDelete)
		r.With(middleware.RequirePermission(auth.PermSettlementWrite, h.Perms)).Post("/{settlementID}/duplicate", h.handleDuplicate)
		r.With(middleware.RequirePermission(auth.PermSettlementRead, h.Perms)).Get("/{settlementID}/statement", h.handleStatement)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 25, 100)
	records, total, err := h.Service.List(r.Context(), user.TenantID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "settlement_list_failed", "failed to list settlements", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"items":  records,
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	in := payload.toInput(validator)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	rec, err := h.Service.Create(r.Context(), user.TenantID, in)
	if err != nil {
		h.fail(w, r, err, "settlement_create_failed", "failed to create settlement")
		return
	}
	h.record(r, user, "settlement.create", rec.ID, nil, rec.Input)
	api.Created(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	rec, err := h.Service.Get(r.Context(), user.TenantID, chi.URLParam(r, "settlementID"))
	if err != nil {
		h.fail(w, r, err, "settlement_get_failed", "failed to load settlement")
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload patchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	patch := payload.toPatch(validator)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id := chi.URLParam(r, "settlementID")
	before, err := h.Service.Get(r.Context(), user.TenantID, id)
	if err != nil {
		h.fail(w, r, err, "settlement_update_failed", "failed to update settlement")
		return
	}

	rec, err := h.Service.Update(r.Context(), user.TenantID, id, patch)
	if err != nil {
		h.fail(w, r, err, "settlement_update_failed", "failed to update settlement")
		return
	}
	h.record(r, user, "settlement.update", rec.ID, before.Input, rec.Input)
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	id := chi.URLParam(r, "settlementID")
	if err := h.Service.Delete(r.Context(), user.TenantID, id); err != nil {
		h.fail(w, r, err, "settlement_delete_failed", "failed to delete settlement")
		return
	}
	h.record(r, user, "settlement.delete", id, nil, nil)
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	draft, err := h.Service.Duplicate(r.Context(), user.TenantID, chi.URLParam(r, "settlementID"))
	if err != nil {
		h.fail(w, r, err, "settlement_duplicate_failed", "failed to duplicate settlement")
		return
	}
	api.Success(w, draft, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	cfg := settlement.DisplayConfig{Mode: settlement.DisplayItemized}
	if r.URL.Query().Get("mode") == string(settlement.DisplayGrouped) {
		cfg.Mode = settlement.DisplayGrouped
		if raw := r.URL.Query().Get("groups"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &cfg.Groups); err != nil {
				api.Fail(w, http.StatusBadRequest, "invalid_groups", "groups must be a JSON array", middleware.GetRequestID(r.Context()))
				return
			}
		}
	}

	id := chi.URLParam(r, "settlementID")
	data, err := h.Service.GenerateStatement(r.Context(), user.TenantID, id, cfg)
	if err != nil {
		h.fail(w, r, err, "settlement_statement_failed", "failed to generate statement")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=finiquito-%s.pdf", id))
	if _, err := w.Write(data); err != nil {
		slog.Warn("statement write failed", "settlementId", id, "err", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	reqID := middleware.GetRequestID(r.Context())
	var verr *settlement.ValidationError
	switch {
	case errors.As(err, &verr):
		shared.FailValidation(w, reqID, validationIssues(verr))
	case errors.Is(err, settlement.ErrRecordNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "settlement not found", reqID)
	case errors.Is(err, settlement.ErrUnsupportedVersion):
		api.Fail(w, http.StatusConflict, "unsupported_version", "legacy settlements cannot be updated or duplicated", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, reqID)
	}
}

func validationIssues(verr *settlement.ValidationError) []shared.ValidationIssue {
	out := make([]shared.ValidationIssue, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		out = append(out, shared.ValidationIssue{Field: issue.Field, Reason: issue.Reason})
	}
	return out
}

func (h *Handler) record(r *http.Request, user auth.UserContext, action, entityID string, before, after any) {
	if h.Audit == nil {
		return
	}
	err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, action, "settlement", entityID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, after)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
