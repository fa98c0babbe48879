package handler

import (
	"errors"
	"net/http"

	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/chatbooking/admin/backend/internal/settings"
)

func (h *Handler) GetTenantSettings(w http.ResponseWriter, r *http.Request) {
	admin := r.Context().Value(AdminCtx).(*domain.Admin)

	raw, err := h.api.GetTenantSettings(r.Context(), admin.TenantID)
	if err != nil {
		h.remoteError(w, r, err)
		return
	}

	s, err := settings.Migrate(raw)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrUnsupportedShape):
			h.errorResponse(w, r, "租户设置格式无法识别")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取租户设置成功", s)
}

func (h *Handler) UpdateTenantSettings(w http.ResponseWriter, r *http.Request) {
	admin := r.Context().Value(AdminCtx).(*domain.Admin)

	s := settings.Default()
	if err := h.readJSON(w, r, s); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := s.Validate(h.validate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	encoded, err := s.Encode()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.api.UpdateTenantSettings(r.Context(), admin.TenantID, encoded); err != nil {
		h.remoteError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新租户设置成功", s)
}
