package handler

import (
	"net/http"

	"github.com/chatbooking/admin/backend/internal/domain"
)

func (h *Handler) GetProviders(w http.ResponseWriter, r *http.Request) {
	admin := r.Context().Value(AdminCtx).(*domain.Admin)

	providers, err := h.api.ListProviders(r.Context(), admin.TenantID)
	if err != nil {
		h.remoteError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取服务者列表成功", providers)
}
