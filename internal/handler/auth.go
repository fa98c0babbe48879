package handler

import (
	"net/http"
	"time"

	"github.com/chatbooking/admin/backend/internal/domain"
)

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.JWT.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HttpOnly: true,
	})

	h.successResponse(w, r, "登出成功", nil)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	admin := r.Context().Value(AdminCtx).(*domain.Admin)
	h.successResponse(w, r, "获取个人信息成功", admin)
}
