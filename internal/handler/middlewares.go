package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/chatbooking/admin/backend/internal/drafts"
	"github.com/chatbooking/admin/backend/internal/remote"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		h.metrics.ObserveRequest(r.Method, route, rw.StatusCode, duration)

		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type AuthClaims struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	TenantID string `json:"tenant"`
	jwt.RegisteredClaims
}

// bearerToken 优先读取 cookie，其次读取 Authorization 头
func (h *Handler) bearerToken(r *http.Request) string {
	if cookie, err := r.Cookie(h.config.JWT.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := h.bearerToken(r)
		if tokenString == "" {
			h.errorResponse(w, r, "用户未登录")
			return
		}

		opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
		if h.config.JWT.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(h.config.JWT.Issuer))
		}

		claims := &AuthClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		}, opts...)
		if err != nil {
			h.errorResponse(w, r, "无效的令牌")
			return
		}

		admin := &domain.Admin{
			Subject:  claims.Subject,
			Email:    claims.Email,
			Role:     domain.Role(claims.Role),
			TenantID: claims.TenantID,
		}

		// 令牌同时会被转发给远端 API
		ctx := context.WithValue(r.Context(), AdminCtx, admin)
		ctx = remote.WithToken(ctx, tokenString)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin := r.Context().Value(AdminCtx).(*domain.Admin)
			if !slices.Contains(roles, admin.Role) {
				h.errorResponse(w, r, "权限不足")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) availabilityDraft(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin := r.Context().Value(AdminCtx).(*domain.Admin)
		providerID := chi.URLParam(r, "providerID")

		editor, err := h.drafts.Load(r.Context(), admin.Subject, providerID)
		if err != nil {
			switch {
			case errors.Is(err, drafts.ErrDraftNotFound):
				h.errorResponse(w, r, "编辑已过期，请重新加载该服务者的可预约时间")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), DraftCtx, editor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// remoteError 将远端 API 的错误转换为响应
func (h *Handler) remoteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, remote.ErrUnauthorized):
		h.errorResponse(w, r, "预约系统拒绝了当前凭据，请重新登录")
	case errors.Is(err, remote.ErrNotFound):
		h.errorResponse(w, r, "资源不存在")
	case errors.Is(err, remote.ErrGraphQL):
		slog.Warn("预约系统返回错误", "path", r.URL.Path, "error", err)
		h.errorResponse(w, r, "预约系统返回错误，请稍后重试")
	default:
		h.internalServerError(w, r, err)
	}
}
