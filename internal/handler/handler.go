package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chatbooking/admin/backend/internal/availability"
	"github.com/chatbooking/admin/backend/internal/config"
	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/chatbooking/admin/backend/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BookingAPI 是远端 GraphQL API 中本服务用到的部分
type BookingAPI interface {
	availability.Writer
	GetProviderAvailability(ctx context.Context, providerID string) ([]json.RawMessage, error)
	ListProviders(ctx context.Context, tenantID string) ([]domain.Provider, error)
	GetTenantSettings(ctx context.Context, tenantID string) (json.RawMessage, error)
	UpdateTenantSettings(ctx context.Context, tenantID string, settings string) error
}

type DraftStore interface {
	Load(ctx context.Context, subject, providerID string) (*availability.Editor, error)
	Save(ctx context.Context, subject string, editor *availability.Editor) error
	Delete(ctx context.Context, subject, providerID string) error
}

type AuditLog interface {
	InsertAvailabilitySave(save *domain.AvailabilitySave) error
	GetAvailabilitySaves(providerID string, limit uint64) ([]*domain.AvailabilitySave, error)
}

type MailPublisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	translator ut.Translator
	api        BookingAPI
	saver      *availability.Saver
	drafts     DraftStore
	audit      AuditLog
	mail       MailPublisher
	metrics    *metrics.Metrics
	now        func() time.Time

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, api BookingAPI, drafts DraftStore, audit AuditLog, mail MailPublisher, m *metrics.Metrics) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		translator: trans,
		api:        api,
		saver:      availability.NewSaver(api),
		drafts:     drafts,
		audit:      audit,
		mail:       mail,
		metrics:    m,
		now:        time.Now,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	if h.metrics != nil && h.config.Metrics.Enabled {
		h.Mux.Handle(h.config.Metrics.Path, promhttp.Handler())
	}

	// 登录由身份提供方完成，这里只负责清除 cookie
	h.Mux.Post("/auth/logout", h.Logout)

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/me", h.GetMe)

		r.Group(func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleOwner, domain.RoleAdmin}))

			r.Get("/providers", h.GetProviders)

			r.Route("/providers/{providerID}/availability", func(r chi.Router) {
				r.Get("/", h.LoadAvailability)
				r.Get("/saves", h.GetAvailabilitySaves)

				r.Route("/draft", func(r chi.Router) {
					r.Use(h.availabilityDraft)
					r.Get("/", h.GetDraft)
					r.Delete("/", h.DiscardDraft)
					r.Get("/bookable", h.CheckBookable)
					r.Post("/save", h.SaveAvailability)

					r.Route("/days/{day}", func(r chi.Router) {
						r.Post("/toggle", h.ToggleDay)
						r.Post("/windows", h.AddWindow)
						r.Patch("/windows/{index}", h.UpdateWindow)
						r.Delete("/windows/{index}", h.RemoveWindow)
					})

					r.Post("/exceptions", h.AddException)
					r.Delete("/exceptions/{exceptionID}", h.RemoveException)

					r.Route("/exception-draft", func(r chi.Router) {
						r.Put("/", h.UpdateExceptionDraft)
						r.Post("/toggle", h.ToggleExceptionDraftType)
						r.Post("/commit", h.CommitExceptionDraft)
					})
				})
			})

			r.Route("/tenant/settings", func(r chi.Router) {
				r.Get("/", h.GetTenantSettings)
				r.With(h.RequiredRole([]domain.Role{domain.RoleOwner})).Put("/", h.UpdateTenantSettings)
			})
		})
	})
}
