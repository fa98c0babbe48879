package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/chatbooking/admin/backend/internal/availability"
	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/chatbooking/admin/backend/internal/drafts"
	"github.com/go-chi/chi/v5"
)

const (
	defaultSavesLimit = 20
	maxSavesLimit     = 100
)

// LoadAvailability 从预约系统加载服务者的可预约时间并开始一次新的编辑。
// 如果已有未保存的修改且没有指定 discard=true，则返回现有草稿并提示用户。
func (h *Handler) LoadAvailability(w http.ResponseWriter, r *http.Request) {
	admin := r.Context().Value(AdminCtx).(*domain.Admin)
	providerID := chi.URLParam(r, "providerID")

	if r.URL.Query().Get("discard") != "true" {
		existing, err := h.drafts.Load(r.Context(), admin.Subject, providerID)
		switch {
		case err == nil && !existing.IsSaved:
			h.errorResponseWithData(w, r, "存在尚未保存的修改", existing)
			return
		case err != nil && !errors.Is(err, drafts.ErrDraftNotFound):
			h.internalServerError(w, r, err)
			return
		}
	}

	raw, err := h.api.GetProviderAvailability(r.Context(), providerID)
	if err != nil {
		h.remoteError(w, r, err)
		return
	}

	schedule, exceptions := availability.DeserializeRaw(raw)
	editor := availability.NewEditor(providerID, schedule, exceptions, h.now())

	if err := h.drafts.Save(r.Context(), admin.Subject, editor); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取可预约时间成功", editor)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)
	h.successResponse(w, r, "获取草稿成功", editor)
}

func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	admin := r.Context().Value(AdminCtx).(*domain.Admin)
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	if err := h.drafts.Delete(r.Context(), admin.Subject, editor.ProviderID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已放弃修改", nil)
}

// storeDraft 持久化修改后的草稿并返回给前端
func (h *Handler) storeDraft(w http.ResponseWriter, r *http.Request, editor *availability.Editor, msg string) {
	admin := r.Context().Value(AdminCtx).(*domain.Admin)

	if err := h.drafts.Save(r.Context(), admin.Subject, editor); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, msg, editor)
}

func dayParam(r *http.Request) (int32, error) {
	day, err := strconv.ParseInt(chi.URLParam(r, "day"), 10, 32)
	if err != nil || day < 1 || day > 7 {
		return 0, availability.ErrUnknownDay
	}
	return int32(day), nil
}

func indexParam(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		return 0, availability.ErrUnknownWindow
	}
	return index, nil
}

func (h *Handler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	day, err := dayParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := editor.ToggleDay(day); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.storeDraft(w, r, editor, "切换成功")
}

func (h *Handler) AddWindow(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	day, err := dayParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := editor.AddWindow(day); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.storeDraft(w, r, editor, "添加时间段成功")
}

func (h *Handler) UpdateWindow(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	var req struct {
		Start string `json:"start" validate:"required,datetime=15:04"`
		End   string `json:"end" validate:"required,datetime=15:04"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	day, err := dayParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	index, err := indexParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := editor.SetWindowTime(day, index, req.Start, req.End); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.storeDraft(w, r, editor, "修改时间段成功")
}

func (h *Handler) RemoveWindow(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	day, err := dayParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	index, err := indexParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := editor.RemoveWindow(day, index); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.storeDraft(w, r, editor, "删除时间段成功")
}

func (h *Handler) CheckBookable(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	req := struct {
		Date string `validate:"required,datetime=2006-01-02"`
		Time string `validate:"required,datetime=15:04"`
	}{
		Date: r.URL.Query().Get("date"),
		Time: r.URL.Query().Get("time"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule := availability.Normalize(editor.Schedule)
	bookable, err := availability.IsBookable(schedule, editor.Exceptions, req.Date, req.Time)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	windows, err := availability.EffectiveWindows(schedule, editor.Exceptions, req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "查询成功", map[string]any{
		"date":     req.Date,
		"time":     req.Time,
		"bookable": bookable,
		"windows":  windows,
	})
}

// SaveAvailability 将草稿整体写回预约系统。任何一个写请求失败都会使草稿保持未保存状态，
// 已经成功的部分不会回滚，具体结果记录在审计日志中。
func (h *Handler) SaveAvailability(w http.ResponseWriter, r *http.Request) {
	admin := r.Context().Value(AdminCtx).(*domain.Admin)
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	payload := editor.Payload()
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := editor.Validate(); err != nil {
		h.recordSave(admin, editor.ProviderID, domain.SaveRejected, nil, payloadJSON)
		h.badRequest(w, r, err)
		return
	}

	result, err := h.saver.Save(r.Context(), editor.ProviderID, payload)
	h.recordSave(admin, editor.ProviderID, result.Status, result.Failed, payloadJSON)
	h.notifySave(r, admin, editor, result)

	if err != nil {
		var writeErr *availability.RemoteWriteError
		if errors.As(err, &writeErr) {
			h.errorResponseWithData(w, r, "保存失败，请重试", result)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	editor.MarkSaved()
	h.storeDraft(w, r, editor, "保存成功")
}

func (h *Handler) recordSave(admin *domain.Admin, providerID string, status domain.SaveStatus, failed []string, payload []byte) {
	h.metrics.ObserveSave(string(status))

	save := &domain.AvailabilitySave{
		ProviderID:  providerID,
		Actor:       admin.Subject,
		Status:      status,
		FailedParts: failed,
		Payload:     payload,
	}
	if err := h.audit.InsertAvailabilitySave(save); err != nil {
		slog.Error("无法写入保存记录", "provider", providerID, "status", status, "error", err)
	}
}

// notifySave 通过邮件队列通知操作者保存结果，投递失败只记录日志
func (h *Handler) notifySave(r *http.Request, admin *domain.Admin, editor *availability.Editor, result *availability.SaveResult) {
	if admin.Email == "" {
		return
	}

	msg := domain.MailMessage{To: admin.Email}
	if result.Status == domain.SaveSucceeded {
		enabled := make([]string, 0, 7)
		for _, d := range availability.Normalize(editor.Schedule) {
			if d.Enabled {
				code, _ := domain.DayCodeOf(d.DayOfWeek)
				enabled = append(enabled, string(code))
			}
		}
		msg.Type = domain.MailAvailabilitySaved
		msg.Data = domain.AvailabilitySavedMailData{
			ProviderID:  editor.ProviderID,
			Actor:       admin.Subject,
			EnabledDays: enabled,
			Exceptions:  len(editor.Exceptions),
		}
	} else {
		msg.Type = domain.MailAvailabilitySaveFailed
		msg.Data = domain.AvailabilitySaveFailedMailData{
			ProviderID:  editor.ProviderID,
			Actor:       admin.Subject,
			Status:      string(result.Status),
			FailedParts: result.Failed,
		}
	}

	if err := h.mail.Publish(r.Context(), msg); err != nil {
		slog.Error("无法投递邮件", "type", msg.Type, "to", msg.To, "error", err)
	}
}

func (h *Handler) GetAvailabilitySaves(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")

	limit := uint64(defaultSavesLimit)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			h.errorResponse(w, r, "limit 参数无效")
			return
		}
		limit = min(n, maxSavesLimit)
	}

	saves, err := h.audit.GetAvailabilitySaves(providerID, limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取保存记录成功", saves)
}
