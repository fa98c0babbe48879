package handler

import (
	"errors"
	"net/http"

	"github.com/chatbooking/admin/backend/internal/availability"
	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/go-chi/chi/v5"
)

type timeWindowRequest struct {
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end" validate:"required,datetime=15:04"`
}

func toTimeWindows(reqs []timeWindowRequest) []domain.TimeWindow {
	windows := make([]domain.TimeWindow, 0, len(reqs))
	for _, w := range reqs {
		windows = append(windows, domain.TimeWindow{Start: w.Start, End: w.End})
	}
	return windows
}

// exceptionError 区分可以直接提示给用户的校验错误
func (h *Handler) exceptionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, availability.ErrPastDate),
		errors.Is(err, availability.ErrDuplicateDate),
		errors.Is(err, availability.ErrInvalidDate):
		h.errorResponse(w, r, err.Error())
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) AddException(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	var req struct {
		Date    string              `json:"date" validate:"required,datetime=2006-01-02"`
		Type    string              `json:"type" validate:"required,oneof=off custom"`
		Windows []timeWindowRequest `json:"timeWindows" validate:"required_if=Type custom,dive"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.Type == string(domain.ExceptionCustom) && len(req.Windows) == 0 {
		h.badRequest(w, r, availability.ErrEmptyCustom)
		return
	}

	if err := editor.AddException(req.Date, domain.ExceptionType(req.Type), toTimeWindows(req.Windows), h.now()); err != nil {
		h.exceptionError(w, r, err)
		return
	}

	h.storeDraft(w, r, editor, "添加例外成功")
}

func (h *Handler) RemoveException(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	editor.RemoveException(chi.URLParam(r, "exceptionID"))

	h.storeDraft(w, r, editor, "删除例外成功")
}

func (h *Handler) UpdateExceptionDraft(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	var req struct {
		Date    string              `json:"date" validate:"omitempty,datetime=2006-01-02"`
		Windows []timeWindowRequest `json:"timeWindows" validate:"omitempty,dive"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var windows []domain.TimeWindow
	if req.Windows != nil {
		windows = toTimeWindows(req.Windows)
	}
	editor.SetExceptionDraft(req.Date, windows)

	h.storeDraft(w, r, editor, "修改例外草稿成功")
}

func (h *Handler) ToggleExceptionDraftType(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	editor.ToggleExceptionType()

	h.storeDraft(w, r, editor, "切换例外类型成功")
}

func (h *Handler) CommitExceptionDraft(w http.ResponseWriter, r *http.Request) {
	editor := r.Context().Value(DraftCtx).(*availability.Editor)

	if editor.ExceptionDraft.Date == "" {
		h.errorResponse(w, r, "请先选择日期")
		return
	}

	if err := editor.CommitExceptionDraft(h.now()); err != nil {
		h.exceptionError(w, r, err)
		return
	}

	h.storeDraft(w, r, editor, "添加例外成功")
}
