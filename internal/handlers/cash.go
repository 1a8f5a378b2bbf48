package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/middleware"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/internal/response"
)

type cashService interface {
	Denominations() []models.Denomination
	Summary(ctx context.Context, owner string) dto.CashSummary
	Increment(ctx context.Context, owner string, value int64) (dto.CashSummary, error)
	Decrement(ctx context.Context, owner string, value int64) (dto.CashSummary, error)
	Set(ctx context.Context, owner string, value int64, text string) (dto.CashSummary, error)
	Reset(ctx context.Context, owner string) dto.CashSummary
}

type cashHandlers struct {
	ResponseHandler response.ResponseHandler
	CashSvc         cashService
}

func NewCashHandlers(deps *Deps) *cashHandlers {
	return &cashHandlers{
		ResponseHandler: deps.ResponseHandler,
		CashSvc:         deps.CashSvc,
	}
}

func (h *cashHandlers) CashRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Summary)
	r.Delete("/", h.Reset)
	r.Post("/{value}/increment", h.Increment)
	r.Post("/{value}/decrement", h.Decrement)
	r.Put("/{value}", h.Set)
	return r
}

func (h *cashHandlers) Denominations(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.CashSvc.Denominations())
}

func (h *cashHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.CashSvc.Summary(r.Context(), uid))
}

func (h *cashHandlers) Reset(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.CashSvc.Reset(r.Context(), uid))
}

func (h *cashHandlers) Increment(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.CashSvc.Increment)
}

func (h *cashHandlers) Decrement(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.CashSvc.Decrement)
}

func (h *cashHandlers) Set(w http.ResponseWriter, r *http.Request) {
	value, err := denominationParam(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var req dto.SetCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	summary, err := h.CashSvc.Set(r.Context(), uid, value, req.CountText())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}

func (h *cashHandlers) step(w http.ResponseWriter, r *http.Request, fn func(context.Context, string, int64) (dto.CashSummary, error)) {
	value, err := denominationParam(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	summary, err := fn(r.Context(), uid, value)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}

func denominationParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "value")
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValidationError("invalid denomination: " + raw)
	}
	return value, nil
}
