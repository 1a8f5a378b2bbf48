package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/middleware"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/internal/response"
)

type savedAccountService interface {
	List(ctx context.Context, owner string) ([]models.SavedAccount, error)
	Save(ctx context.Context, owner string, req dto.SaveAccountRequest) ([]models.SavedAccount, error)
	Delete(ctx context.Context, owner, id string) ([]models.SavedAccount, error)
	Load(ctx context.Context, owner, id string) (dto.LoadedAccount, error)
}

type savedAccountHandlers struct {
	ResponseHandler response.ResponseHandler
	SavedAccountSvc savedAccountService
}

func NewSavedAccountHandlers(deps *Deps) *savedAccountHandlers {
	return &savedAccountHandlers{
		ResponseHandler: deps.ResponseHandler,
		SavedAccountSvc: deps.SavedAccountSvc,
	}
}

func (h *savedAccountHandlers) SavedAccountRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Save)
	r.Get("/{id}", h.Load)
	r.Delete("/{id}", h.Delete)
	return r
}

func (h *savedAccountHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	accounts, err := h.SavedAccountSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *savedAccountHandlers) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	accounts, err := h.SavedAccountSvc.Save(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *savedAccountHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	accounts, err := h.SavedAccountSvc.Delete(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *savedAccountHandlers) Load(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	account, err := h.SavedAccountSvc.Load(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, account)
}
