package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/middleware"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/internal/response"
)

type preferenceService interface {
	Theme(ctx context.Context, owner string, systemHint models.Theme) (models.Theme, error)
	SetTheme(ctx context.Context, owner string, theme models.Theme) (models.Theme, error)
	ToggleTheme(ctx context.Context, owner string, systemHint models.Theme) (models.Theme, error)
}

type preferenceHandlers struct {
	ResponseHandler response.ResponseHandler
	PreferenceSvc   preferenceService
}

func NewPreferenceHandlers(deps *Deps) *preferenceHandlers {
	return &preferenceHandlers{
		ResponseHandler: deps.ResponseHandler,
		PreferenceSvc:   deps.PreferenceSvc,
	}
}

func (h *preferenceHandlers) ThemeRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetTheme)
	r.Put("/", h.SetTheme)
	r.Post("/toggle", h.ToggleTheme)
	return r
}

func (h *preferenceHandlers) GetTheme(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	theme, err := h.PreferenceSvc.Theme(r.Context(), uid, systemTheme(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.ThemeResponse{Theme: theme})
}

func (h *preferenceHandlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req dto.ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	theme, err := h.PreferenceSvc.SetTheme(r.Context(), uid, req.Theme)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.ThemeResponse{Theme: theme})
}

func (h *preferenceHandlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	theme, err := h.PreferenceSvc.ToggleTheme(r.Context(), uid, systemTheme(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.ThemeResponse{Theme: theme})
}

// systemTheme reads the browser's colour-scheme hint, from the client hint
// header or a ?system= query. Anything unrecognised is no hint.
func systemTheme(r *http.Request) models.Theme {
	hint := r.URL.Query().Get("system")
	if hint == "" {
		hint = strings.Trim(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), `" `)
	}
	theme := models.Theme(strings.ToLower(hint))
	if !theme.Valid() {
		return ""
	}
	return theme
}
