package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/internal/response"
	"github.com/GregMSThompson/luongnho/pkg/logger"
)

const qrDownloadName = "VietQR_Payment.png"

type qrService interface {
	SearchBanks(ctx context.Context, term string) []models.Bank
	SelectBank(ctx context.Context, bin string) (models.Bank, error)
	Templates() []models.TemplateOption
	Generate(ctx context.Context, data models.QRData) (dto.GenerateQRResponse, error)
	Image(ctx context.Context, data models.QRData) (io.ReadCloser, string, error)
}

type suggestService interface {
	Suggest(ctx context.Context, keywords string) (string, error)
	AmountInWords(ctx context.Context, amount int64) (string, error)
}

type vietQRHandlers struct {
	ResponseHandler response.ResponseHandler
	QRSvc           qrService
	SuggestSvc      suggestService
}

func NewVietQRHandlers(deps *Deps) *vietQRHandlers {
	return &vietQRHandlers{
		ResponseHandler: deps.ResponseHandler,
		QRSvc:           deps.QRSvc,
		SuggestSvc:      deps.SuggestSvc,
	}
}

// PublicRoutes need no owner.
func (h *vietQRHandlers) PublicRoutes(r chi.Router) {
	r.Get("/banks", h.SearchBanks)
	r.Get("/banks/{bin}", h.SelectBank)
	r.Get("/templates", h.Templates)
	r.Post("/generate", h.Generate)
	r.Get("/image", h.Image)
}

// AssistRoutes call the text model and are kept behind auth.
func (h *vietQRHandlers) AssistRoutes(r chi.Router) {
	r.Post("/suggest", h.Suggest)
	r.Post("/amount-words", h.AmountWords)
}

func (h *vietQRHandlers) SearchBanks(w http.ResponseWriter, r *http.Request) {
	banks := h.QRSvc.SearchBanks(r.Context(), r.URL.Query().Get("q"))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, banks)
}

func (h *vietQRHandlers) SelectBank(w http.ResponseWriter, r *http.Request) {
	bank, err := h.QRSvc.SelectBank(r.Context(), chi.URLParam(r, "bin"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, bank)
}

func (h *vietQRHandlers) Templates(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.QRSvc.Templates())
}

func (h *vietQRHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.QRData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.QRSvc.Generate(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

// Image proxies the QR image as a download.
func (h *vietQRHandlers) Image(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := models.QRData{
		BankBin:       q.Get("bankBin"),
		AccountNumber: q.Get("accountNumber"),
		AccountName:   q.Get("accountName"),
		Amount:        q.Get("amount"),
		Description:   q.Get("addInfo"),
		Template:      models.QRTemplate(q.Get("template")),
	}

	body, contentType, err := h.QRSvc.Image(r.Context(), data)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+qrDownloadName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		logger.FromContext(r.Context()).Warn("qr image copy interrupted", "error", err)
	}
}

func (h *vietQRHandlers) Suggest(w http.ResponseWriter, r *http.Request) {
	var req dto.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	text, err := h.SuggestSvc.Suggest(r.Context(), req.Context)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.SuggestResponse{Description: text})
}

func (h *vietQRHandlers) AmountWords(w http.ResponseWriter, r *http.Request) {
	var req dto.AmountWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	words, err := h.SuggestSvc.AmountInWords(r.Context(), req.Amount)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.AmountWordsResponse{Words: words})
}
