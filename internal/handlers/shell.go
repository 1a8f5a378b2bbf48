package handlers

import (
	"net/http"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/response"
)

type shellService interface {
	Shell(tab string) (dto.ShellResponse, error)
}

type shellHandlers struct {
	ResponseHandler response.ResponseHandler
	ShellSvc        shellService
}

func NewShellHandlers(deps *Deps) *shellHandlers {
	return &shellHandlers{
		ResponseHandler: deps.ResponseHandler,
		ShellSvc:        deps.ShellSvc,
	}
}

func (h *shellHandlers) Shell(w http.ResponseWriter, r *http.Request) {
	shell, err := h.ShellSvc.Shell(r.URL.Query().Get("tab"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, shell)
}
