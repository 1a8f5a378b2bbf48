package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/luongnho/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	QRSvc           qrService
	SavedAccountSvc savedAccountService
	SuggestSvc      suggestService
	CashSvc         cashService
	PreferenceSvc   preferenceService
	ShellSvc        shellService
}
