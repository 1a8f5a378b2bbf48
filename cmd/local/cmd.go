package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/luongnho/internal/bootstrap"
	vietqrclient "github.com/GregMSThompson/luongnho/internal/client/vietqr"
	"github.com/GregMSThompson/luongnho/internal/config"
	"github.com/GregMSThompson/luongnho/internal/handlers"
	"github.com/GregMSThompson/luongnho/internal/localstore"
	"github.com/GregMSThompson/luongnho/internal/middleware"
	"github.com/GregMSThompson/luongnho/internal/response"
	"github.com/GregMSThompson/luongnho/internal/router"
	"github.com/GregMSThompson/luongnho/internal/services"
	"github.com/GregMSThompson/luongnho/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

// Local build: sqlite instead of Firestore, browser client ids instead of
// Firebase, and no text model.
func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.RunLocal(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	vqr := vietqrclient.NewAdapter(bs.HTTPClient, cfg.BanksURL, cfg.QRImageHost)

	// stores
	sastore := localstore.NewSavedAccountStore(bs.SQLite)
	pstore := localstore.NewPreferenceStore(bs.SQLite)

	// services
	qrserv := services.NewQRService(vqr)
	go qrserv.Banks(logger.ToContext(context.Background(), bs.Log))

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(bs.Log)
	deps.QRSvc = qrserv
	deps.SavedAccountSvc = services.NewSavedAccountService(sastore, qrserv)
	deps.SuggestSvc = services.NewSuggestService(nil)
	deps.CashSvc = services.NewCashService()
	deps.PreferenceSvc = services.NewPreferenceService(pstore)
	deps.ShellSvc = services.NewShellService()

	// router
	r := router.NewRouter(deps, router.Options{
		Owner:          middleware.ClientID,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	bs.Log.Info("listening", "port", cfg.Port, "sqlite", cfg.SQLitePath)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
