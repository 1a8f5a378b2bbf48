package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/luongnho/internal/bootstrap"
	vietqrclient "github.com/GregMSThompson/luongnho/internal/client/vietqr"
	"github.com/GregMSThompson/luongnho/internal/config"
	"github.com/GregMSThompson/luongnho/internal/crypto"
	"github.com/GregMSThompson/luongnho/internal/handlers"
	"github.com/GregMSThompson/luongnho/internal/middleware"
	"github.com/GregMSThompson/luongnho/internal/response"
	"github.com/GregMSThompson/luongnho/internal/router"
	"github.com/GregMSThompson/luongnho/internal/services"
	"github.com/GregMSThompson/luongnho/internal/store"
	"github.com/GregMSThompson/luongnho/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// clients
	vqr := vietqrclient.NewAdapter(bs.HTTPClient, cfg.BanksURL, cfg.QRImageHost)

	// stores
	sastore := store.NewSavedAccountStore(bs.Firestore, crypto.ForKey(bs.KMS, cfg.KMSKeyName))
	pstore := store.NewPreferenceStore(bs.Firestore)

	// services
	qrserv := services.NewQRService(vqr)
	saserv := services.NewSavedAccountService(sastore, qrserv)
	pserv := services.NewPreferenceService(pstore)
	// a nil *Adapter must not end up inside the interface
	sgserv := services.NewSuggestService(nil)
	if bs.VertexAdapter != nil {
		sgserv = services.NewSuggestService(bs.VertexAdapter)
	}

	// the directory is fetched once; warm it before the first request
	go qrserv.Banks(logger.ToContext(context.Background(), bs.Log))

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(bs.Log)
	deps.QRSvc = qrserv
	deps.SavedAccountSvc = saserv
	deps.SuggestSvc = sgserv
	deps.CashSvc = services.NewCashService()
	deps.PreferenceSvc = pserv
	deps.ShellSvc = services.NewShellService()

	// router
	r := router.NewRouter(deps, router.Options{
		Owner:          middleware.NewMiddleware(bs.Firebase).FirebaseAuth,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
