package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/luongnho/internal/handlers"
	"github.com/GregMSThompson/luongnho/internal/middleware"
)

type Options struct {
	// Owner identifies whoever owns persisted state (saved accounts,
	// theme, cash counts) and puts it in the request context.
	Owner          func(http.Handler) http.Handler
	AllowedOrigins []string
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORS(opts.AllowedOrigins).Handler)

	qrh := handlers.NewVietQRHandlers(deps)
	sah := handlers.NewSavedAccountHandlers(deps)
	ch := handlers.NewCashHandlers(deps)
	ph := handlers.NewPreferenceHandlers(deps)
	sh := handlers.NewShellHandlers(deps)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/shell", sh.Shell)
	r.Get("/cash/denominations", ch.Denominations)

	r.Route("/vietqr", func(r chi.Router) {
		qrh.PublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(opts.Owner)
			qrh.AssistRoutes(r)
			r.Mount("/accounts", sah.SavedAccountRoutes())
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(opts.Owner)
		r.Mount("/cash", ch.CashRoutes())
		r.Mount("/theme", ph.ThemeRoutes())
	})

	return r
}
