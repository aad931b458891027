package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/prajwal2403/fintrack/internal/config"
	"github.com/prajwal2403/fintrack/internal/http/account"
	"github.com/prajwal2403/fintrack/internal/http/importcsv"
	"github.com/prajwal2403/fintrack/internal/http/report"
	"github.com/prajwal2403/fintrack/internal/http/transaction"
)

// Deps carries everything the router mounts. The scoped subtree is guarded
// by the auth gate unless the legacy query-identity mode is on, in which
// case the handlers resolve identity from the email query parameter and no
// middleware runs.
type Deps struct {
	Config       *config.Config
	Gate         Authenticator
	Account      *account.Handler
	Transactions *transaction.Handler
	Reports      *report.Handler
	Import       *importcsv.Handler
}

func New(deps Deps) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Token"},
		AllowCredentials: true,
	}))

	deps.Account.PublicRoutes(router)

	router.Group(func(r chi.Router) {
		if !deps.Config.Auth.LegacyQueryIdentity {
			r.Use(authenticated(deps.Gate))
		}

		deps.Account.MeRoutes(r)
	})

	router.Route("/transactions", func(r chi.Router) {
		// The unscoped listing answers to the admin token alone and
		// disappears entirely when none is configured.
		if deps.Config.Auth.AdminToken != "" {
			r.Group(func(r chi.Router) {
				r.Use(adminOnly(deps.Config.Auth.AdminToken))
				deps.Transactions.AdminRoutes(r)
			})
		}

		r.Group(func(r chi.Router) {
			if !deps.Config.Auth.LegacyQueryIdentity {
				r.Use(authenticated(deps.Gate))
			}

			deps.Reports.Routes(r)
			deps.Import.Routes(r)
			deps.Transactions.Routes(r)
		})
	})

	return router
}
