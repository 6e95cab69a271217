// Package api wires the HTTP handlers into a chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/middleware"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/config"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/service"
)

// Services groups the services the router exposes.
type Services struct {
	System    *service.SystemService
	Client    *service.ClientService
	Portfolio *service.PortfolioService
	Security  *service.SecurityService
	Ledger    *service.LedgerService
	Price     *service.PriceService
	Valuation *service.ValuationService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(svc.System)
	clientHandler := handlers.NewClientHandler(svc.Client)
	portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio, svc.Ledger)
	securityHandler := handlers.NewSecurityHandler(svc.Security)
	movementHandler := handlers.NewMovementHandler(svc.Ledger)
	priceHandler := handlers.NewPriceHandler(svc.Price)
	valuationHandler := handlers.NewValuationHandler(svc.Valuation)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/client", func(r chi.Router) {
			r.Get("/", clientHandler.Clients)
			r.Post("/", clientHandler.CreateClient)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", clientHandler.Client)
				r.Put("/", clientHandler.UpdateClient)
				r.Delete("/", clientHandler.DeleteClient)
				r.Get("/valuation", valuationHandler.ClientValuation)
				r.Get("/fee", valuationHandler.AdvisoryFee)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.Portfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/holdings", portfolioHandler.Holdings)
				r.Get("/valuation", valuationHandler.PortfolioValuation)
			})
		})

		r.Route("/security", func(r chi.Router) {
			r.Get("/", securityHandler.Securities)
			r.Post("/", securityHandler.ResolveSecurity)
		})

		r.Route("/movement", func(r chi.Router) {
			r.Get("/", movementHandler.Movements)
			r.Post("/", movementHandler.CreateMovement)
			r.Get("/balance", movementHandler.Balance)
			r.Post("/validate-sell", movementHandler.ValidateSell)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", movementHandler.Movement)
				r.Put("/", movementHandler.UpdateMovement)
				r.Delete("/", movementHandler.DeleteMovement)
			})
		})

		r.Route("/price", func(r chi.Router) {
			r.Get("/", priceHandler.Prices)
			r.Post("/import", priceHandler.ImportPrices)
		})

		r.Route("/valuation", func(r chi.Router) {
			r.Get("/", valuationHandler.Valuation)
			r.Get("/history", valuationHandler.History)
		})
	})

	return r
}
