package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/api/handlers"
	custommiddleware "github.com/NB-Software-IND/WealthGenie-Backend/internal/api/middleware"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/config"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	draftService *service.DraftService,
	proposalService *service.ProposalService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/draft", func(r chi.Router) {
			draftHandler := handlers.NewDraftHandler(draftService)
			proposalHandler := handlers.NewProposalHandler(proposalService)

			if cfg.Server.RequireAPIKey {
				r.Use(custommiddleware.APIKeyMiddleware)
			}

			r.Post("/", draftHandler.CreateDraft)

			r.Route("/{draftID}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateDraftIDMiddleware)

				r.Get("/", draftHandler.GetDraft)
				r.Put("/", draftHandler.UpdateDraft)
				r.Delete("/", draftHandler.DeleteDraft)

				r.Post("/cashflow/validate", proposalHandler.ValidateCashFlow)
				r.Post("/risk", proposalHandler.DeriveRisk)
				r.Get("/capacity", proposalHandler.GetCapacity)

				r.Route("/proposal", func(r chi.Router) {
					r.Post("/", proposalHandler.GenerateProposal)
					r.Get("/overlap", proposalHandler.DetectOverlap)
					r.Post("/substitute", proposalHandler.Substitute)
					r.Post("/override", proposalHandler.OverrideWeight)
					r.Post("/resolve", proposalHandler.ResolveOverlap)
				})
			})
		})
	})

	return r
}
