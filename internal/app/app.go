package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	httpapp "lead_gen/internal/app/httpserver"
	"lead_gen/internal/config"
	"lead_gen/internal/httpapi"
	"lead_gen/internal/lib/jsonld"
	"lead_gen/internal/lib/metrics"
	"lead_gen/internal/repository/buyer_repository"
	"lead_gen/internal/repository/lead_repository"
	"lead_gen/internal/repository/property_repository"
	"lead_gen/internal/services/auth"
	"lead_gen/internal/services/buyer"
	"lead_gen/internal/services/interest"
	"lead_gen/internal/services/lead"
	"lead_gen/internal/services/matching"
	"lead_gen/internal/services/property"
)

type App struct {
	HTTPServer    *httpapp.App
	FunnelMetrics *metrics.FunnelMetrics
}

func New(log *slog.Logger, pool *pgxpool.Pool, cfg *config.Config) *App {
	buyerRepository := buyer_repository.NewBuyerRepository(pool, log)
	propertyRepository := property_repository.NewPropertyRepository(pool, log)
	leadRepository := lead_repository.NewLeadRepository(pool, log)

	funnel := metrics.GetFunnelMetrics(log)
	matchEngine := matching.NewEngine(cfg.Match.BudgetTolerancePct)

	log.Info("match engine configured",
		slog.Float64("budget_tolerance_pct", cfg.Match.BudgetTolerancePct),
	)

	authService := auth.New(log, buyerRepository, cfg.TokenTTL, cfg.Secret)
	buyerService := buyer.New(log, buyerRepository, funnel)
	propertyService := property.New(log, propertyRepository)
	leadService := lead.New(log, leadRepository)
	interestService := interest.New(log, buyerService, propertyService, leadRepository, matchEngine, funnel)

	markup := jsonld.NewGenerator()

	handlers := httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(log, authService),
		Buyer:    httpapi.NewBuyerHandler(log, buyerService),
		Property: httpapi.NewPropertyHandler(log, propertyService, markup, cfg.BaseURL),
		Interest: httpapi.NewInterestHandler(log, interestService),
		Lead:     httpapi.NewLeadHandler(log, leadService),
	}

	router := httpapi.NewRouter(handlers, authService, funnel)

	httpServer := httpapp.New(log, router, cfg.HTTP.Port, cfg.HTTP.Timeout, cfg.HTTP.IdleTimeout)

	return &App{
		HTTPServer:    httpServer,
		FunnelMetrics: funnel,
	}
}
