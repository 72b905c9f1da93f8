package main

import (
	"log"
	"net/http"

	httphandlers "ledgerly/internal/interfaces/http"
	"ledgerly/internal/shared/config"
	"ledgerly/internal/shared/middleware"
)

const apiPrefix = "/api"

// collectionHandler is implemented by every owner-scoped resource handler.
type collectionHandler interface {
	HandleCollection(http.ResponseWriter, *http.Request)
	HandleByID(http.ResponseWriter, *http.Request)
}

func registerCollection(mux *http.ServeMux, authMW func(http.Handler) http.Handler, path string, h collectionHandler) {
	mux.Handle(apiPrefix+path, authMW(http.HandlerFunc(h.HandleCollection)))
	mux.Handle(apiPrefix+path+"/{id}", authMW(http.HandlerFunc(h.HandleByID)))
}

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	authMW := middleware.Auth(deps.JWT)

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)
	mux.HandleFunc(apiPrefix+"/health", httphandlers.HandleHealth)

	// Users: registration and login are public, the rest is gated by UserHandler
	mux.HandleFunc(apiPrefix+"/users", deps.UserHandler.HandleUsers)
	mux.HandleFunc(apiPrefix+"/users/login", deps.UserHandler.HandleLogin)
	mux.HandleFunc(apiPrefix+"/users/{id}", deps.UserHandler.HandleUserByID)

	// Protected routes
	registerCollection(mux, authMW, "/budgeting", deps.BudgetHandler)
	registerCollection(mux, authMW, "/financial-goals", deps.GoalHandler)
	registerCollection(mux, authMW, "/finance-overview", deps.OverviewHandler)
	registerCollection(mux, authMW, "/investments-overview", deps.InvestmentHandler)
	registerCollection(mux, authMW, "/bank-accounts", deps.BankAccountHandler)
	registerCollection(mux, authMW, "/bank-transactions", deps.BankTransactionHandler)

	// Literal segments outrank {id} in ServeMux, so these never reach HandleByID
	mux.Handle(apiPrefix+"/bank-accounts/summary", authMW(http.HandlerFunc(deps.BankingHandler.HandleAccountSummary)))
	mux.Handle(apiPrefix+"/bank-transactions/recent", authMW(http.HandlerFunc(deps.BankingHandler.HandleRecentTransactions)))

	mux.HandleFunc("/", httphandlers.HandleNotFound)

	return applyMiddleware(mux, cfg)
}

// applyMiddleware wraps h from the inside out; Recover ends up outermost.
func applyMiddleware(h http.Handler, cfg *config.Config) http.Handler {
	h = middleware.NoSniff(h)
	h = middleware.CORS(cfg.Server.AllowedHosts)(h)

	if cfg.TLS.Enabled {
		h = middleware.HSTS(h)
		log.Println("TLS security middleware enabled (HSTS)")
	}

	if cfg.Telemetry.Enabled {
		h = middleware.Metrics(h)
		h = middleware.Telemetry(h)
	}

	h = middleware.Logging(h)
	h = middleware.RequestID(h)
	return middleware.Recover(h)
}
