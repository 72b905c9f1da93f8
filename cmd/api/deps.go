package main

import (
	"context"
	"log"

	"ledgerly/internal/domain/bankaccount"
	"ledgerly/internal/domain/banktransaction"
	"ledgerly/internal/domain/budget"
	"ledgerly/internal/domain/goal"
	"ledgerly/internal/domain/investment"
	"ledgerly/internal/domain/overview"
	"ledgerly/internal/domain/user"
	"ledgerly/internal/infrastructure/postgres"
	httphandlers "ledgerly/internal/interfaces/http"
	"ledgerly/internal/shared/auth"
	"ledgerly/internal/shared/config"
	"ledgerly/internal/shared/middleware"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB  *postgres.DB
	JWT *auth.JWT

	UserHandler            *httphandlers.UserHandler
	BudgetHandler          *httphandlers.ResourceHandler[budget.Entry, budget.CreateParams, budget.UpdateParams]
	GoalHandler            *httphandlers.ResourceHandler[goal.Goal, goal.CreateParams, goal.UpdateParams]
	OverviewHandler        *httphandlers.ResourceHandler[overview.Entry, overview.CreateParams, overview.UpdateParams]
	InvestmentHandler      *httphandlers.ResourceHandler[investment.Investment, investment.CreateParams, investment.UpdateParams]
	BankAccountHandler     *httphandlers.ResourceHandler[bankaccount.Account, bankaccount.CreateParams, bankaccount.UpdateParams]
	BankTransactionHandler *httphandlers.ResourceHandler[banktransaction.Transaction, banktransaction.CreateParams, banktransaction.UpdateParams]
	BankingHandler         *httphandlers.BankingHandler
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if cfg.Database.MigrateOnStart {
		if err := db.ApplySchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	jwt := auth.NewJWT(cfg.JWT.Secret)

	// Domain services
	userService := user.NewService(postgres.NewUserRepository(db), jwt)
	bankAccountService := bankaccount.NewService(postgres.NewBankAccountRepository(db))
	bankTransactionService := banktransaction.NewService(postgres.NewBankTransactionRepository(db))

	if !cfg.Users.RequireAuth {
		log.Println("Warning: USERS_REQUIRE_AUTH=false, /api/users routes are served without a token")
	}

	return &Dependencies{
		DB:          db,
		JWT:         jwt,
		UserHandler: httphandlers.NewUserHandler(userService, cfg.Users.RequireAuth, middleware.Auth(jwt)),
		BudgetHandler: httphandlers.NewResourceHandler[budget.Entry, budget.CreateParams, budget.UpdateParams](
			budget.NewService(postgres.NewBudgetRepository(db)), httphandlers.BudgetLabels),
		GoalHandler: httphandlers.NewResourceHandler[goal.Goal, goal.CreateParams, goal.UpdateParams](
			goal.NewService(postgres.NewGoalRepository(db)), httphandlers.GoalLabels),
		OverviewHandler: httphandlers.NewResourceHandler[overview.Entry, overview.CreateParams, overview.UpdateParams](
			overview.NewService(postgres.NewOverviewRepository(db)), httphandlers.OverviewLabels),
		InvestmentHandler: httphandlers.NewResourceHandler[investment.Investment, investment.CreateParams, investment.UpdateParams](
			investment.NewService(postgres.NewInvestmentRepository(db)), httphandlers.InvestmentLabels),
		BankAccountHandler: httphandlers.NewResourceHandler[bankaccount.Account, bankaccount.CreateParams, bankaccount.UpdateParams](
			bankAccountService, httphandlers.BankAccountLabels),
		BankTransactionHandler: httphandlers.NewResourceHandler[banktransaction.Transaction, banktransaction.CreateParams, banktransaction.UpdateParams](
			bankTransactionService, httphandlers.BankTransactionLabels),
		BankingHandler: httphandlers.NewBankingHandler(bankAccountService, bankTransactionService),
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
}
