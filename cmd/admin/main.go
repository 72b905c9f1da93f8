package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ledgerly/internal/domain/bankaccount"
	"ledgerly/internal/domain/banktransaction"
	"ledgerly/internal/domain/budget"
	"ledgerly/internal/domain/goal"
	"ledgerly/internal/domain/investment"
	"ledgerly/internal/domain/overview"
	"ledgerly/internal/domain/user"
	"ledgerly/internal/infrastructure/postgres"
	"ledgerly/internal/shared/auth"
	"ledgerly/internal/shared/config"
	"ledgerly/internal/shared/telemetry"
)

const usage = `Ledgerly Admin CLI - Management commands for the Ledgerly API

Usage:
  admin <command> [options]

Commands:
  create-user        Register a user with a bcrypt-hashed password
  seed               Insert sample budgeting, goal, overview, investment, account and transaction rows
  rehash-passwords   Replace any stored plaintext password with its bcrypt hash

Examples:
  admin create-user --username=alice --password=secret --email=alice@example.com --first-name=Alice --last-name=Smith
  admin seed --user-id=2
  admin rehash-passwords --workers=8 --dry-run
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "create-user":
		runCreateUser(os.Args[2:])
	case "seed":
		runSeed(os.Args[2:])
	case "rehash-passwords":
		runRehashPasswords(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

// connect loads configuration, starts tracing when enabled and opens the
// database, applying the schema when enabled. The returned cleanup closes the
// database and flushes pending spans.
func connect(ctx context.Context) (*config.Config, *postgres.DB, func()) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	shutdownTelemetry := startTelemetry(ctx, cfg.Telemetry)

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		_ = shutdownTelemetry(context.Background())
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	cleanup := func() {
		db.Close()
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			log.Printf("Telemetry shutdown error: %v", err)
		}
	}

	if cfg.Database.MigrateOnStart {
		if err := db.ApplySchema(ctx); err != nil {
			cleanup()
			log.Fatalf("Failed to apply schema: %v", err)
		}
	}

	return cfg, db, cleanup
}

// startTelemetry exports admin spans when OTEL_ENABLED is set. The admin
// process never serves metrics, so the API's metrics port stays free.
func startTelemetry(ctx context.Context, cfg config.TelemetryConfig) telemetry.ShutdownFunc {
	if !cfg.Enabled {
		return telemetry.Noop
	}

	shutdown, err := telemetry.Init(ctx, adminTelemetryConfig(cfg))
	if err != nil {
		log.Printf("Warning: telemetry disabled: %v", err)
	}
	return shutdown
}

func adminTelemetryConfig(cfg config.TelemetryConfig) telemetry.Config {
	return telemetry.Config{
		ServiceName:  cfg.ServiceName + "-admin",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRatio:  cfg.SampleRatio,
	}
}

func runCreateUser(args []string) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	var params user.RegisterParams
	fs.StringVar(&params.Username, "username", "", "Login name (unique)")
	fs.StringVar(&params.Password, "password", "", "Plaintext password, stored as a bcrypt hash")
	fs.StringVar(&params.Email, "email", "", "Email address")
	fs.StringVar(&params.FirstName, "first-name", "", "First name")
	fs.StringVar(&params.LastName, "last-name", "", "Last name")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, db, cleanup := connect(ctx)
	defer cleanup()

	svc := user.NewService(postgres.NewUserRepository(db), auth.NewJWT(cfg.JWT.Secret))
	id, err := svc.Register(ctx, params)
	if err != nil {
		cleanup()
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Created user %q with id %d\n", params.Username, id)
}

func runSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	userID := fs.Int64("user-id", 0, "Owner of the sample rows")
	timeoutStr := fs.String("timeout", "2m", "Timeout for the operation (e.g., 30s, 5m)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *userID <= 0 {
		fmt.Println("Error: must specify --user-id")
		fs.Usage()
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, db, cleanup := connect(ctx)
	defer cleanup()

	s := seeder{
		budgets:      budget.NewService(postgres.NewBudgetRepository(db)),
		goals:        goal.NewService(postgres.NewGoalRepository(db)),
		overviews:    overview.NewService(postgres.NewOverviewRepository(db)),
		investments:  investment.NewService(postgres.NewInvestmentRepository(db)),
		accounts:     bankaccount.NewService(postgres.NewBankAccountRepository(db)),
		transactions: banktransaction.NewService(postgres.NewBankTransactionRepository(db)),
	}

	n, err := s.seed(ctx, *userID)
	if err != nil {
		cleanup()
		log.Fatalf("Seed failed after %d rows: %v", n, err)
	}

	fmt.Printf("Inserted %d sample rows for user %d\n", n, *userID)
}

func runRehashPasswords(args []string) {
	fs := flag.NewFlagSet("rehash-passwords", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "Report what would change without writing")
	workers := fs.Int("workers", DefaultRehashWorkers, "Number of concurrent bcrypt workers")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	_, db, cleanup := connect(ctx)
	defer cleanup()

	result, err := rehashPasswords(ctx, postgres.NewUserRepository(db), *workers, *dryRun)
	if err != nil {
		cleanup()
		log.Fatalf("Rehash failed: %v", err)
	}

	if *dryRun {
		fmt.Printf("%d of %d passwords would be rehashed\n", result.Rehashed, result.UsersChecked)
		return
	}

	fmt.Printf("Rehashed %d of %d passwords\n", result.Rehashed, result.UsersChecked)
	if result.Skipped > 0 {
		fmt.Printf("Skipped %d passwords changed during the run\n", result.Skipped)
	}
	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
		cleanup()
		os.Exit(1)
	}
}
