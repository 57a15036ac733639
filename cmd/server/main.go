package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/osteria/tillbook/internal/adapter/http"
	"github.com/osteria/tillbook/internal/adapter/http/handler"
	memoryRepo "github.com/osteria/tillbook/internal/adapter/repository/memory"
	postgresRepo "github.com/osteria/tillbook/internal/adapter/repository/postgres"
	redisRepo "github.com/osteria/tillbook/internal/adapter/repository/redis"
	"github.com/osteria/tillbook/internal/infrastructure/config"
	"github.com/osteria/tillbook/internal/infrastructure/eventpublisher"
	"github.com/osteria/tillbook/internal/infrastructure/logging"
	"github.com/osteria/tillbook/internal/infrastructure/metrics"
	"github.com/osteria/tillbook/internal/infrastructure/postgres"
	"github.com/osteria/tillbook/internal/infrastructure/redis"
	"github.com/osteria/tillbook/internal/usecase"
	"github.com/osteria/tillbook/internal/worker"
)

// repositories groups the store-specific implementations behind the
// usecase interfaces, so wiring below is identical for both backends.
type repositories struct {
	txManager     usecase.TransactionManager
	accounts      usecase.AccountRepository
	transactions  usecase.TransactionRepository
	shifts        usecase.ShiftRepository
	partnerSales  usecase.PartnerSaleRepository
	staff         usecase.StaffRepository
	customers     usecase.CustomerRepository
	templates     usecase.ExpenseTemplateRepository
	recurring     usecase.RecurringExpenseRepository
	outbox        usecase.OutboxRepository
	idempotency   usecase.IdempotencyStore
	retrier       usecase.Retrier
	healthChecks  []handler.HealthCheck
	close         func()
}

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	appLogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var repos repositories
	if cfg.SandboxMode {
		if cfg.SandboxSnapshotPath != "" {
			log.Warn().Str("snapshot", cfg.SandboxSnapshotPath).Msg("sandbox mode: running on in-memory storage with a snapshot file")
		} else {
			log.Warn().Msg("sandbox mode: running on in-memory storage, nothing will be persisted")
		}
		repos, err = buildMemoryRepositories(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize sandbox storage")
		}
	} else {
		repos, err = buildPostgresRepositories(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize storage")
		}
	}
	defer repos.close()

	idGen := postgresRepo.NewULIDGenerator()
	m := metrics.New()

	// Use cases
	transferUC := usecase.NewTransferUseCase(repos.txManager, repos.accounts, repos.transactions, repos.outbox, idGen)
	if repos.retrier != nil {
		transferUC = transferUC.WithRetrier(repos.retrier)
	}
	registryUC := usecase.NewRegistryUseCase(repos.accounts, transferUC)
	shiftUC := usecase.NewShiftUseCase(repos.txManager, repos.shifts, repos.accounts, repos.transactions,
		repos.partnerSales, repos.customers, repos.outbox, transferUC, idGen)
	cardReconUC := usecase.NewCardReconUseCase(repos.txManager, repos.transactions, repos.outbox, transferUC, idGen)
	debtUC := usecase.NewDebtUseCase(repos.txManager, repos.transactions, repos.customers, repos.outbox, transferUC, idGen)
	partnerUC := usecase.NewPartnerUseCase(repos.txManager, repos.partnerSales, repos.outbox, transferUC, idGen)
	payrollUC := usecase.NewPayrollUseCase(repos.txManager, repos.staff, repos.transactions, repos.outbox, transferUC, idGen)
	expenseUC := usecase.NewExpenseUseCase(repos.txManager, repos.templates, repos.recurring, repos.transactions, transferUC, idGen)

	// Seed the chart of accounts on first boot.
	if err := registryUC.SeedIfEmpty(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed accounts")
	}

	// Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(registryUC, transferUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		ShiftHandler:     handler.NewShiftHandler(shiftUC),
		CardReconHandler: handler.NewCardReconHandler(cardReconUC),
		DebtHandler:      handler.NewDebtHandler(debtUC),
		PartnerHandler:   handler.NewPartnerHandler(partnerUC),
		PayrollHandler:   handler.NewPayrollHandler(payrollUC),
		ExpenseHandler:   handler.NewExpenseHandler(expenseUC),
		HealthHandler:    handler.NewHealthHandler(repos.healthChecks...),
		IdempotencyStore: repos.idempotency,
		Metrics:          m,
		Logger:           log.Logger,
	})

	// Background workers
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: repos.outbox,
		Publisher:  eventpublisher.NewLogPublisher(appLogger.Logger),
		Logger:     appLogger.Logger,
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go publisher.Start(ctx)

	recurringWorker := worker.NewRecurringWorker(expenseUC, appLogger.Logger, cfg.RecurringInterval)
	go recurringWorker.Start(ctx)

	// HTTP server
	server := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr()).Bool("sandbox", cfg.SandboxMode).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// buildMemoryRepositories wires the in-process sandbox backend.
func buildMemoryRepositories(cfg *config.Config) (repositories, error) {
	store := memoryRepo.NewStore()

	closeFn := func() {}
	if cfg.SandboxSnapshotPath != "" {
		if err := store.LoadFile(cfg.SandboxSnapshotPath); err != nil {
			return repositories{}, err
		}
		closeFn = func() {
			if err := store.SaveFile(cfg.SandboxSnapshotPath); err != nil {
				log.Error().Err(err).Msg("failed to save sandbox snapshot")
			}
		}
	}

	return repositories{
		txManager:    store,
		accounts:     memoryRepo.NewAccountRepository(store),
		transactions: memoryRepo.NewTransactionRepository(store),
		shifts:       memoryRepo.NewShiftRepository(store),
		partnerSales: memoryRepo.NewPartnerSaleRepository(store),
		staff:        memoryRepo.NewStaffRepository(store),
		customers:    memoryRepo.NewCustomerRepository(store),
		templates:    memoryRepo.NewExpenseTemplateRepository(store),
		recurring:    memoryRepo.NewRecurringExpenseRepository(store),
		outbox:       memoryRepo.NewOutboxRepository(store),
		idempotency:  memoryRepo.NewIdempotencyStore(),
		close:        closeFn,
	}, nil
}

// buildPostgresRepositories wires the live Postgres and Redis backend.
func buildPostgresRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return repositories{}, err
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return repositories{}, err
	}
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		pool.Close()
		return repositories{}, err
	}
	log.Info().Msg("connected to redis")

	return repositories{
		txManager:    postgresRepo.NewTxManager(pool),
		accounts:     postgresRepo.NewAccountRepository(pool),
		transactions: postgresRepo.NewTransactionRepository(pool),
		shifts:       postgresRepo.NewShiftRepository(pool),
		partnerSales: postgresRepo.NewPartnerSaleRepository(pool),
		staff:        postgresRepo.NewStaffRepository(pool),
		customers:    postgresRepo.NewCustomerRepository(pool),
		templates:    postgresRepo.NewExpenseTemplateRepository(pool),
		recurring:    postgresRepo.NewRecurringExpenseRepository(pool),
		outbox:       postgresRepo.NewOutboxRepository(pool),
		idempotency:  redisRepo.NewIdempotencyStore(redisClient),
		retrier:      postgresRepo.NewRetrier(),
		healthChecks: []handler.HealthCheck{
			{Name: "postgres", Ping: pool.Ping},
			{Name: "redis", Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
		},
		close: func() {
			redisClient.Close()
			pool.Close()
		},
	}, nil
}
