package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loanflow/loanflow/pkg/auth"
	pkgkafka "github.com/loanflow/loanflow/pkg/kafka"
	"github.com/loanflow/loanflow/pkg/observability"
	pkgpostgres "github.com/loanflow/loanflow/pkg/postgres"
	"github.com/loanflow/loanflow/pkg/tlsutil"
	"github.com/loanflow/loanflow/services/loan-service/internal/application/usecase"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/service"
	"github.com/loanflow/loanflow/services/loan-service/internal/infrastructure/config"
	"github.com/loanflow/loanflow/services/loan-service/internal/infrastructure/kafka"
	"github.com/loanflow/loanflow/services/loan-service/internal/infrastructure/memory"
	"github.com/loanflow/loanflow/services/loan-service/internal/infrastructure/metrics"
	pgRepo "github.com/loanflow/loanflow/services/loan-service/internal/infrastructure/postgres"
	grpcPresentation "github.com/loanflow/loanflow/services/loan-service/internal/presentation/grpc"
	"github.com/loanflow/loanflow/services/loan-service/internal/presentation/rest"
)

func main() {
	certDir := flag.String("gen-dev-certs", "", "write a development CA and server certificate to `dir` and exit")
	certHosts := flag.String("dev-cert-hosts", "localhost,127.0.0.1", "comma-separated hosts for -gen-dev-certs")
	migrateDown := flag.Bool("migrate-down", false, "roll back every audit store migration and exit")
	flag.Parse()

	if *certDir != "" {
		if err := writeDevCerts(*certDir, strings.Split(*certHosts, ",")); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if *migrateDown {
		dsn := cfg.DB.Postgres(cfg.ServiceName).DSN()
		if err := pkgpostgres.RunMigrationsDown(dsn, pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
			logger.Error("roll back migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations rolled back")
		return
	}

	logger.Info("starting loan-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"audit_store", cfg.AuditStore,
	)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("loan-service stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("loan-service stopped")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// Tracing is optional.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: "loan_service"})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush
	decisionMetrics, err := metrics.NewDecisionMetrics(meterProvider)
	if err != nil {
		return fmt.Errorf("init decision metrics: %w", err)
	}

	// Storage.
	customers := memory.NewSeededCustomerRepository()
	var (
		auditLog port.AuditLog                 = memory.NewAuditLog()
		letters  port.SanctionLetterRepository = memory.NewSanctionLetterRepository()
	)
	var pool *pgxpool.Pool
	checks := map[string]rest.ReadinessCheck{}
	if cfg.AuditStore == config.AuditStorePostgres {
		pgCfg := cfg.DB.Postgres(cfg.ServiceName)

		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err = pkgpostgres.NewPool(dbCtx, pgCfg)
		dbCancel()
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		logger.Info("connected to database")

		if err := pkgpostgres.RunMigrations(pgCfg.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		auditLog = pgRepo.NewAuditLogRepo(pool)
		letters = pgRepo.NewSanctionLetterRepo(pool)
		checks["postgres"] = func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) }
	}

	// Messaging. With Postgres and Kafka both present, decisions and their
	// events commit together and a relay drains the outbox.
	var (
		publisher port.EventPublisher = kafka.NopPublisher{}
		recorder  port.DecisionRecorder
	)
	kafkaCfg := pkgkafka.Config{
		Brokers:  cfg.Kafka.Brokers,
		ClientID: cfg.Kafka.ClientID,
	}
	if kafkaCfg.Enabled() {
		producer, err := pkgkafka.NewProducer(kafkaCfg)
		if err != nil {
			return fmt.Errorf("create kafka producer: %w", err)
		}
		defer func() { _ = producer.Close() }() //nolint:errcheck // best-effort flush
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("publishing domain events", "topic", cfg.Kafka.Topic)

		if pool != nil {
			recorder = pgRepo.NewOutboxRecorder(pool)
			relay := kafka.NewOutboxRelay(pgRepo.NewOutboxRepo(pool), producer, cfg.Kafka.Topic,
				cfg.Kafka.OutboxInterval, cfg.Kafka.OutboxBatch, logger)
			go relay.Run(ctx)
		}
	} else {
		logger.Info("KAFKA_BROKERS not set, domain events are discarded")
	}
	if recorder == nil {
		recorder = usecase.NewDirectRecorder(auditLog, publisher, logger)
	}

	// Use cases.
	engine := service.NewUnderwritingEngine(service.NewReferenceGenerator(service.UnderwritingPrefix, nil))
	verifyKycUC := usecase.NewVerifyKycUseCase(customers, recorder, decisionMetrics, service.NewKycVerifier(), logger)
	underwriteUC := usecase.NewEvaluateUnderwritingUseCase(customers, recorder, decisionMetrics, engine, logger)
	auditLogsUC := usecase.NewGetAuditLogsUseCase(auditLog)
	directoryUC := usecase.NewCustomerDirectoryUseCase(customers)
	extractSalaryUC := usecase.NewExtractSalaryUseCase(customers)
	generateLetterUC := usecase.NewGenerateSanctionLetterUseCase(letters, recorder,
		service.NewReferenceGenerator(service.SanctionPrefix, nil), logger)
	getLetterUC := usecase.NewGetSanctionLetterUseCase(letters)
	rules := memory.NewSeededRuleRepository()
	manageRulesUC := usecase.NewManageRulesUseCase(rules, logger)
	evaluateRulesUC := usecase.NewEvaluateRulesUseCase(rules, recorder, logger)
	productsUC := usecase.NewListLoanProductsUseCase(memory.NewSeededProductCatalog())

	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		return err
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewLoanServiceHandler(verifyKycUC, underwriteUC, auditLogsUC, jwtSvc != nil, logger)
	grpcServer, err := grpcPresentation.NewServer(grpcHandler, grpcPresentation.ServerConfig{
		JWT:         jwtSvc,
		TLSCertFile: cfg.TLS.CertFile,
		TLSKeyFile:  cfg.TLS.KeyFile,
		Reflection:  os.Getenv("GRPC_REFLECTION") == "true",
	}, logger)
	if err != nil {
		return fmt.Errorf("create gRPC server: %w", err)
	}

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Loans: rest.NewLoanHandler(verifyKycUC, underwriteUC, auditLogsUC, directoryUC,
			extractSalaryUC, generateLetterUC, getLetterUC, logger),
		Rules:          rest.NewRulesHandler(manageRulesUC, evaluateRulesUC, jwtSvc != nil, logger),
		Products:       rest.NewProductHandler(productsUC, logger),
		Health:         rest.NewHealthHandler(cfg.ServiceName, checks, logger),
		Metrics:        metricsHandler,
		JWT:            jwtSvc,
		RateLimiter:    rest.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		AllowedOrigins: cfg.CORSOrigins,
		Logger:         logger,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.TLS.Enabled() {
		tlsCfg, err := tlsutil.LoadServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return fmt.Errorf("load HTTP TLS config: %w", err)
		}
		httpServer.TLSConfig = tlsCfg
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.ListenAndServe(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr(), "tls", httpServer.TLSConfig != nil)
		var err error
		if httpServer.TLSConfig != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	return serveErr
}

// newJWTService returns nil when bearer authentication is disabled. A public
// key switches to validate-only mode; otherwise the shared secret is used.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}
	if cfg.JWTPublicKey != "" {
		keyData, err := auth.LoadKeyFromFile(cfg.JWTPublicKey)
		if err != nil {
			return nil, fmt.Errorf("load JWT public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.JWTSecret
	}

	svc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize JWT service: %w", err)
	}
	return svc, nil
}

func writeDevCerts(dir string, hosts []string) error {
	bundle, err := tlsutil.NewDevBundle(hosts, 365*24*time.Hour)
	if err != nil {
		return err
	}
	if err := bundle.WriteFiles(dir); err != nil {
		return err
	}
	fmt.Printf("wrote %s, %s and %s to %s\n", tlsutil.CACertFile, tlsutil.ServerCertFile, tlsutil.ServerKeyFile, dir)
	return nil
}
