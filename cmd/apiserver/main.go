// API server entry point for the SmartImport platform.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/OLVCORE/smartimport/internal/application/advisor"
	appsim "github.com/OLVCORE/smartimport/internal/application/simulation"
	"github.com/OLVCORE/smartimport/internal/config"
	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/internal/domain/costing"
	fx "github.com/OLVCORE/smartimport/internal/domain/exchange"
	"github.com/OLVCORE/smartimport/internal/infrastructure/completion"
	"github.com/OLVCORE/smartimport/internal/infrastructure/database/postgres"
	"github.com/OLVCORE/smartimport/internal/infrastructure/database/postgres/repositories"
	"github.com/OLVCORE/smartimport/internal/infrastructure/database/redis"
	fxinfra "github.com/OLVCORE/smartimport/internal/infrastructure/exchange"
	"github.com/OLVCORE/smartimport/internal/infrastructure/messaging/kafka"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/prometheus"
	trtinfra "github.com/OLVCORE/smartimport/internal/infrastructure/treatment"
	httpserver "github.com/OLVCORE/smartimport/internal/interfaces/http"
	"github.com/OLVCORE/smartimport/internal/interfaces/http/handlers"
	"github.com/OLVCORE/smartimport/internal/interfaces/http/middleware"
)

const defaultConfigPath = "configs/config.yaml"

// version is injected at build time via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: []string{cfg.Log.Output},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting smartimport api server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port))

	// Hot-reload the log level when running from a config file; all other
	// settings require a restart.
	if _, statErr := os.Stat(*configPath); statErr == nil {
		config.Watch(*configPath, func(next *config.Config) {
			logging.SetLevel(logger, next.Log.Level)
			logger.Info("configuration reloaded",
				logging.String("log_level", next.Log.Level))
		})
	}

	metrics := prometheus.NewMetrics()
	ctx := context.Background()
	readiness := map[string]handlers.Pinger{}

	// PostgreSQL is optional; without it simulations are not persisted.
	var simRepo *repositories.SimulationRepo
	conn, err := postgres.NewConnection(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Warn("postgres unavailable, simulations will not be persisted", logging.Err(err))
	} else {
		defer conn.Close()
		readiness["postgres"] = conn
		if err := postgres.RunMigrations(postgres.DSN(&cfg.Database), cfg.Database.MigrationPath); err != nil {
			logger.Warn("migrations failed", logging.Err(err))
		}
		simRepo = repositories.NewSimulationRepo(conn.Pool(), logger)
	}

	// Redis is optional; without it every quote resolution hits the authority.
	var quoteCache redis.Cache
	redisClient, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, quote caching disabled", logging.Err(err))
	} else {
		defer func() { _ = redisClient.Close() }()
		readiness["redis"] = redisClient
		quoteCache = redis.NewRedisCache(redisClient, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL))
	}

	// Exchange-rate resolution chain: authority client, cache decorator, resolver.
	var rateSource fx.RateSource = fxinfra.NewAuthorityClient(&cfg.ExchangeAuthority, logger)
	if quoteCache != nil {
		rateSource = fxinfra.NewCachedSource(rateSource, quoteCache, cfg.ExchangeAuthority.QuoteCacheTTL, logger)
	}
	resolver := fx.NewResolver(rateSource, logger,
		fx.WithMaxAttempts(cfg.ExchangeAuthority.MaxAttempts),
		fx.WithLocalCurrency(cfg.ExchangeAuthority.LocalCurrency))

	treatmentClient := trtinfra.NewClient(&cfg.TaxAuthority, logger)
	classAdvisor := advisor.New(completion.NewClient(&cfg.Completion, logger), logger)

	catalog := benefit.NewCatalog()
	aggregator := benefit.NewAggregator(catalog, logger)

	// Kafka is optional; without it simulation events stay local.
	serviceOpts := []appsim.ServiceOption{appsim.WithMetrics(metrics)}
	if simRepo != nil {
		serviceOpts = append(serviceOpts, appsim.WithRepository(simRepo))
	}
	if cfg.Kafka.Enabled {
		producer, perr := kafka.NewProducer(&cfg.Kafka, logger)
		if perr != nil {
			logger.Warn("kafka unavailable, events will not be published", logging.Err(perr))
		} else {
			defer func() { _ = producer.Close() }()
			serviceOpts = append(serviceOpts, appsim.WithPublisher(producer))
		}
	}

	simService := appsim.NewService(resolver, aggregator, costing.NewCalculator(), logger, serviceOpts...)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		SimulationHandler:     handlers.NewSimulationHandler(simService),
		ExchangeHandler:       handlers.NewExchangeHandler(resolver),
		TreatmentHandler:      handlers.NewTreatmentHandler(treatmentClient),
		BenefitHandler:        handlers.NewBenefitHandler(catalog, aggregator),
		ClassificationHandler: handlers.NewClassificationHandler(classAdvisor),
		HealthHandler:         handlers.NewHealthHandler(version, readiness),
		CORSMiddleware:        middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()),
		LoggingMiddleware: middleware.NewLoggingMiddleware(
			logger, metrics, middleware.DefaultLoggingConfig()),
		Metrics: metrics,
	})

	server := httpserver.NewServer(cfg.Server, router, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("http server error", logging.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := server.Stop(ctx); err != nil {
		logger.Error("shutdown error", logging.Err(err))
	}
}

// loadConfig reads the file at path when it exists, otherwise falls back to
// SMARTIMPORT_* environment variables for containerised deployments.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "config file %s not found, loading from environment\n", path)
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

//Personal.AI order the ending
