// CLI entry point for the SmartImport platform.
package main

import (
	"fmt"
	"os"

	"github.com/OLVCORE/smartimport/internal/application/advisor"
	appsim "github.com/OLVCORE/smartimport/internal/application/simulation"
	"github.com/OLVCORE/smartimport/internal/config"
	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/internal/domain/costing"
	fx "github.com/OLVCORE/smartimport/internal/domain/exchange"
	"github.com/OLVCORE/smartimport/internal/infrastructure/completion"
	fxinfra "github.com/OLVCORE/smartimport/internal/infrastructure/exchange"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	trtinfra "github.com/OLVCORE/smartimport/internal/infrastructure/treatment"
	"github.com/OLVCORE/smartimport/internal/interfaces/cli"
)

func main() {
	rootCmd := cli.NewRootCommand()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	resolver := fx.NewResolver(
		fxinfra.NewAuthorityClient(&cfg.ExchangeAuthority, logger), logger,
		fx.WithMaxAttempts(cfg.ExchangeAuthority.MaxAttempts),
		fx.WithLocalCurrency(cfg.ExchangeAuthority.LocalCurrency))

	catalog := benefit.NewCatalog()
	aggregator := benefit.NewAggregator(catalog, logger)

	cli.RegisterCommands(rootCmd, cli.CommandDependencies{
		Logger:        logger,
		QuoteResolver: resolver,
		Suggester:     advisor.New(completion.NewClient(&cfg.Completion, logger), logger),
		LookupClient:  trtinfra.NewClient(&cfg.TaxAuthority, logger),
		Catalog:       catalog,
		Aggregator:    aggregator,
		SimulationService: appsim.NewService(
			resolver, aggregator, costing.NewCalculator(), logger),
	})

	if err := cli.Execute(rootCmd); err != nil {
		os.Exit(1)
	}
}

// loadConfig prefers ./configs/config.yaml, then the environment.
func loadConfig() (*config.Config, error) {
	const path = "configs/config.yaml"
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

//Personal.AI order the ending
