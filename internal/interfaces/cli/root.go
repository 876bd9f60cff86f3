// Package cli implements the smartimport command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	appsim "github.com/OLVCORE/smartimport/internal/application/simulation"
	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/internal/domain/treatment"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
}

// CommandDependencies aggregates service dependencies for CLI commands.
// Fields left nil disable the corresponding command at registration time.
type CommandDependencies struct {
	Logger logging.Logger

	QuoteResolver     QuoteResolver
	Suggester         Suggester
	LookupClient      treatment.LookupClient
	Catalog           *benefit.Catalog
	Aggregator        *benefit.Aggregator
	SimulationService *appsim.Service
}

// NewRootCommand creates the root cobra command with all global flags.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "smartimport",
		Short: "SmartImport CLI — landed-cost simulation and fiscal-benefit resolution for Brazilian imports",
		Long: "SmartImport resolves official exchange rates and tax treatments, estimates\n" +
			"fiscal-benefit economies, and computes complete landed-cost memorials for\n" +
			"Brazilian import operations.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./configs/config.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "json", "output format (json, text)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")

	return cmd
}

// RegisterCommands registers all subcommands with the root command.
// Called from main after dependency injection.
func RegisterCommands(rootCmd *cobra.Command, deps CommandDependencies) {
	if deps.QuoteResolver != nil {
		rootCmd.AddCommand(NewQuoteCmd(deps.QuoteResolver, deps.Logger))
	}
	if deps.Suggester != nil {
		rootCmd.AddCommand(NewClassifyCmd(deps.Suggester, deps.Logger))
	}
	if deps.LookupClient != nil {
		rootCmd.AddCommand(NewLookupCmd(deps.LookupClient, deps.Logger))
	}
	if deps.Catalog != nil && deps.Aggregator != nil {
		rootCmd.AddCommand(NewBenefitsCmd(deps.Catalog, deps.Aggregator, deps.Logger))
	}
	if deps.SimulationService != nil {
		rootCmd.AddCommand(NewSimulateCmd(deps.SimulationService, deps.Logger))
	}
}

// Execute runs the root command.
func Execute(rootCmd *cobra.Command) error {
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// PrintResult outputs data as indented JSON to the command's stdout.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// parseKeyValuePairs splits repeated "key=value" flag values into a map.
func parseKeyValuePairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid key=value pair %q", p)
		}
		out[k] = v
	}
	return out, nil
}

//Personal.AI order the ending
