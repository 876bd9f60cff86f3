package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

var (
	benefitsRegion     string
	estimateFOB        string
	estimateRegion     string
	estimateIncentives []string
	estimateRegimes    []string
)

// NewBenefitsCmd creates the benefits command with its subcommands.
func NewBenefitsCmd(catalog *benefit.Catalog, aggregator *benefit.Aggregator, logger logging.Logger) *cobra.Command {
	benefitsCmd := &cobra.Command{
		Use:   "benefits",
		Short: "Inspect the fiscal-benefit catalog and estimate economies",
	}

	regionsCmd := &cobra.Command{
		Use:   "regions",
		Short: "List regions with at least one incentive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintResult(cmd, map[string][]string{"regions": catalog.Regions()})
		},
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List national regimes and, with --region, regional incentives",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := map[string]interface{}{"regimes": entrySummaries(catalog.Regimes())}
			if benefitsRegion != "" {
				out["incentives"] = entrySummaries(catalog.IncentivesForRegion(benefitsRegion))
			}
			return PrintResult(cmd, out)
		},
	}
	catalogCmd.Flags().StringVar(&benefitsRegion, "region", "", "region code (e.g. AM, SC)")

	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the economy of a benefit selection over a FOB value",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, aggregator, logger)
		},
	}
	estimateCmd.Flags().StringVar(&estimateFOB, "fob", "", "FOB value (required)")
	estimateCmd.Flags().StringVar(&estimateRegion, "region", "", "region code for regional incentives")
	estimateCmd.Flags().StringArrayVar(&estimateIncentives, "incentive", nil, "regional incentive key (repeatable)")
	estimateCmd.Flags().StringArrayVar(&estimateRegimes, "regime", nil, "national regime key (repeatable)")
	_ = estimateCmd.MarkFlagRequired("fob")

	benefitsCmd.AddCommand(regionsCmd, catalogCmd, estimateCmd)
	return benefitsCmd
}

// entrySummary is the CLI shape of one catalog row.
type entrySummary struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	PercentLabel string   `json:"percent_label"`
	Conditions   []string `json:"conditions"`
}

func entrySummaries(entries []benefit.Entry) []entrySummary {
	out := make([]entrySummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, entrySummary{
			Key:          e.Key,
			Name:         e.Name,
			Kind:         string(e.Kind),
			PercentLabel: e.PercentLabel,
			Conditions:   e.Conditions,
		})
	}
	return out
}

func runEstimate(cmd *cobra.Command, aggregator *benefit.Aggregator, logger logging.Logger) error {
	fob, err := decimal.NewFromString(estimateFOB)
	if err != nil {
		return errors.InvalidParam("--fob must be a decimal number")
	}

	logger.Debug("estimating benefit economy",
		logging.String("fob", fob.String()),
		logging.String("region", estimateRegion))

	agg, err := aggregator.Compute(estimateIncentives, estimateRegimes, estimateRegion, fob)
	if err != nil {
		return err
	}
	return PrintResult(cmd, agg)
}

//Personal.AI order the ending
