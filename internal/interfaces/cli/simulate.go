package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	appsim "github.com/OLVCORE/smartimport/internal/application/simulation"
	"github.com/OLVCORE/smartimport/internal/domain/costing"
	domainsim "github.com/OLVCORE/smartimport/internal/domain/simulation"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

var (
	simulateName             string
	simulateDescription      string
	simulateCurrency         string
	simulateDate             string
	simulateRegion           string
	simulateQuantity         string
	simulateUnitValue        string
	simulateFreight          string
	simulateInsurance        string
	simulateDuties           []string
	simulateDeclaredExpenses string
	simulateLicenseCost      string
	simulateIncentives       []string
	simulateRegimes          []string
)

// NewSimulateCmd creates the simulate command.
func NewSimulateCmd(service *appsim.Service, logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a complete landed-cost simulation",
		Long: "Resolves the exchange rate, stacks the selected fiscal benefits, and prints\n" +
			"the full cost memorial with and without benefits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, service, logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&simulateName, "name", "", "simulation name (required)")
	f.StringVar(&simulateDescription, "description", "", "product description")
	f.StringVar(&simulateCurrency, "currency", "USD", "3-letter operation currency")
	f.StringVar(&simulateDate, "date", "", "operation date YYYY-MM-DD (default: today)")
	f.StringVar(&simulateRegion, "region", "", "destination region code (e.g. AM, SC)")
	f.StringVar(&simulateQuantity, "quantity", "", "item quantity (required)")
	f.StringVar(&simulateUnitValue, "unit-value", "", "unit value in the operation currency (required)")
	f.StringVar(&simulateFreight, "freight", "0", "international freight")
	f.StringVar(&simulateInsurance, "insurance", "0", "international insurance")
	f.StringArrayVar(&simulateDuties, "duty", nil, "duty as name=amount (repeatable)")
	f.StringVar(&simulateDeclaredExpenses, "declared-expenses", "0", "declared customs expenses")
	f.StringVar(&simulateLicenseCost, "license-cost", "0", "licenses and permits cost")
	f.StringArrayVar(&simulateIncentives, "incentive", nil, "regional incentive key (repeatable)")
	f.StringArrayVar(&simulateRegimes, "regime", nil, "national regime key (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("unit-value")

	return cmd
}

func runSimulate(cmd *cobra.Command, service *appsim.Service, logger logging.Logger) error {
	req, err := buildSimulationRequest()
	if err != nil {
		return err
	}

	logger.Debug("running simulation",
		logging.String("name", req.Name),
		logging.String("currency", req.Currency))

	sim, err := service.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	for _, w := range sim.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	return PrintResult(cmd, sim)
}

func buildSimulationRequest() (domainsim.Request, error) {
	req := domainsim.Request{
		Name:          simulateName,
		Description:   simulateDescription,
		Currency:      simulateCurrency,
		RegionCode:    simulateRegion,
		IncentiveKeys: simulateIncentives,
		RegimeKeys:    simulateRegimes,
	}

	req.OperationDate = time.Now().UTC()
	if simulateDate != "" {
		parsed, err := time.Parse("2006-01-02", simulateDate)
		if err != nil {
			return req, fmt.Errorf("--date must be YYYY-MM-DD, got %q", simulateDate)
		}
		req.OperationDate = parsed
	}

	var err error
	if req.Quantity, err = parseFlagDecimal(simulateQuantity, "--quantity"); err != nil {
		return req, err
	}
	if req.UnitValue, err = parseFlagDecimal(simulateUnitValue, "--unit-value"); err != nil {
		return req, err
	}
	if req.Freight, err = parseFlagDecimal(simulateFreight, "--freight"); err != nil {
		return req, err
	}
	if req.Insurance, err = parseFlagDecimal(simulateInsurance, "--insurance"); err != nil {
		return req, err
	}
	if req.DeclaredExpenses, err = parseFlagDecimal(simulateDeclaredExpenses, "--declared-expenses"); err != nil {
		return req, err
	}
	if req.LicenseCost, err = parseFlagDecimal(simulateLicenseCost, "--license-cost"); err != nil {
		return req, err
	}

	for _, p := range simulateDuties {
		name, raw, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return req, fmt.Errorf("invalid --duty pair %q, expected name=amount", p)
		}
		amount, derr := parseFlagDecimal(raw, "--duty "+name)
		if derr != nil {
			return req, derr
		}
		req.Duties = append(req.Duties, costing.NamedAmount{Name: name, Amount: amount})
	}

	return req, nil
}

func parseFlagDecimal(raw, flag string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.InvalidParam(flag + " must be a decimal number")
	}
	return d, nil
}

//Personal.AI order the ending
