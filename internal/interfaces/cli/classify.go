package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OLVCORE/smartimport/internal/application/advisor"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
)

// Suggester is the CLI's view of the classification advisor.
type Suggester interface {
	Suggest(ctx context.Context, description string, specs map[string]string) (*advisor.Suggestion, error)
}

var (
	classifyDescription string
	classifySpecs       []string
)

// NewClassifyCmd creates the classify command.
func NewClassifyCmd(suggester Suggester, logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Suggest a fiscal classification code for a product description",
		Long: "Asks the classification advisor for a best-guess 8-digit code.  The answer\n" +
			"is advisory; only a validated lookup against the tax authority is official.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, suggester, logger)
		},
	}

	cmd.Flags().StringVar(&classifyDescription, "description", "", "product description (required)")
	cmd.Flags().StringArrayVar(&classifySpecs, "spec", nil, "technical spec as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func runClassify(cmd *cobra.Command, suggester Suggester, logger logging.Logger) error {
	specs, err := parseKeyValuePairs(classifySpecs)
	if err != nil {
		return err
	}

	logger.Debug("requesting classification suggestion",
		logging.String("description", classifyDescription),
		logging.Int("specs", len(specs)))

	suggestion, err := suggester.Suggest(cmd.Context(), classifyDescription, specs)
	if err != nil {
		return err
	}

	if !suggestion.Found {
		fmt.Fprintln(cmd.ErrOrStderr(),
			"Warning: the advisor returned no recognizable code; try a richer description")
	}
	return PrintResult(cmd, suggestion)
}

//Personal.AI order the ending
