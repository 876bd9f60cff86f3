package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OLVCORE/smartimport/internal/domain/exchange"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
)

// QuoteResolver is the CLI's view of the exchange-rate resolver.
type QuoteResolver interface {
	Resolve(ctx context.Context, currency string, requestedDate time.Time) (*exchange.Quote, error)
}

var (
	quoteCurrency string
	quoteDate     string
)

// NewQuoteCmd creates the quote command.
func NewQuoteCmd(resolver QuoteResolver, logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Resolve the official exchange rate for a currency and date",
		Long: "Resolves the official daily sell rate, walking back up to seven calendar\n" +
			"days when the requested date has no publication (weekends, holidays).",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, resolver, logger)
		},
	}

	cmd.Flags().StringVar(&quoteCurrency, "currency", "", "3-letter currency code (required)")
	cmd.Flags().StringVar(&quoteDate, "date", "", "operation date YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("currency")

	return cmd
}

func runQuote(cmd *cobra.Command, resolver QuoteResolver, logger logging.Logger) error {
	date := time.Now().UTC()
	if quoteDate != "" {
		parsed, err := time.Parse("2006-01-02", quoteDate)
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD, got %q", quoteDate)
		}
		date = parsed
	}

	logger.Debug("resolving exchange quote",
		logging.String("currency", quoteCurrency),
		logging.Time("date", date))

	quote, err := resolver.Resolve(cmd.Context(), quoteCurrency, date)
	if err != nil {
		return err
	}

	if !quote.Found() {
		fmt.Fprintf(cmd.ErrOrStderr(),
			"Warning: no quote published within the fallback window (%d attempts)\n", quote.Attempts)
	}
	return PrintResult(cmd, quote)
}

//Personal.AI order the ending
