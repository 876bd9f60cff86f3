package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OLVCORE/smartimport/internal/domain/treatment"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
)

var (
	lookupCode    string
	lookupCountry string
	lookupDate    string
	lookupType    string
)

// NewLookupCmd creates the lookup command for official tax treatments.
func NewLookupCmd(client treatment.LookupClient, logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Fetch the official tax treatment for a classification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, client, logger)
		},
	}

	cmd.Flags().StringVar(&lookupCode, "code", "", "8-digit classification code, separators allowed (required)")
	cmd.Flags().StringVar(&lookupCountry, "country", "", "origin country code (required)")
	cmd.Flags().StringVar(&lookupDate, "date", "", "operation date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&lookupType, "type", "import", "operation type (import, export)")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}

func runLookup(cmd *cobra.Command, client treatment.LookupClient, logger logging.Logger) error {
	date := time.Now().UTC()
	if lookupDate != "" {
		parsed, err := time.Parse("2006-01-02", lookupDate)
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD, got %q", lookupDate)
		}
		date = parsed
	}

	req := treatment.LookupRequest{
		ClassificationCode: lookupCode,
		CountryCode:        lookupCountry,
		OperationDate:      date,
		OperationType:      treatment.OperationType(lookupType),
	}
	req.Normalize()

	logger.Debug("looking up tax treatment",
		logging.String("code", req.ClassificationCode),
		logging.String("country", req.CountryCode))

	tt, err := client.Lookup(cmd.Context(), req)
	if err != nil {
		return err
	}
	return PrintResult(cmd, tt)
}

//Personal.AI order the ending
