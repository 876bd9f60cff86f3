package benefit

import (
	"github.com/shopspring/decimal"

	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// ItemEconomy is one selected entry's contribution to the total.
type ItemEconomy struct {
	Key     string          `json:"key"`
	Name    string          `json:"name"`
	Kind    Kind            `json:"kind"`
	Economy decimal.Decimal `json:"economy"`
}

// Aggregation is the summed economy of a selection.
type Aggregation struct {
	Total   decimal.Decimal `json:"total"`
	PerItem []ItemEconomy   `json:"per_item"`
}

// Aggregator accumulates selected incentives and regimes into one economy
// figure.  Composition is pure summation; no interaction or exclusivity
// rules between simultaneously selected entries are applied.  That mirrors
// the catalog's published behaviour and is a documented limitation.
type Aggregator struct {
	catalog *Catalog
	logger  logging.Logger
}

// NewAggregator wires an aggregator over a catalog.
func NewAggregator(catalog *Catalog, logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Aggregator{catalog: catalog, logger: logger.Named("benefit")}
}

// Compute sums the economy of each selected incentive (region-scoped) and
// regime (global) over fob.  Unknown or missing keys are skipped silently:
// selections are a set reference, not a strict foreign key.  The total is
// monotonically non-decreasing in the selection set since every entry's
// economy is non-negative.
func (a *Aggregator) Compute(incentiveKeys, regimeKeys []string, region string, fob decimal.Decimal) (*Aggregation, error) {
	if fob.IsNegative() {
		return nil, errors.New(errors.ErrCodeBenefitFOBInvalid, "FOB value must not be negative").
			WithDetail("fob=" + fob.String())
	}

	agg := &Aggregation{Total: decimal.Zero, PerItem: make([]ItemEconomy, 0, len(incentiveKeys)+len(regimeKeys))}

	for _, key := range incentiveKeys {
		e, ok := a.catalog.Incentive(region, key)
		if !ok {
			a.logger.Debug("unknown incentive key skipped",
				logging.String("region", region),
				logging.String("key", key),
			)
			continue
		}
		agg.add(e, fob)
	}
	for _, key := range regimeKeys {
		e, ok := a.catalog.Regime(key)
		if !ok {
			a.logger.Debug("unknown regime key skipped", logging.String("key", key))
			continue
		}
		agg.add(e, fob)
	}

	return agg, nil
}

func (agg *Aggregation) add(e Entry, fob decimal.Decimal) {
	economy := e.Economy(fob)
	agg.PerItem = append(agg.PerItem, ItemEconomy{
		Key:     e.Key,
		Name:    e.Name,
		Kind:    e.Kind,
		Economy: economy,
	})
	agg.Total = agg.Total.Add(economy)
}

//Personal.AI order the ending
