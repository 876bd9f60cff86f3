// Package simulation defines the persisted record of one landed-cost
// simulation run and its repository contract.
package simulation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/internal/domain/costing"
	"github.com/OLVCORE/smartimport/internal/domain/exchange"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// Request is everything a simulation run needs from the caller.
type Request struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Currency      string          `json:"currency"`
	OperationDate time.Time       `json:"operation_date"`
	RegionCode    string          `json:"region_code"`

	Quantity  decimal.Decimal `json:"quantity"`
	UnitValue decimal.Decimal `json:"unit_value"`
	Freight   decimal.Decimal `json:"freight"`
	Insurance decimal.Decimal `json:"insurance"`

	Duties           []costing.NamedAmount `json:"duties"`
	DeclaredExpenses decimal.Decimal       `json:"declared_expenses"`
	SelectedExpenses []costing.NamedAmount `json:"selected_expenses"`
	LicenseCost      decimal.Decimal       `json:"license_cost"`

	IncentiveKeys []string `json:"incentive_keys"`
	RegimeKeys    []string `json:"regime_keys"`
}

// Validate checks the request before any computation or network call.
func (r *Request) Validate() error {
	if r.Name == "" {
		return errors.InvalidParam("simulation name is required")
	}
	if r.Currency == "" {
		return errors.InvalidParam("currency is required")
	}
	if r.OperationDate.IsZero() {
		return errors.InvalidParam("operation date is required")
	}
	if r.Quantity.LessThanOrEqual(decimal.Zero) {
		return errors.New(errors.ErrCodeCostInputInvalid, "quantity must be greater than zero")
	}
	return nil
}

// Simulation is one completed run: inputs, the resolved quote, the benefit
// aggregation, and the derived memorial.
type Simulation struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Request Request              `json:"request"`
	Quote   *exchange.Quote      `json:"quote"`
	Economy *benefit.Aggregation `json:"economy"`
	Result  *costing.Memorial    `json:"result"`

	// Warnings carry non-fatal conditions a consumer should surface, such
	// as an exhausted rate-fallback window or an economy larger than the
	// normal total.
	Warnings []string `json:"warnings,omitempty"`
}

// Repository persists completed simulations.
type Repository interface {
	Save(ctx context.Context, sim *Simulation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Simulation, error)
	ListRecent(ctx context.Context, limit int) ([]*Simulation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

//Personal.AI order the ending
