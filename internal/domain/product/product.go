// Package product holds the Product entity and the validation flow that
// reconciles user-entered classification codes with the official authority.
package product

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/OLVCORE/smartimport/internal/domain/treatment"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// ValidationState tracks where a product sits in the classification flow.
type ValidationState string

const (
	// StateUnvalidated: fields editable, no official treatment attached.
	StateUnvalidated ValidationState = "unvalidated"
	// StateValidating: a lookup is in flight; no concurrent edit allowed.
	StateValidating ValidationState = "validating"
	// StateValidated: official treatment attached, fields locked.
	StateValidated ValidationState = "validated"
	// StateValidationFailed: transient, recorded for surfacing; the product
	// immediately settles back to unvalidated.
	StateValidationFailed ValidationState = "validation_failed"
)

// Product is the unit a simulation prices.  Description and classification
// code stay mutable until a successful official validation locks them.
type Product struct {
	mu sync.Mutex

	ID                 uuid.UUID               `json:"id"`
	Description        string                  `json:"description"`
	ClassificationCode string                  `json:"classification_code"`
	Quantity           decimal.Decimal         `json:"quantity"`
	UnitValue          decimal.Decimal         `json:"unit_value"`
	Treatment          *treatment.TaxTreatment `json:"treatment,omitempty"`

	DescriptionLocked    bool            `json:"description_locked"`
	ClassificationLocked bool            `json:"classification_locked"`
	State                ValidationState `json:"state"`

	// LastValidationError carries the most recent surfaced lookup failure,
	// cleared on the next successful validation.
	LastValidationError string `json:"last_validation_error,omitempty"`
}

// New creates an empty unvalidated product.
func New(description string) *Product {
	return &Product{
		ID:          uuid.New(),
		Description: description,
		Quantity:    decimal.NewFromInt(1),
		State:       StateUnvalidated,
	}
}

// Validate checks the commercial fields a costing run depends on.
func (p *Product) Validate() error {
	if p.Quantity.LessThanOrEqual(decimal.Zero) {
		return errors.New(errors.ErrCodeProductQuantity, "product quantity must be greater than zero")
	}
	if p.UnitValue.IsNegative() {
		return errors.InvalidParam("unit value must not be negative")
	}
	return nil
}

// TotalValue is quantity × unit value (the product's FOB contribution).
func (p *Product) TotalValue() decimal.Decimal {
	return p.Quantity.Mul(p.UnitValue)
}

// Locked reports whether the product carries a validated classification.
func (p *Product) Locked() bool {
	return p.DescriptionLocked && p.ClassificationLocked
}

// Unlock reverts a validated product to the editable state (manual override).
// The attached treatment is discarded; the official description is kept as
// the current editable text.
func (p *Product) Unlock() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.DescriptionLocked = false
	p.ClassificationLocked = false
	p.Treatment = nil
	p.State = StateUnvalidated
}

// beginLookup atomically moves the product into the validating state.  It
// fails when the product is locked or already validating — the state itself
// is the per-product mutual-exclusion mechanism.
func (p *Product) beginLookup(code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.State {
	case StateValidating:
		return errors.New(errors.ErrCodeLookupAlreadyRunning, "a classification lookup is already in flight")
	case StateValidated:
		return errors.New(errors.ErrCodeProductLocked, "product is locked by a validated classification")
	}
	p.ClassificationCode = code
	p.State = StateValidating
	return nil
}

// completeLookup applies a successful authority answer: attach the treatment,
// overwrite the description with the official text, lock both fields.
func (p *Product) completeLookup(tt *treatment.TaxTreatment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Treatment = tt
	p.Description = tt.OfficialDescription
	p.DescriptionLocked = true
	p.ClassificationLocked = true
	p.LastValidationError = ""
	p.State = StateValidated
}

// failLookup records the surfaced failure and settles back to unvalidated.
// StateValidationFailed is transient; the stored state is unvalidated so the
// user-entered code stays usable downstream with an unofficial
// classification.  The flow result carries the transient state.
func (p *Product) failLookup(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.LastValidationError = msg
	p.State = StateUnvalidated
}

//Personal.AI order the ending
