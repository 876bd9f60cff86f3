package product

import (
	"context"
	"time"

	"github.com/OLVCORE/smartimport/internal/domain/treatment"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// EditOutcome is the result category of a classification edit.
type EditOutcome string

const (
	// OutcomeIncomplete: fewer than 8 digits typed; nothing happened.
	OutcomeIncomplete EditOutcome = "incomplete"
	// OutcomeRejected: wrong-length or non-numeric input; the previous code
	// is untouched and no lookup was issued.
	OutcomeRejected EditOutcome = "rejected"
	// OutcomeValidated: the authority confirmed the code; product locked.
	OutcomeValidated EditOutcome = "validated"
	// OutcomeLookupFailed: the authority call failed; product left
	// unvalidated with the entered code retained.
	OutcomeLookupFailed EditOutcome = "lookup_failed"
)

// EditResult reports what one classification edit did to the product.
type EditResult struct {
	Outcome        EditOutcome     `json:"outcome"`
	NormalizedCode string          `json:"normalized_code"`
	State          ValidationState `json:"state"`
	SurfacedError  string          `json:"surfaced_error,omitempty"`
}

// ValidationFlow coordinates user-entered classification codes with the
// official authority: format gate, single in-flight lookup per product,
// lock on success, degrade on failure.
type ValidationFlow struct {
	client treatment.LookupClient
	logger logging.Logger
}

// NewValidationFlow wires the flow over an authority client.
func NewValidationFlow(client treatment.LookupClient, logger logging.Logger) *ValidationFlow {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ValidationFlow{client: client, logger: logger.Named("validation-flow")}
}

// EditClassification handles one edit to a product's classification field.
//
// Fewer than 8 digits: the code is stored and nothing else happens.  Exactly
// 8 digits: a lookup is issued; success locks the product and overwrites its
// description with the official text; failure surfaces the error and leaves
// the product unlocked and usable.  Any other input is rejected synchronously
// with no authority call and the previous code restored.
func (f *ValidationFlow) EditClassification(ctx context.Context, p *Product, rawCode, countryCode string, operationDate time.Time) (*EditResult, error) {
	if p == nil {
		return nil, errors.InvalidParam("product is required")
	}

	normalized, gate := treatment.GateClassificationCode(rawCode)
	switch gate {
	case treatment.GateIncomplete:
		p.mu.Lock()
		if p.State == StateUnvalidated {
			p.ClassificationCode = normalized
		}
		state := p.State
		p.mu.Unlock()
		return &EditResult{Outcome: OutcomeIncomplete, NormalizedCode: normalized, State: state}, nil

	case treatment.GateRejected:
		f.logger.Debug("classification input rejected by format gate",
			logging.String("product_id", p.ID.String()),
			logging.String("input", rawCode),
		)
		return &EditResult{Outcome: OutcomeRejected, NormalizedCode: normalized, State: p.State}, nil
	}

	if err := p.beginLookup(normalized); err != nil {
		return nil, err
	}

	req := treatment.LookupRequest{
		ClassificationCode: normalized,
		CountryCode:        countryCode,
		OperationDate:      operationDate,
		OperationType:      treatment.OperationImport,
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		p.failLookup(err.Error())
		return nil, err
	}

	tt, err := f.client.Lookup(ctx, req)
	if err != nil {
		// Degraded-continue: official validation is advisory.  The
		// product stays editable with the unofficial code.
		f.logger.Warn("treatment lookup failed, continuing unvalidated",
			logging.String("product_id", p.ID.String()),
			logging.String("code", normalized),
			logging.Err(err),
		)
		p.failLookup(err.Error())
		return &EditResult{
			Outcome:        OutcomeLookupFailed,
			NormalizedCode: normalized,
			State:          StateUnvalidated,
			SurfacedError:  err.Error(),
		}, nil
	}

	if err := tt.Validate(); err != nil {
		f.logger.Warn("treatment response failed strict validation",
			logging.String("product_id", p.ID.String()),
			logging.Err(err),
		)
		p.failLookup(err.Error())
		return &EditResult{
			Outcome:        OutcomeLookupFailed,
			NormalizedCode: normalized,
			State:          StateUnvalidated,
			SurfacedError:  err.Error(),
		}, nil
	}

	p.completeLookup(tt)
	f.logger.Info("classification validated and locked",
		logging.String("product_id", p.ID.String()),
		logging.String("code", normalized),
	)
	return &EditResult{Outcome: OutcomeValidated, NormalizedCode: normalized, State: StateValidated}, nil
}

//Personal.AI order the ending
