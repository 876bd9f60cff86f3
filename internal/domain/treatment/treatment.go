// Package treatment models the official tax treatment an authority publishes
// for a tariff classification code, and the contract for fetching one.
package treatment

import (
	"context"
	"time"

	"github.com/OLVCORE/smartimport/pkg/errors"
)

// OperationType distinguishes import from export lookups.
type OperationType string

const (
	OperationImport OperationType = "import"
	OperationExport OperationType = "export"
)

// Wire returns the single-letter code the authority expects on the wire.
func (o OperationType) Wire() string {
	if o == OperationExport {
		return "E"
	}
	return "I"
}

// Valid reports whether the operation type is one of the two known values.
func (o OperationType) Valid() bool {
	return o == OperationImport || o == OperationExport
}

// LookupRequest carries the parameters of one authority lookup.
type LookupRequest struct {
	ClassificationCode string        `json:"classification_code"`
	CountryCode        string        `json:"country_code"`
	OperationDate      time.Time     `json:"operation_date"`
	OperationType      OperationType `json:"operation_type"`
}

// Normalize strips separators from the classification code and defaults the
// operation type to import.  Call before Validate.
func (r *LookupRequest) Normalize() {
	r.ClassificationCode = NormalizeClassificationCode(r.ClassificationCode)
	if r.OperationType == "" {
		r.OperationType = OperationImport
	}
}

// Validate enforces the preconditions of a lookup.  No network call may be
// attempted on a request that fails here.
func (r *LookupRequest) Validate() error {
	if !IsValidClassificationCode(r.ClassificationCode) {
		return errors.New(errors.ErrCodeClassificationCodeInvalid, "classification code must be exactly 8 digits").
			WithDetail("got=" + r.ClassificationCode)
	}
	if r.CountryCode == "" {
		return errors.InvalidParam("country code is required")
	}
	if r.OperationDate.IsZero() {
		return errors.InvalidParam("operation date is required")
	}
	if !r.OperationType.Valid() {
		return errors.New(errors.ErrCodeOperationTypeInvalid, "operation type must be import or export").
			WithDetail("got=" + string(r.OperationType))
	}
	return nil
}

// Treatment is one row of the authority's tax table: a duty kind under a
// regime, optionally backed by a legal basis and attribute references.
type Treatment struct {
	DutyKind      string   `json:"duty_kind"`
	RegimeName    string   `json:"regime_name"`
	LegalBasisRef string   `json:"legal_basis_ref,omitempty"`
	AttributeRefs []string `json:"attribute_refs,omitempty"`
}

// LegalBasis references the legislation backing a treatment row.
type LegalBasis struct {
	Ref         string `json:"ref"`
	Description string `json:"description"`
}

// Regime is a named legal regime appearing in the treatment table.
type Regime struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Attribute is a per-classification attribute the authority publishes.
type Attribute struct {
	Ref   string `json:"ref"`
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// CalculatedDuty is an already-computed duty figure from the authority.
type CalculatedDuty struct {
	DutyKind string `json:"duty_kind"`
	Rate     string `json:"rate,omitempty"`
	Amount   string `json:"amount,omitempty"`
}

// TaxTreatment is the authority's full answer for one classification code.
// It is immutable once received; callers replace it wholesale via a new
// lookup rather than mutating fields.
type TaxTreatment struct {
	ClassificationCode  string           `json:"classification_code"`
	CountryCode         string           `json:"country_code"`
	OperationDate       time.Time        `json:"operation_date"`
	OperationType       OperationType    `json:"operation_type"`
	OfficialDescription string           `json:"official_description"`
	Treatments          []Treatment      `json:"treatments"`
	LegalBases          []LegalBasis     `json:"legal_bases"`
	Regimes             []Regime         `json:"regimes"`
	Attributes          []Attribute      `json:"attributes"`
	CalculatedDuties    []CalculatedDuty `json:"calculated_duties"`
	RetrievedAt         time.Time        `json:"retrieved_at"`
}

// Validate fails closed on responses that lack the fields every well-formed
// authority answer carries.  Empty lists are legal; a missing official
// description or classification code is not.
func (t *TaxTreatment) Validate() error {
	if !IsValidClassificationCode(t.ClassificationCode) {
		return errors.New(errors.ErrCodeTreatmentResponseInvalid, "response carries invalid classification code").
			WithDetail("got=" + t.ClassificationCode)
	}
	if t.OfficialDescription == "" {
		return errors.New(errors.ErrCodeTreatmentResponseInvalid, "response missing official description")
	}
	return nil
}

// LookupClient fetches the official tax treatment for a classification code.
// Exactly one outbound request per call; retries are the caller's decision.
type LookupClient interface {
	Lookup(ctx context.Context, req LookupRequest) (*TaxTreatment, error)
}

//Personal.AI order the ending
