// Package costing computes the landed-cost memorial: the line-by-line
// derivation of the total cost of an import, with and without the selected
// fiscal benefits.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// NamedAmount is one labelled monetary line (a duty kind, an expense
// category).
type NamedAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Input bundles everything a landed-cost computation needs.  Duty amounts
// arrive already computed; only their aggregation happens here.
type Input struct {
	Quantity  decimal.Decimal `json:"quantity"`
	UnitValue decimal.Decimal `json:"unit_value"`
	Freight   decimal.Decimal `json:"freight"`
	Insurance decimal.Decimal `json:"insurance"`

	Duties           []NamedAmount `json:"duties"`
	DeclaredExpenses decimal.Decimal `json:"declared_expenses"`
	SelectedExpenses []NamedAmount `json:"selected_expenses"`
	LicenseCost      decimal.Decimal `json:"license_cost"`

	// Economy is the benefit aggregation computed for the same FOB value.
	// Nil means no benefits selected.
	Economy *benefit.Aggregation `json:"economy,omitempty"`
}

// Line is one named row of the memorial, in derivation order.
type Line struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Memorial is the flat, ordered derivation of a landed cost, suitable for
// direct rendering.  Calling Compute twice with identical inputs yields an
// identical memorial.
type Memorial struct {
	Lines []Line `json:"lines"`

	FOBValue      decimal.Decimal `json:"fob_value"`
	CIFValue      decimal.Decimal `json:"cif_value"`
	TotalDuties   decimal.Decimal `json:"total_duties"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`

	Normal         decimal.Decimal `json:"normal"`
	WithBenefits   decimal.Decimal `json:"with_benefits"`
	EconomyAmount  decimal.Decimal `json:"economy_amount"`
	EconomyPercent decimal.Decimal `json:"economy_percent"`

	// EconomyExceedsCost flags the pathological case where the summed
	// benefit economy is larger than the normal total.  The subtraction is
	// deliberately not clamped; consumers decide how to display it.
	EconomyExceedsCost bool `json:"economy_exceeds_cost,omitempty"`
}

// Calculator derives landed-cost memorials.  Stateless; safe for concurrent
// use.
type Calculator struct{}

// NewCalculator returns a Calculator.
func NewCalculator() *Calculator { return &Calculator{} }

// percentScale fixes the rounding of the display percentage.
const percentScale = 2

// Compute derives the full memorial from in.  Pure: no hidden state, no
// side effects.
func (c *Calculator) Compute(in Input) (*Memorial, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New(errors.ErrCodeCostInputInvalid, "quantity must be greater than zero")
	}
	for _, v := range []decimal.Decimal{in.UnitValue, in.Freight, in.Insurance, in.DeclaredExpenses, in.LicenseCost} {
		if v.IsNegative() {
			return nil, errors.New(errors.ErrCodeCostInputInvalid, "monetary inputs must not be negative")
		}
	}

	fobValue := in.Quantity.Mul(in.UnitValue)
	cifValue := fobValue.Add(in.Freight).Add(in.Insurance)

	totalDuties := decimal.Zero
	for _, d := range in.Duties {
		totalDuties = totalDuties.Add(d.Amount)
	}

	totalExpenses := in.DeclaredExpenses
	for _, e := range in.SelectedExpenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}

	normal := fobValue.
		Add(in.Freight).
		Add(in.Insurance).
		Add(totalExpenses).
		Add(totalDuties).
		Add(in.LicenseCost)

	economyAmount := decimal.Zero
	if in.Economy != nil {
		economyAmount = in.Economy.Total
	}
	withBenefits := normal.Sub(economyAmount)

	economyPercent := decimal.Zero
	if normal.IsPositive() {
		economyPercent = economyAmount.Div(normal).Mul(decimal.NewFromInt(100)).Round(percentScale)
	}

	m := &Memorial{
		FOBValue:           fobValue,
		CIFValue:           cifValue,
		TotalDuties:        totalDuties,
		TotalExpenses:      totalExpenses,
		Normal:             normal,
		WithBenefits:       withBenefits,
		EconomyAmount:      economyAmount,
		EconomyPercent:     economyPercent,
		EconomyExceedsCost: economyAmount.GreaterThan(normal),
	}
	m.Lines = buildLines(in, m)
	return m, nil
}

// buildLines materialises the memorial rows in derivation order.
func buildLines(in Input, m *Memorial) []Line {
	lines := make([]Line, 0, 8+len(in.Duties)+len(in.SelectedExpenses))
	lines = append(lines,
		Line{Label: "Valor FOB", Amount: m.FOBValue},
		Line{Label: "Frete Internacional", Amount: in.Freight},
		Line{Label: "Seguro Internacional", Amount: in.Insurance},
		Line{Label: "Valor CIF", Amount: m.CIFValue},
	)
	for _, d := range in.Duties {
		lines = append(lines, Line{Label: d.Name, Amount: d.Amount})
	}
	if !in.DeclaredExpenses.IsZero() {
		lines = append(lines, Line{Label: "Despesas Declaradas", Amount: in.DeclaredExpenses})
	}
	for _, e := range in.SelectedExpenses {
		lines = append(lines, Line{Label: e.Name, Amount: e.Amount})
	}
	if !in.LicenseCost.IsZero() {
		lines = append(lines, Line{Label: "Licenças e Anuências", Amount: in.LicenseCost})
	}
	lines = append(lines,
		Line{Label: "Custo Total (sem benefícios)", Amount: m.Normal},
		Line{Label: "Economia Estimada", Amount: m.EconomyAmount},
		Line{Label: "Custo Total (com benefícios)", Amount: m.WithBenefits},
	)
	return lines
}

//Personal.AI order the ending
