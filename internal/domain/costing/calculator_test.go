package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	apperrors "github.com/OLVCORE/smartimport/pkg/errors"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func baseInput() Input {
	return Input{
		Quantity:  dec(100),
		UnitValue: dec(1000),
		Freight:   dec(8000),
		Insurance: dec(2000),
		Duties: []NamedAmount{
			{Name: "Imposto de Importação", Amount: dec(16000)},
			{Name: "IPI", Amount: dec(9000)},
			{Name: "PIS/COFINS", Amount: dec(10000)},
		},
		DeclaredExpenses: dec(3000),
		SelectedExpenses: []NamedAmount{
			{Name: "Armazenagem", Amount: dec(1200)},
			{Name: "Despachante", Amount: dec(800)},
		},
		LicenseCost: dec(0),
	}
}

func TestComputeDerivation(t *testing.T) {
	m, err := NewCalculator().Compute(baseInput())
	require.NoError(t, err)

	assert.True(t, m.FOBValue.Equal(dec(100000)))
	assert.True(t, m.CIFValue.Equal(dec(110000)))
	assert.True(t, m.TotalDuties.Equal(dec(35000)))
	assert.True(t, m.TotalExpenses.Equal(dec(5000)))
	// 100000 + 8000 + 2000 + 5000 + 35000 + 0
	assert.True(t, m.Normal.Equal(dec(150000)), "got %s", m.Normal)
	assert.True(t, m.WithBenefits.Equal(m.Normal), "no benefits selected")
	assert.True(t, m.EconomyPercent.IsZero())
	assert.False(t, m.EconomyExceedsCost)
}

func TestComputeWithBenefitStacking(t *testing.T) {
	agg, err := benefit.NewAggregator(benefit.NewCatalog(), logging.NewNopLogger()).
		Compute([]string{"zona-franca-manaus"}, []string{"drawback"}, "AM", dec(100000))
	require.NoError(t, err)
	require.True(t, agg.Total.Equal(dec(60000)))

	in := baseInput()
	in.Economy = agg

	m, err := NewCalculator().Compute(in)
	require.NoError(t, err)

	assert.True(t, m.Normal.Equal(dec(150000)))
	assert.True(t, m.EconomyAmount.Equal(dec(60000)))
	assert.True(t, m.WithBenefits.Equal(dec(90000)))
	assert.True(t, m.EconomyPercent.Equal(dec(40)), "got %s", m.EconomyPercent)
	assert.True(t, m.Normal.Sub(m.EconomyAmount).Equal(m.WithBenefits))
}

func TestComputeIdempotent(t *testing.T) {
	in := baseInput()
	calc := NewCalculator()

	first, err := calc.Compute(in)
	require.NoError(t, err)
	second, err := calc.Compute(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeEconomyExceedingCostFlagged(t *testing.T) {
	in := Input{
		Quantity:  dec(1),
		UnitValue: dec(100),
		Economy:   &benefit.Aggregation{Total: dec(500)},
	}
	m, err := NewCalculator().Compute(in)
	require.NoError(t, err)

	// Unclamped subtraction; the flag carries the warning.
	assert.True(t, m.WithBenefits.Equal(dec(-400)))
	assert.True(t, m.EconomyExceedsCost)
}

func TestComputeZeroNormalZeroPercent(t *testing.T) {
	in := Input{Quantity: dec(1), UnitValue: dec(0)}
	m, err := NewCalculator().Compute(in)
	require.NoError(t, err)
	assert.True(t, m.Normal.IsZero())
	assert.True(t, m.EconomyPercent.IsZero())
}

func TestComputeRejectsBadInputs(t *testing.T) {
	in := baseInput()
	in.Quantity = dec(0)
	_, err := NewCalculator().Compute(in)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCostInputInvalid, apperrors.GetCode(err))

	in = baseInput()
	in.Freight = dec(-1)
	_, err = NewCalculator().Compute(in)
	assert.Error(t, err)
}

func TestMemorialLineOrder(t *testing.T) {
	m, err := NewCalculator().Compute(baseInput())
	require.NoError(t, err)

	labels := make([]string, len(m.Lines))
	for i, l := range m.Lines {
		labels[i] = l.Label
	}
	assert.Equal(t, []string{
		"Valor FOB",
		"Frete Internacional",
		"Seguro Internacional",
		"Valor CIF",
		"Imposto de Importação",
		"IPI",
		"PIS/COFINS",
		"Despesas Declaradas",
		"Armazenagem",
		"Despachante",
		"Custo Total (sem benefícios)",
		"Economia Estimada",
		"Custo Total (com benefícios)",
	}, labels)
}

//Personal.AI order the ending
