// Package benefit carries the static catalog of regional fiscal incentives
// and national special regimes, and the aggregator that turns a selection of
// them into an estimated economy over FOB value.
package benefit

import "github.com/shopspring/decimal"

// Kind distinguishes how an entry alters the duty burden.
type Kind string

const (
	// KindSuspension: duties suspended (and usually later extinguished);
	// modelled with the larger estimated ratios.
	KindSuspension Kind = "suspension"
	// KindReduction: duty base or rate reduced.
	KindReduction Kind = "reduction"
	// KindOperational: changes the legal structure of the import, not its
	// cost. Economy is always zero.
	KindOperational Kind = "operational"
)

// Entry is one catalog row: a named incentive or regime with a deterministic
// economy-estimation function over FOB value.
type Entry struct {
	Key          string
	Name         string
	Description  string
	Kind         Kind
	Basis        string // currently always "FOB"
	PercentLabel string // informational display text only
	Conditions   []string

	ratio decimal.Decimal
}

// Economy estimates the saving for a given FOB value.  Pure and
// side-effect-free; operational entries always return zero.
func (e Entry) Economy(fob decimal.Decimal) decimal.Decimal {
	if e.Kind == KindOperational || e.ratio.IsZero() {
		return decimal.Zero
	}
	return fob.Mul(e.ratio)
}

func ratio(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entry(key, name, desc string, kind Kind, r, label string, conditions ...string) Entry {
	return Entry{
		Key:          key,
		Name:         name,
		Description:  desc,
		Kind:         kind,
		Basis:        "FOB",
		PercentLabel: label,
		Conditions:   conditions,
		ratio:        ratio(r),
	}
}

// regionalIncentives maps region code → incentive key → entry.  Ratios are
// catalog constants tuned against historical simulations, not legal rates.
var regionalIncentives = map[string]map[string]Entry{
	"AM": {
		"zona-franca-manaus": entry(
			"zona-franca-manaus",
			"Zona Franca de Manaus",
			"Suspensão de II e IPI para insumos industrializados na ZFM, com crédito estímulo de ICMS.",
			KindSuspension, "0.35", "até 35% do FOB",
			"Industrialização dentro da ZFM",
			"Projeto aprovado pela SUFRAMA",
		),
	},
	"SC": {
		"ttd-importacao": entry(
			"ttd-importacao",
			"TTD Importação SC",
			"Tratamento Tributário Diferenciado catarinense com diferimento e crédito presumido de ICMS.",
			KindReduction, "0.12", "até 12% do FOB",
			"Desembaraço por porto ou aeroporto catarinense",
			"Regularidade fiscal estadual",
		),
	},
	"ES": {
		"fundap": entry(
			"fundap",
			"FUNDAP",
			"Financiamento capixaba do ICMS devido na importação, com deságio na liquidação.",
			KindReduction, "0.08", "até 8% do FOB",
			"Empresa sediada no Espírito Santo",
			"Operação cursada por porto capixaba",
		),
	},
	"GO": {
		"comexproduzir": entry(
			"comexproduzir",
			"COMEXPRODUZIR",
			"Crédito outorgado goiano de ICMS para operações interestaduais com importados.",
			KindReduction, "0.10", "até 10% do FOB",
			"Desembaraço em zona secundária goiana",
		),
	},
	"MG": {
		"corredor-importacao": entry(
			"corredor-importacao",
			"Corredor de Importação MG",
			"Diferimento mineiro de ICMS na importação com crédito presumido na saída.",
			KindReduction, "0.11", "até 11% do FOB",
			"Desembaraço em recinto alfandegado mineiro",
		),
	},
}

// nationalRegimes maps regime key → entry, region-independent.
var nationalRegimes = map[string]Entry{
	"drawback": entry(
		"drawback",
		"Drawback",
		"Suspensão de tributos sobre insumos importados vinculados a exportação posterior.",
		KindSuspension, "0.25", "até 25% do FOB",
		"Compromisso de exportação do produto final",
		"Ato concessório vigente",
	),
	"recof": entry(
		"recof",
		"RECOF",
		"Entreposto industrial sob controle informatizado: suspensão de II, IPI, PIS e COFINS.",
		KindSuspension, "0.30", "até 30% do FOB",
		"Habilitação no RECOF-SPED",
		"Controle de estoque informatizado",
	),
	"entreposto-aduaneiro": entry(
		"entreposto-aduaneiro",
		"Entreposto Aduaneiro",
		"Armazenagem com suspensão de tributos até a nacionalização efetiva.",
		KindSuspension, "0.20", "até 20% do FOB",
		"Recinto alfandegado habilitado",
	),
	"ex-tarifario": entry(
		"ex-tarifario",
		"Ex-Tarifário",
		"Redução temporária do II para bens de capital sem similar nacional.",
		KindReduction, "0.14", "até 14% do FOB",
		"BK/BIT sem produção nacional equivalente",
		"Pleito deferido pelo GECEX",
	),
	"conta-e-ordem": entry(
		"conta-e-ordem",
		"Importação por Conta e Ordem",
		"Terceirização operacional do despacho; altera a estrutura jurídica, não o custo.",
		KindOperational, "0", "0% (operacional)",
		"Contrato registrado no Siscomex",
	),
	"encomenda": entry(
		"encomenda",
		"Importação por Encomenda",
		"Revenda por trading previamente contratada; sem efeito direto no custo estimado.",
		KindOperational, "0", "0% (operacional)",
		"Encomendante predeterminado vinculado no Siscomex",
	),
}

// Catalog is a fixed lookup of incentives and regimes.  The zero-value-free
// constructor returns the package's built-in table; all methods are
// read-only and safe for concurrent use.
type Catalog struct {
	incentives map[string]map[string]Entry
	regimes    map[string]Entry
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{incentives: regionalIncentives, regimes: nationalRegimes}
}

// Incentive looks up a region-scoped incentive by region code and key.
func (c *Catalog) Incentive(region, key string) (Entry, bool) {
	table, ok := c.incentives[region]
	if !ok {
		return Entry{}, false
	}
	e, ok := table[key]
	return e, ok
}

// Regime looks up a national regime by key.
func (c *Catalog) Regime(key string) (Entry, bool) {
	e, ok := c.regimes[key]
	return e, ok
}

// IncentivesForRegion returns every incentive available in a region.
func (c *Catalog) IncentivesForRegion(region string) []Entry {
	table := c.incentives[region]
	out := make([]Entry, 0, len(table))
	for _, e := range table {
		out = append(out, e)
	}
	return out
}

// Regimes returns every national regime.
func (c *Catalog) Regimes() []Entry {
	out := make([]Entry, 0, len(c.regimes))
	for _, e := range c.regimes {
		out = append(out, e)
	}
	return out
}

// Regions returns the region codes with at least one incentive.
func (c *Catalog) Regions() []string {
	out := make([]string, 0, len(c.incentives))
	for r := range c.incentives {
		out = append(out, r)
	}
	return out
}

//Personal.AI order the ending
