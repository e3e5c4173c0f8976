package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"casos-validator/domain/baseline"
	"casos-validator/domain/caso"

	lo "github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Tolerance is the largest monetary difference that is not reported.
var Tolerance = decimal.New(1, -2)

// Result holds the totals computed from one fetch of the casos collection.
type Result struct {
	TotalCasos    int
	Fee           decimal.Decimal
	CostoUsd      decimal.Decimal
	MontoAgregado decimal.Decimal
	Total         decimal.Decimal

	CasosConFee      int
	CasosConCostoUsd int
	CasosConMonto    int
	Monedas          map[string]CurrencyTotal
}

// CurrencyTotal is the local-currency sum and case count for one currency.
type CurrencyTotal struct {
	Suma  decimal.Decimal
	Casos int
}

// Aggregate sums the monetary fields of casos. Absent and null amounts count as zero.
func Aggregate(casos []caso.Caso) Result {
	r := Result{
		TotalCasos:    len(casos),
		Fee:           sumBy(casos, func(c caso.Caso) decimal.NullDecimal { return c.Fee }),
		CostoUsd:      sumBy(casos, func(c caso.Caso) decimal.NullDecimal { return c.CostoUsd }),
		MontoAgregado: sumBy(casos, func(c caso.Caso) decimal.NullDecimal { return c.MontoAgregado }),

		CasosConFee:      lo.CountBy(casos, func(c caso.Caso) bool { return c.Fee.Valid }),
		CasosConCostoUsd: lo.CountBy(casos, func(c caso.Caso) bool { return c.CostoUsd.Valid }),
		CasosConMonto:    lo.CountBy(casos, func(c caso.Caso) bool { return c.MontoAgregado.Valid }),
	}
	r.Total = r.Fee.Add(r.CostoUsd).Add(r.MontoAgregado)

	// Per-currency breakdown of the local cost, only for cases that carry both values.
	withLocal := lo.Filter(casos, func(c caso.Caso, _ int) bool {
		return c.CostoMonedaLocal.Valid && NormalizeCurrency(c.Currency()) != ""
	})
	groups := lo.GroupBy(withLocal, func(c caso.Caso) string { return NormalizeCurrency(c.Currency()) })
	r.Monedas = lo.MapValues(groups, func(g []caso.Caso, _ string) CurrencyTotal {
		return CurrencyTotal{
			Suma:  sumBy(g, func(c caso.Caso) decimal.NullDecimal { return c.CostoMonedaLocal }),
			Casos: len(g),
		}
	})
	return r
}

func sumBy(casos []caso.Caso, field func(caso.Caso) decimal.NullDecimal) decimal.Decimal {
	return lo.Reduce(casos, func(acc decimal.Decimal, c caso.Caso, _ int) decimal.Decimal {
		return acc.Add(caso.Amount(field(c)))
	}, decimal.Zero)
}

// NormalizeCurrency trims and upper-cases a currency symbol.
func NormalizeCurrency(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Discrepancy is a computed total that differs from the baseline beyond tolerance.
type Discrepancy struct {
	Field string
	// Count is set for integer fields; Diff is meaningful otherwise.
	Count bool
	Diff  decimal.Decimal
}

func (d Discrepancy) String() string {
	if d.Count {
		return fmt.Sprintf("%s: diff = %s", d.Field, d.Diff.StringFixed(0))
	}
	return fmt.Sprintf("%s: diff = $%s", d.Field, d.Diff.StringFixed(2))
}

// Compare checks the record count, fee and costoUsd totals against the baseline.
// montoAgregado, the combined total and the breakdowns are reported but never checked.
func Compare(r Result, s baseline.Snapshot) []Discrepancy {
	var out []Discrepancy
	if r.TotalCasos != s.TotalCasos {
		out = append(out, Discrepancy{
			Field: "Total casos",
			Count: true,
			Diff:  decimal.NewFromInt(int64(r.TotalCasos - s.TotalCasos)),
		})
	}
	if d, ok := exceeds(r.Fee, s.FeeTotal); ok {
		out = append(out, Discrepancy{Field: "Fee", Diff: d})
	}
	if d, ok := exceeds(r.CostoUsd, s.CostoUsdTotal); ok {
		out = append(out, Discrepancy{Field: "Costo USD", Diff: d})
	}
	return out
}

// exceeds returns got-want and whether its magnitude is strictly above Tolerance.
func exceeds(got, want decimal.Decimal) (decimal.Decimal, bool) {
	d := got.Sub(want)
	return d, d.Abs().GreaterThan(Tolerance)
}

// Currencies returns the sorted union of currency codes seen in r and s.
func Currencies(r Result, s baseline.Snapshot) []string {
	codes := lo.Uniq(append(lo.Keys(r.Monedas), lo.Keys(s.Monedas)...))
	sort.Strings(codes)
	return codes
}
