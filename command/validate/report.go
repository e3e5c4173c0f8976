package validate

import (
	"fmt"
	"io"

	"casos-validator/domain/baseline"
	"casos-validator/domain/reconcile"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

func writeTotals(w io.Writer, r reconcile.Result, s baseline.Snapshot) {
	fmt.Fprintln(w, "=== VALIDACIÓN DE DATOS ===")
	fmt.Fprintf(w, "Total casos - Excel: %d, App: %d\n", s.TotalCasos, r.TotalCasos)
	fmt.Fprintf(w, "Fee total - Excel: %s, App: %s\n", money(s.FeeTotal), money(r.Fee))
	fmt.Fprintf(w, "Costo USD - Excel: %s, App: %s\n", money(s.CostoUsdTotal), money(r.CostoUsd))
	fmt.Fprintf(w, "Monto Agregado - Excel: %s, App: %s\n", money(s.MontoAgregadoTotal), money(r.MontoAgregado))
	fmt.Fprintf(w, "Total Completo - Excel: %s, App: %s\n", money(s.TotalCompleto), money(r.Total))
}

func writeDiscrepancies(w io.Writer, disc []reconcile.Discrepancy) {
	if len(disc) == 0 {
		fmt.Fprintln(w, "\n✅ No se encontraron discrepancias significativas")
		return
	}
	fmt.Fprintln(w, "\n⚠️ DISCREPANCIAS ENCONTRADAS:")
	for _, d := range disc {
		fmt.Fprintf(w, "  - %s\n", d)
	}
}

// writeDetail is informational only; nothing here is checked against tolerance.
func writeDetail(w io.Writer, r reconcile.Result, s baseline.Snapshot) {
	fmt.Fprintln(w, "\n=== DETALLE (informativo) ===")
	fmt.Fprintf(w, "Casos con fee - Excel: %d, App: %d\n", s.CasosConFee, r.CasosConFee)
	fmt.Fprintf(w, "Casos con costo USD - Excel: %d, App: %d\n", s.CasosConCostoUsd, r.CasosConCostoUsd)
	fmt.Fprintf(w, "Casos con monto agregado - Excel: %d, App: %d\n", s.CasosConMonto, r.CasosConMonto)
	for _, code := range reconcile.Currencies(r, s) {
		want := s.Monedas[code]
		got := r.Monedas[code]
		fmt.Fprintf(w, "Moneda %s - Excel: %s (%d casos), App: %s (%d casos)\n",
			code, money(want.Suma), want.Casos, money(got.Suma), got.Casos)
	}
}
