package baseline

import "github.com/shopspring/decimal"

// Snapshot holds the expected totals taken from the reference spreadsheet.
// It is built once per run and never modified.
type Snapshot struct {
	TotalCasos         int                      `yaml:"total_casos"`
	FeeTotal           decimal.Decimal          `yaml:"fee_total"`
	CostoUsdTotal      decimal.Decimal          `yaml:"costo_usd_total"`
	MontoAgregadoTotal decimal.Decimal          `yaml:"monto_agregado_total"`
	TotalCompleto      decimal.Decimal          `yaml:"total_completo"`
	CasosConFee        int                      `yaml:"casos_con_fee"`
	CasosConCostoUsd   int                      `yaml:"casos_con_costo_usd"`
	CasosConMonto      int                      `yaml:"casos_con_monto_agregado"`
	Monedas            map[string]CurrencyTotal `yaml:"monedas"`
}

// CurrencyTotal is the expected local-currency sum and case count for one currency.
type CurrencyTotal struct {
	Suma  decimal.Decimal `yaml:"suma"`
	Casos int             `yaml:"casos"`
}
