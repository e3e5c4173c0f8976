package caso

import "github.com/shopspring/decimal"

// Caso is one case record as returned by GET /api/casos.
// Only the fields used by the validator are modeled. Amounts are nullable:
// a missing key and an explicit null both decode to an invalid NullDecimal.
// The application serialises database decimals as strings, which
// NullDecimal accepts as well as plain JSON numbers.
type Caso struct {
	ID                 int                 `json:"id,omitempty"`
	NroCasoAssistravel string              `json:"nroCasoAssistravel,omitempty"`
	Fee                decimal.NullDecimal `json:"fee"`
	CostoUsd           decimal.NullDecimal `json:"costoUsd"`
	CostoMonedaLocal   decimal.NullDecimal `json:"costoMonedaLocal"`
	SimboloMoneda      *string             `json:"simboloMoneda"`
	MontoAgregado      decimal.NullDecimal `json:"montoAgregado"`
}

// Amount returns the value of d, or zero when it is absent or null.
func Amount(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// Currency returns the currency symbol of the case, empty when unset.
func (c Caso) Currency() string {
	if c.SimboloMoneda == nil {
		return ""
	}
	return *c.SimboloMoneda
}
