// Package tax computes Canadian sales tax breakdowns for transactions
// and invoices.
//
// Quebec transactions carry both the federal GST (TPS, 5%) and the
// provincial QST (TVQ, 9.975%). Out-of-province invoices use the
// harmonized rate (TVH, 13%), which is stored in the TPS column with
// the TVQ at zero.
package tax

import "github.com/shopspring/decimal"

// Regime selects which taxes apply to an amount.
type Regime string

const (
	// RegimeTPSTVQ applies both the federal and the Quebec tax.
	RegimeTPSTVQ Regime = "TPS_TVQ"
	// RegimeTVH applies the harmonized 13% rate only.
	RegimeTVH Regime = "TVH"
)

var (
	rateTPS = decimal.RequireFromString("0.05")
	rateTVQ = decimal.RequireFromString("0.09975")
	rateTVH = decimal.RequireFromString("0.13")
)

// Breakdown is the result of a tax computation.
type Breakdown struct {
	MontantHT decimal.Decimal `json:"montant_ht"`
	TPS       decimal.Decimal `json:"tps"`
	TVQ       decimal.Decimal `json:"tvq"`
	TotalTTC  decimal.Decimal `json:"total_ttc"`
}

// Compute calculates the tax components for a pre-tax amount.
//
// Each component is rounded to 2 decimal places before summing so that
// the stored amounts always reconcile with financial statements. When
// taxable is false, both taxes are zero and the total equals the
// pre-tax amount. Negative amounts propagate arithmetically.
func Compute(montantHT decimal.Decimal, taxable bool, regime Regime) Breakdown {
	montantHT = montantHT.Round(2)

	if !taxable {
		return Breakdown{
			MontantHT: montantHT,
			TPS:       decimal.Zero,
			TVQ:       decimal.Zero,
			TotalTTC:  montantHT,
		}
	}

	if regime == RegimeTVH {
		tvh := montantHT.Mul(rateTVH).Round(2)
		return Breakdown{
			MontantHT: montantHT,
			TPS:       tvh,
			TVQ:       decimal.Zero,
			TotalTTC:  montantHT.Add(tvh).Round(2),
		}
	}

	tps := montantHT.Mul(rateTPS).Round(2)
	tvq := montantHT.Mul(rateTVQ).Round(2)

	return Breakdown{
		MontantHT: montantHT,
		TPS:       tps,
		TVQ:       tvq,
		TotalTTC:  montantHT.Add(tps).Add(tvq).Round(2),
	}
}

// Reconcile recomputes the total from already known components.
//
// It is used for full record updates where the caller supplies the tax
// amounts: a non-taxable record gets its taxes zeroed, a taxable one
// keeps the supplied taxes and gets the total re-derived from them.
func Reconcile(montantHT, tps, tvq decimal.Decimal, taxable bool) Breakdown {
	montantHT = montantHT.Round(2)

	if !taxable {
		return Breakdown{
			MontantHT: montantHT,
			TPS:       decimal.Zero,
			TVQ:       decimal.Zero,
			TotalTTC:  montantHT,
		}
	}

	tps = tps.Round(2)
	tvq = tvq.Round(2)

	return Breakdown{
		MontantHT: montantHT,
		TPS:       tps,
		TVQ:       tvq,
		TotalTTC:  montantHT.Add(tps).Add(tvq).Round(2),
	}
}
