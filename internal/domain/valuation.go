package domain

// valuation.go — valor intrínseco de DIEM vía DCF.
//
// DIEM da $1/día de crédito API a perpetuidad, así que su valor intrínseco
// es el de una perpetuidad: PV = cashflow anual / tasa de descuento.

const (
	DailyAPICreditUSD  = 1.0
	AnnualAPICreditUSD = 365.0
)

// BuySignal es el veredicto de valoración.
type BuySignal string

const (
	SignalStrongBuy BuySignal = "STRONG BUY"
	SignalBuy       BuySignal = "BUY"
	SignalHold      BuySignal = "HOLD"
	SignalAvoid     BuySignal = "AVOID"
)

// Valuation es el análisis de valoración completo de DIEM.
type Valuation struct {
	MarketPriceUSD float64
	DCFValue25     float64 // DCF al 25% (conservador)
	DCFValue50     float64 // DCF al 50% (agresivo)
	MintCostUSD    float64
	PaybackDays    float64 // días para recuperar la inversión vía créditos API
	PriceToDCF     float64 // MarketPriceUSD / DCFValue25
	PriceToMint    float64
	Undervalued    bool // precio < DCF conservador
	Signal         BuySignal
}

// DCFValue calcula el valor presente de la perpetuidad de créditos API.
// Tasas inválidas (≤ 0) caen al 25% por defecto.
func DCFValue(discountRate float64) float64 {
	if discountRate <= 0 {
		discountRate = 0.25
	}
	return AnnualAPICreditUSD / discountRate
}

// PaybackDays devuelve cuántos días de crédito API recuperan el precio pagado.
func PaybackDays(marketPriceUSD float64) float64 {
	return marketPriceUSD / DailyAPICreditUSD
}

// AnalyzeValuation cruza precio de mercado, coste de minteo y DCF.
func AnalyzeValuation(marketPriceUSD, collateralPriceUSD, mintRate float64) Valuation {
	dcf25 := DCFValue(0.25)
	dcf50 := DCFValue(0.50)
	mintCost := MintCostUSD(mintRate, collateralPriceUSD)
	payback := PaybackDays(marketPriceUSD)

	v := Valuation{
		MarketPriceUSD: marketPriceUSD,
		DCFValue25:     dcf25,
		DCFValue50:     dcf50,
		MintCostUSD:    mintCost,
		PaybackDays:    payback,
		PriceToDCF:     marketPriceUSD / dcf25,
	}
	if mintCost > 0 {
		v.PriceToMint = marketPriceUSD / mintCost
	}
	v.Undervalued = marketPriceUSD < dcf25

	switch {
	case v.Undervalued && v.PriceToDCF < 0.85:
		v.Signal = SignalStrongBuy
	case v.Undervalued:
		v.Signal = SignalBuy
	case payback < 300:
		v.Signal = SignalHold
	default:
		v.Signal = SignalAvoid
	}
	return v
}
