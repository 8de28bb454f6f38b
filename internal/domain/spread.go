package domain

// spread.go — análisis del spread mint-vs-mercado de DIEM.
//
// El mecanismo de Venice permite mintear 1 DIEM quemando mint_rate sVVV.
// El coste en USD de mintear es mint_rate × precio(VVV). Si el precio de
// mercado de DIEM supera ese coste, el ciclo mint → sell deja spread.

// Recommendation es el veredicto del análisis de spread.
type Recommendation string

const (
	RecommendMintSell Recommendation = "MINT & SELL"
	RecommendMonitor  Recommendation = "MONITOR"
	RecommendHoldVVV  Recommendation = "HOLD VVV"
)

// Confidence califica la fiabilidad de la recomendación.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// SpreadAnalysis es el análisis completo del arbitraje de minteo.
type SpreadAnalysis struct {
	MintRate         float64
	MintCostUSD      float64 // coste de mintear 1 DIEM
	MarketPriceUSD   float64 // precio de mercado de DIEM
	SpreadUSD        float64 // MarketPriceUSD - MintCostUSD
	SpreadPct        float64 // SpreadUSD / MintCostUSD × 100
	Profitable       bool    // SpreadPct ≥ minProfitPct
	Recommendation   Recommendation
	Confidence       Confidence
	EstProfitPerDIEM float64 // max(0, SpreadUSD)
}

// MintCostUSD devuelve el coste en USD de mintear 1 unidad del derivado.
func MintCostUSD(mintRate, collateralPriceUSD float64) float64 {
	return mintRate * collateralPriceUSD
}

// AnalyzeMintSpread analiza el spread mint-vs-mercado de un snapshot.
// ok=false si faltan precios o el coste de minteo es cero (no hay análisis
// posible, no es un error fatal).
func AnalyzeMintSpread(snap MarketSnapshot, minProfitPct float64) (SpreadAnalysis, bool) {
	vvvPrice, okVVV := snap.Price(VVV)
	diemPrice, okDIEM := snap.Price(DIEM)
	if !okVVV || !okDIEM {
		return SpreadAnalysis{}, false
	}

	mintCost := MintCostUSD(snap.MintRate, vvvPrice)
	if mintCost <= 0 {
		return SpreadAnalysis{}, false
	}

	spreadUSD := diemPrice - mintCost
	spreadPct := spreadUSD / mintCost * 100

	a := SpreadAnalysis{
		MintRate:       snap.MintRate,
		MintCostUSD:    mintCost,
		MarketPriceUSD: diemPrice,
		SpreadUSD:      spreadUSD,
		SpreadPct:      spreadPct,
		Profitable:     spreadPct >= minProfitPct,
	}
	if spreadUSD > 0 {
		a.EstProfitPerDIEM = spreadUSD
	}

	switch {
	case a.Profitable:
		a.Recommendation = RecommendMintSell
		a.Confidence = ConfidenceMedium
		if spreadPct > 10 {
			a.Confidence = ConfidenceHigh
		}
	case spreadPct < 0:
		a.Recommendation = RecommendHoldVVV
		a.Confidence = ConfidenceHigh
	default:
		a.Recommendation = RecommendMonitor
		a.Confidence = ConfidenceLow
	}
	return a, true
}

// ShouldAlert decide si el spread merece una notificación: oportunidades
// rentables siempre, y spreads extremadamente negativos porque suelen
// indicar un error de datos en alguna fuente de precios.
func (a SpreadAnalysis) ShouldAlert() bool {
	return a.Profitable || a.SpreadPct < -75
}
