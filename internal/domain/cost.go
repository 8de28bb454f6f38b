package domain

// CostModel es el modelo de costes de transacción, fijo durante una
// evaluación o backtest. El caller lo construye una vez al arrancar y lo
// pasa por referencia — no hay defaults globales a nivel de proceso.
type CostModel struct {
	// PerHopCostUSD es el coste fijo por hop (gas + fees aproximados).
	PerHopCostUSD float64
	// MintCostMultiplier encarece los hops mint/burn respecto a un swap.
	// Siempre ≥ 1: mintear implica stakear colateral y una tx adicional.
	MintCostMultiplier float64
}

// DefaultCostModel devuelve el modelo conservador usado en producción.
func DefaultCostModel() CostModel {
	return CostModel{PerHopCostUSD: 5, MintCostMultiplier: 1.5}
}

// HopCost devuelve el coste USD de un hop según su tipo.
func (m CostModel) HopCost(kind HopKind) float64 {
	if kind == HopMint || kind == HopBurn {
		return m.PerHopCostUSD * m.MintCostMultiplier
	}
	return m.PerHopCostUSD
}
