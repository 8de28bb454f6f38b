package engine

import (
	"math"

	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/alejandrodnm/venicebot/internal/liquidity"
)

// ViabilityConfig son los umbrales de liquidez que un pool debe cumplir
// para participar en un path al tamaño de trade corriente.
type ViabilityConfig struct {
	MinLiquidityUSD  float64
	MaxTradeFraction float64 // default liquidity.DefaultMaxTradeFraction
}

// Evaluator calcula el resultado neto de un path dado un snapshot.
// Es puro: no muta el snapshot ni el índice.
type Evaluator struct {
	index      *liquidity.Index
	costs      domain.CostModel
	collateral domain.Token // token cuyo precio fija el coste de minteo (VVV)
	viability  ViabilityConfig
}

// NewEvaluator crea un Evaluator. El cost model y los umbrales se fijan
// por run — no varían entre ticks.
func NewEvaluator(index *liquidity.Index, costs domain.CostModel, collateral domain.Token, viability ViabilityConfig) *Evaluator {
	if collateral == "" {
		collateral = domain.VVV
	}
	return &Evaluator{index: index, costs: costs, collateral: collateral, viability: viability}
}

// Evaluate recorre el path hop a hop convirtiendo el monto corriente al
// rate efectivo de cada hop y acumulando costes. ok=false significa
// infeasible: precio o mint rate a cero, pool sin registrar, o pool sin
// liquidez viable para el monto corriente. Infeasible no es un error —
// el caller simplemente excluye el path de la selección.
//
// Un beneficio neto negativo es un resultado válido y esperado: señala
// "no ejecutar", no una falla de evaluación.
func (e *Evaluator) Evaluate(path domain.Path, snap domain.MarketSnapshot, startAmountUSD float64) (domain.EvaluationResult, bool) {
	if startAmountUSD <= 0 || !path.Valid() {
		return domain.EvaluationResult{}, false
	}

	amount := startAmountUSD
	totalCost := 0.0

	for _, hop := range path.Hops {
		totalCost += e.costs.HopCost(hop.Kind)

		switch hop.Kind {
		case domain.HopSwap:
			priceIn, okIn := snap.Price(hop.In)
			priceOut, okOut := snap.Price(hop.Out)
			if !okIn || !okOut || priceIn <= 0 || priceOut <= 0 {
				return domain.EvaluationResult{}, false
			}

			pool, ok := e.poolFor(hop)
			if !ok {
				return domain.EvaluationResult{}, false
			}
			if !liquidity.IsViable(pool, amount, e.viability.MinLiquidityUSD, e.viability.MaxTradeFraction) {
				return domain.EvaluationResult{}, false
			}

			amount = amount / priceIn * priceOut

		case domain.HopMint:
			collateralPrice, ok := snap.Price(e.collateral)
			if !ok || collateralPrice <= 0 || snap.MintRate <= 0 {
				return domain.EvaluationResult{}, false
			}
			// Monto en unidades del derivado: USD / (rate × precio colateral).
			amount = amount / (snap.MintRate * collateralPrice)

		case domain.HopBurn:
			sellPrice, ok := snap.Price(hop.In)
			if !ok || sellPrice <= 0 {
				return domain.EvaluationResult{}, false
			}
			amount = amount * sellPrice
		}
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return domain.EvaluationResult{}, false
	}

	net := amount - startAmountUSD - totalCost
	return domain.EvaluationResult{
		Path:           path,
		StartAmountUSD: startAmountUSD,
		EndAmountUSD:   amount,
		TotalCostUSD:   totalCost,
		NetProfitUSD:   net,
		ProfitPct:      net / startAmountUSD,
	}, true
}

// EvaluateAll evalúa todos los paths y devuelve los feasible, en el mismo
// orden de entrada.
func (e *Evaluator) EvaluateAll(paths []domain.Path, snap domain.MarketSnapshot, startAmountUSD float64) []domain.EvaluationResult {
	results := make([]domain.EvaluationResult, 0, len(paths))
	for _, p := range paths {
		if r, ok := e.Evaluate(p, snap, startAmountUSD); ok {
			results = append(results, r)
		}
	}
	return results
}

// poolFor devuelve el pool del hop: el capturado en la enumeración, o el
// mejor actual del índice si el hop no lo trae.
func (e *Evaluator) poolFor(hop domain.Hop) (domain.Pool, bool) {
	if hop.Pool != nil {
		return *hop.Pool, true
	}
	return e.index.BestPool(hop.In, hop.Out)
}
