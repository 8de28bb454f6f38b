package engine

import (
	"sort"

	"github.com/alejandrodnm/venicebot/internal/domain"
)

// Rank ordena los resultados por ProfitPct descendente; empates por menor
// TotalCostUSD, y en último término conserva el orden de enumeración
// (sort estable sobre un orden de entrada determinista). No muta el slice
// de entrada.
func Rank(results []domain.EvaluationResult) []domain.EvaluationResult {
	ranked := make([]domain.EvaluationResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ProfitPct != ranked[j].ProfitPct {
			return ranked[i].ProfitPct > ranked[j].ProfitPct
		}
		return ranked[i].TotalCostUSD < ranked[j].TotalCostUSD
	})
	return ranked
}

// SelectBest devuelve el mejor resultado del conjunto. ok=false con lista
// vacía (todos los paths infeasible) — el caller lo trata como "sin
// oportunidad este tick", que es el estado normal de este mercado.
func SelectBest(results []domain.EvaluationResult) (domain.EvaluationResult, bool) {
	if len(results) == 0 {
		return domain.EvaluationResult{}, false
	}
	return Rank(results)[0], true
}
