package engine

import (
	"testing"

	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(key string, profitPct, costUSD float64) domain.EvaluationResult {
	return domain.EvaluationResult{
		Path:         domain.Path{Hops: []domain.Hop{domain.MintHop(domain.Token(key), domain.DIEM)}},
		ProfitPct:    profitPct,
		TotalCostUSD: costUSD,
	}
}

func TestSelectBest_Empty(t *testing.T) {
	_, ok := SelectBest(nil)
	assert.False(t, ok)

	_, ok = SelectBest([]domain.EvaluationResult{})
	assert.False(t, ok)
}

func TestSelectBest_HighestProfitPct(t *testing.T) {
	best, ok := SelectBest([]domain.EvaluationResult{
		result("a", -0.10, 15),
		result("b", 0.05, 15),
		result("c", 0.02, 15),
	})
	require.True(t, ok)
	assert.Equal(t, 0.05, best.ProfitPct)
}

func TestSelectBest_SingleLosingPath(t *testing.T) {
	// Un único path con pérdida se devuelve igualmente: seleccionar no
	// es ejecutar.
	best, ok := SelectBest([]domain.EvaluationResult{result("a", -0.61, 15)})
	require.True(t, ok)
	assert.Less(t, best.ProfitPct, 0.0)
}

func TestRank_TieBreakByCost(t *testing.T) {
	ranked := Rank([]domain.EvaluationResult{
		result("caro", 0.05, 20),
		result("barato", 0.05, 10),
	})
	assert.Equal(t, 10.0, ranked[0].TotalCostUSD)
	assert.Equal(t, 20.0, ranked[1].TotalCostUSD)
}

func TestRank_FullTiePreservesInputOrder(t *testing.T) {
	a := result("a", 0.05, 15)
	b := result("b", 0.05, 15)
	ranked := Rank([]domain.EvaluationResult{a, b})

	assert.Equal(t, a.Path.Key(), ranked[0].Path.Key())
	assert.Equal(t, b.Path.Key(), ranked[1].Path.Key())
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []domain.EvaluationResult{
		result("a", -0.10, 15),
		result("b", 0.05, 15),
	}
	Rank(in)
	assert.Equal(t, -0.10, in[0].ProfitPct)
}
