package engine

import (
	"testing"
	"time"

	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/alejandrodnm/venicebot/internal/liquidity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(vvv, diem, mintRate float64) domain.MarketSnapshot {
	return domain.NewSnapshot(time.Now().UTC(), map[domain.Token]float64{
		domain.USDC: 1.0,
		domain.VVV:  vvv,
		domain.DIEM: diem,
	}, mintRate)
}

func testMintPath() domain.Path {
	return domain.Path{Hops: []domain.Hop{
		domain.MintHop(domain.USDC, domain.DIEM),
		domain.BurnHop(domain.DIEM, domain.USDC),
	}}
}

func testEvaluator(ix *liquidity.Index) *Evaluator {
	return NewEvaluator(ix, domain.DefaultCostModel(), domain.VVV, ViabilityConfig{})
}

func TestEvaluate_MintPath_InflatedRateLosesMoney(t *testing.T) {
	// Rate de 312.5 con VVV a $3.01: mintear cuesta $940 y DIEM vende a $381.
	eval := testEvaluator(liquidity.NewIndex())
	snap := testSnapshot(3.01, 381.48, 312.5)

	r, ok := eval.Evaluate(testMintPath(), snap, 1000)
	require.True(t, ok, "un path con pérdida sigue siendo feasible")

	assert.InDelta(t, 405.56, r.EndAmountUSD, 0.01)
	assert.Equal(t, 15.0, r.TotalCostUSD) // 2 hops × $5 × 1.5
	assert.InDelta(t, -609.44, r.NetProfitUSD, 0.01)
	assert.InDelta(t, -0.6094, r.ProfitPct, 0.0001)
	assert.False(t, r.Profitable())
}

func TestEvaluate_MintPath_BaseRateIsProfitable(t *testing.T) {
	eval := testEvaluator(liquidity.NewIndex())
	snap := testSnapshot(3.01, 381.48, 90)

	r, ok := eval.Evaluate(testMintPath(), snap, 1000)
	require.True(t, ok)

	assert.InDelta(t, 1408.19, r.EndAmountUSD, 0.01)
	assert.InDelta(t, 393.19, r.NetProfitUSD, 0.01)
	assert.InDelta(t, 0.3932, r.ProfitPct, 0.0001)
	assert.True(t, r.Profitable())
}

func TestEvaluate_ZeroPriceIsInfeasible(t *testing.T) {
	eval := testEvaluator(liquidity.NewIndex())

	_, ok := eval.Evaluate(testMintPath(), testSnapshot(0, 381.48, 90), 1000)
	assert.False(t, ok, "precio de colateral a cero")

	_, ok = eval.Evaluate(testMintPath(), testSnapshot(3.01, 0, 90), 1000)
	assert.False(t, ok, "precio de venta a cero")

	_, ok = eval.Evaluate(testMintPath(), testSnapshot(3.01, 381.48, 0), 1000)
	assert.False(t, ok, "mint rate a cero")
}

func TestEvaluate_InvalidInputs(t *testing.T) {
	eval := testEvaluator(liquidity.NewIndex())
	snap := testSnapshot(3.01, 381.48, 90)

	_, ok := eval.Evaluate(testMintPath(), snap, 0)
	assert.False(t, ok)

	_, ok = eval.Evaluate(domain.Path{}, snap, 1000)
	assert.False(t, ok)
}

func TestEvaluate_SwapPath_RoundTrip(t *testing.T) {
	ix := liquidity.NewIndex()
	ix.Register(domain.Pool{
		Venue: "aerodrome", TokenA: domain.USDC, TokenB: domain.VVV,
		LiquidityUSD: 500000,
	})
	eval := testEvaluator(ix)
	snap := testSnapshot(3.01, 381.48, 90)

	pool, _ := ix.BestPool(domain.USDC, domain.VVV)
	path := domain.Path{Hops: []domain.Hop{
		domain.SwapHop(&pool, domain.USDC, domain.VVV),
		domain.SwapHop(&pool, domain.VVV, domain.USDC),
	}}

	r, ok := eval.Evaluate(path, snap, 1000)
	require.True(t, ok)

	// Ida y vuelta al mismo precio: solo se pierden los costes.
	assert.InDelta(t, 1000, r.EndAmountUSD, 0.001)
	assert.InDelta(t, -10, r.NetProfitUSD, 0.001)
}

func TestEvaluate_SwapPath_PoolNotViable(t *testing.T) {
	ix := liquidity.NewIndex()
	ix.Register(domain.Pool{
		Venue: "shallow", TokenA: domain.USDC, TokenB: domain.VVV,
		LiquidityUSD: 10000, // 5% cap → máximo $500 por trade
	})
	eval := testEvaluator(ix)
	snap := testSnapshot(3.01, 381.48, 90)

	pool, _ := ix.BestPool(domain.USDC, domain.VVV)
	path := domain.Path{Hops: []domain.Hop{
		domain.SwapHop(&pool, domain.USDC, domain.VVV),
		domain.SwapHop(&pool, domain.VVV, domain.USDC),
	}}

	_, ok := eval.Evaluate(path, snap, 1000)
	assert.False(t, ok)

	// Un monto pequeño pasa el cap del 5% en ambos hops.
	_, ok = eval.Evaluate(path, snap, 150)
	assert.True(t, ok)
}

func TestEvaluate_SwapPath_MissingPool(t *testing.T) {
	eval := testEvaluator(liquidity.NewIndex())
	snap := testSnapshot(3.01, 381.48, 90)

	// Hop sin pool capturado y sin par en el índice.
	path := domain.Path{Hops: []domain.Hop{
		domain.SwapHop(nil, domain.USDC, domain.VVV),
		domain.SwapHop(nil, domain.VVV, domain.USDC),
	}}

	_, ok := eval.Evaluate(path, snap, 1000)
	assert.False(t, ok)
}

func TestEvaluateAll_SkipsInfeasible(t *testing.T) {
	eval := testEvaluator(liquidity.NewIndex())
	snap := testSnapshot(3.01, 381.48, 90)

	badSwap := domain.Path{Hops: []domain.Hop{
		domain.SwapHop(nil, domain.USDC, domain.VVV),
		domain.SwapHop(nil, domain.VVV, domain.USDC),
	}}
	results := eval.EvaluateAll([]domain.Path{testMintPath(), badSwap}, snap, 1000)

	require.Len(t, results, 1)
	assert.Equal(t, "USDC>mint:DIEM>burn:USDC", results[0].Path.Key())
}
