package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/venicebot/internal/adapters/storage"
	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSnapshot(ts time.Time, vvv, diem, mintRate float64) domain.MarketSnapshot {
	return domain.NewSnapshot(ts, map[domain.Token]float64{
		domain.USDC: 1.0,
		domain.VVV:  vvv,
		domain.DIEM: diem,
	}, mintRate)
}

func TestSQLiteStorage_SnapshotRoundTrip(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// Guardados fuera de orden a propósito.
	require.NoError(t, db.SaveSnapshot(ctx, makeSnapshot(base.Add(time.Hour), 3.05, 380, 92)))
	require.NoError(t, db.SaveSnapshot(ctx, makeSnapshot(base, 3.01, 381.48, 90)))

	history, err := db.GetSnapshotHistory(ctx, base.Add(-time.Minute), base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Ordenados por timestamp ascendente
	assert.Equal(t, base, history[0].Timestamp)
	assert.Equal(t, 90.0, history[0].MintRate)
	assert.Equal(t, base.Add(time.Hour), history[1].Timestamp)

	price, ok := history[0].Price(domain.DIEM)
	require.True(t, ok)
	assert.Equal(t, 381.48, price)
}

func TestSQLiteStorage_SnapshotUpsert(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.SaveSnapshot(ctx, makeSnapshot(ts, 3.01, 381.48, 90)))
	require.NoError(t, db.SaveSnapshot(ctx, makeSnapshot(ts, 3.10, 385, 95)))

	history, err := db.GetSnapshotHistory(ctx, ts.Add(-time.Minute), ts.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, history, 1, "mismo ts reemplaza, no duplica")
	assert.Equal(t, 95.0, history[0].MintRate)
}

func TestSQLiteStorage_EmptyRange(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	history, err := db.GetSnapshotHistory(context.Background(),
		time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSQLiteStorage_PriceHistoryMostRecentFirst(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	base := time.Now().UTC().Add(-3 * time.Hour).Truncate(time.Second)

	for i, p := range []float64{3.00, 3.10, 3.20} {
		snap := makeSnapshot(base.Add(time.Duration(i)*time.Hour), p, 381.48, 90)
		require.NoError(t, db.SaveSnapshot(ctx, snap))
	}

	prices, err := db.GetPriceHistory(ctx, domain.VVV, 7)
	require.NoError(t, err)
	assert.Equal(t, []float64{3.20, 3.10, 3.00}, prices)
}

func TestSQLiteStorage_SaveTrade(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	rec := domain.TradeRecord{
		ID:        "trade-1",
		Timestamp: time.Now().UTC(),
		Result: domain.EvaluationResult{
			Path: domain.Path{Hops: []domain.Hop{
				domain.MintHop(domain.USDC, domain.DIEM),
				domain.BurnHop(domain.DIEM, domain.USDC),
			}},
			StartAmountUSD: 1000,
			EndAmountUSD:   1408.19,
			TotalCostUSD:   15,
			NetProfitUSD:   393.19,
			ProfitPct:      0.39319,
		},
		CapitalBefore: 1000,
		CapitalAfter:  1393.19,
	}
	require.NoError(t, db.SaveTrade(context.Background(), rec))

	// El id es primary key: reinsertar el mismo trade falla.
	assert.Error(t, db.SaveTrade(context.Background(), rec))
}
