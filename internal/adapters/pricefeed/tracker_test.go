package pricefeed_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alejandrodnm/venicebot/internal/adapters/pricefeed"
	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	name   string
	prices map[domain.Token]float64
	err    error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Price(_ context.Context, tok domain.Token) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	p, ok := f.prices[tok]
	if !ok {
		return 0, errors.New("unknown token")
	}
	return p, nil
}

func mintRateServer(t *testing.T, rate float64) *pricefeed.MintRateClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"mint_rate": %g}`, rate)
	}))
	t.Cleanup(srv.Close)
	return pricefeed.NewMintRateClient(srv.URL)
}

func universe() []domain.Token {
	return []domain.Token{domain.USDC, domain.VVV, domain.DIEM}
}

func TestTracker_FetchSnapshot_MedianAcrossSources(t *testing.T) {
	sources := []pricefeed.Source{
		&fakeSource{name: "a", prices: map[domain.Token]float64{domain.VVV: 3.00, domain.DIEM: 380}},
		&fakeSource{name: "b", prices: map[domain.Token]float64{domain.VVV: 3.10, domain.DIEM: 381}},
		&fakeSource{name: "c", prices: map[domain.Token]float64{domain.VVV: 3.02, domain.DIEM: 390}},
	}
	tr := pricefeed.NewTracker(sources, mintRateServer(t, 312.5), universe())

	snap, err := tr.FetchSnapshot(context.Background())
	require.NoError(t, err)

	vvv, ok := snap.Price(domain.VVV)
	require.True(t, ok)
	assert.Equal(t, 3.02, vvv, "mediana de 3.00/3.10/3.02")

	diem, _ := snap.Price(domain.DIEM)
	assert.Equal(t, 381.0, diem)
	assert.Equal(t, 312.5, snap.MintRate)
}

func TestTracker_FetchSnapshot_USDCPinnedToOne(t *testing.T) {
	// Ninguna fuente cotiza USDC: se fija a $1.
	sources := []pricefeed.Source{
		&fakeSource{name: "a", prices: map[domain.Token]float64{domain.VVV: 3.01}},
	}
	tr := pricefeed.NewTracker(sources, mintRateServer(t, 90), universe())

	snap, err := tr.FetchSnapshot(context.Background())
	require.NoError(t, err)

	usdc, ok := snap.Price(domain.USDC)
	require.True(t, ok)
	assert.Equal(t, 1.0, usdc)

	// DIEM sin fuente simplemente no aparece en el snapshot.
	_, ok = snap.Price(domain.DIEM)
	assert.False(t, ok)
}

func TestTracker_FetchSnapshot_ToleratesFailedSource(t *testing.T) {
	sources := []pricefeed.Source{
		&fakeSource{name: "down", err: errors.New("timeout")},
		&fakeSource{name: "up", prices: map[domain.Token]float64{domain.VVV: 3.01, domain.DIEM: 381.48}},
	}
	tr := pricefeed.NewTracker(sources, mintRateServer(t, 90), universe())

	snap, err := tr.FetchSnapshot(context.Background())
	require.NoError(t, err)

	vvv, ok := snap.Price(domain.VVV)
	require.True(t, ok)
	assert.Equal(t, 3.01, vvv)
}

func TestTracker_FetchVenuePrices(t *testing.T) {
	sources := []pricefeed.Source{
		&fakeSource{name: "a", prices: map[domain.Token]float64{domain.DIEM: 380}},
		&fakeSource{name: "b", prices: map[domain.Token]float64{domain.DIEM: 390}},
		&fakeSource{name: "down", err: errors.New("timeout")},
	}
	tr := pricefeed.NewTracker(sources, mintRateServer(t, 90), universe())

	prices, err := tr.FetchVenuePrices(context.Background(), domain.DIEM)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 380, "b": 390}, prices)

	_, err = tr.FetchVenuePrices(context.Background(), domain.VVV)
	assert.Error(t, err)
}

func TestMintRateClient_FallbackToCurveEstimate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := pricefeed.NewMintRateClient(srv.URL)
	rate, estimated := client.Current(context.Background())

	assert.True(t, estimated)
	assert.InDelta(t, domain.EstimateMintRate(0), rate, 0.0001)
}

func TestMintRateClient_ZeroRateFallsBack(t *testing.T) {
	client := mintRateServer(t, 0)
	rate, estimated := client.Current(context.Background())

	assert.True(t, estimated)
	assert.Greater(t, rate, 0.0)
}
