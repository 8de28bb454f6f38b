package pricefeed

// tracker.go — agregación de precios entre fuentes.
//
// Cada token se consulta en todas las fuentes configuradas y se toma la
// MEDIANA de las respuestas válidas: una fuente con datos corruptos no
// arrastra el snapshot. USDC se fija a $1 si ninguna fuente lo devuelve.

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alejandrodnm/venicebot/internal/domain"
)

// Source es una fuente de precios individual (CoinGecko, CoinMarketCap...).
type Source interface {
	Name() string
	Price(ctx context.Context, tok domain.Token) (float64, error)
}

// Tracker agrega fuentes de precios y el mint rate en MarketSnapshots.
// Implementa ports.PriceProvider.
type Tracker struct {
	sources  []Source
	mintRate *MintRateClient
	universe []domain.Token
}

// NewTracker crea el agregador. Requiere al menos una fuente.
func NewTracker(sources []Source, mintRate *MintRateClient, universe []domain.Token) *Tracker {
	return &Tracker{sources: sources, mintRate: mintRate, universe: universe}
}

// FetchSnapshot consulta todas las fuentes y construye el snapshot del tick.
// Falla solo si ningún token del universo obtuvo precio — fuentes caídas
// individuales se toleran.
func (t *Tracker) FetchSnapshot(ctx context.Context) (domain.MarketSnapshot, error) {
	prices := make(map[domain.Token]float64, len(t.universe))

	for _, tok := range t.universe {
		price, ok := t.aggregatedPrice(ctx, tok)
		if !ok {
			if tok == domain.USDC {
				prices[tok] = 1.0 // unidad base estable
				continue
			}
			slog.Warn("no price for token this tick", "token", tok)
			continue
		}
		prices[tok] = price
	}

	if len(prices) == 0 {
		return domain.MarketSnapshot{}, fmt.Errorf("pricefeed.FetchSnapshot: all sources failed for all tokens")
	}

	rate, estimated := t.mintRate.Current(ctx)
	if estimated {
		slog.Debug("using estimated mint rate", "rate", rate)
	}

	return domain.NewSnapshot(time.Now().UTC(), prices, rate), nil
}

// FetchVenuePrices devuelve el precio del token por fuente, sin agregar.
func (t *Tracker) FetchVenuePrices(ctx context.Context, tok domain.Token) (map[string]float64, error) {
	out := make(map[string]float64, len(t.sources))
	for _, src := range t.sources {
		price, err := src.Price(ctx, tok)
		if err != nil {
			slog.Debug("venue price unavailable", "source", src.Name(), "token", tok, "err", err)
			continue
		}
		if price > 0 {
			out[src.Name()] = price
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("pricefeed.FetchVenuePrices: no source returned %s", tok)
	}
	return out, nil
}

// aggregatedPrice devuelve la mediana de los precios válidos entre fuentes.
func (t *Tracker) aggregatedPrice(ctx context.Context, tok domain.Token) (float64, bool) {
	var prices []float64
	for _, src := range t.sources {
		price, err := src.Price(ctx, tok)
		if err != nil {
			slog.Debug("source error", "source", src.Name(), "token", tok, "err", err)
			continue
		}
		if price > 0 {
			prices = append(prices, price)
		}
	}
	if len(prices) == 0 {
		return 0, false
	}
	return median(prices), true
}

// median sobre una copia — no reordena el slice del caller.
func median(vals []float64) float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)

	n := len(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}
