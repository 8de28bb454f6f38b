package ports

import (
	"context"

	"github.com/alejandrodnm/venicebot/internal/domain"
)

// PriceProvider obtiene un MarketSnapshot por tick desde las fuentes de
// precios externas (CoinGecko, CoinMarketCap, endpoint de mint rate).
type PriceProvider interface {
	// FetchSnapshot agrega los precios de todas las fuentes configuradas
	// (mediana entre fuentes para descartar outliers) y el mint rate
	// actual, y construye el snapshot del tick.
	FetchSnapshot(ctx context.Context) (domain.MarketSnapshot, error)

	// FetchVenuePrices devuelve el precio del token en cada venue por
	// separado, para la detección de spreads cross-venue.
	FetchVenuePrices(ctx context.Context, tok domain.Token) (map[string]float64, error)
}

// PoolProvider descubre pools de liquidez para registrar en el índice.
// Se refresca periódicamente; los pools devueltos reemplazan al mejor
// conocido de cada par según el criterio del índice.
type PoolProvider interface {
	FetchPools(ctx context.Context) ([]domain.Pool, error)
}
