package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/venicebot/internal/domain"
)

// Storage persiste el histórico de precios y el audit trail de trades.
type Storage interface {
	// SaveSnapshot persiste los precios y el mint rate del tick.
	SaveSnapshot(ctx context.Context, snap domain.MarketSnapshot) error

	// SaveTrade persiste un trade simulado del paper ledger.
	SaveTrade(ctx context.Context, record domain.TradeRecord) error

	// GetSnapshotHistory devuelve los snapshots persistidos en el rango,
	// ordenados por timestamp ascendente — listos para el backtester.
	GetSnapshotHistory(ctx context.Context, from, to time.Time) ([]domain.MarketSnapshot, error)

	// GetPriceHistory devuelve los precios del token de los últimos días,
	// más reciente primero — el orden que espera el análisis de señales.
	GetPriceHistory(ctx context.Context, tok domain.Token, days int) ([]float64, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
