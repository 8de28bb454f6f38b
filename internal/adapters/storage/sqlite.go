package storage

// sqlite.go — histórico de precios y audit trail de trades en SQLite.
//
// Estrategia:
//   - `snapshots`: una fila por tick (timestamp + mint rate).
//   - `snapshot_prices`: una fila por token y tick.
//   - `trades`: audit trail append-only del paper ledger. Nunca se
//     reescribe ni se borra una fila de trades.
//   - Prune automático al arrancar: snapshots > 90 días. Los trades no se
//     podan — son el registro contable de la simulación.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/venicebot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Un snapshot por tick de monitoreo
CREATE TABLE IF NOT EXISTS snapshots (
    ts        TEXT PRIMARY KEY,
    mint_rate REAL NOT NULL
);

-- Precio de cada token del universo en cada tick
CREATE TABLE IF NOT EXISTS snapshot_prices (
    ts    TEXT NOT NULL,
    token TEXT NOT NULL,
    price REAL NOT NULL,
    PRIMARY KEY (ts, token)
);

-- Audit trail de trades simulados
CREATE TABLE IF NOT EXISTS trades (
    id             TEXT PRIMARY KEY,
    ts             TEXT NOT NULL,
    path           TEXT NOT NULL,
    start_amount   REAL NOT NULL,
    end_amount     REAL NOT NULL,
    total_cost     REAL NOT NULL,
    net_profit     REAL NOT NULL,
    profit_pct     REAL NOT NULL,
    capital_before REAL NOT NULL,
    capital_after  REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_prices_token ON snapshot_prices(token, ts DESC);
CREATE INDEX IF NOT EXISTS idx_trades_ts    ON trades(ts DESC);
`

const retentionSnapshots = 90 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada,
// aplica el schema y limpia snapshots antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveSnapshot persiste el snapshot completo de un tick en una transacción.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, snap domain.MarketSnapshot) error {
	ts := tsKey(snap.Timestamp)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveSnapshot: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (ts, mint_rate) VALUES (?, ?)`,
		ts, snap.MintRate,
	); err != nil {
		return fmt.Errorf("storage.SaveSnapshot: insert snapshot: %w", err)
	}

	for _, tok := range snap.Tokens() {
		price, _ := snap.Price(tok)
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO snapshot_prices (ts, token, price) VALUES (?, ?, ?)`,
			ts, string(tok), price,
		); err != nil {
			return fmt.Errorf("storage.SaveSnapshot: insert price %s: %w", tok, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveSnapshot: commit: %w", err)
	}
	return nil
}

// SaveTrade persiste un registro del audit trail.
func (s *SQLiteStorage) SaveTrade(ctx context.Context, rec domain.TradeRecord) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO trades
			(id, ts, path, start_amount, end_amount, total_cost,
			 net_profit, profit_pct, capital_before, capital_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		tsKey(rec.Timestamp),
		rec.Result.Path.Key(),
		rec.Result.StartAmountUSD,
		rec.Result.EndAmountUSD,
		rec.Result.TotalCostUSD,
		rec.Result.NetProfitUSD,
		rec.Result.ProfitPct,
		rec.CapitalBefore,
		rec.CapitalAfter,
	); err != nil {
		return fmt.Errorf("storage.SaveTrade: insert %s: %w", rec.ID, err)
	}
	return nil
}

// GetSnapshotHistory devuelve los snapshots del rango ordenados por
// timestamp ascendente — el orden que exige el backtester.
func (s *SQLiteStorage) GetSnapshotHistory(ctx context.Context, from, to time.Time) ([]domain.MarketSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.ts, s.mint_rate, p.token, p.price
		FROM snapshots s
		JOIN snapshot_prices p ON p.ts = s.ts
		WHERE s.ts BETWEEN ? AND ?
		ORDER BY s.ts ASC, p.token ASC
	`, tsKey(from), tsKey(to))
	if err != nil {
		return nil, fmt.Errorf("storage.GetSnapshotHistory: query: %w", err)
	}
	defer rows.Close()

	var (
		out     []domain.MarketSnapshot
		curTS   string
		curRate float64
		curPxs  map[domain.Token]float64
	)
	flush := func() error {
		if curPxs == nil {
			return nil
		}
		ts, err := time.Parse(time.RFC3339, curTS)
		if err != nil {
			return fmt.Errorf("storage.GetSnapshotHistory: parse ts %q: %w", curTS, err)
		}
		out = append(out, domain.NewSnapshot(ts, curPxs, curRate))
		curPxs = nil
		return nil
	}

	for rows.Next() {
		var (
			ts    string
			rate  float64
			token string
			price float64
		)
		if err := rows.Scan(&ts, &rate, &token, &price); err != nil {
			return nil, fmt.Errorf("storage.GetSnapshotHistory: scan row: %w", err)
		}
		if ts != curTS {
			if err := flush(); err != nil {
				return nil, err
			}
			curTS, curRate = ts, rate
			curPxs = make(map[domain.Token]float64)
		}
		curPxs[domain.Token(token)] = price
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, rows.Err()
}

// GetPriceHistory devuelve los precios del token de los últimos `days`
// días, más reciente primero — el orden que espera el análisis de señales.
func (s *SQLiteStorage) GetPriceHistory(ctx context.Context, tok domain.Token, days int) ([]float64, error) {
	cutoff := tsKey(time.Now().UTC().AddDate(0, 0, -days))

	rows, err := s.db.QueryContext(ctx, `
		SELECT price FROM snapshot_prices
		WHERE token = ? AND ts >= ?
		ORDER BY ts DESC
	`, string(tok), cutoff)
	if err != nil {
		return nil, fmt.Errorf("storage.GetPriceHistory: query: %w", err)
	}
	defer rows.Close()

	var prices []float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage.GetPriceHistory: scan row: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina snapshots antiguos para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := tsKey(time.Now().UTC().Add(-retentionSnapshots))
	s.db.ExecContext(ctx, `DELETE FROM snapshot_prices WHERE ts < ?`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE ts < ?`, cutoff)
}

// tsKey normaliza timestamps a UTC RFC3339: comparable lexicográficamente
// en SQL y estable en round-trips.
func tsKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
