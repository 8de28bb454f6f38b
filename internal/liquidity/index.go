// Package liquidity mantiene el mejor pool conocido por cada par de tokens.
package liquidity

import (
	"sync"

	"github.com/alejandrodnm/venicebot/internal/domain"
)

// DefaultMaxTradeFraction es la fracción máxima de la liquidez de un pool
// que un trade puede consumir sin slippage inaceptable. El modelo de
// slippage es una aproximación lineal, no una curva AMM verificada, así
// que el cap del 5% es deliberadamente conservador.
const DefaultMaxTradeFraction = 0.05

// pairKey es la clave no ordenada de un par de tokens.
type pairKey struct {
	lo, hi domain.Token
}

func keyFor(a, b domain.Token) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Index mapea pares de tokens al mejor pool conocido para ese par.
// Lo refresca un poller externo mientras el monitor lo consulta, así que
// todas las operaciones son seguras bajo un escritor / varios lectores.
type Index struct {
	mu    sync.RWMutex
	pools map[pairKey]domain.Pool
}

// NewIndex crea un índice vacío.
func NewIndex() *Index {
	return &Index{pools: make(map[pairKey]domain.Pool)}
}

// Register inserta o reemplaza el mejor pool del par. Criterio: máxima
// LiquidityUSD; empate por mayor Volume24hUSD; empate total conserva el
// primero registrado (orden determinista).
// Pools con TokenA == TokenB se ignoran.
func (ix *Index) Register(pool domain.Pool) {
	if pool.TokenA == pool.TokenB {
		return
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	key := keyFor(pool.TokenA, pool.TokenB)
	cur, ok := ix.pools[key]
	if !ok || better(pool, cur) {
		ix.pools[key] = pool
	}
}

// better decide si el candidato desplaza al pool almacenado.
func better(candidate, current domain.Pool) bool {
	if candidate.LiquidityUSD != current.LiquidityUSD {
		return candidate.LiquidityUSD > current.LiquidityUSD
	}
	return candidate.Volume24hUSD > current.Volume24hUSD
}

// BestPool devuelve el mejor pool para el par dado. ok=false significa
// "par no tradeable" — el caller debe omitir el path, no abortar.
func (ix *Index) BestPool(a, b domain.Token) (domain.Pool, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	pool, ok := ix.pools[keyFor(a, b)]
	return pool, ok
}

// HasPair devuelve true si existe algún pool registrado para el par.
func (ix *Index) HasPair(a, b domain.Token) bool {
	_, ok := ix.BestPool(a, b)
	return ok
}

// Len devuelve el número de pares registrados.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.pools)
}

// IsViable decide si un pool soporta un trade del tamaño dado: liquidez
// mínima absoluta y el trade no puede superar maxTradeFraction de la
// liquidez del pool (control de slippage).
func IsViable(pool domain.Pool, tradeAmountUSD, minLiquidityUSD, maxTradeFraction float64) bool {
	if maxTradeFraction <= 0 {
		maxTradeFraction = DefaultMaxTradeFraction
	}
	if pool.LiquidityUSD < minLiquidityUSD {
		return false
	}
	return tradeAmountUSD <= pool.LiquidityUSD*maxTradeFraction
}
