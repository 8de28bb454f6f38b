// Package engine implementa la enumeración, evaluación y selección de
// paths de arbitraje, más el backtester y el paper trading ledger.
package engine

import (
	"sort"

	"github.com/alejandrodnm/venicebot/internal/domain"
	"github.com/alejandrodnm/venicebot/internal/liquidity"
)

// maxSwapHops acota el crecimiento combinatorio de la enumeración.
const maxSwapHops = 3

// EnumeratorConfig define el universo de tokens sobre el que enumerar.
type EnumeratorConfig struct {
	Base     domain.Token   // token de capital (USDC)
	Derived  domain.Token   // token minteable (DIEM)
	Universe []domain.Token // tokens intermedios candidatos (sin el base)
	MaxHops  int            // máximo de hops por swap-chain (default 3)
}

// Enumerate produce el conjunto de paths estructuralmente válidos:
//
//   - el path canónico mint-then-sell, siempre — la disponibilidad del
//     mecanismo de minteo es estructural, no depende de liquidez;
//   - toda swap-chain de 2 o 3 hops cuyos pares intermedios tengan pool
//     registrado en el índice.
//
// Los paths no revisitan el token base antes del hop final, y el orden de
// enumeración es determinista (lexicográfico sobre los símbolos) para que
// el tie-break del selector sea reproducible.
func Enumerate(cfg EnumeratorConfig, index *liquidity.Index) []domain.Path {
	maxHops := cfg.MaxHops
	if maxHops <= 0 || maxHops > maxSwapHops {
		maxHops = maxSwapHops
	}

	paths := []domain.Path{mintPath(cfg.Base, cfg.Derived)}

	mids := intermediates(cfg.Universe, cfg.Base)

	if maxHops >= 2 {
		for _, x := range mids {
			pool, ok := index.BestPool(cfg.Base, x)
			if !ok {
				continue
			}
			p := pool
			paths = append(paths, domain.Path{Hops: []domain.Hop{
				domain.SwapHop(&p, cfg.Base, x),
				domain.SwapHop(&p, x, cfg.Base),
			}})
		}
	}

	if maxHops >= 3 {
		for _, x := range mids {
			first, ok := index.BestPool(cfg.Base, x)
			if !ok {
				continue
			}
			for _, y := range mids {
				if y == x {
					continue
				}
				mid, ok := index.BestPool(x, y)
				if !ok {
					continue
				}
				last, ok := index.BestPool(y, cfg.Base)
				if !ok {
					continue
				}
				f, m, l := first, mid, last
				paths = append(paths, domain.Path{Hops: []domain.Hop{
					domain.SwapHop(&f, cfg.Base, x),
					domain.SwapHop(&m, x, y),
					domain.SwapHop(&l, y, cfg.Base),
				}})
			}
		}
	}

	return paths
}

// mintPath construye el path canónico base → mint(derived) → sell(derived).
func mintPath(base, derived domain.Token) domain.Path {
	return domain.Path{Hops: []domain.Hop{
		domain.MintHop(base, derived),
		domain.BurnHop(derived, base),
	}}
}

// intermediates devuelve el universo sin el token base, ordenado
// lexicográficamente y sin duplicados.
func intermediates(universe []domain.Token, base domain.Token) []domain.Token {
	seen := make(map[domain.Token]bool, len(universe))
	var out []domain.Token
	for _, tok := range universe {
		if tok == base || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
