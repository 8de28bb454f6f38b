package pricefeed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/alejandrodnm/venicebot/internal/domain"
)

const defaultDexScreenerBase = "https://api.dexscreener.com"

// DexScreener descubre pools de liquidez para los pares del universo.
// Implementa ports.PoolProvider.
type DexScreener struct {
	base     string
	chainID  string // filtra pares por chain ("base" para Venice)
	universe []domain.Token
	client   *httpClient
}

// NewDexScreener crea el cliente para el universo de tokens dado.
func NewDexScreener(base, chainID string, universe []domain.Token) *DexScreener {
	if base == "" {
		base = defaultDexScreenerBase
	}
	if chainID == "" {
		chainID = "base"
	}
	return &DexScreener{
		base:     base,
		chainID:  chainID,
		universe: universe,
		client:   newHTTPClient(dexRatePerSec, 4),
	}
}

// dexPairsResponse es el subset de la respuesta de /latest/dex/search.
type dexPairsResponse struct {
	Pairs []struct {
		ChainID   string `json:"chainId"`
		DexID     string `json:"dexId"`
		BaseToken struct {
			Symbol string `json:"symbol"`
		} `json:"baseToken"`
		QuoteToken struct {
			Symbol string `json:"symbol"`
		} `json:"quoteToken"`
		Liquidity struct {
			USD float64 `json:"usd"`
		} `json:"liquidity"`
		Volume struct {
			H24 float64 `json:"h24"`
		} `json:"volume"`
	} `json:"pairs"`
}

// FetchPools busca pares para cada token del universo y devuelve los pools
// cuyos dos lados pertenecen al universo. Pools degenerados (mismo token a
// ambos lados, liquidez negativa) se descartan aquí, antes del índice.
func (d *DexScreener) FetchPools(ctx context.Context) ([]domain.Pool, error) {
	known := make(map[domain.Token]bool, len(d.universe))
	for _, tok := range d.universe {
		known[tok] = true
	}

	var pools []domain.Pool
	seen := make(map[string]bool)

	for _, tok := range d.universe {
		u := fmt.Sprintf("%s/latest/dex/search?q=%s", d.base, url.QueryEscape(string(tok)))

		var out dexPairsResponse
		if err := d.client.getJSON(ctx, u, nil, &out); err != nil {
			return nil, fmt.Errorf("pricefeed.FetchPools: search %s: %w", tok, err)
		}

		for _, pair := range out.Pairs {
			if pair.ChainID != d.chainID {
				continue
			}
			a := domain.Token(strings.ToUpper(pair.BaseToken.Symbol))
			b := domain.Token(strings.ToUpper(pair.QuoteToken.Symbol))
			if a == b || !known[a] || !known[b] {
				continue
			}
			if pair.Liquidity.USD < 0 || pair.Volume.H24 < 0 {
				continue
			}

			key := pair.DexID + ":" + string(a) + ":" + string(b)
			if seen[key] {
				continue
			}
			seen[key] = true

			pools = append(pools, domain.Pool{
				Venue:        pair.DexID,
				TokenA:       a,
				TokenB:       b,
				LiquidityUSD: pair.Liquidity.USD,
				Volume24hUSD: pair.Volume.H24,
			})
		}
	}
	return pools, nil
}
