package pricefeed

import (
	"context"
	"fmt"
	"net/url"

	"github.com/alejandrodnm/venicebot/internal/domain"
)

const defaultGeckoBase = "https://api.coingecko.com/api/v3"

// IDs de CoinGecko para los tokens de Venice.
var geckoIDs = map[domain.Token]string{
	domain.VVV:  "venice-token",
	domain.DIEM: "venice-ai",
	domain.USDC: "usd-coin",
}

// CoinGecko es el cliente del endpoint simple/price de CoinGecko.
// Funciona sin API key en el free tier.
type CoinGecko struct {
	base   string
	apiKey string
	client *httpClient
}

// NewCoinGecko crea el cliente. apiKey puede ser vacío (free tier).
func NewCoinGecko(base, apiKey string) *CoinGecko {
	if base == "" {
		base = defaultGeckoBase
	}
	return &CoinGecko{
		base:   base,
		apiKey: apiKey,
		client: newHTTPClient(geckoRatePerSec, 2),
	}
}

// Name identifica la fuente en logs y agregación.
func (g *CoinGecko) Name() string { return "coingecko" }

// Price devuelve el precio USD del token. ok=false si CoinGecko no tiene
// el token o la respuesta no lo incluye.
func (g *CoinGecko) Price(ctx context.Context, tok domain.Token) (float64, error) {
	id, ok := geckoIDs[tok]
	if !ok {
		return 0, fmt.Errorf("pricefeed.CoinGecko: no coingecko id for token %q", tok)
	}

	u := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", g.base, url.QueryEscape(id))

	var headers map[string]string
	if g.apiKey != "" {
		headers = map[string]string{"x-cg-pro-api-key": g.apiKey}
	}

	// respuesta: {"venice-token": {"usd": 3.01}}
	var out map[string]map[string]float64
	if err := g.client.getJSON(ctx, u, headers, &out); err != nil {
		return 0, fmt.Errorf("pricefeed.CoinGecko: fetch %s: %w", tok, err)
	}

	price, ok := out[id]["usd"]
	if !ok {
		return 0, fmt.Errorf("pricefeed.CoinGecko: no usd quote for %s in response", tok)
	}
	return price, nil
}
