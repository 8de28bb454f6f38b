package pricefeed

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alejandrodnm/venicebot/internal/domain"
)

const defaultCMCBase = "https://pro-api.coinmarketcap.com/v2"

// IDs de CoinMarketCap para los tokens de Venice.
var cmcIDs = map[domain.Token]int{
	domain.VVV:  31991, // Venice Token
	domain.DIEM: 33947, // Diem (Venice AI)
	domain.USDC: 3408,
}

// CoinMarketCap es el cliente del endpoint quotes/latest. Requiere API key.
type CoinMarketCap struct {
	base   string
	apiKey string
	client *httpClient
}

// NewCoinMarketCap crea el cliente con la API key dada.
func NewCoinMarketCap(base, apiKey string) *CoinMarketCap {
	if base == "" {
		base = defaultCMCBase
	}
	return &CoinMarketCap{
		base:   base,
		apiKey: apiKey,
		client: newHTTPClient(cmcRatePerSec, 2),
	}
}

// Name identifica la fuente en logs y agregación.
func (c *CoinMarketCap) Name() string { return "coinmarketcap" }

// cmcQuoteResponse es la parte de la respuesta de quotes/latest que usamos.
type cmcQuoteResponse struct {
	Data map[string]struct {
		Quote map[string]struct {
			Price float64 `json:"price"`
		} `json:"quote"`
	} `json:"data"`
}

// Price devuelve el precio USD del token vía quotes/latest.
func (c *CoinMarketCap) Price(ctx context.Context, tok domain.Token) (float64, error) {
	id, ok := cmcIDs[tok]
	if !ok {
		return 0, fmt.Errorf("pricefeed.CoinMarketCap: no cmc id for token %q", tok)
	}

	u := fmt.Sprintf("%s/cryptocurrency/quotes/latest?id=%d", c.base, id)
	headers := map[string]string{"X-CMC_PRO_API_KEY": c.apiKey}

	var out cmcQuoteResponse
	if err := c.client.getJSON(ctx, u, headers, &out); err != nil {
		return 0, fmt.Errorf("pricefeed.CoinMarketCap: fetch %s: %w", tok, err)
	}

	entry, ok := out.Data[strconv.Itoa(id)]
	if !ok {
		return 0, fmt.Errorf("pricefeed.CoinMarketCap: token %s missing in response", tok)
	}
	quote, ok := entry.Quote["USD"]
	if !ok {
		return 0, fmt.Errorf("pricefeed.CoinMarketCap: no USD quote for %s", tok)
	}
	return quote.Price, nil
}
