package pricefeed

import (
	"context"
	"log/slog"

	"github.com/alejandrodnm/venicebot/internal/domain"
)

const defaultMintRateURL = "https://diem-calculator.venice.ai/api/mint-rate"

// MintRateClient obtiene el mint rate vivo del endpoint de Venice, con
// fallback a la estimación por curva cuando el endpoint no responde.
type MintRateClient struct {
	url    string
	client *httpClient
}

// NewMintRateClient crea el cliente. url vacío usa el endpoint de producción.
func NewMintRateClient(url string) *MintRateClient {
	if url == "" {
		url = defaultMintRateURL
	}
	return &MintRateClient{url: url, client: newHTTPClient(geckoRatePerSec, 2)}
}

// Current devuelve el mint rate actual (sVVV por DIEM) y si el valor es
// estimado (true cuando el endpoint falló y se usó la curva).
func (m *MintRateClient) Current(ctx context.Context) (rate float64, estimated bool) {
	var out struct {
		MintRate float64 `json:"mint_rate"`
	}
	if err := m.client.getJSON(ctx, m.url, nil, &out); err != nil {
		slog.Warn("live mint rate unavailable, falling back to curve estimate", "err", err)
		return domain.EstimateMintRate(0), true
	}
	if out.MintRate <= 0 {
		slog.Warn("mint rate endpoint returned zero, falling back to curve estimate")
		return domain.EstimateMintRate(0), true
	}
	return out.MintRate, false
}
