// Package pricefeed implementa el colaborador de precios: agrega fuentes
// HTTP externas (CoinGecko, CoinMarketCap, el endpoint de mint rate de
// Venice y DexScreener para pools) en MarketSnapshots y registros de Pool.
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// CoinGecko free tier: 30 req/min → nos quedamos muy por debajo.
	geckoRatePerSec = 0.4
	// CoinMarketCap basic: 30 req/min.
	cmcRatePerSec = 0.4
	// DexScreener: 300 req/min documentados.
	dexRatePerSec = 4

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// httpClient es el cliente HTTP compartido con rate limiting y retries.
type httpClient struct {
	http    *http.Client
	limiter *rate.Limiter
}

func newHTTPClient(perSec float64, burst int) *httpClient {
	return &httpClient{
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
	}
}

// getJSON hace un GET con rate limiting, retries con backoff y decode JSON.
func (c *httpClient) getJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			slog.Warn("rate limited by API", "url", url, "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *httpClient) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
