// Package exchange implements the per-exchange market-data adapters. Each
// adapter fetches spot, futures, and (where the venue exposes it) funding
// data from one exchange's public API and normalizes it into a
// domain.ExchangeQuote keyed by canonical symbol.
//
// Adapters never fail a scan: any fetch or decode problem is logged and the
// affected piece comes back as an empty map.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/spreadup/arbscan/internal/domain"
)

// Adapter is one exchange's market-data source.
type Adapter interface {
	// Name returns the exchange display name used throughout the system.
	Name() string
	// HasFutures reports whether the venue lists perpetual contracts. The
	// futures-futures and funding detectors only consider these venues.
	HasFutures() bool
	// Fetch returns the venue's current snapshot. It never returns an
	// error: a failed sub-fetch yields empty maps for that piece only.
	Fetch(ctx context.Context) domain.ExchangeQuote
}

// Options carries the shared dependencies every adapter needs.
type Options struct {
	Client *http.Client
	Logger *slog.Logger
}

// NewHTTPClient returns the HTTP client adapters share. The timeout bounds
// the whole request so one unresponsive exchange cannot stall a scan cycle.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET request and decodes the JSON response into dst.
func getJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// flexFloat decodes a JSON value that exchanges variously encode as a number
// or a numeric string. Unparseable values decode to 0 rather than failing the
// whole payload; a dropped tick beats a dropped venue.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	s := string(data)
	if s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

func (f flexFloat) v() float64 { return float64(f) }
