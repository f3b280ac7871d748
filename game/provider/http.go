package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/service"
)

// maxPayloadBytes caps a generator response
const maxPayloadBytes = 32 << 20

// HTTPProvider fetches maps from the remote island generator
type HTTPProvider struct {
	baseURL       string
	dataEndpoint  string
	checkEndpoint string
	client        *http.Client
	inFlight      atomic.Int32
}

// NewHTTPProvider creates a provider for {baseURL}{dataEndpoint}
func NewHTTPProvider(baseURL, dataEndpoint, checkEndpoint string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL:       strings.TrimRight(baseURL, "/"),
		dataEndpoint:  dataEndpoint,
		checkEndpoint: checkEndpoint,
		client:        &http.Client{Timeout: timeout},
	}
}

// FetchMap downloads and validates one map payload
func (p *HTTPProvider) FetchMap(ctx context.Context) (*engine.MapPayload, error) {
	p.inFlight.Add(1)
	defer p.inFlight.Add(-1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+p.dataEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: generator returned %s", service.ErrFetch, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", service.ErrFetch, err)
	}
	return DecodePayload(body)
}

// Status reports loading while a map download is running, otherwise it
// checks the health endpoint; any non-200 answer is offline
func (p *HTTPProvider) Status(ctx context.Context) ServerStatus {
	if p.inFlight.Load() > 0 {
		return StatusLoading
	}

	endpoint := p.checkEndpoint
	if endpoint == "" {
		endpoint = p.dataEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+endpoint, nil)
	if err != nil {
		return StatusOffline
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return StatusOffline
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusOK {
		return StatusOnline
	}
	return StatusOffline
}
