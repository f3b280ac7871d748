package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wricardo/island-hunt/game/config"
	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/service"
)

// ServerStatus is the reachability of a map source
type ServerStatus string

const (
	StatusOnline  ServerStatus = "online"
	StatusOffline ServerStatus = "offline"
	StatusLoading ServerStatus = "loading"
)

// Provider is a map source that can also report whether it is reachable
type Provider interface {
	service.MapProvider
	Status(ctx context.Context) ServerStatus
}

// CommandResponse is the generator's response envelope
type CommandResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// FromSource builds the provider a profile's map source describes
func FromSource(src config.MapSource) (Provider, error) {
	switch src.Kind {
	case config.SourceHTTP:
		return NewHTTPProvider(src.BaseURL, src.DataEndpoint, src.CheckEndpoint, src.Timeout()), nil
	case config.SourceFile:
		return NewFileProvider(src.Path), nil
	default:
		return nil, fmt.Errorf("%w: unknown map source kind %q", config.ErrInvalidConfig, src.Kind)
	}
}

// DecodePayload accepts either a bare map payload or one wrapped in a
// CommandResponse envelope
func DecodePayload(data []byte) (*engine.MapPayload, error) {
	var envelope struct {
		Success *bool           `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %w", service.ErrFetch, err)
	}

	body := data
	if envelope.Success != nil {
		if !*envelope.Success {
			msg := envelope.Message
			if msg == "" {
				msg = "Failed to get island data"
			}
			return nil, fmt.Errorf("%w: %s", service.ErrFetch, msg)
		}
		if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
			return nil, fmt.Errorf("%w: response has no data", service.ErrFetch)
		}
		body = envelope.Data
	}

	var payload engine.MapPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed map payload: %w", service.ErrFetch, err)
	}
	if err := engine.ValidateMapPayload(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrFetch, err)
	}
	return &payload, nil
}
