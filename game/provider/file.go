package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/service"
)

// FileProvider serves a map payload stored on disk, bare or enveloped
type FileProvider struct {
	path string
}

// NewFileProvider creates a provider reading path on every fetch
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// FetchMap reads and validates the payload file
func (p *FileProvider) FetchMap(ctx context.Context) (*engine.MapPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrFetch, err)
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrFetch, err)
	}
	return DecodePayload(data)
}

// Status reports online while the payload file is readable
func (p *FileProvider) Status(ctx context.Context) ServerStatus {
	if _, err := os.Stat(p.path); err != nil {
		return StatusOffline
	}
	return StatusOnline
}
