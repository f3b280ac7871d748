package config

import (
	"fmt"
	"os"
	"time"

	"github.com/wricardo/island-hunt/game/terrain"
)

// Map source kinds
const (
	SourceHTTP = "http"
	SourceFile = "file"
)

// Environment overrides applied by ApplyEnv
const (
	EnvAPIBaseURL = "ISLAND_API_BASE_URL"
	EnvMapFile    = "ISLAND_MAP_FILE"
	EnvSaveDir    = "ISLAND_SAVE_DIR"
)

const defaultTimeoutSeconds = 10

// MapSource selects where fresh maps come from
type MapSource struct {
	Kind           string `json:"kind"`
	BaseURL        string `json:"base_url,omitempty"`
	DataEndpoint   string `json:"data_endpoint,omitempty"`
	CheckEndpoint  string `json:"check_endpoint,omitempty"`
	Path           string `json:"path,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// Timeout returns the request timeout for HTTP sources
func (s MapSource) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Storage selects where the live session is saved
type Storage struct {
	Dir string `json:"dir,omitempty"` // empty keeps saves in memory
	Key string `json:"key,omitempty"`
}

// Profile is one named runtime configuration
type Profile struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	MapSource   MapSource       `json:"map_source"`
	Storage     Storage         `json:"storage"`
	Camera      *terrain.Camera `json:"camera,omitempty"`
}

// Validate checks that the profile can be wired
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}

	switch p.MapSource.Kind {
	case SourceHTTP:
		if p.MapSource.BaseURL == "" {
			return fmt.Errorf("%w: http map source needs base_url", ErrInvalidConfig)
		}
		if p.MapSource.DataEndpoint == "" {
			return fmt.Errorf("%w: http map source needs data_endpoint", ErrInvalidConfig)
		}
	case SourceFile:
		if p.MapSource.Path == "" {
			return fmt.Errorf("%w: file map source needs path", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown map source kind %q", ErrInvalidConfig, p.MapSource.Kind)
	}

	if p.MapSource.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: timeout_seconds cannot be negative", ErrInvalidConfig)
	}

	if p.Camera != nil {
		if err := p.Camera.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ApplyEnv overrides profile fields from the environment. A map file
// switches the source to file mode.
func (p *Profile) ApplyEnv() {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		p.MapSource.Kind = SourceHTTP
		p.MapSource.BaseURL = v
		if p.MapSource.DataEndpoint == "" {
			p.MapSource.DataEndpoint = defaultDataEndpoint
		}
	}
	if v := os.Getenv(EnvMapFile); v != "" {
		p.MapSource.Kind = SourceFile
		p.MapSource.Path = v
	}
	if v := os.Getenv(EnvSaveDir); v != "" {
		p.Storage.Dir = v
	}
}

// CameraOrDefault returns the configured camera or the default framing
func (p *Profile) CameraOrDefault() terrain.Camera {
	if p.Camera == nil {
		return terrain.DefaultCamera()
	}
	return *p.Camera
}
