package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

const (
	defaultProfile       = "classic"
	defaultBaseURL       = "http://localhost:8081"
	defaultDataEndpoint  = "/api/islands"
	defaultCheckEndpoint = "/api/status"
)

// ProfileInfo summarizes an available profile
type ProfileInfo struct {
	Filename    string `json:"filename"`
	ProfileID   string `json:"profile_id"` // The identifier to pass to LoadProfile
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Manager handles profile loading and caching
type Manager struct {
	configDir      string
	defaultProfile *Profile
	profiles       map[string]*Profile
	mu             sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		profiles:  make(map[string]*Profile),
	}

	m.loadDefaultProfile()
	return m, nil
}

// LoadProfile loads a profile by name. The returned profile is a copy, so
// callers may apply overrides to it.
func (m *Manager) LoadProfile(name string) (*Profile, error) {
	m.mu.RLock()
	// Check cache first
	if profile, exists := m.profiles[name]; exists {
		m.mu.RUnlock()
		return clone(profile), nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if profile, exists := m.profiles[name]; exists {
		return clone(profile), nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}
	if filepath.Base(filename) != filename {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&profile)

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	m.profiles[name] = &profile
	return clone(&profile), nil
}

// ListProfiles returns information about all valid profiles, sorted by ID
func (m *Manager) ListProfiles() ([]*ProfileInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var infos []*ProfileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		profile, err := m.LoadProfile(id)
		if err != nil {
			// Skip invalid profiles
			continue
		}

		infos = append(infos, &ProfileInfo{
			Filename:    entry.Name(),
			ProfileID:   id,
			Name:        profile.Name,
			Description: profile.Description,
			Source:      profile.MapSource.Kind,
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].ProfileID < infos[j].ProfileID })
	return infos, nil
}

// GetDefault returns a copy of the default profile
func (m *Manager) GetDefault() *Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.defaultProfile)
}

// RefreshCache drops cached profiles and reloads the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.profiles = make(map[string]*Profile)
	m.mu.Unlock()

	m.loadDefaultProfile()
}

// loadDefaultProfile prefers classic.json, then the first valid profile,
// then a built-in minimal profile
func (m *Manager) loadDefaultProfile() {
	profile, err := m.LoadProfile(defaultProfile)
	if err != nil {
		infos, listErr := m.ListProfiles()
		if listErr != nil || len(infos) == 0 {
			profile = createMinimalProfile()
		} else if profile, err = m.LoadProfile(infos[0].ProfileID); err != nil {
			profile = createMinimalProfile()
		}
	}

	m.mu.Lock()
	m.defaultProfile = profile
	m.mu.Unlock()
}

// applyDefaults fills optional fields left empty in a profile file
func applyDefaults(p *Profile) {
	if p.MapSource.Kind == "" {
		p.MapSource.Kind = SourceHTTP
	}
	if p.MapSource.Kind == SourceHTTP {
		if p.MapSource.DataEndpoint == "" {
			p.MapSource.DataEndpoint = defaultDataEndpoint
		}
		if p.MapSource.CheckEndpoint == "" {
			p.MapSource.CheckEndpoint = defaultCheckEndpoint
		}
	}
}

// createMinimalProfile talks to a generator on localhost and keeps saves in
// memory
func createMinimalProfile() *Profile {
	return &Profile{
		Name:        "default",
		Description: "Default minimal configuration",
		MapSource: MapSource{
			Kind:           SourceHTTP,
			BaseURL:        defaultBaseURL,
			DataEndpoint:   defaultDataEndpoint,
			CheckEndpoint:  defaultCheckEndpoint,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
	}
}

func clone(p *Profile) *Profile {
	if p == nil {
		return nil
	}
	out := *p
	if p.Camera != nil {
		camera := *p.Camera
		out.Camera = &camera
	}
	return &out
}
