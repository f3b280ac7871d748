// Package config provides runtime profile management for Island Hunt.
//
// The config package handles:
//   - Loading named profiles from JSON files
//   - Profile validation
//   - Default profile selection
//   - Profile discovery and listing
//   - Environment overrides
//
// Profile Format:
//
// Profiles are stored as JSON files in the configs directory. Each profile
// defines:
//   - The map source: an HTTP generator (base_url, data_endpoint,
//     check_endpoint, timeout_seconds) or a payload file (path)
//   - Session storage: a directory for saves and the key to save under
//   - An optional camera used for 3D picks
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := manager.LoadProfile("offline")
//	if err != nil {
//		profile = manager.GetDefault()
//	}
//	profile.ApplyEnv()
//
// Environment:
//
// ISLAND_API_BASE_URL switches to an HTTP source, ISLAND_MAP_FILE to a file
// source and ISLAND_SAVE_DIR sets the save directory.
package config
