// Package session persists the live game session across process restarts.
//
// The session package implements:
//   - A versioned JSON document codec for engine.GameState
//   - Legacy document upgrade (saves written before versioning)
//   - A minimal durable key/value Store with memory and file backends
//   - Persistence, which binds a Store and a key to the codec
//
// Document Layout:
//
// Label-keyed maps are stored as [label, value] pair arrays in ascending
// label order. The remaining fields carry the picks, the lives left, the
// compass bearing and the outcome:
//
//	{"version":1,"islandIds":[[..]],"mapData":[[..]],
//	 "islandAvgHeights":[[1,120.5]],"islandCenterPoints":[[1,{"x":3,"y":4}]],
//	 "islandWithMaxAvgHeightId":1,"playerLives":3,"clickedIslands":[],
//	 "arrowAngle":0,"hasArrow":false,"outcome":"in_progress"}
//
// Usage:
//
//	store, err := session.NewFileStore("saves")
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := session.NewPersistence(store, session.DefaultKey)
//
//	state, err := p.Load()
//	if errors.Is(err, session.ErrNoSavedSession) || errors.Is(err, session.ErrDecode) {
//		// fetch a fresh map instead
//	}
//
// Decoding never panics; every malformed document yields an error wrapping
// ErrDecode.
package session
