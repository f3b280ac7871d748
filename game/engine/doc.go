// Package engine provides the core game logic for Island Hunt.
//
// The engine package implements the game mechanics including:
//   - Map payload validation (label grid, elevation grid, target island)
//   - Pick resolution into water, repeat, wrong and winning selections
//   - Lives and victory/defeat transitions
//   - Compass bearing from a wrong pick toward the target island
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. MapPayload is the generator's immutable output
// and GameState is the mutable session built on top of it.
//
// Usage:
//
//	payload, err := engine.LoadMapPayload("testdata/map.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(payload)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result := gameEngine.Pick(3, 4)
//	state := gameEngine.GetState()
//
// Game Rules:
//
// The map is split into islands. The island with the highest average
// elevation is the target. Picking it wins regardless of remaining lives.
// Every other island costs one life the first time it is picked and yields a
// bearing toward the target; picking it again costs nothing. Water is not a
// valid selection. Three wrong islands end the game in defeat.
package engine
