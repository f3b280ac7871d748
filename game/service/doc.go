// Package service provides the business logic layer for Island Hunt.
//
// The service package implements:
//   - Ownership of the single live session and its visual surfaces
//   - Session start: restore from the store, else fetch a fresh map
//   - Pick orchestration: resolve, regray, persist, notify
//   - 3D pointer picks through the terrain camera
//   - Change notifications for transports
//
// Core Interfaces:
//
// GameService is the main service interface. MapProvider supplies maps,
// SessionStore saves and restores the session and Navigator is told when no
// playable session can be established.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine. All operations are serialized behind one mutex, so a
// pick is lookup, mutate, regray and persist without interleaving.
// Listeners run after the mutex is released, in subscription order, and may
// call back into the service.
//
// Usage:
//
//	store := session.NewPersistence(session.NewMemoryStore(), session.DefaultKey)
//	gameService := service.NewGameService(provider, store, nil)
//
//	view, err := gameService.Start(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := gameService.Pick(ctx, 3, 4)
//
// Failure Handling:
//
// A failed fetch leaves the service without a session (ErrNoSession) and
// never touches the previous one. Persistence failures are logged and never
// fail a pick.
package service
