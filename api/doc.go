// Package api provides the HTTP REST API for Island Hunt.
//
// The api package implements:
//   - Session lifecycle endpoints for the single live session
//   - Cell picks by grid coordinate and by pointer position on the 3D surface
//   - Board, surface and camera endpoints for clients that draw the map
//   - Map source status and the rules text
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session:
//   - GET  /api/session - Current session view
//   - POST /api/session - Fetch a new map and start a session
//   - POST /api/session/restart - Discard the session and start over
//
// Game Operations:
//   - POST /api/session/pick - {"row": 1, "col": 3}
//   - POST /api/session/pick3d - {"ndc_x": 0.1, "ndc_y": -0.4}
//   - GET  /api/session/cell?row=1&col=3 - Describe a cell without picking it
//
// Presentation:
//   - GET /api/session/board - 2D board as hex colors
//   - GET /api/session/surface - 3D mesh and the camera used for picks
//   - GET|PUT /api/session/camera - Read or update the pick camera
//
// Other:
//   - GET /api/status - online, offline or loading
//   - GET /api/rules
//   - GET /api/health
//   - GET /ws - Session change notifications
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status code:
//
//	{"error": "error message"}
//
// When no playable session exists (none started, or the map fetch failed)
// the response also names the landing page the client should return to:
//
//	{"error": "no playable session", "redirect": "/"}
package api
