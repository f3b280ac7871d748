// Package mcp provides the Model Context Protocol surface for Island Hunt.
//
// The Client registers game tools on an mcp-go server and answers every tool
// call by calling the REST API, so an agent plays the same live session as
// every other client of the server.
//
// MCP Tools:
//   - game_state: Current session with lives, wrong islands and compass
//   - restart: Fetch a new map and start over
//   - pick: Pick the island under cell (row, col)
//   - pick_3d: Pick by pointer position on the 3D view
//   - describe_cell: Inspect a cell without picking it
//   - map_status: Reachability of the map generator
//   - game_instructions: Rules and a playing guide
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: the server binary forwards POST /mcp bodies to HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
