// Package websocket pushes Island Hunt session changes to browser and
// desktop clients.
//
// A single Hub owns every connection. Its Run loop serializes register,
// unregister and broadcast requests, and each client gets a read pump and a
// write pump goroutine. Clients never send commands over the socket; picks
// go through the REST API and the resulting events come back here.
//
// Messages are JSON objects:
//
//	{"event": "pick_resolved", "session": {...}, "pick": {...}, "timestamp": "..."}
//
// Events are the service events (map_loaded, pick_resolved,
// outcome_changed) plus navigate, sent when no playable session could be
// established.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	svc := service.NewGameService(provider, store, hub)
//	svc.Subscribe(hub.Listener())
//	http.HandleFunc("/ws", hub.ServeWS)
package websocket
