// Package bridge serves live documents over WebSocket.
//
// Every connection gets a Session: its own document, parsed from the
// configured page or scenario, and its own engine. Clients drive the
// document with JSON text frames and receive the callback invocations each
// frame caused:
//
//	→ {"frame":"layout","seq":1,"data":{"rects":{"#a":[10,10,40,40]}}}
//	← {"frame":"result","seq":1,"data":{}}
//	→ {"frame":"event","seq":2,"data":{"type":"click","target":"#a"}}
//	← {"frame":"result","seq":2,"data":{"event":"click","invocations":[...]}}
//
// Frames of one session are handled in order on the session's read
// goroutine, so the engine is never used concurrently.
//
// The server also exposes /healthz and, when enabled, Prometheus metrics.
package bridge
