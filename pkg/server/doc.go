// Package server serves a live vnest document over HTTP.
//
// GET / returns a full HTML snapshot with a small client script. The
// script opens a WebSocket at /_vnest/ws, forwards clicks on elements
// with an id, and replaces the page body (and head) whenever the server
// pushes new markup. Every access to the document goes through one mutex,
// so event handlers, Update callbacks and snapshots never interleave.
//
// Routes:
//
//	GET /           HTML snapshot
//	GET /_vnest/ws  WebSocket (server pushes {"type":"body","html":...},
//	                client sends {"type":"click","id":"..."})
//	GET /metrics    Prometheus metrics
//	GET /healthz    liveness probe
package server
