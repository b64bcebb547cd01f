// Package controller holds the HTTP middlewares shared by the API server and
// the WebSocket game endpoint: CORS, request ids with access logging, and the
// pprof mux.
package controller
