package stubservice

import "net/http"

func NewRouter(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /process", WithLogging(h.Process))
	mux.HandleFunc("GET /result/{id}", WithLogging(h.Result))

	return mux
}
