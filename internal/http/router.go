package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	StartSession http.HandlerFunc
	StopSession  http.HandlerFunc
	Sessions     http.HandlerFunc
	Stream       http.HandlerFunc
	Health       http.HandlerFunc
	Metrics      http.Handler
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.StartSession != nil {
		mux.Handle("/sessions/start", method(http.MethodPost, routes.StartSession))
	}
	if routes.StopSession != nil {
		mux.Handle("/sessions/stop", method(http.MethodPost, routes.StopSession))
	}
	if routes.Sessions != nil {
		mux.Handle("/sessions", method(http.MethodGet, routes.Sessions))
	}
	if routes.Stream != nil {
		mux.Handle("/sessions/ws", method(http.MethodGet, routes.Stream))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.Metrics != nil {
		mux.Handle("/metrics", routes.Metrics)
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
