package observe

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The viewer is served from anywhere; snapshots carry no secrets.
	CheckOrigin: func(*http.Request) bool { return true },
}

// NewRouter exposes the hub:
//
//	GET /api/snapshot  latest snapshot as JSON
//	GET /api/log       latest HUD lines, newest first
//	GET /healthz       liveness
//	    /ws            snapshot stream
func NewRouter(h *Hub) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/snapshot", h.handleSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/log", h.handleLog).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc("/ws", h.handleWebSocket)
	return r
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	msg := h.Latest()
	if msg == nil {
		http.Error(w, "no snapshot published yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(msg)
}

type logResponse struct {
	Clock int64    `json:"clock"`
	Lines []string `json:"lines"`
}

func (h *Hub) handleLog(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.Snapshot()
	if !ok {
		http.Error(w, "no snapshot published yet", http.StatusServiceUnavailable)
		return
	}
	resp := logResponse{Clock: snap.Clock, Lines: snap.Log}
	if resp.Lines == nil {
		resp.Lines = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Warnf("encode log response: %v", err)
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("websocket upgrade: %v", err)
		return
	}
	h.Attach(conn)
}
