package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/b2b-attribution/engine/internal/attribution"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// progressEvent is a single checkpoint pushed over the calculate
// progress stream.
type progressEvent struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// HandleCalculateProgress upgrades the connection to a websocket and
// streams pipeline checkpoints (fetching, computing, combining,
// persisted) for a single calculate call, finishing with the full
// result document. This is additive to the REST surface of spec §6 —
// it exercises the same engine.CalculateAttributionWithProgress path.
func (h *Handler) HandleCalculateProgress(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SERVER] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var body requestBody
	if err := conn.ReadJSON(&body); err != nil {
		conn.WriteJSON(progressEvent{Stage: "error", Detail: "malformed request: " + err.Error()})
		return
	}

	send := func(stage attribution.ProgressStage) {
		if err := conn.WriteJSON(progressEvent{Stage: string(stage)}); err != nil {
			log.Printf("[SERVER] websocket write failed: %v", err)
		}
	}

	result, err := h.engine.CalculateAttributionWithProgress(r.Context(), body.toCalculateRequest(), send)
	if err != nil {
		conn.WriteJSON(progressEvent{Stage: "error", Detail: err.Error()})
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		conn.WriteJSON(progressEvent{Stage: "error", Detail: "failed to encode result"})
		return
	}
	conn.WriteJSON(progressEvent{Stage: "complete", Data: json.RawMessage(payload)})
}
