package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"energy_baseline/internal/pipeline"
	"energy_baseline/internal/regression"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes fit/predict requests to
// the pipeline.
type Handler struct {
	hub      *Hub
	pipeline *pipeline.Pipeline

	mu      sync.Mutex
	fitting bool
	lastFit *regression.FitResult
}

func NewHandler(hub *Hub, p *pipeline.Pipeline) *Handler {
	return &Handler{hub: hub, pipeline: p}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.hub.Register(client)
	go client.writePump()

	h.sendDataLoaded(client)
	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		h.handleMessage(msg)
	}
}

func (h *Handler) handleMessage(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		return
	}

	switch env.Type {
	case TypeFitRun:
		var p FitRunPayload
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				log.Printf("Invalid fit:run payload: %v", err)
				return
			}
		}
		h.startFit(p.BaseFormula)

	case TypePredictRun:
		var p PredictRunPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid predict:run payload: %v", err)
			return
		}
		h.runPredict(p)

	default:
		log.Printf("Unknown message type: %q", env.Type)
	}
}

// startFit launches one fit at a time; concurrent requests are rejected
// rather than queued.
func (h *Handler) startFit(baseFormula string) {
	h.mu.Lock()
	if h.fitting {
		h.mu.Unlock()
		h.broadcastError("a fit is already running")
		return
	}
	h.fitting = true
	h.mu.Unlock()

	runID := uuid.NewString()
	go func() {
		defer func() {
			h.mu.Lock()
			h.fitting = false
			h.mu.Unlock()
		}()

		result, err := h.pipeline.Fit(baseFormula, func(stage, message string) {
			h.broadcast(TypeFitProgress, FitProgressPayload{RunID: runID, Stage: stage, Message: message})
		})
		if err != nil {
			h.broadcastError("fit failed: " + err.Error())
			return
		}

		h.mu.Lock()
		h.lastFit = result
		h.mu.Unlock()

		h.broadcast(TypeFitResult, FitResultFromArtifact(runID, result))
	}()
}

func (h *Handler) runPredict(p PredictRunPayload) {
	start, err := time.Parse(time.RFC3339, p.Start)
	if err != nil {
		h.broadcastError("invalid predict start: " + err.Error())
		return
	}
	end, err := time.Parse(time.RFC3339, p.End)
	if err != nil {
		h.broadcastError("invalid predict end: " + err.Error())
		return
	}

	h.mu.Lock()
	result := h.lastFit
	h.mu.Unlock()
	if result == nil {
		h.broadcastError("no fitted model: run fit first")
		return
	}

	days, err := h.pipeline.Predict(result, start, end)
	if err != nil {
		h.broadcastError("predict failed: " + err.Error())
		return
	}
	h.broadcast(TypePredictResult, PredictResultFromDays(days))
}

func (h *Handler) sendDataLoaded(c *Client) {
	stats, err := h.pipeline.Snapshot()
	if err != nil {
		log.Printf("Snapshot error: %v", err)
		return
	}
	msg, err := NewEnvelope(TypeDataLoaded, DataLoadedFromStats(stats))
	if err != nil {
		log.Printf("Encoding data:loaded: %v", err)
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (h *Handler) broadcast(msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		log.Printf("Encoding %s: %v", msgType, err)
		return
	}
	h.hub.Broadcast(msg)
}

func (h *Handler) broadcastError(message string) {
	log.Printf("ws error: %s", message)
	h.broadcast(TypeError, ErrorPayload{Message: message})
}
