package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/arcadia-advisors/intake/internal/events"
	"github.com/arcadia-advisors/intake/internal/utils"
)

// streamBufferSize bounds the per-connection event queue. Events past the
// bound are dropped rather than blocking the bus.
const streamBufferSize = 100

// EventsStreamHandler streams engine events to connected clients over
// WebSocket. Clients may pass ?types=a,b,c to filter event types.
type EventsStreamHandler struct {
	eventBus *events.Bus
	log      zerolog.Logger
}

// NewEventsStreamHandler creates a new events stream handler.
func NewEventsStreamHandler(eventBus *events.Bus, log zerolog.Logger) *EventsStreamHandler {
	return &EventsStreamHandler{
		eventBus: eventBus,
		log:      log.With().Str("component", "events_stream").Logger(),
	}
}

// allStreamTypes is the set of event types a connection subscribes to when
// no filter is given.
var allStreamTypes = []events.EventType{
	events.HouseholdChanged,
	events.OwnerCreated,
	events.OwnerUpdated,
	events.OwnerDeleted,
	events.AccountCreated,
	events.AccountUpdated,
	events.AccountDeleted,
	events.FundingChanged,
	events.NavigationMoved,
	events.SnapshotSaved,
}

// ServeHTTP handles GET /api/events requests (WebSocket upgrade).
func (h *EventsStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	typesFilter := r.URL.Query().Get("types")

	var allowedTypes map[events.EventType]bool
	if filtered := utils.ParseCSV(typesFilter); filtered != nil {
		allowedTypes = make(map[events.EventType]bool, len(filtered))
		for _, t := range filtered {
			allowedTypes[events.EventType(t)] = true
		}
	}

	h.log.Info().Str("types_filter", typesFilter).Msg("Client connected to event stream")

	eventChan := make(chan *events.Event, streamBufferSize)

	eventHandler := func(event *events.Event) {
		if allowedTypes != nil && !allowedTypes[event.Type] {
			return
		}

		// Non-blocking send (drop if channel full)
		select {
		case eventChan <- event:
		default:
			h.log.Warn().
				Str("event_type", string(event.Type)).
				Msg("Event channel full, dropping event")
		}
	}

	if allowedTypes == nil {
		for _, eventType := range allStreamTypes {
			h.eventBus.Subscribe(eventType, eventHandler)
		}
	} else {
		for eventType := range allowedTypes {
			h.eventBus.Subscribe(eventType, eventHandler)
		}
	}

	ctx := r.Context()

	if err := h.writeMessage(ctx, conn, map[string]interface{}{
		"type":    "connected",
		"message": "Connected to event stream",
	}); err != nil {
		h.log.Debug().Err(err).Msg("Failed to send connection message")
		return
	}

	// Drain incoming frames so pings and close frames are processed
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Client disconnected from event stream")
			conn.Close(websocket.StatusNormalClosure, "")
			return

		case event := <-eventChan:
			h.log.Debug().
				Str("event_type", string(event.Type)).
				Msg("Sending event to client")

			err := h.writeMessage(ctx, conn, map[string]interface{}{
				"type":      string(event.Type),
				"module":    event.Module,
				"timestamp": event.Timestamp.Format(time.RFC3339),
				"data":      event.Data,
			})
			if err != nil {
				h.log.Debug().Err(err).Msg("Failed to send event, closing stream")
				return
			}

		case <-heartbeat.C:
			err := h.writeMessage(ctx, conn, map[string]interface{}{
				"type":      "heartbeat",
				"timestamp": time.Now().Format(time.RFC3339),
			})
			if err != nil {
				h.log.Debug().Err(err).Msg("Heartbeat failed, closing stream")
				return
			}
		}
	}
}

// writeMessage marshals the payload and writes it as a single text frame.
func (h *EventsStreamHandler) writeMessage(ctx context.Context, conn *websocket.Conn, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to marshal event")
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return conn.Write(writeCtx, websocket.MessageText, data)
}
