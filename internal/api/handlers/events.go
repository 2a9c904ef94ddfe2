package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"logistics-route-service/internal/api/dto"
	"logistics-route-service/internal/platform/obs"
	"logistics-route-service/internal/ports"
)

const (
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 25 * time.Second
	wsWriteWait  = 5 * time.Second
)

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

// EventsHandler streams route and inventory events over a WebSocket.
type EventsHandler struct {
	Broker ports.EventBroker
}

// Stream subscribes to ?topic=routes|inventory, or both when omitted.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var routes, inventory chan ports.Event
	switch topic := strings.TrimSpace(r.URL.Query().Get("topic")); topic {
	case "":
		routes = h.Broker.Subscribe(ports.TopicRoutes)
		inventory = h.Broker.Subscribe(ports.TopicInventory)
	case ports.TopicRoutes:
		routes = h.Broker.Subscribe(ports.TopicRoutes)
	case ports.TopicInventory:
		inventory = h.Broker.Subscribe(ports.TopicInventory)
	default:
		writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "unknown topic "+topic)
		return
	}
	defer func() {
		if routes != nil {
			h.Broker.Unsubscribe(ports.TopicRoutes, routes)
		}
		if inventory != nil {
			h.Broker.Unsubscribe(ports.TopicInventory, inventory)
		}
	}()

	reqID := obs.RequestID(r.Context())
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("req_id=%s op=events.upgrade err=%v", reqID, err)
		return
	}
	defer func() { _ = conn.Close() }()

	// The read loop only handles control frames and notices the client leaving.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(1 << 10)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(wsPongWait)) })
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	send := func(evt ports.Event) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(dto.NewEventResponse(evt)); err != nil {
			log.Printf("req_id=%s op=events.write err=%v", reqID, err)
			return false
		}
		return true
	}

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case evt, ok := <-routes:
			if !ok || !send(evt) {
				return
			}
		case evt, ok := <-inventory:
			if !ok || !send(evt) {
				return
			}
		}
	}
}
