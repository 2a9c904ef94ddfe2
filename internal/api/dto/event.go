package dto

import (
	"time"

	"logistics-route-service/internal/ports"
)

type EventResponse struct {
	Type  string         `json:"type"`
	Topic string         `json:"topic"`
	Data  map[string]any `json:"data,omitempty"`
	At    time.Time      `json:"at"`
}

func NewEventResponse(e ports.Event) EventResponse {
	return EventResponse{Type: e.Type, Topic: e.Topic, Data: e.Data, At: e.At}
}
