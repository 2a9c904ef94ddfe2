package history

import (
	"context"
	"sync"

	"logistics-route-service/internal/domain"
)

// MemoryHistory keeps the most recent routes in process memory.
type MemoryHistory struct {
	mu      sync.RWMutex
	records []domain.RouteRecord
	max     int
}

// NewMemoryHistory keeps at most max records. max <= 0 keeps everything.
func NewMemoryHistory(max int) *MemoryHistory {
	return &MemoryHistory{max: max}
}

func (h *MemoryHistory) Record(ctx context.Context, rec domain.RouteRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, rec)
	if h.max > 0 && len(h.records) > h.max {
		h.records = append([]domain.RouteRecord(nil), h.records[len(h.records)-h.max:]...)
	}
	return nil
}

func (h *MemoryHistory) List(ctx context.Context, limit int) ([]domain.RouteRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := len(h.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.RouteRecord, 0, n)
	for i := len(h.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h.records[i])
	}
	return out, nil
}
