package handlers

import (
	"net/http"
	"sync"

	"logistics-route-service/internal/platform/sysinfo"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}
	writeJSON(w, r, http.StatusOK, res)
}

var hostInfo = sync.OnceValue(sysinfo.Collect)

// Debug reports the host the service runs on. The probe runs once per process.
func Debug(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, hostInfo())
}
