package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	apperror "logistics-route-service/internal/errors"
	"logistics-route-service/internal/platform/obs"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, category, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg, "category": category})
}

// writeAppError maps err to its HTTP status. Server-side failures are logged
// and their details withheld from the client.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status, category, msg := apperror.MapToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
		msg = "internal server error"
	}
	writeError(w, r, status, category, msg)
}

// decodeJSON reads exactly one JSON object with no unknown fields into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return apperror.NewInvalidRequestError("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperror.NewInvalidRequestError("body must contain only one JSON object")
	}
	return nil
}

// queryInt reads a positive integer query parameter, or fallback when absent.
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperror.NewInvalidRequestError("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
