package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"vehicle-route-optimizer/internal/api/dto"
	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/platform/obs"
)

// maxBodyBytes bounds request bodies; a 1000-node matrix is roughly 6 MB of JSON.
const maxBodyBytes = 32 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps invalid input to 400 and hides everything else behind a logged 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("%s failed: req_id=%s err=%v", op, obs.RequestID(r.Context()), err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeBody reads exactly one JSON object into v, rejecting unknown fields.
// On failure the response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// timeBudget resolves an optional millisecond budget against the default.
func timeBudget(ms *int64, fallback, limit time.Duration) (time.Duration, bool) {
	if ms == nil {
		return fallback, true
	}
	d := time.Duration(*ms) * time.Millisecond
	if *ms < 0 || d > limit {
		return 0, false
	}
	return d, true
}

func routeLists(routes []domain.Route) [][]int {
	out := make([][]int, len(routes))
	for i, r := range routes {
		out[i] = []int(r)
	}
	return out
}

func pointDTOs(points []domain.Point) []dto.PointDTO {
	out := make([]dto.PointDTO, len(points))
	for i, p := range points {
		out[i] = dto.PointDTO{X: p.X, Y: p.Y}
	}
	return out
}
