package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"restaurantcore/pkg/domain"
)

const maxBodyBytes = 1 << 20

var errInvalidID = errors.New("invalid id")

type errorResponse struct {
	Error      string             `json:"error"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must hold a single JSON value")
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w %q", errInvalidID, raw)
	}
	return id, nil
}

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPreconditionFailed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvariantViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConstraintConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorResponse{Error: err.Error(), Violations: domain.Violations(err)}
	if status == http.StatusInternalServerError {
		h.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
		body = errorResponse{Error: "the server encountered a problem and could not process your request"}
	}
	if werr := writeJSON(w, status, body); werr != nil {
		h.logger.Errorw("write error response", "error", werr)
	}
}

func (h *Handler) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err)
	if werr := writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()}); werr != nil {
		h.logger.Errorw("write error response", "error", werr)
	}
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		h.logger.Errorw("write response", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}
