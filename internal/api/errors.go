package api

import (
	"errors"
	"net/http"

	"github.com/pable/go-cricket-metrics/internal/mining"
	"github.com/pable/go-cricket-metrics/internal/segment"
	"github.com/pable/go-cricket-metrics/internal/winprob"
)

var ErrBadRequest = errors.New("bad request")

// classify maps a domain error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, segment.ErrInsufficientData):
		return http.StatusUnprocessableEntity, "insufficient_data"
	case errors.Is(err, mining.ErrInvalidThreshold):
		return http.StatusBadRequest, "invalid_threshold"
	case errors.Is(err, winprob.ErrMalformedInput):
		return http.StatusBadRequest, "malformed_input"
	case errors.Is(err, segment.ErrUnknownMethod), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "request_id", requestIDFrom(r.Context()), "error", err)
	} else {
		s.log.Debug("request rejected", "path", r.URL.Path, "code", code, "error", err)
	}
	writeError(w, status, code, err)
}
