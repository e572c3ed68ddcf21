package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
	"github.com/ukaji3/sheetimport-go/pkg/store"
	"go.uber.org/zap"
)

// requestError is a client mistake in the form data.
type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr),
		errors.Is(err, sheetimport.ErrInvalidOptions),
		errors.Is(err, store.ErrInvalidIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, sheetimport.ErrWorksheetNotFound),
		errors.Is(err, sheetimport.ErrMalformedFile):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sheetimport.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrNoStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
