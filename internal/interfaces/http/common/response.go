package common

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/surveyflow/surveyflow-services/api/pkg/fault"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("failed to encode JSON response: %v", err)
	}
}

// WriteError translates a service error into an HTTP status and a
// {"error": ...} body. This is the single point where the fault
// taxonomy meets HTTP.
func WriteError(logger *log.Logger, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch fault.KindOf(err) {
	case fault.KindValidation, fault.KindConflict:
		status = http.StatusBadRequest
	case fault.KindAuth:
		status = http.StatusUnauthorized
	case fault.KindNotFound:
		status = http.StatusNotFound
	case fault.KindInternal:
		if logger != nil {
			logger.Printf("internal error: %v", err)
		}
	}
	WriteJSON(logger, w, status, map[string]string{"error": fault.MessageOf(err)})
}
