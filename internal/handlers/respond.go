package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"haulcentral/internal/models"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// encodeErrorLog receives payloads that cannot be encoded. It matches the
// errorLog format built in main.
var encodeErrorLog = log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

// writeJSON encodes payload before committing the status, so an encoding
// failure becomes a logged 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		encodeErrorLog.Output(2, fmt.Sprintf("encode response: %v", err))
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorBody{Error: http.StatusText(status)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		encodeErrorLog.Output(2, fmt.Sprintf("write response: %v", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// statusFor maps a service error to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrDuplicateEmail), errors.Is(err, models.ErrInvalidTransition), isDuplicateKeyError(err):
		return http.StatusConflict
	case isForeignKeyConstraintError(err):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrInvalidKeycode), errors.Is(err, models.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNoRecord), errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrLoadNotFound), errors.Is(err, models.ErrTruckNotFound),
		errors.Is(err, models.ErrAlertNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes err with the status statusFor picks. Server errors
// are logged with a stack trace and answered generically.
func respondError(w http.ResponseWriter, errorLog *log.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		if errorLog != nil {
			errorLog.Output(2, fmt.Sprintf("%s\n%s", err.Error(), debug.Stack()))
		}
		writeError(w, status, http.StatusText(status))
		return
	}

	body := errorBody{Error: err.Error()}
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		body.Field = verr.Field
	case isDuplicateKeyError(err):
		body.Error = "record already exists"
	case isForeignKeyConstraintError(err):
		body.Error = "referenced record does not exist"
	}
	writeJSON(w, status, body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// callerID returns the authenticated user id, answering 401 when the
// request carries none.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return id.UserID, true
}
