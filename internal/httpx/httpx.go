package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"freshcart-be/internal/logger"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// FieldError is a single invalid field in a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type envelope struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, statusCode int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.L().Error("failed to write response", zap.Error(err))
	}
}

// Success writes {"status":"success","data":...}.
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	write(w, statusCode, envelope{Status: "success", Data: data})
}

// Fail writes a client-error envelope with status "fail".
func Fail(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, envelope{Status: "fail", Message: message})
}

// FailFields writes a validation envelope listing the offending fields.
func FailFields(w http.ResponseWriter, message string, fields ...FieldError) {
	write(w, http.StatusBadRequest, envelope{Status: "fail", Message: message, Errors: fields})
}

// Error writes a server-error envelope with status "error".
func Error(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, envelope{Status: "error", Message: message})
}

// DecodeJSON reads the request body into dst, capping the body size.
func DecodeJSON(r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer io.Copy(io.Discard, body)

	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}
