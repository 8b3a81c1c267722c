package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the standard success envelope
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes an arbitrary JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Success writes a success envelope with optional message and data
func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// SuccessWithCount writes a success envelope including an item count
func SuccessWithCount(w http.ResponseWriter, status int, count int, data any) {
	JSON(w, status, Envelope{Success: true, Count: &count, Data: data})
}
