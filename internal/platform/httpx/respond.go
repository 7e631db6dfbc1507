// Package httpx provides JSON request/response utilities shared by handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// MessageBody is the wire shape of message-only responses, success and error alike.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends an error response with a client-facing message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// DecodeJSON decodes JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
