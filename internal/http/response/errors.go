package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// MessageResponse is the user-visible error envelope: a JSON object
// with a message field and nothing else.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// Unauthorized is the response for a missing, invalid, or expired token.
func Unauthorized(w http.ResponseWriter) {
	WriteMessage(w, http.StatusUnauthorized, "unauthorized access")
}

// Forbidden is the response for a valid identity with insufficient role.
func Forbidden(w http.ResponseWriter) {
	WriteMessage(w, http.StatusForbidden, "forbidden access")
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusBadRequest, message)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusNotFound, message)
}

// InternalError surfaces upstream failures as a generic server error
// instead of crashing the process.
func InternalError(w http.ResponseWriter) {
	WriteMessage(w, http.StatusInternalServerError, "internal server error")
}

func RateLimit(w http.ResponseWriter) {
	WriteMessage(w, http.StatusTooManyRequests, "too many requests")
}
