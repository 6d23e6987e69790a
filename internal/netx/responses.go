package netx

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope of every JSON API answer
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AuthResponse represents authentication-related responses
type AuthResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
	Token    string `json:"token,omitempty"`
}

// WriteJSON writes a JSON response with the specified status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 response carrying data
func WriteSuccess(w http.ResponseWriter, message string, data interface{}) error {
	return WriteJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteError writes an error response; err may be nil
func WriteError(w http.ResponseWriter, statusCode int, message string, err error) error {
	response := APIResponse{Message: message}
	if err != nil {
		response.Error = err.Error()
	}
	return WriteJSON(w, statusCode, response)
}

// WriteAuthSuccess writes a successful authentication response
func WriteAuthSuccess(w http.ResponseWriter, message string, username string) error {
	return WriteAuthSuccessWithToken(w, message, username, "")
}

// WriteAuthSuccessWithToken writes a successful authentication response with token
func WriteAuthSuccessWithToken(w http.ResponseWriter, message string, username string, token string) error {
	return WriteJSON(w, http.StatusOK, AuthResponse{
		Success:  true,
		Message:  message,
		Username: username,
		Token:    token,
	})
}

func WriteMethodNotAllowed(w http.ResponseWriter) error {
	return WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message, nil)
}

func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusUnauthorized, AuthResponse{Message: message})
}

// WriteUnavailable tells the client to retry once the agent has data
func WriteUnavailable(w http.ResponseWriter, message string) error {
	w.Header().Set("Retry-After", "5")
	return WriteError(w, http.StatusServiceUnavailable, message, nil)
}

func WriteInternalServerError(w http.ResponseWriter, message string, err error) error {
	return WriteError(w, http.StatusInternalServerError, message, err)
}
