package main

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Request and response shapes for the action endpoint

// ActionRequest names the action to run and carries its raw input, which
// the action's handler decodes against its declared schema.
type ActionRequest struct {
	Action string          `json:"action"`
	Input  json.RawMessage `json:"input,omitempty"`
}

// ActionResponse carries the rendered result of one action execution.
type ActionResponse struct {
	Provider string `json:"provider"`
	Action   string `json:"action"`
	Result   string `json:"result"`
}

// ActionDescriptor is one catalog entry in the /actions listing.
type ActionDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Schema      map[string]interface{} `json:"schema"`
}

// decodeRequest parses the JSON request body into dst.
func decodeRequest(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Warnf("Error encoding response: %v", err)
	}
}

// errorResponse returns a formatted error response
func errorResponse(w http.ResponseWriter, statusCode int, errorMsg string) {
	logrus.Warn(errorMsg)
	writeJSON(w, statusCode, map[string]interface{}{
		"status": "error",
		"error":  errorMsg,
	})
}
