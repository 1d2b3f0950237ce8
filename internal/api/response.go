package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fabianfernandess/FitQuest/internal/models"
)

// fallbackErrorBody is the response written when the intended body itself
// fails to marshal. Built once at startup so the failure path has nothing
// left to fail on.
var fallbackErrorBody = func() []byte {
	body, err := json.Marshal(models.Error("internal server error"))
	if err != nil {
		panic("api: cannot marshal fallback error body: " + err.Error())
	}
	return body
}()

// writeJSON marshals the envelope before touching the ResponseWriter so a
// marshal failure can still downgrade the status code.
func writeJSON(w http.ResponseWriter, statusCode int, envelope models.APIResponse) {
	body, err := json.Marshal(envelope)
	if err != nil {
		slog.Error("Server.writeJSON: failed to marshal response envelope", "error", err, "status", statusCode)
		body = fallbackErrorBody
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		slog.Error("Server.writeJSON: failed to write response", "error", err)
	}
}
