package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"reachout/internal/gateway"
	"reachout/internal/genai"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSuccess sends the uniform success envelope with payload merged in.
func writeSuccess(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

// writeFailure sends the uniform failure envelope.
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}

func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeClientError maps a client error to the failure envelope. Errors from
// the known taxonomy carry their message through; anything unanticipated is
// suppressed to a generic message in production.
func writeClientError(w http.ResponseWriter, err error, production bool) {
	var upstream *gateway.UpstreamError
	var cred *genai.CredentialError
	var gen *genai.GenerationError
	switch {
	case errors.As(err, &upstream),
		errors.As(err, &cred),
		errors.As(err, &gen),
		errors.Is(err, genai.ErrMissingAPIKey):
		writeFailure(w, http.StatusInternalServerError, err.Error())
	default:
		msg := err.Error()
		if production {
			msg = "Internal server error"
		}
		writeFailure(w, http.StatusInternalServerError, msg)
	}
}
