package server

import (
	"encoding/json"
	"errors"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeNoteError sends a NoteError's status and client message. Wrapped
// causes stay in the logs.
func writeNoteError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var noteErr *NoteError
	if errors.As(err, &noteErr) {
		writeError(w, noteErr.StatusCode(), noteErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
