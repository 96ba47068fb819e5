package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"notepad/internal/logging"
	"notepad/internal/types"
)

const maxBodyBytes = 1 << 20

type API struct {
	Notes  *NoteService
	Logger logging.Logger
}

type noteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (r noteRequest) input() types.NoteInput {
	var input types.NoteInput
	if r.Title != nil {
		input.Title = *r.Title
	}
	if r.Content != nil {
		input.Content = *r.Content
	}
	return input
}

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", a.Health)
	mux.HandleFunc("/api/notes", a.NotesCollection)
	mux.HandleFunc("/api/notes/", a.NoteByID)
	mux.HandleFunc("/", a.NotFound)
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"storage": a.Notes.Backend(),
	})
}

func (a *API) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgEndpointNotFound)
}

func (a *API) NotesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		notes, err := a.Notes.List(r.Context())
		if err != nil {
			a.logFailure(r, err)
			writeNoteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, notes)
	case http.MethodPost:
		req, err := decodeNoteRequest(r)
		if err != nil || req.Title == nil || req.Content == nil {
			writeError(w, http.StatusBadRequest, msgFieldsRequired)
			return
		}
		note, err := a.Notes.Create(r.Context(), req.input())
		if err != nil {
			a.logFailure(r, err)
			writeNoteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, note)
	default:
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

func (a *API) NoteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseNoteID(r.URL.Path)
	if !ok {
		a.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		note, err := a.Notes.Get(r.Context(), id)
		if err != nil {
			a.logFailure(r, err)
			writeNoteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, note)
	case http.MethodPut:
		req, err := decodeNoteRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgBodyRequired)
			return
		}
		note, err := a.Notes.Update(r.Context(), id, req.input())
		if err != nil {
			a.logFailure(r, err)
			writeNoteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, note)
	case http.MethodDelete:
		if err := a.Notes.Delete(r.Context(), id); err != nil {
			a.logFailure(r, err)
			writeNoteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": msgNoteDeleted})
	default:
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

// parseNoteID accepts /api/notes/{id} with a positive integer id.
func parseNoteID(path string) (int64, bool) {
	raw := strings.Trim(strings.TrimPrefix(path, "/api/notes/"), "/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeNoteRequest(r *http.Request) (noteRequest, error) {
	var req noteRequest
	if r.Body == nil {
		return req, io.EOF
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		return noteRequest{}, err
	}
	return req, nil
}

func (a *API) logFailure(r *http.Request, err error) {
	var noteErr *NoteError
	if errors.As(err, &noteErr) && noteErr.Kind != NoteErrorUnavailable {
		return
	}
	logger := a.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	logger.Error("note store failure",
		logging.F("method", r.Method),
		logging.F("path", r.URL.Path),
		logging.Err(err),
	)
}
