package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notepad/internal/types"
)

func TestListNotesDecodesArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/notes" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":2,"title":"b","content":"y","created_at":"2024-01-01T00:00:00","updated_at":"2024-01-02T00:00:00"},{"id":1,"title":"a","content":"x","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`))
	}))
	defer server.Close()

	c := New(server.URL + "/api/")
	notes, err := c.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != 2 || notes[1].Title != "a" {
		t.Fatalf("unexpected notes: %#v", notes)
	}
}

func TestListNotesTreatsNullAsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer server.Close()

	notes, err := New(server.URL).ListNotes(context.Background())
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if notes == nil || len(notes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", notes)
	}
}

func TestCreateAndUpdateSendOnlyEditableFields(t *testing.T) {
	var bodies []map[string]any
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)
		bodies = append(bodies, body)
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		status := http.StatusOK
		if r.Method == http.MethodPost {
			status = http.StatusCreated
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"id":5,"title":"t","content":"c","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()
	created, err := c.CreateNote(ctx, types.NoteInput{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if created.ID != 5 {
		t.Fatalf("unexpected created note: %#v", created)
	}
	if _, err := c.UpdateNote(ctx, 5, types.NoteInput{Title: "t2", Content: "c2"}); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	if strings.Join(paths, ",") != "POST /notes,PUT /notes/5" {
		t.Fatalf("unexpected requests: %v", paths)
	}
	for _, body := range bodies {
		if len(body) != 2 {
			t.Fatalf("expected exactly title and content, got %#v", body)
		}
	}
	if bodies[1]["title"] != "t2" || bodies[1]["content"] != "c2" {
		t.Fatalf("unexpected update body: %#v", bodies[1])
	}
}

func TestDeleteNoteIgnoresBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/notes/7" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"message":"Note deleted successfully"}`))
	}))
	defer server.Close()

	if err := New(server.URL).DeleteNote(context.Background(), 7); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
}

func TestErrorResponsesBecomeAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notes/1":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Note not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GetNote(context.Background(), 1)
	if !IsNotFound(err) {
		t.Fatalf("expected not found api error, got %v", err)
	}
	if apiErr := AsAPIError(err); apiErr.Message != "Note not found" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}

	_, err = c.ListNotes(context.Background())
	apiErr := AsAPIError(err)
	if apiErr == nil || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 api error, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "500") {
		t.Fatalf("expected status text fallback, got %q", apiErr.Message)
	}
}

func TestClientTimeoutSurfacesAsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(server.URL, WithTimeout(10*time.Millisecond))
	if _, err := c.ListNotes(context.Background()); err == nil {
		t.Fatalf("expected timeout error")
	}
	if AsAPIError(nil) != nil {
		t.Fatalf("expected nil api error for nil")
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","storage":"json"}`))
	}))
	defer server.Close()

	resp, err := New(server.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if resp.Status != "ok" || resp.Storage != "json" {
		t.Fatalf("unexpected health: %#v", resp)
	}
}
