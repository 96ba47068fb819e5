package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"notepad/internal/types"
)

const (
	BackendBbolt = "bbolt"
	BackendFile  = "file"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrInvalidNote  = errors.New("title and content cannot be empty")
)

// NoteStore persists notes for the reference service. Implementations are
// safe for concurrent use.
type NoteStore interface {
	// List returns every note, most recently updated first.
	List(ctx context.Context) ([]*types.Note, error)
	Get(ctx context.Context, id int64) (*types.Note, bool, error)
	Create(ctx context.Context, input types.NoteInput) (*types.Note, error)
	Update(ctx context.Context, id int64, input types.NoteInput) (*types.Note, error)
	Delete(ctx context.Context, id int64) error
	Backend() string
	Close() error
}

func Open(backend, path string) (NoteStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendBbolt:
		return NewBboltNoteStore(path)
	case BackendFile, "json":
		return NewFileNoteStore(path)
	default:
		return nil, fmt.Errorf("unknown note store backend %q", backend)
	}
}

func normalizeInput(input types.NoteInput) (types.NoteInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	if input.Title == "" || input.Content == "" {
		return types.NoteInput{}, ErrInvalidNote
	}
	return input, nil
}

func newNote(id int64, input types.NoteInput, now time.Time) *types.Note {
	ts := types.NewTimestamp(now)
	return &types.Note{
		ID:        id,
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func applyInput(note *types.Note, input types.NoteInput, now time.Time) *types.Note {
	updated := note.Clone()
	updated.Title = input.Title
	updated.Content = input.Content
	updated.UpdatedAt = types.NewTimestamp(now)
	return updated
}

func sortNotes(notes []*types.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i].UpdatedAt.Time, notes[j].UpdatedAt.Time
		if a.Equal(b) {
			return notes[i].ID > notes[j].ID
		}
		return a.After(b)
	})
}
