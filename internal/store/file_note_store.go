package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"notepad/internal/types"
)

// FileNoteStore keeps every note in a single JSON array file. Ids are
// max(id)+1.
type FileNoteStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewFileNoteStore(path string) (*FileNoteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("note file path is required")
	}
	return &FileNoteStore{path: path, now: time.Now}, nil
}

func (s *FileNoteStore) Backend() string {
	return BackendFile
}

func (s *FileNoteStore) Close() error {
	return nil
}

func (s *FileNoteStore) List(ctx context.Context) ([]*types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return nil, err
	}
	sortNotes(notes)
	return notes, nil
}

func (s *FileNoteStore) Get(ctx context.Context, id int64) (*types.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return nil, false, err
	}
	for _, note := range notes {
		if note.ID == id {
			return note, true, nil
		}
	}
	return nil, false, nil
}

func (s *FileNoteStore) Create(ctx context.Context, input types.NoteInput) (*types.Note, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return nil, err
	}
	var maxID int64
	for _, note := range notes {
		if note.ID > maxID {
			maxID = note.ID
		}
	}
	created := newNote(maxID+1, input, s.now())
	if err := s.save(append(notes, created)); err != nil {
		return nil, err
	}
	return created.Clone(), nil
}

func (s *FileNoteStore) Update(ctx context.Context, id int64, input types.NoteInput) (*types.Note, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return nil, err
	}
	for i, note := range notes {
		if note.ID != id {
			continue
		}
		notes[i] = applyInput(note, input, s.now())
		if err := s.save(notes); err != nil {
			return nil, err
		}
		return notes[i].Clone(), nil
	}
	return nil, ErrNoteNotFound
}

func (s *FileNoteStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return err
	}
	kept := notes[:0]
	found := false
	for _, note := range notes {
		if note.ID == id {
			found = true
			continue
		}
		kept = append(kept, note)
	}
	if !found {
		return ErrNoteNotFound
	}
	return s.save(kept)
}

// load treats a missing or empty file as an empty collection.
func (s *FileNoteStore) load() ([]*types.Note, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*types.Note{}, nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []*types.Note{}, nil
	}
	var notes []*types.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, err
	}
	out := make([]*types.Note, 0, len(notes))
	for _, note := range notes {
		if note != nil {
			out = append(out, note)
		}
	}
	return out, nil
}

func (s *FileNoteStore) save(notes []*types.Note) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	file, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(notes); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(file.Name(), s.path)
}
