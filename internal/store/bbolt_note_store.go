package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"notepad/internal/types"
)

var bucketNotes = []byte("notes")

type BboltNoteStore struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBboltNoteStore(path string) (*BboltNoteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("note db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketNotes)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BboltNoteStore{db: db, now: time.Now}, nil
}

func (s *BboltNoteStore) Backend() string {
	return BackendBbolt
}

func (s *BboltNoteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BboltNoteStore) List(ctx context.Context) ([]*types.Note, error) {
	out := make([]*types.Note, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var note types.Note
			if err := json.Unmarshal(v, &note); err != nil {
				return err
			}
			out = append(out, &note)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortNotes(out)
	return out, nil
}

func (s *BboltNoteStore) Get(ctx context.Context, id int64) (*types.Note, bool, error) {
	var note *types.Note
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		found, err := readNote(b, id)
		note = found
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return note, note != nil, nil
}

func (s *BboltNoteStore) Create(ctx context.Context, input types.NoteInput) (*types.Note, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}
	var created *types.Note
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errors.New("notes bucket missing")
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		created = newNote(int64(seq), input, s.now())
		return writeNote(b, created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *BboltNoteStore) Update(ctx context.Context, id int64, input types.NoteInput) (*types.Note, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}
	var updated *types.Note
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errors.New("notes bucket missing")
		}
		existing, err := readNote(b, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNoteNotFound
		}
		updated = applyInput(existing, input, s.now())
		return writeNote(b, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *BboltNoteStore) Delete(ctx context.Context, id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errors.New("notes bucket missing")
		}
		key := noteKey(id)
		if b.Get(key) == nil {
			return ErrNoteNotFound
		}
		return b.Delete(key)
	})
}

func noteKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func readNote(b *bolt.Bucket, id int64) (*types.Note, error) {
	raw := b.Get(noteKey(id))
	if len(raw) == 0 {
		return nil, nil
	}
	var note types.Note
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func writeNote(b *bolt.Bucket, note *types.Note) error {
	raw, err := json.Marshal(note)
	if err != nil {
		return err
	}
	return b.Put(noteKey(note.ID), raw)
}
