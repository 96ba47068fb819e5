package server

import (
	"context"

	"notepad/internal/store"
	"notepad/internal/types"
)

const (
	msgNoteNotFound     = "Note not found"
	msgFieldsRequired   = "Title and content are required"
	msgFieldsEmpty      = "Title and content cannot be empty"
	msgBodyRequired     = "Request body is required"
	msgEndpointNotFound = "endpoint not found"
	msgMethodNotAllowed = "method not allowed"
	msgNoteDeleted      = "Note deleted successfully"
)

type NoteService struct {
	notes store.NoteStore
}

func NewNoteService(notes store.NoteStore) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) List(ctx context.Context) ([]*types.Note, error) {
	if s.notes == nil {
		return nil, storeMissingError(opList)
	}
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, noteStoreError(opList, 0, err)
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, id int64) (*types.Note, error) {
	if s.notes == nil {
		return nil, storeMissingError(opGet)
	}
	note, ok, err := s.notes.Get(ctx, id)
	if err != nil {
		return nil, noteStoreError(opGet, id, err)
	}
	if !ok {
		return nil, noteStoreError(opGet, id, store.ErrNoteNotFound)
	}
	return note, nil
}

func (s *NoteService) Create(ctx context.Context, input types.NoteInput) (*types.Note, error) {
	if s.notes == nil {
		return nil, storeMissingError(opCreate)
	}
	note, err := s.notes.Create(ctx, input)
	if err != nil {
		return nil, noteStoreError(opCreate, 0, err)
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, id int64, input types.NoteInput) (*types.Note, error) {
	if s.notes == nil {
		return nil, storeMissingError(opUpdate)
	}
	note, err := s.notes.Update(ctx, id, input)
	if err != nil {
		return nil, noteStoreError(opUpdate, id, err)
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	if s.notes == nil {
		return storeMissingError(opDelete)
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		return noteStoreError(opDelete, id, err)
	}
	return nil
}

func (s *NoteService) Backend() string {
	if s.notes == nil {
		return ""
	}
	return s.notes.Backend()
}
