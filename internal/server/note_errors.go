package server

import (
	"errors"
	"fmt"
	"net/http"

	"notepad/internal/store"
)

type noteOp string

const (
	opList   noteOp = "list"
	opGet    noteOp = "get"
	opCreate noteOp = "create"
	opUpdate noteOp = "update"
	opDelete noteOp = "delete"
)

// Messages sent when the store itself fails, phrased as the legacy service
// phrased them.
var opFailureMessages = map[noteOp]string{
	opList:   "Failed to list notes",
	opGet:    "Failed to load note",
	opCreate: "Failed to save note",
	opUpdate: "Failed to update note",
	opDelete: "Failed to delete note",
}

type NoteErrorKind string

const (
	NoteErrorInvalid     NoteErrorKind = "invalid"
	NoteErrorNotFound    NoteErrorKind = "not_found"
	NoteErrorUnavailable NoteErrorKind = "unavailable"
)

// NoteError is a failed note operation. Message is what the client sees;
// Err stays in the logs.
type NoteError struct {
	Kind    NoteErrorKind
	Op      noteOp
	NoteID  int64
	Message string
	Err     error
}

func (e *NoteError) Error() string {
	if e == nil {
		return ""
	}
	subject := "notes"
	if e.NoteID > 0 {
		subject = fmt.Sprintf("note %d", e.NoteID)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, subject, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, subject, e.Message)
}

func (e *NoteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *NoteError) StatusCode() int {
	switch e.Kind {
	case NoteErrorInvalid:
		return http.StatusBadRequest
	case NoteErrorNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// noteStoreError classifies a store failure: rejected fields and missing
// notes are the caller's problem, anything else is the store's.
func noteStoreError(op noteOp, id int64, err error) *NoteError {
	switch {
	case errors.Is(err, store.ErrInvalidNote):
		return &NoteError{Kind: NoteErrorInvalid, Op: op, NoteID: id, Message: msgFieldsEmpty, Err: err}
	case errors.Is(err, store.ErrNoteNotFound):
		return &NoteError{Kind: NoteErrorNotFound, Op: op, NoteID: id, Message: msgNoteNotFound, Err: err}
	default:
		return &NoteError{Kind: NoteErrorUnavailable, Op: op, NoteID: id, Message: opFailureMessages[op], Err: err}
	}
}

func storeMissingError(op noteOp) *NoteError {
	return &NoteError{Kind: NoteErrorUnavailable, Op: op, Message: "note store not available"}
}
