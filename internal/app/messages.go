package app

import (
	"time"

	"notepad/internal/session"
	"notepad/internal/types"
)

type notesMsg struct {
	notes []*types.Note
	err   error
}

type noteCreatedMsg struct {
	note *types.Note
	err  error
}

type noteSavedMsg struct {
	req  session.SaveRequest
	note *types.Note
	err  error
}

type noteDeletedMsg struct {
	id  int64
	err error
}

type tickMsg time.Time
