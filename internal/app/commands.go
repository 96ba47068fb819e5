package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"notepad/internal/session"
	"notepad/internal/types"
)

const tickInterval = 250 * time.Millisecond

func fetchNotesCmd(api session.NoteAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		notes, err := api.ListNotes(ctx)
		return notesMsg{notes: notes, err: err}
	}
}

func createNoteCmd(api session.NoteAPI, input types.NoteInput, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		note, err := api.CreateNote(ctx, input)
		return noteCreatedMsg{note: note, err: err}
	}
}

func saveNoteCmd(api session.NoteAPI, req session.SaveRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		note, err := api.UpdateNote(ctx, req.ID, req.Input)
		return noteSavedMsg{req: req, note: note, err: err}
	}
}

func deleteNoteCmd(api session.NoteAPI, id int64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := api.DeleteNote(ctx, id)
		return noteDeletedMsg{id: id, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
