package session

import (
	"context"
	"errors"
	"strings"

	"notepad/internal/logging"
	"notepad/internal/types"
)

var ErrEmptyNote = errors.New("title and content must not be empty")

type NoteAPI interface {
	ListNotes(ctx context.Context) ([]*types.Note, error)
	CreateNote(ctx context.Context, input types.NoteInput) (*types.Note, error)
	UpdateNote(ctx context.Context, id int64, input types.NoteInput) (*types.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

type Notifier interface {
	Notify(level Level, message string)
}

type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

// ConfirmFunc asks the user a yes/no question. A nil ConfirmFunc declines.
type ConfirmFunc func(prompt string) bool

func AlwaysConfirm(string) bool { return true }

type Status int

const (
	StatusNone Status = iota
	StatusUnsaved
	StatusSaved
)

type Editor struct {
	Title   string
	Content string
	Enabled bool
}

type state struct {
	notes             []*types.Note
	selectedID        int64
	selected          bool
	dirty             bool
	editor            Editor
	synced            types.NoteInput
	status            Status
	deleteConfirmOpen bool
}

type SaveRequest struct {
	ID    int64
	Input types.NoteInput
}

// Manager owns the client-side session: the cached note list, the selected
// note, the editor buffer and the unsaved-changes flag. It is not safe for
// concurrent use; callers apply every operation from a single loop.
type Manager struct {
	api    NoteAPI
	notify Notifier
	logger logging.Logger
	state  state
}

func NewManager(api NoteAPI, notify Notifier, logger logging.Logger) *Manager {
	if notify == nil {
		notify = NotifierFunc(func(Level, string) {})
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{
		api:    api,
		notify: notify,
		logger: logger.With(logging.F("component", "session")),
		state:  state{notes: []*types.Note{}},
	}
}

func (m *Manager) LoadAll(ctx context.Context) error {
	notes, err := m.api.ListNotes(ctx)
	m.ApplyLoad(notes, err)
	return err
}

func (m *Manager) ApplyLoad(notes []*types.Note, err error) {
	if err != nil {
		m.logger.Error("load notes failed", logging.Err(err))
		m.notify.Notify(LevelError, msgLoadFailed)
		return
	}
	m.state.notes = cloneNotes(notes)
	m.logger.Debug("notes loaded", logging.F("count", len(notes)))
	if len(m.state.notes) == 0 {
		m.clearEditor()
		return
	}
	if !m.state.selected {
		return
	}
	note := m.find(m.state.selectedID)
	if note == nil {
		m.clearEditor()
		return
	}
	if !m.state.dirty {
		m.loadEditor(note)
	}
}

// Create sends a placeholder note. When the editor holds unsaved changes the
// user is asked first, since a successful create switches the selection.
func (m *Manager) Create(ctx context.Context, confirm ConfirmFunc) error {
	input, ok := m.BeginCreate(confirm)
	if !ok {
		return nil
	}
	note, err := m.api.CreateNote(ctx, input)
	m.ApplyCreate(note, err)
	return err
}

// BeginCreate discards unsaved edits once the user agrees to.
func (m *Manager) BeginCreate(confirm ConfirmFunc) (types.NoteInput, bool) {
	if m.state.dirty {
		if !ask(confirm, PromptDiscard) {
			return types.NoteInput{}, false
		}
		m.discardEdits()
	}
	return types.NoteInput{Title: DefaultTitle, Content: DefaultContent}, true
}

func (m *Manager) ApplyCreate(note *types.Note, err error) {
	if err == nil && note == nil {
		err = errors.New("empty create response")
	}
	if err != nil {
		m.logger.Error("create note failed", logging.Err(err))
		m.notify.Notify(LevelError, msgCreateFailed)
		return
	}
	created := note.Clone()
	m.state.notes = append([]*types.Note{created}, m.state.notes...)
	if m.state.dirty {
		// Edits made while the request was in flight keep the selection.
		m.logger.Info("note created", logging.F("note_id", created.ID), logging.F("selected", false))
		m.notify.Notify(LevelSuccess, msgCreated)
		return
	}
	m.loadEditor(created)
	m.logger.Info("note created", logging.F("note_id", created.ID))
	m.notify.Notify(LevelSuccess, msgCreated)
}

// NeedsDiscardConfirm reports whether switching to id would drop edits.
func (m *Manager) NeedsDiscardConfirm(id int64) bool {
	return m.state.dirty && m.state.selected && m.state.selectedID != id
}

// Select switches the editor to id. It returns false when id is unknown or
// the user declined to discard unsaved edits.
func (m *Manager) Select(id int64, confirm ConfirmFunc) bool {
	note := m.find(id)
	if note == nil {
		return false
	}
	if m.NeedsDiscardConfirm(id) && !ask(confirm, PromptDiscard) {
		return false
	}
	m.loadEditor(note)
	return true
}

func (m *Manager) Save(ctx context.Context) error {
	req, err := m.BeginSave()
	if err != nil {
		return err
	}
	if req == nil {
		return nil
	}
	note, err := m.api.UpdateNote(ctx, req.ID, req.Input)
	m.ApplySave(*req, note, err)
	return err
}

// BeginSave validates the editor. It returns a nil request when nothing is
// selected and ErrEmptyNote when the trimmed title or content is empty.
func (m *Manager) BeginSave() (*SaveRequest, error) {
	if !m.state.selected {
		return nil, nil
	}
	input := types.NoteInput{
		Title:   strings.TrimSpace(m.state.editor.Title),
		Content: strings.TrimSpace(m.state.editor.Content),
	}
	if input.Title == "" || input.Content == "" {
		m.logger.Warn("save rejected", logging.F("note_id", m.state.selectedID), logging.Err(ErrEmptyNote))
		m.notify.Notify(LevelError, msgEmptyNote)
		return nil, ErrEmptyNote
	}
	return &SaveRequest{ID: m.state.selectedID, Input: input}, nil
}

func (m *Manager) ApplySave(req SaveRequest, note *types.Note, err error) {
	if err == nil && note == nil {
		err = errors.New("empty update response")
	}
	if err != nil {
		m.logger.Error("save note failed", logging.F("note_id", req.ID), logging.Err(err))
		m.notify.Notify(LevelError, msgSaveFailed)
		return
	}
	updated := note.Clone()
	for i, existing := range m.state.notes {
		if existing.ID == req.ID {
			m.state.notes[i] = updated
			break
		}
	}
	if m.state.selected && m.state.selectedID == req.ID {
		m.loadEditor(updated)
		m.state.status = StatusSaved
	}
	m.logger.Info("note saved", logging.F("note_id", req.ID))
	m.notify.Notify(LevelSuccess, msgSaved)
}

func (m *Manager) RequestDelete() bool {
	if !m.state.selected {
		return false
	}
	m.state.deleteConfirmOpen = true
	return true
}

func (m *Manager) CancelDelete() {
	m.state.deleteConfirmOpen = false
}

func (m *Manager) ConfirmDelete(ctx context.Context) error {
	id, ok := m.BeginDelete()
	if !ok {
		return nil
	}
	err := m.api.DeleteNote(ctx, id)
	m.ApplyDelete(id, err)
	return err
}

func (m *Manager) BeginDelete() (int64, bool) {
	if !m.state.selected {
		return 0, false
	}
	return m.state.selectedID, true
}

func (m *Manager) ApplyDelete(id int64, err error) {
	if err != nil {
		m.logger.Error("delete note failed", logging.F("note_id", id), logging.Err(err))
		m.notify.Notify(LevelError, msgDeleteFailed)
		return
	}
	kept := m.state.notes[:0]
	for _, note := range m.state.notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	m.state.notes = kept
	m.clearEditor()
	m.state.deleteConfirmOpen = false
	m.logger.Info("note deleted", logging.F("note_id", id))
	m.notify.Notify(LevelSuccess, msgDeleted)
}

// OnEditorEdited records the editor text. Edits without a selection are
// ignored.
func (m *Manager) OnEditorEdited(title, content string) {
	if !m.state.selected {
		return
	}
	m.state.editor.Title = title
	m.state.editor.Content = content
	m.state.dirty = title != m.state.synced.Title || content != m.state.synced.Content
	if m.state.dirty {
		m.state.status = StatusUnsaved
	} else {
		m.state.status = StatusSaved
	}
}

// CanLeave is false while edits are unsaved.
func (m *Manager) CanLeave() bool {
	return !m.state.dirty
}

func (m *Manager) Notes() []*types.Note {
	return cloneNotes(m.state.notes)
}

func (m *Manager) SelectedID() (int64, bool) {
	return m.state.selectedID, m.state.selected
}

func (m *Manager) Dirty() bool {
	return m.state.dirty
}

func (m *Manager) Editor() Editor {
	return m.state.editor
}

func (m *Manager) Status() Status {
	return m.state.status
}

func (m *Manager) DeleteConfirmOpen() bool {
	return m.state.deleteConfirmOpen
}

func (m *Manager) loadEditor(note *types.Note) {
	m.state.selectedID = note.ID
	m.state.selected = true
	m.state.editor = Editor{Title: note.Title, Content: note.Content, Enabled: true}
	m.state.synced = types.NoteInput{Title: note.Title, Content: note.Content}
	m.state.dirty = false
	m.state.status = StatusNone
}

func (m *Manager) discardEdits() {
	m.state.editor.Title = m.state.synced.Title
	m.state.editor.Content = m.state.synced.Content
	m.state.dirty = false
	m.state.status = StatusNone
}

func (m *Manager) clearEditor() {
	m.state.selectedID = 0
	m.state.selected = false
	m.state.editor = Editor{}
	m.state.synced = types.NoteInput{}
	m.state.dirty = false
	m.state.status = StatusNone
}

func (m *Manager) find(id int64) *types.Note {
	for _, note := range m.state.notes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

func ask(confirm ConfirmFunc, prompt string) bool {
	if confirm == nil {
		return false
	}
	return confirm(prompt)
}

func cloneNotes(notes []*types.Note) []*types.Note {
	out := make([]*types.Note, 0, len(notes))
	for _, note := range notes {
		if note == nil {
			continue
		}
		out = append(out, note.Clone())
	}
	return out
}
