package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"notepad/internal/types"
)

type fakeNoteAPI struct {
	notes     []*types.Note
	nextID    int64
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	calls     []string
	lastInput types.NoteInput
	clock     time.Time
}

func newFakeNoteAPI(notes ...*types.Note) *fakeNoteAPI {
	api := &fakeNoteAPI{nextID: 1, clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	for _, note := range notes {
		api.notes = append(api.notes, note.Clone())
		if note.ID >= api.nextID {
			api.nextID = note.ID + 1
		}
	}
	return api
}

func (f *fakeNoteAPI) ListNotes(context.Context) ([]*types.Note, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return cloneNotes(f.notes), nil
}

func (f *fakeNoteAPI) CreateNote(_ context.Context, input types.NoteInput) (*types.Note, error) {
	f.calls = append(f.calls, "create")
	f.lastInput = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	note := &types.Note{
		ID:        f.nextID,
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: types.NewTimestamp(f.clock),
		UpdatedAt: types.NewTimestamp(f.clock),
	}
	f.nextID++
	f.notes = append(f.notes, note)
	return note.Clone(), nil
}

func (f *fakeNoteAPI) UpdateNote(_ context.Context, id int64, input types.NoteInput) (*types.Note, error) {
	f.calls = append(f.calls, "update")
	f.lastInput = input
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, note := range f.notes {
		if note.ID == id {
			note.Title = input.Title
			note.Content = input.Content
			note.UpdatedAt = types.NewTimestamp(f.clock.Add(time.Minute))
			return note.Clone(), nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeNoteAPI) DeleteNote(_ context.Context, id int64) error {
	f.calls = append(f.calls, "delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.notes[:0]
	for _, note := range f.notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	f.notes = kept
	return nil
}

type notification struct {
	level   Level
	message string
}

type recordingNotifier struct {
	got []notification
}

func (r *recordingNotifier) Notify(level Level, message string) {
	r.got = append(r.got, notification{level: level, message: message})
}

func (r *recordingNotifier) last() notification {
	if len(r.got) == 0 {
		return notification{}
	}
	return r.got[len(r.got)-1]
}

func decline(string) bool { return false }

func sampleNote(id int64, title, content string) *types.Note {
	ts := types.NewTimestamp(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC))
	return &types.Note{ID: id, Title: title, Content: content, CreatedAt: ts, UpdatedAt: ts}
}

func newLoadedManager(t *testing.T, notes ...*types.Note) (*Manager, *fakeNoteAPI, *recordingNotifier) {
	t.Helper()
	api := newFakeNoteAPI(notes...)
	notifier := &recordingNotifier{}
	m := NewManager(api, notifier, nil)
	if err := m.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	return m, api, notifier
}

func assertSelectionValid(t *testing.T, m *Manager) {
	t.Helper()
	id, ok := m.SelectedID()
	if !ok {
		return
	}
	for _, note := range m.Notes() {
		if note.ID == id {
			return
		}
	}
	t.Fatalf("selected id %d is not in notes", id)
}

func TestLoadAllEmptyClearsEditor(t *testing.T) {
	m, _, _ := newLoadedManager(t)

	if _, ok := m.SelectedID(); ok {
		t.Fatalf("expected no selection")
	}
	if m.Editor().Enabled {
		t.Fatalf("expected editor disabled")
	}
	view := m.View(time.Now())
	if !view.Empty || len(view.Items) != 0 {
		t.Fatalf("expected empty list view, got %#v", view)
	}
	if view.Editor.ActionsVisible {
		t.Fatalf("expected actions hidden")
	}
}

func TestLoadAllFailureKeepsState(t *testing.T) {
	m, api, notifier := newLoadedManager(t, sampleNote(1, "a", "x"))
	if !m.Select(1, nil) {
		t.Fatalf("expected select to succeed")
	}
	api.listErr = errors.New("connection refused")

	if err := m.LoadAll(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
	if len(m.Notes()) != 1 {
		t.Fatalf("expected prior notes kept, got %d", len(m.Notes()))
	}
	if id, ok := m.SelectedID(); !ok || id != 1 {
		t.Fatalf("expected selection kept, got %d %v", id, ok)
	}
	if got := notifier.last(); got.level != LevelError || got.message != msgLoadFailed {
		t.Fatalf("unexpected notification: %#v", got)
	}
}

func TestLoadAllDropsSelectionThatVanished(t *testing.T) {
	m, api, _ := newLoadedManager(t, sampleNote(1, "a", "x"), sampleNote(2, "b", "y"))
	m.Select(2, nil)
	api.notes = api.notes[:1]

	if err := m.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if _, ok := m.SelectedID(); ok {
		t.Fatalf("expected selection cleared")
	}
	assertSelectionValid(t, m)
}

func TestCreateSelectsServerNote(t *testing.T) {
	m, api, notifier := newLoadedManager(t, sampleNote(4, "old", "older"))
	api.nextID = 5

	if err := m.Create(context.Background(), nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if api.lastInput.Title != DefaultTitle || api.lastInput.Content != DefaultContent {
		t.Fatalf("unexpected create input: %#v", api.lastInput)
	}
	notes := m.Notes()
	if len(notes) != 2 || notes[0].ID != 5 || notes[0].Title != "新笔记" {
		t.Fatalf("expected created note first, got %#v", notes)
	}
	if id, ok := m.SelectedID(); !ok || id != 5 {
		t.Fatalf("expected id 5 selected, got %d %v", id, ok)
	}
	editor := m.Editor()
	if editor.Title != "新笔记" || editor.Content != "开始记录你的想法..." || !editor.Enabled {
		t.Fatalf("unexpected editor: %#v", editor)
	}
	if m.Dirty() {
		t.Fatalf("expected clean editor after create")
	}
	if got := notifier.last(); got.level != LevelSuccess || got.message != msgCreated {
		t.Fatalf("unexpected notification: %#v", got)
	}
}

func TestCreateFailureLeavesStateUnchanged(t *testing.T) {
	m, api, notifier := newLoadedManager(t, sampleNote(1, "a", "x"))
	api.createErr = errors.New("boom")

	if err := m.Create(context.Background(), nil); err == nil {
		t.Fatalf("expected error")
	}
	if len(m.Notes()) != 1 {
		t.Fatalf("expected notes unchanged")
	}
	if _, ok := m.SelectedID(); ok {
		t.Fatalf("expected no selection")
	}
	if got := notifier.last(); got.message != msgCreateFailed {
		t.Fatalf("unexpected notification: %#v", got)
	}
}

func TestCreateWhileDirtyAsksFirst(t *testing.T) {
	m, api, _ := newLoadedManager(t, sampleNote(1, "a", "x"))
	m.Select(1, nil)
	m.OnEditorEdited("a!", "x")

	if err := m.Create(context.Background(), decline); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(api.calls) != 1 {
		t.Fatalf("expected no create call after decline, got %v", api.calls)
	}
	if !m.Dirty() || m.Editor().Title != "a!" {
		t.Fatalf("expected edits preserved")
	}
}

func TestCreateConfirmedDiscardsEditsBeforeSending(t *testing.T) {
	m, _, _ := newLoadedManager(t, sampleNote(1, "a", "x"))
	m.Select(1, nil)
	m.OnEditorEdited("a!", "x")

	input, ok := m.BeginCreate(AlwaysConfirm)
	if !ok || input.Title != DefaultTitle {
		t.Fatalf("expected placeholder input, got %#v ok=%v", input, ok)
	}
	if m.Dirty() || m.Editor().Title != "a" {
		t.Fatalf("expected edits discarded, got %#v dirty=%v", m.Editor(), m.Dirty())
	}
}

func TestCreateResponseKeepsEditsMadeInFlight(t *testing.T) {
	m, _, notifier := newLoadedManager(t, sampleNote(1, "a", "x"))
	m.Select(1, nil)

	input, ok := m.BeginCreate(nil)
	if !ok {
		t.Fatalf("expected create to start on a clean editor")
	}
	m.OnEditorEdited("a", "x edited")
	m.ApplyCreate(&types.Note{ID: 2, Title: input.Title, Content: input.Content}, nil)

	notes := m.Notes()
	if len(notes) != 2 || notes[0].ID != 2 {
		t.Fatalf("expected created note first, got %#v", notes)
	}
	if id, _ := m.SelectedID(); id != 1 {
		t.Fatalf("expected note 1 to stay selected, got %d", id)
	}
	if !m.Dirty() || m.Editor().Content != "x edited" {
		t.Fatalf("expected edits kept, got %#v dirty=%v", m.Editor(), m.Dirty())
	}
	if got := notifier.last(); got.level != LevelSuccess || got.message != msgCreated {
		t.Fatalf("unexpected notification: %#v", got)
	}
	assertSelectionValid(t, m)
}

func TestSelectDeclinedKeepsEdits(t *testing.T) {
	m, _, _ := newLoadedManager(t, sampleNote(1, "a", "x"), sampleNote(2, "b", "y"))
	m.Select(1, nil)
	m.OnEditorEdited("changed", "x")

	var prompts []string
	ok := m.Select(2, func(prompt string) bool {
		prompts = append(prompts, prompt)
		return false
	})
	if ok {
		t.Fatalf("expected select to be declined")
	}
	if len(prompts) != 1 || prompts[0] != PromptDiscard {
		t.Fatalf("unexpected prompts: %v", prompts)
	}
	if id, _ := m.SelectedID(); id != 1 {
		t.Fatalf("expected selection unchanged, got %d", id)
	}
	if !m.Dirty() || m.Editor().Title != "changed" {
		t.Fatalf("expected editor unchanged: %#v dirty=%v", m.Editor(), m.Dirty())
	}
}

func TestSelectConfirmedDiscardsEdits(t *testing.T) {
	m, _, _ := newLoadedManager(t, sampleNote(1, "a", "x"), sampleNote(2, "b", "y"))
	m.Select(1, nil)
	m.OnEditorEdited("changed", "x")

	if !m.Select(2, AlwaysConfirm) {
		t.Fatalf("expected select to proceed")
	}
	if m.Dirty() || m.Editor().Title != "b" {
		t.Fatalf("expected clean editor on note 2: %#v", m.Editor())
	}
}

func TestSelectSameNoteWhileDirtyReloadsWithoutPrompt(t *testing.T) {
	m, _, _ := newLoadedManager(t, sampleNote(1, "a", "x"))
	m.Select(1, nil)
	m.OnEditorEdited("changed", "x")

	if !m.Select(1, func(string) bool {
		t.Fatalf("unexpected prompt")
		return false
	}) {
		t.Fatalf("expected select to proceed")
	}
	if m.Dirty() || m.Editor().Title != "a" {
		t.Fatalf("expected editor reloaded: %#v", m.Editor())
	}
}

func TestSelectUnknownIDIsNoop(t *testing.T) {
	m, _, _ := newLoadedManager(t, sampleNote(1, "a", "x"))
	if m.Select(99, AlwaysConfirm) {
		t.Fatalf("expected unknown id to be rejected")
	}
	if _, ok := m.SelectedID(); ok {
		t.Fatalf("expected no selection")
	}
}

func TestSaveWithoutSelectionIsNoop(t *testing.T) {
	m, api, notifier := newLoadedManager(t, sampleNote(1, "a", "x"))
	if err := m.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(api.calls) != 1 || len(notifier.got) != 0 {
		t.Fatalf("expected no calls or notifications: %v %v", api.calls, notifier.got)
	}
}

func TestSaveRejectsBlankFields(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		content string
	}{
		{name: "empty title", title: "", content: "x"},
		{name: "whitespace title", title: "  \t", content: "x"},
		{name: "empty content", title: "a", content: ""},
		{name: "whitespace content", title: "a", content: "\n \n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, api, notifier := newLoadedManager(t, sampleNote(5, "a", "x"))
			m.Select(5, nil)
			m.OnEditorEdited(tc.title, tc.content)

			err := m.Save(context.Background())
			if !errors.Is(err, ErrEmptyNote) {
				t.Fatalf("expected ErrEmptyNote, got %v", err)
			}
			if len(api.calls) != 1 {
				t.Fatalf("expected no network call, got %v", api.calls)
			}
			if !m.Dirty() {
				t.Fatalf("expected dirty to remain true")
			}
			if got := notifier.last(); got.level != LevelError || got.message != msgEmptyNote {
				t.Fatalf("unexpected notification: %#v", got)
			}
		})
	}
}

func TestSaveSendsTrimmedFieldsAndStoresServerNote(t *testing.T) {
	m, api, notifier := newLoadedManager(t, sampleNote(1, "a", "x"), sampleNote(2, "b", "y"))
	m.Select(2, nil)
	m.OnEditorEdited("  new title ", "\tnew body\n")

	if err := m.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if api.lastInput.Title != "new title" || api.lastInput.Content != "new body" {
		t.Fatalf("expected trimmed input, got %#v", api.lastInput)
	}
	if m.Dirty() {
		t.Fatalf("expected dirty cleared")
	}
	var saved *types.Note
	for _, note := range m.Notes() {
		if note.ID == 2 {
			saved = note
		}
	}
	server := api.notes[1]
	if saved == nil || *saved != *server {
		t.Fatalf("expected cached note to equal server object: %#v vs %#v", saved, server)
	}
	if m.Editor().Title != "new title" {
		t.Fatalf("expected editor to show server title, got %q", m.Editor().Title)
	}
	if m.Status() != StatusSaved {
		t.Fatalf("expected saved status, got %v", m.Status())
	}
	if got := notifier.last(); got.level != LevelSuccess || got.message != msgSaved {
		t.Fatalf("unexpected notification: %#v", got)
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	m, api, notifier := newLoadedManager(t, sampleNote(1, "a", "x"))
	m.Select(1, nil)
	m.OnEditorEdited("b", "x")
	api.updateErr = errors.New("500")

	if err := m.Save(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if !m.Dirty() || m.Notes()[0].Title != "a" {
		t.Fatalf("expected state unchanged")
	}
	if got := notifier.last(); got.message != msgSaveFailed {
		t.Fatalf("unexpected notification: %#v", got)
	}
}

func TestDeleteFlow(t *testing.T) {
	m, _, notifier := newLoadedManager(t, sampleNote(1, "a", "x"), sampleNote(2, "b", "y"))
	m.Select(1, nil)

	if !m.RequestDelete() || !m.DeleteConfirmOpen() {
		t.Fatalf("expected delete prompt open")
	}
	if err := m.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	for _, note := range m.Notes() {
		if note.ID == 1 {
			t.Fatalf("expected note 1 removed")
		}
	}
	if _, ok := m.SelectedID(); ok {
		t.Fatalf("expected selection cleared")
	}
	if m.DeleteConfirmOpen() || m.Editor().Enabled {
		t.Fatalf("expected prompt closed and editor disabled")
	}
	if got := notifier.last(); got.message != msgDeleted {
		t.Fatalf("unexpected notification: %#v", got)
	}
}

func TestDeleteFailureKeepsPromptOpen(t *testing.T) {
	m, api, notifier := newLoadedManager(t, sampleNote(1, "a", "x"))
	m.Select(1, nil)
	m.RequestDelete()
	api.deleteErr = errors.New("boom")

	if err := m.ConfirmDelete(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if !m.DeleteConfirmOpen() {
		t.Fatalf("expected prompt to stay open")
	}
	if id, ok := m.SelectedID(); !ok || id != 1 || len(m.Notes()) != 1 {
		t.Fatalf("expected state unchanged")
	}
	if got := notifier.last(); got.message != msgDeleteFailed {
		t.Fatalf("unexpected notification: %#v", got)
	}
}

func TestRequestDeleteWithoutSelection(t *testing.T) {
	m, api, _ := newLoadedManager(t, sampleNote(1, "a", "x"))
	if m.RequestDelete() || m.DeleteConfirmOpen() {
		t.Fatalf("expected no prompt without selection")
	}
	if err := m.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if len(api.calls) != 1 {
		t.Fatalf("expected no delete call, got %v", api.calls)
	}
}

func TestEditorEditTracksDirtyAgainstSyncedValues(t *testing.T) {
	m, _, _ := newLoadedManager(t, sampleNote(1, "a", "x"))

	m.OnEditorEdited("ignored", "ignored")
	if m.Dirty() || m.Editor().Title != "" {
		t.Fatalf("expected edits without selection to be ignored")
	}

	m.Select(1, nil)
	m.OnEditorEdited("ab", "x")
	if !m.Dirty() || m.Status() != StatusUnsaved || m.CanLeave() {
		t.Fatalf("expected unsaved state")
	}
	m.OnEditorEdited("a", "x")
	if m.Dirty() || m.Status() != StatusSaved || !m.CanLeave() {
		t.Fatalf("expected reverting edits to clear dirty")
	}
}

func TestSelectionAlwaysReferencesCachedNote(t *testing.T) {
	m, _, _ := newLoadedManager(t)
	ctx := context.Background()
	steps := []func(){
		func() { _ = m.Create(ctx, AlwaysConfirm) },
		func() { _ = m.Create(ctx, AlwaysConfirm) },
		func() { m.Select(1, AlwaysConfirm) },
		func() { m.OnEditorEdited("t", "c") },
		func() { _ = m.Save(ctx) },
		func() { m.RequestDelete(); _ = m.ConfirmDelete(ctx) },
		func() { m.Select(2, AlwaysConfirm) },
		func() { _ = m.Create(ctx, AlwaysConfirm) },
		func() { m.RequestDelete(); _ = m.ConfirmDelete(ctx) },
		func() { _ = m.LoadAll(ctx) },
	}
	for _, step := range steps {
		step()
		assertSelectionValid(t, m)
	}
}

func TestViewProjection(t *testing.T) {
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	long := "一二三四五六七八九十一二三四五六七八九十一二三四五六七八九十一二三四五六七八九十一二三四五六七八九十一二三四五六七八九十多余"
	m, _, _ := newLoadedManager(t, sampleNote(1, "a", long), sampleNote(2, "b", "y"))
	m.Select(1, nil)
	m.OnEditorEdited("a2", long)

	view := m.View(now)
	if len(view.Items) != 2 || !view.Items[0].Active || view.Items[1].Active {
		t.Fatalf("unexpected items: %#v", view.Items)
	}
	if got := []rune(view.Items[0].Preview); len(got) != 60 {
		t.Fatalf("expected 60 rune preview, got %d", len(got))
	}
	if view.Items[0].Updated != "2小时前" {
		t.Fatalf("unexpected updated label: %q", view.Items[0].Updated)
	}
	if view.Editor.Meta != "创建于 2小时前 | 更新于 2小时前" {
		t.Fatalf("unexpected meta: %q", view.Editor.Meta)
	}
	if view.Editor.StatusText != statusUnsaved || !view.Editor.ActionsVisible {
		t.Fatalf("unexpected editor view: %#v", view.Editor)
	}
}
