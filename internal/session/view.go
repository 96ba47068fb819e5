package session

import (
	"fmt"
	"time"
)

type ListItem struct {
	ID      int64
	Title   string
	Preview string
	Updated string
	Active  bool
}

type EditorView struct {
	Title          string
	Content        string
	Enabled        bool
	ActionsVisible bool
	Meta           string
	Status         Status
	StatusText     string
}

// View is a render-ready projection of the session at a point in time.
type View struct {
	Items             []ListItem
	Empty             bool
	Editor            EditorView
	DeleteConfirmOpen bool
}

func (m *Manager) View(now time.Time) View {
	view := View{
		Items:             make([]ListItem, 0, len(m.state.notes)),
		Empty:             len(m.state.notes) == 0,
		DeleteConfirmOpen: m.state.deleteConfirmOpen,
	}
	for _, note := range m.state.notes {
		view.Items = append(view.Items, ListItem{
			ID:      note.ID,
			Title:   note.Title,
			Preview: preview(note.Content),
			Updated: RelativeTime(note.UpdatedAt.Time, now),
			Active:  m.state.selected && note.ID == m.state.selectedID,
		})
	}

	editor := EditorView{
		Title:   m.state.editor.Title,
		Content: m.state.editor.Content,
		Enabled: m.state.editor.Enabled,
		Status:  m.state.status,
	}
	if selected := m.find(m.state.selectedID); m.state.selected && selected != nil {
		editor.ActionsVisible = true
		editor.Meta = fmt.Sprintf(metaLineTemplate,
			RelativeTime(selected.CreatedAt.Time, now),
			RelativeTime(selected.UpdatedAt.Time, now))
	}
	switch m.state.status {
	case StatusUnsaved:
		editor.StatusText = statusUnsaved
	case StatusSaved:
		editor.StatusText = statusSaved
	}
	view.Editor = editor
	return view
}
