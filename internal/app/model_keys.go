package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"notepad/internal/logging"
	"notepad/internal/session"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirm.IsOpen() {
		_, choice := m.confirm.HandleKey(msg)
		return m.resolveConfirm(choice)
	}
	switch msg.String() {
	case "ctrl+c":
		return m.requestQuit()
	case "ctrl+n":
		return m.createNote()
	case "ctrl+s":
		return m.saveNote()
	case "ctrl+d":
		m.requestDelete()
		return nil
	case "ctrl+r":
		return m.reload()
	case "ctrl+y":
		m.copyContent()
		return nil
	case "ctrl+p":
		m.togglePreview()
		return nil
	case "tab":
		return m.cycleFocus(1)
	case "shift+tab":
		return m.cycleFocus(-1)
	case "esc":
		if m.focus != focusList {
			return m.setFocus(focusList)
		}
		return nil
	}
	if m.focus == focusList {
		return m.handleListKey(msg)
	}
	return m.updateFocusedInput(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return m.requestQuit()
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home", "g":
		m.cursor = 0
		m.ensureCursorVisible()
	case "end", "G":
		m.cursor = m.itemCount() - 1
		m.clampCursor()
	case "enter", " ":
		return m.selectAtCursor()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.confirm.IsOpen() {
		_, choice := m.confirm.HandleMouse(msg, m.width, m.height)
		return m.resolveConfirm(choice)
	}
	if msg.X >= m.listWidth() {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.session.Editor().Enabled {
			if msg.Y == 1 {
				return m.setFocus(focusTitle)
			}
			if msg.Y > 2 && msg.Y < 3+m.contentHeight() {
				return m.setFocus(focusContent)
			}
		}
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	row := msg.Y - 1
	if row < 0 || row >= m.bodyHeight() {
		return nil
	}
	index := m.listOffset + row/listItemHeight
	if index >= m.itemCount() {
		return nil
	}
	m.cursor = index
	m.setFocus(focusList)
	return m.selectAtCursor()
}

func (m *Model) selectAtCursor() tea.Cmd {
	notes := m.session.Notes()
	if m.cursor < 0 || m.cursor >= len(notes) {
		return nil
	}
	id := notes[m.cursor].ID
	if m.session.NeedsDiscardConfirm(id) {
		m.pendingSelect = id
		m.openConfirm(confirmActionDiscardSelect, "未保存的更改", session.PromptDiscard, "继续", "取消")
		return nil
	}
	m.applySelect(id)
	return nil
}

func (m *Model) applySelect(id int64) {
	if !m.session.Select(id, session.AlwaysConfirm) {
		return
	}
	m.syncEditor()
	m.cursor = m.indexOf(id)
	m.ensureCursorVisible()
}

func (m *Model) createNote() tea.Cmd {
	if m.session.Dirty() {
		m.openConfirm(confirmActionDiscardCreate, "未保存的更改", session.PromptDiscard, "继续", "取消")
		return nil
	}
	return m.startCreate(nil)
}

func (m *Model) startCreate(confirm session.ConfirmFunc) tea.Cmd {
	input, ok := m.session.BeginCreate(confirm)
	if !ok {
		return nil
	}
	m.syncEditor()
	m.inFlight++
	return createNoteCmd(m.api, input, m.requestTimeout)
}

func (m *Model) saveNote() tea.Cmd {
	req, err := m.session.BeginSave()
	if err != nil || req == nil {
		return nil
	}
	m.inFlight++
	return saveNoteCmd(m.api, *req, m.requestTimeout)
}

func (m *Model) requestDelete() {
	if !m.session.RequestDelete() {
		return
	}
	m.openConfirm(confirmActionDelete, "删除笔记", session.PromptDelete, "删除", "取消")
}

func (m *Model) requestQuit() tea.Cmd {
	if m.session.CanLeave() {
		m.quitting = true
		return tea.Quit
	}
	m.openConfirm(confirmActionQuit, "退出", session.PromptLeave, "退出", "留下")
	return nil
}

func (m *Model) openConfirm(action confirmAction, title, message, confirmLabel, cancelLabel string) {
	m.confirmAction = action
	m.confirm.Open(title, message, confirmLabel, cancelLabel)
}

func (m *Model) closeConfirm() {
	m.confirmAction = confirmActionNone
	m.pendingSelect = 0
	m.confirm.Close()
}

func (m *Model) resolveConfirm(choice confirmChoice) tea.Cmd {
	switch choice {
	case confirmChoiceCancel:
		if m.confirmAction == confirmActionDelete {
			m.session.CancelDelete()
		}
		m.closeConfirm()
		return nil
	case confirmChoiceConfirm:
	default:
		return nil
	}
	action := m.confirmAction
	switch action {
	case confirmActionDelete:
		// The dialog stays open until the delete response arrives; a failed
		// delete leaves it up for another attempt.
		id, ok := m.session.BeginDelete()
		if !ok {
			m.session.CancelDelete()
			m.closeConfirm()
			return nil
		}
		m.logger.Debug("delete confirmed", logging.F("note_id", id))
		m.inFlight++
		return deleteNoteCmd(m.api, id, m.requestTimeout)
	case confirmActionDiscardSelect:
		id := m.pendingSelect
		m.closeConfirm()
		m.applySelect(id)
		return nil
	case confirmActionDiscardCreate:
		m.closeConfirm()
		return m.startCreate(session.AlwaysConfirm)
	case confirmActionQuit:
		m.closeConfirm()
		m.quitting = true
		return tea.Quit
	}
	m.closeConfirm()
	return nil
}

func (m *Model) itemCount() int {
	return len(m.session.Notes())
}

func (m *Model) indexOf(id int64) int {
	for i, note := range m.session.Notes() {
		if note.ID == id {
			return i
		}
	}
	return m.cursor
}

func (m *Model) moveCursor(step int) {
	m.cursor += step
	m.clampCursor()
}

func (m *Model) clampCursor() {
	count := m.itemCount()
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) visibleItems() int {
	return max(1, m.bodyHeight()/listItemHeight)
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleItems()
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visible {
		m.listOffset = m.cursor - visible + 1
	}
	if m.listOffset < 0 {
		m.listOffset = 0
	}
}
