package app

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"notepad/internal/logging"
	"notepad/internal/session"
)

const titlePlaceholder = "笔记标题"

func newTitleInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = titlePlaceholder
	input.CharLimit = 0
	return input
}

func newContentInput() textarea.Model {
	input := textarea.New()
	input.Prompt = ""
	input.Placeholder = "开始记录你的想法..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.FocusedStyle.CursorLine = input.FocusedStyle.CursorLine.UnsetBackground()
	input.Blur()
	return input
}

// syncEditor copies the session's editor buffer into the widgets. The
// widgets rewrite some text on SetValue (tabs, newlines in the title), so a
// field is only reloaded when the session text itself changed.
func (m *Model) syncEditor() {
	editor := m.session.Editor()
	if editor.Title != m.loadedTitle {
		m.titleInput.SetValue(editor.Title)
		m.titleInput.CursorEnd()
		m.loadedTitle = editor.Title
	}
	if editor.Content != m.loadedContent {
		m.contentInput.SetValue(editor.Content)
		m.loadedContent = editor.Content
	}
	if !editor.Enabled {
		m.preview = false
		if m.focus != focusList {
			m.setFocus(focusList)
		}
	}
	m.clampCursor()
}

// updateFocusedInput forwards msg to the focused widget and reports an edit
// only when that widget's own value changed. The other field keeps the
// session text untouched.
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		before := m.titleInput.Value()
		m.titleInput, cmd = m.titleInput.Update(msg)
		if after := m.titleInput.Value(); after != before {
			m.editTitle(after)
		}
	case focusContent:
		before := m.contentInput.Value()
		m.contentInput, cmd = m.contentInput.Update(msg)
		if after := m.contentInput.Value(); after != before {
			m.editContent(after)
		}
	}
	return cmd
}

func (m *Model) editTitle(title string) {
	editor := m.session.Editor()
	if !editor.Enabled {
		return
	}
	m.loadedTitle = title
	m.session.OnEditorEdited(title, editor.Content)
}

func (m *Model) editContent(content string) {
	editor := m.session.Editor()
	if !editor.Enabled {
		return
	}
	m.loadedContent = content
	m.session.OnEditorEdited(editor.Title, content)
}

func (m *Model) setFocus(focus focusArea) tea.Cmd {
	if focus != focusList && !m.session.Editor().Enabled {
		focus = focusList
	}
	m.focus = focus
	m.titleInput.Blur()
	m.contentInput.Blur()
	switch focus {
	case focusTitle:
		return m.titleInput.Focus()
	case focusContent:
		m.preview = false
		return m.contentInput.Focus()
	}
	return nil
}

func (m *Model) cycleFocus(step int) tea.Cmd {
	if !m.session.Editor().Enabled {
		return m.setFocus(focusList)
	}
	order := []focusArea{focusList, focusTitle, focusContent}
	next := (int(m.focus) + step + len(order)) % len(order)
	return m.setFocus(order[next])
}

func (m *Model) togglePreview() {
	if !m.session.Editor().Enabled {
		return
	}
	m.preview = !m.preview
	if m.preview && m.focus == focusContent {
		m.setFocus(focusList)
	}
}

func (m *Model) copyContent() {
	if !m.session.Editor().Enabled {
		m.showToast(session.LevelInfo, "没有可复制的笔记")
		return
	}
	if err := copyTextToClipboard(m.contentInput.Value()); err != nil {
		m.logger.Warn("clipboard copy failed", logging.Err(err))
		m.showToast(session.LevelError, "复制失败")
		return
	}
	m.showToast(session.LevelSuccess, "内容已复制")
}
