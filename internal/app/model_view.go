package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"notepad/internal/session"
)

const helpText = "ctrl+n 新建 · ctrl+s 保存 · ctrl+d 删除 · ctrl+r 刷新 · tab 切换 · ctrl+p 预览 · ctrl+y 复制 · q 退出"

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	view := m.session.View(m.now())
	lines := []string{m.headerLine()}
	lines = append(lines, m.bodyLines(view)...)
	lines = append(lines, helpStyle.Render(truncateToWidth(helpText, m.width)))
	out := strings.Join(lines, "\n")
	if m.confirm.IsOpen() {
		block, row := m.confirm.View(m.width, m.height)
		out = overlayLines(out, block, row)
	}
	return out
}

func (m *Model) headerLine() string {
	header := headerStyle.Render("notepad")
	if m.endpoint != "" {
		header += " " + metaStyle.Render(truncateToWidth(m.endpoint, max(1, m.width/3)))
	}
	if m.inFlight > 0 {
		header += " " + busyStyle.Render("同步中…")
	}
	rest := m.width - ansi.StringWidth(header)
	if toast := m.toastLine(rest); toast != "" {
		return header + toast
	}
	return header
}

func (m *Model) bodyLines(view session.View) []string {
	height := m.bodyHeight()
	list := m.listLines(view, height)
	editor := m.editorLines(view.Editor, height)
	divider := dividerStyle.Render("│")
	lines := make([]string, height)
	for i := 0; i < height; i++ {
		lines[i] = list[i] + divider + editor[i]
	}
	return lines
}

func (m *Model) listLines(view session.View, height int) []string {
	width := m.listWidth()
	lines := make([]string, 0, height)
	if view.Empty {
		lines = append(lines,
			"",
			emptyStateStyle.Render(padToWidth(" "+clipPlain(session.EmptyListTitle, width-1), width)),
			emptyStateStyle.Render(padToWidth(" "+clipPlain(session.EmptyListHint, width-1), width)),
		)
	} else {
		end := min(len(view.Items), m.listOffset+m.visibleItems())
		for i := m.listOffset; i < end; i++ {
			lines = append(lines, m.renderItem(view.Items[i], i == m.cursor, width)...)
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return lines[:height]
}

func (m *Model) renderItem(item session.ListItem, cursor bool, width int) []string {
	marker := "  "
	if item.Active {
		marker = activeMarkerStyle.Render("▍ ")
	}
	inner := max(1, width-2)
	title := padToWidth(clipPlain(item.Title, inner), inner)
	preview := padToWidth(clipPlain(item.Preview, inner), inner)
	date := padToWidth(clipPlain(item.Updated, inner), inner)
	if cursor && m.focus == focusList {
		title = selectedStyle.Render(title)
	} else {
		title = noteTitleStyle.Render(title)
	}
	return []string{
		marker + title,
		"  " + notePreviewStyle.Render(preview),
		"  " + noteDateStyle.Render(date),
	}
}

func (m *Model) editorLines(editor session.EditorView, height int) []string {
	width := m.editorWidth()
	lines := make([]string, 0, height)
	if !editor.Enabled {
		lines = append(lines, "", emptyStateStyle.Render(" 选择左侧的笔记，或按 ctrl+n 新建"))
	} else {
		lines = append(lines, " "+m.titleInput.View())
		lines = append(lines, dividerStyle.Render(strings.Repeat("─", width)))
		lines = append(lines, m.contentLines(width)...)
		lines = append(lines, metaStyle.Render(" "+truncateToWidth(editor.Meta, width-1)))
		lines = append(lines, " "+statusText(editor))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines[:height]
}

func (m *Model) contentLines(width int) []string {
	height := m.contentHeight()
	var body string
	if m.preview {
		body = renderMarkdown(m.contentInput.Value(), width)
	} else {
		body = m.contentInput.View()
	}
	lines := strings.Split(body, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return lines
}

func statusText(editor session.EditorView) string {
	switch editor.Status {
	case session.StatusUnsaved:
		return unsavedStatusStyle.Render(editor.StatusText)
	case session.StatusSaved:
		return savedStatusStyle.Render(editor.StatusText)
	}
	return ""
}
