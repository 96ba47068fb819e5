package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

const (
	confirmMinWidth = 30
	confirmMaxWidth = 60
)

// ConfirmController is the modal yes/no dialog. Only one question is open
// at a time.
type ConfirmController struct {
	active       bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	selected     int
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *ConfirmController) Open(title, message, confirmLabel, cancelLabel string) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	if confirmLabel == "" {
		confirmLabel = "确定"
	}
	if cancelLabel == "" {
		cancelLabel = "取消"
	}
	c.confirmLabel = confirmLabel
	c.cancelLabel = cancelLabel
	c.selected = 1
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	*c = ConfirmController{}
}

func (c *ConfirmController) Message() string {
	if c == nil {
		return ""
	}
	return c.message
}

func (c *ConfirmController) HandleKey(msg tea.KeyMsg) (bool, confirmChoice) {
	if c == nil || !c.active {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "esc", "q":
		return true, confirmChoiceCancel
	case "left", "h":
		c.selected = 0
		return true, confirmChoiceNone
	case "right", "l":
		c.selected = 1
		return true, confirmChoiceNone
	case "tab", "shift+tab":
		c.selected = 1 - c.selected
		return true, confirmChoiceNone
	case "y":
		return true, confirmChoiceConfirm
	case "n":
		return true, confirmChoiceCancel
	case "enter":
		if c.selected == 0 {
			return true, confirmChoiceConfirm
		}
		return true, confirmChoiceCancel
	}
	// Swallow everything else while the dialog is modal.
	return true, confirmChoiceNone
}

func (c *ConfirmController) HandleMouse(msg tea.MouseMsg, maxWidth, maxHeight int) (bool, confirmChoice) {
	if c == nil || !c.active {
		return false, confirmChoiceNone
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false, confirmChoiceNone
	}
	x, y, width, height := c.layout(maxWidth, maxHeight)
	if msg.X < x || msg.X >= x+width || msg.Y < y || msg.Y >= y+height {
		return false, confirmChoiceNone
	}
	buttonRow := y + height - 2
	if msg.Y != buttonRow {
		return true, confirmChoiceNone
	}
	contentX := x + 1
	contentWidth := max(1, width-2)
	if msg.X < contentX || msg.X >= contentX+contentWidth {
		return true, confirmChoiceNone
	}
	if msg.X < contentX+contentWidth/2 {
		c.selected = 0
		return true, confirmChoiceConfirm
	}
	c.selected = 1
	return true, confirmChoiceCancel
}

// View renders the dialog box and the row it should be drawn at.
func (c *ConfirmController) View(maxWidth, maxHeight int) (string, int) {
	if c == nil || !c.active {
		return "", 0
	}
	x, y, width, _ := c.layout(maxWidth, maxHeight)
	contentWidth := max(1, width-4)
	title := c.title
	if title == "" {
		title = "确认"
	}
	title = truncateToWidth(title, contentWidth)
	lines := []string{dialogHeaderStyle.Render(" " + padToWidth(title, contentWidth) + " ")}

	if c.message != "" {
		wrapped := xansi.Hardwrap(c.message, contentWidth, true)
		for _, line := range strings.Split(wrapped, "\n") {
			line = truncateToWidth(line, contentWidth)
			lines = append(lines, menuDropStyle.Render(" "+padToWidth(line, contentWidth)+" "))
		}
	}

	leftWidth := contentWidth / 2
	rightWidth := contentWidth - leftWidth
	confirm := padToWidth(truncateToWidth("["+c.confirmLabel+"]", leftWidth), leftWidth)
	cancel := padToWidth(truncateToWidth("["+c.cancelLabel+"]", rightWidth), rightWidth)
	if c.selected == 0 {
		confirm = selectedStyle.Render(confirm)
		cancel = menuDropStyle.Render(cancel)
	} else {
		confirm = menuDropStyle.Render(confirm)
		cancel = selectedStyle.Render(cancel)
	}
	lines = append(lines, " "+confirm+cancel+" ")

	block := confirmDialogBorderStyle.Render(strings.Join(lines, "\n"))
	return indentBlock(block, x), y
}

func (c *ConfirmController) layout(maxWidth, maxHeight int) (int, int, int, int) {
	width := c.dialogWidth()
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	height := c.dialogHeight(width)
	x, y := 0, 0
	if maxWidth > 0 {
		x = max(0, (maxWidth-width)/2)
	}
	if maxHeight > 0 {
		y = max(1, (maxHeight-height)/2)
	}
	return x, y, width, height
}

func (c *ConfirmController) dialogWidth() int {
	contentWidth := xansi.StringWidth(c.title)
	if w := xansi.StringWidth(c.message); w > contentWidth {
		contentWidth = w
	}
	if w := xansi.StringWidth(c.confirmLabel) + xansi.StringWidth(c.cancelLabel) + 6; w > contentWidth {
		contentWidth = w
	}
	width := contentWidth + 4
	if width < confirmMinWidth {
		width = confirmMinWidth
	}
	if width > confirmMaxWidth {
		width = confirmMaxWidth
	}
	return width
}

func (c *ConfirmController) dialogHeight(width int) int {
	contentWidth := max(1, width-4)
	height := 2
	if c.message != "" {
		height += len(strings.Split(xansi.Hardwrap(c.message, contentWidth, true), "\n"))
	}
	return height + 2
}
