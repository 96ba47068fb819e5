package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"notepad/internal/session"
)

const defaultToastDuration = 3 * time.Second

// Notify implements session.Notifier; every outcome the session reports
// surfaces as a toast.
func (m *Model) Notify(level session.Level, message string) {
	m.showToast(level, message)
}

func (m *Model) showToast(level session.Level, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	m.toastText = message
	m.toastLevel = level
	m.toastUntil = m.now().Add(m.toastDuration)
}

func (m *Model) clearToast() {
	m.toastText = ""
	m.toastLevel = session.LevelInfo
	m.toastUntil = time.Time{}
}

func (m *Model) toastActive(at time.Time) bool {
	if m.toastText == "" {
		return false
	}
	if m.toastUntil.IsZero() {
		return true
	}
	return at.Before(m.toastUntil)
}

func (m *Model) expireToast(at time.Time) {
	if m.toastText != "" && !m.toastActive(at) {
		m.clearToast()
	}
}

func (m *Model) toastLine(width int) string {
	if !m.toastActive(m.now()) || width <= 0 {
		return ""
	}
	text := truncateToWidth(m.toastText, max(1, width-4))
	pill := m.toastStyle().Render(" " + text + " ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, pill)
}

func (m *Model) toastStyle() lipgloss.Style {
	switch m.toastLevel {
	case session.LevelSuccess:
		return toastSuccessStyle
	case session.LevelError:
		return toastErrorStyle
	default:
		return toastInfoStyle
	}
}
