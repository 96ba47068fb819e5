package session

import (
	"fmt"
	"time"
)

const previewRunes = 60

// RelativeTime renders t relative to now the way the note list shows it.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return justNow
	case diff < time.Hour:
		return fmt.Sprintf("%d分钟前", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d小时前", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d天前", int(diff/(24*time.Hour)))
	default:
		local := t.In(now.Location())
		return fmt.Sprintf("%d/%d/%d", local.Year(), int(local.Month()), local.Day())
	}
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}
	return string(runes[:previewRunes])
}
