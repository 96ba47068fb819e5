package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

var clipboardWriteAll = clipboard.WriteAll
var clipboardWriteOSC52 = writeOSC52Clipboard

// copyTextToClipboard tries the system clipboard first and falls back to an
// OSC52 escape sequence, which works over SSH in most terminals.
func copyTextToClipboard(text string) error {
	sysErr := clipboardWriteAll(text)
	if sysErr == nil {
		return nil
	}
	oscErr := clipboardWriteOSC52(text)
	if oscErr == nil {
		return nil
	}
	return fmt.Errorf("system clipboard failed: %v; OSC52 fallback failed: %v", sysErr, oscErr)
}

func writeOSC52Clipboard(text string) error {
	if !shouldAttemptOSC52() {
		return errors.New("OSC52 unavailable for this terminal")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	return writeOSC52Sequence(tty, text)
}

func writeOSC52Sequence(w io.Writer, text string) error {
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if strings.HasPrefix(strings.ToLower(os.Getenv("TERM")), "screen") {
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}

func shouldAttemptOSC52() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("NOTEPAD_DISABLE_OSC52"))) {
	case "1", "true", "yes", "on":
		return false
	}
	termName := strings.TrimSpace(os.Getenv("TERM"))
	return termName != "" && !strings.EqualFold(termName, "dumb")
}
