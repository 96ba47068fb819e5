package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func stubClipboard(t *testing.T, system, osc func(string) error) {
	t.Helper()
	origWriteAll := clipboardWriteAll
	origWriteOSC52 := clipboardWriteOSC52
	t.Cleanup(func() {
		clipboardWriteAll = origWriteAll
		clipboardWriteOSC52 = origWriteOSC52
	})
	clipboardWriteAll = system
	clipboardWriteOSC52 = osc
}

func TestCopyTextToClipboardUsesSystemBackend(t *testing.T) {
	fallbackCalled := false
	stubClipboard(t,
		func(string) error { return nil },
		func(string) error {
			fallbackCalled = true
			return nil
		})

	if err := copyTextToClipboard("hello"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fallbackCalled {
		t.Fatalf("expected no OSC52 fallback call")
	}
}

func TestCopyTextToClipboardFallsBackToOSC52(t *testing.T) {
	var copied string
	stubClipboard(t,
		func(string) error { return errors.New("exit status 1") },
		func(text string) error {
			copied = text
			return nil
		})

	if err := copyTextToClipboard("hello"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if copied != "hello" {
		t.Fatalf("expected OSC52 fallback to receive text, got %q", copied)
	}
}

func TestCopyTextToClipboardReportsBothFailures(t *testing.T) {
	stubClipboard(t,
		func(string) error { return errors.New("exit status 1") },
		func(string) error { return errors.New("open /dev/tty: no such device") })

	err := copyTextToClipboard("hello")
	if err == nil {
		t.Fatalf("expected copy error")
	}
	if !strings.Contains(err.Error(), "OSC52 fallback failed") {
		t.Fatalf("expected OSC52 fallback details, got %q", err.Error())
	}
}

func TestWriteOSC52SequenceEncodesText(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")
	var buf bytes.Buffer
	if err := writeOSC52Sequence(&buf, "hello"); err != nil {
		t.Fatalf("writeOSC52Sequence: %v", err)
	}
	// base64("hello")
	if !strings.Contains(buf.String(), "aGVsbG8=") {
		t.Fatalf("expected base64 payload, got %q", buf.String())
	}
}

func TestShouldAttemptOSC52HonorsDisableFlag(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NOTEPAD_DISABLE_OSC52", "1")
	if shouldAttemptOSC52() {
		t.Fatalf("expected OSC52 disabled")
	}
	t.Setenv("NOTEPAD_DISABLE_OSC52", "")
	if !shouldAttemptOSC52() {
		t.Fatalf("expected OSC52 enabled for xterm")
	}
	t.Setenv("TERM", "dumb")
	if shouldAttemptOSC52() {
		t.Fatalf("expected OSC52 disabled for dumb terminal")
	}
}
