package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"notepad/internal/config"
	"notepad/internal/logging"
	"notepad/internal/session"
	"notepad/internal/types"
)

const version = "dev"

// clientCommand carries what every command that talks to the note service
// needs.
type clientCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig configLoader
	newClient  clientFactory
}

func (c clientCommand) flagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	api := fs.String("api", "", "API base URL (overrides config)")
	return fs, api
}

func (c clientCommand) connect(apiOverride string) (commandClient, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	client, err := c.newClient(cfg, apiOverride)
	if err != nil {
		return nil, config.Config{}, err
	}
	return client, cfg, nil
}

func (c clientCommand) logger(cfg config.Config) logging.Logger {
	return logging.New(c.stderr, logging.ParseLevel(cfg.LogLevel()))
}

// newSession builds a session manager whose notifications go to stderr.
func (c clientCommand) newSession(client commandClient, cfg config.Config) *session.Manager {
	notify := session.NotifierFunc(func(level session.Level, message string) {
		if level == session.LevelError {
			fmt.Fprintf(c.stderr, "错误: %s\n", message)
			return
		}
		fmt.Fprintln(c.stderr, message)
	})
	return session.NewManager(client, notify, c.logger(cfg))
}

func requestContext(cfg config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.RequestTimeout())
}

func printNotes(output io.Writer, notes []*types.Note, now time.Time) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tUPDATED\tPREVIEW")
	for _, note := range notes {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n",
			note.ID,
			singleLine(note.Title, 40),
			session.RelativeTime(note.UpdatedAt.Time, now),
			singleLine(note.Content, 60),
		)
	}
	_ = writer.Flush()
}

func printNote(output io.Writer, note *types.Note, now time.Time) {
	fmt.Fprintf(output, "#%d %s\n", note.ID, note.Title)
	fmt.Fprintf(output, "创建于 %s | 更新于 %s\n\n",
		session.RelativeTime(note.CreatedAt.Time, now),
		session.RelativeTime(note.UpdatedAt.Time, now))
	fmt.Fprintln(output, note.Content)
}

func singleLine(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func parseNoteID(fs *flag.FlagSet) (int64, error) {
	if fs.NArg() < 1 {
		return 0, errors.New("note id is required")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(fs.Arg(0)), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", fs.Arg(0))
	}
	return id, nil
}

// parseInterleaved parses flags that may appear after positional arguments,
// so both "edit 3 --title x" and "edit --title x 3" work.
func parseInterleaved(fs *flag.FlagSet, args []string) error {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
	return fs.Parse(append([]string{"--"}, positional...))
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}

	return version
}
