package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"notepad/internal/session"
	"notepad/internal/types"
)

type LSCommand struct {
	clientCommand
	now func() time.Time
}

func NewLSCommand(base clientCommand) *LSCommand {
	return &LSCommand{clientCommand: base, now: time.Now}
}

func (c *LSCommand) Run(args []string) error {
	fs, api := c.flagSet("ls")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, cfg, err := c.connect(*api)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cfg)
	defer cancel()

	notes := c.newSession(client, cfg)
	if err := notes.LoadAll(ctx); err != nil {
		return err
	}
	list := notes.Notes()
	if len(list) == 0 {
		fmt.Fprintln(c.stdout, session.EmptyListTitle)
		return nil
	}
	printNotes(c.stdout, list, c.now())
	return nil
}

type ShowCommand struct {
	clientCommand
	now func() time.Time
}

func NewShowCommand(base clientCommand) *ShowCommand {
	return &ShowCommand{clientCommand: base, now: time.Now}
}

func (c *ShowCommand) Run(args []string) error {
	fs, api := c.flagSet("show")
	if err := parseInterleaved(fs, args); err != nil {
		return err
	}
	id, err := parseNoteID(fs)
	if err != nil {
		return err
	}
	client, cfg, err := c.connect(*api)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cfg)
	defer cancel()

	note, err := client.GetNote(ctx, id)
	if err != nil {
		return err
	}
	printNote(c.stdout, note, c.now())
	return nil
}

type NewCommand struct {
	clientCommand
}

func NewNewCommand(base clientCommand) *NewCommand {
	return &NewCommand{clientCommand: base}
}

// Run without --title, --content or --file creates the same placeholder
// note the UI does. Any of them given means both fields must be filled.
func (c *NewCommand) Run(args []string) error {
	fs, api := c.flagSet("new")
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note content")
	file := fs.String("file", "", "read content from a file (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["file"] {
		body, err := readContentFile(*file)
		if err != nil {
			return err
		}
		*content = body
	}
	client, cfg, err := c.connect(*api)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cfg)
	defer cancel()

	if !set["title"] && !set["content"] && !set["file"] {
		notes := c.newSession(client, cfg)
		if err := notes.Create(ctx, nil); err != nil {
			return err
		}
		id, _ := notes.SelectedID()
		fmt.Fprintln(c.stdout, id)
		return nil
	}

	input := types.NoteInput{
		Title:   strings.TrimSpace(*title),
		Content: strings.TrimSpace(*content),
	}
	if input.Title == "" || input.Content == "" {
		return session.ErrEmptyNote
	}
	note, err := client.CreateNote(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, note.ID)
	return nil
}

type EditCommand struct {
	clientCommand
}

func NewEditCommand(base clientCommand) *EditCommand {
	return &EditCommand{clientCommand: base}
}

func (c *EditCommand) Run(args []string) error {
	fs, api := c.flagSet("edit")
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new content")
	file := fs.String("file", "", "read new content from a file (- for stdin)")
	if err := parseInterleaved(fs, args); err != nil {
		return err
	}
	id, err := parseNoteID(fs)
	if err != nil {
		return err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["file"] {
		body, err := readContentFile(*file)
		if err != nil {
			return err
		}
		*content = body
		set["content"] = true
	}
	if !set["title"] && !set["content"] {
		return errors.New("nothing to change: pass --title, --content or --file")
	}

	client, cfg, err := c.connect(*api)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cfg)
	defer cancel()

	notes := c.newSession(client, cfg)
	if err := notes.LoadAll(ctx); err != nil {
		return err
	}
	if !notes.Select(id, session.AlwaysConfirm) {
		return fmt.Errorf("note %d not found", id)
	}
	editor := notes.Editor()
	newTitle, newContent := editor.Title, editor.Content
	if set["title"] {
		newTitle = *title
	}
	if set["content"] {
		newContent = *content
	}
	notes.OnEditorEdited(newTitle, newContent)
	if !notes.Dirty() {
		fmt.Fprintln(c.stderr, "没有需要保存的更改")
		return nil
	}
	return notes.Save(ctx)
}

type RMCommand struct {
	clientCommand
	stdin io.Reader
}

func NewRMCommand(base clientCommand, stdin io.Reader) *RMCommand {
	return &RMCommand{clientCommand: base, stdin: stdin}
}

func (c *RMCommand) Run(args []string) error {
	fs, api := c.flagSet("rm")
	yes := fs.Bool("yes", false, "delete without asking")
	if err := parseInterleaved(fs, args); err != nil {
		return err
	}
	id, err := parseNoteID(fs)
	if err != nil {
		return err
	}
	client, cfg, err := c.connect(*api)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cfg)
	defer cancel()

	notes := c.newSession(client, cfg)
	if err := notes.LoadAll(ctx); err != nil {
		return err
	}
	if !notes.Select(id, session.AlwaysConfirm) || !notes.RequestDelete() {
		return fmt.Errorf("note %d not found", id)
	}
	if !*yes && !c.ask(session.PromptDelete) {
		notes.CancelDelete()
		fmt.Fprintln(c.stderr, "已取消")
		return nil
	}
	return notes.ConfirmDelete(ctx)
}

func (c *RMCommand) ask(prompt string) bool {
	fmt.Fprintf(c.stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func readContentFile(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
