package main

import (
	"context"
	"strings"

	"notepad/internal/app"
	notesclient "notepad/internal/client"
	"notepad/internal/config"
	"notepad/internal/types"
)

type clientFactory func(cfg config.Config, apiOverride string) (commandClient, error)

type commandClient interface {
	ListNotes(ctx context.Context) ([]*types.Note, error)
	GetNote(ctx context.Context, id int64) (*types.Note, error)
	CreateNote(ctx context.Context, input types.NoteInput) (*types.Note, error)
	UpdateNote(ctx context.Context, id int64, input types.NoteInput) (*types.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	Health(ctx context.Context) (*notesclient.HealthResponse, error)
	BaseURL() string
	RunUI(opts app.Options) error
}

type notesClientAdapter struct {
	client *notesclient.Client
}

func newNotesClient(cfg config.Config, apiOverride string) (commandClient, error) {
	base := strings.TrimSpace(apiOverride)
	if base == "" {
		base = cfg.APIBaseURL()
	}
	client := notesclient.New(base, notesclient.WithTimeout(cfg.RequestTimeout()))
	return &notesClientAdapter{client: client}, nil
}

func (c *notesClientAdapter) ListNotes(ctx context.Context) ([]*types.Note, error) {
	return c.client.ListNotes(ctx)
}

func (c *notesClientAdapter) GetNote(ctx context.Context, id int64) (*types.Note, error) {
	return c.client.GetNote(ctx, id)
}

func (c *notesClientAdapter) CreateNote(ctx context.Context, input types.NoteInput) (*types.Note, error) {
	return c.client.CreateNote(ctx, input)
}

func (c *notesClientAdapter) UpdateNote(ctx context.Context, id int64, input types.NoteInput) (*types.Note, error) {
	return c.client.UpdateNote(ctx, id, input)
}

func (c *notesClientAdapter) DeleteNote(ctx context.Context, id int64) error {
	return c.client.DeleteNote(ctx, id)
}

func (c *notesClientAdapter) Health(ctx context.Context) (*notesclient.HealthResponse, error) {
	return c.client.Health(ctx)
}

func (c *notesClientAdapter) BaseURL() string {
	return c.client.BaseURL()
}

func (c *notesClientAdapter) RunUI(opts app.Options) error {
	return app.Run(c.client, opts)
}
