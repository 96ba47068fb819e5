package main

import (
	"fmt"
	"strings"
)

type HealthCommand struct {
	clientCommand
}

func NewHealthCommand(base clientCommand) *HealthCommand {
	return &HealthCommand{clientCommand: base}
}

// Run checks that the configured note service answers and reports the
// storage backend it runs on.
func (c *HealthCommand) Run(args []string) error {
	fs, api := c.flagSet("health")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, cfg, err := c.connect(*api)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cfg)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("note service at %s unreachable: %w", client.BaseURL(), err)
	}
	status := strings.TrimSpace(health.Status)
	if status != "ok" {
		return fmt.Errorf("note service at %s reports status %q", client.BaseURL(), status)
	}
	storage := health.Storage
	if storage == "" {
		storage = "unknown"
	}
	fmt.Fprintf(c.stdout, "ok\tapi=%s\tstorage=%s\n", client.BaseURL(), storage)
	return nil
}
