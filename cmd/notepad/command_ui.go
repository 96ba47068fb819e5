package main

import (
	"fmt"

	"notepad/internal/app"
	"notepad/internal/config"
	"notepad/internal/logging"
)

type UICommand struct {
	clientCommand
}

func NewUICommand(base clientCommand) *UICommand {
	return &UICommand{clientCommand: base}
}

func (c *UICommand) Run(args []string) error {
	fs, api := c.flagSet("ui")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, cfg, err := c.connect(*api)
	if err != nil {
		return err
	}
	logger, closeLog := c.uiLogger(cfg)
	defer closeLog()
	logger.Info("ui starting", logging.F("api", client.BaseURL()))

	return client.RunUI(app.Options{
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout(),
		ToastDuration:  cfg.ToastDuration(),
		Endpoint:       client.BaseURL(),
	})
}

// uiLogger writes to ui.log; the terminal belongs to the UI while it runs.
func (c *UICommand) uiLogger(cfg config.Config) (logging.Logger, func()) {
	path, err := config.UILogPath()
	if err != nil {
		fmt.Fprintf(c.stderr, "ui log disabled: %v\n", err)
		return logging.Nop(), func() {}
	}
	logger, closer, err := logging.OpenFile(path, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		fmt.Fprintf(c.stderr, "ui log disabled: %v\n", err)
		return logging.Nop(), func() {}
	}
	return logger, func() { _ = closer.Close() }
}
