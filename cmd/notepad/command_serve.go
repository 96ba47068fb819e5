package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"notepad/internal/logging"
	"notepad/internal/server"
	"notepad/internal/store"
)

type serveOptions struct {
	Address string
	Storage string
	DBPath  string
	Version string
}

type serverRunner func(ctx context.Context, opts serveOptions, logger logging.Logger) error

type ServeCommand struct {
	stderr     io.Writer
	loadConfig configLoader
	runServer  serverRunner
	version    string
}

func NewServeCommand(stderr io.Writer, loadConfig configLoader, runServer serverRunner, version string) *ServeCommand {
	return &ServeCommand{
		stderr:     stderr,
		loadConfig: loadConfig,
		runServer:  runServer,
		version:    version,
	}
}

func (c *ServeCommand) Run(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	addr := fs.String("addr", "", "listen address (default from config)")
	storage := fs.String("storage", "", "note storage: bbolt|file (default from config)")
	dbPath := fs.String("db", "", "storage file path (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if strings.TrimSpace(*storage) != "" {
		cfg.Server.Storage = *storage
	}
	if strings.TrimSpace(*dbPath) != "" {
		cfg.Server.DBPath = *dbPath
	}
	if strings.TrimSpace(*addr) != "" {
		cfg.Server.Address = *addr
	}
	resolvedPath, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}
	opts := serveOptions{
		Address: cfg.ServerAddress(),
		Storage: cfg.StorageBackend(),
		DBPath:  resolvedPath,
		Version: c.version,
	}
	logger := logging.New(c.stderr, logging.ParseLevel(cfg.LogLevel()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.runServer(ctx, opts, logger)
}

func runNoteServer(ctx context.Context, opts serveOptions, logger logging.Logger) error {
	notes, err := store.Open(opts.Storage, opts.DBPath)
	if err != nil {
		return err
	}
	defer notes.Close()
	logger.Info("note store opened",
		logging.F("storage", notes.Backend()),
		logging.F("path", opts.DBPath),
		logging.F("version", opts.Version),
	)
	return server.New(opts.Address, notes, logger).Run(ctx)
}
