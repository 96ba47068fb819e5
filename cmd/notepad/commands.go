package main

import (
	"io"
	"os"

	"notepad/internal/config"
)

type commandRunner interface {
	Run(args []string) error
}

type configLoader func() (config.Config, error)

type commandWiring struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	loadConfig configLoader
	newClient  clientFactory
	runServer  serverRunner
	version    string
}

func defaultCommandWiring(stdin io.Reader, stdout, stderr io.Writer) commandWiring {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: config.Load,
		newClient:  newNotesClient,
		runServer:  runNoteServer,
		version:    buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	base := clientCommand{
		stdout:     wiring.stdout,
		stderr:     wiring.stderr,
		loadConfig: wiring.loadConfig,
		newClient:  wiring.newClient,
	}
	return map[string]commandRunner{
		"ui":     NewUICommand(base),
		"ls":     NewLSCommand(base),
		"show":   NewShowCommand(base),
		"new":    NewNewCommand(base),
		"edit":   NewEditCommand(base),
		"rm":     NewRMCommand(base, wiring.stdin),
		"health": NewHealthCommand(base),
		"serve":  NewServeCommand(wiring.stderr, wiring.loadConfig, wiring.runServer, wiring.version),
		"config": NewConfigCommand(wiring.stdout, wiring.stderr, wiring.loadConfig),
	}
}
