package main

import (
	"fmt"
	"os"
)

const usageText = `notepad is a terminal note-taking client.

Usage:
  notepad <command> [flags]

Commands:
  ui       run the terminal UI (default)
  ls       list notes
  show     print one note
  new      create a note
  edit     change a note's title or content
  rm       delete a note
  health   check that the note service answers
  serve    run the reference note service
  config   print the effective configuration
  help     show help

Flags:
  -h, --help   show help

Client flags (ls, show, new, edit, rm, health, ui):
  --api <url>   API base URL, overrides the configured service

Examples:
  notepad
  notepad ls
  notepad new --title "Groceries" --content "milk, eggs"
  notepad edit 3 --content "updated body"
  notepad rm 3 --yes
  notepad health --api http://notes.example.com/api
  notepad serve --storage file --db ./notes.json
  notepad config --format json
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"ui"}
	}

	wiring := defaultCommandWiring(os.Stdin, os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
