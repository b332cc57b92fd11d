// Minline is a demo REPL for the line editor: it reads commands with
// history, tab completion over the command names, and an optional
// persistent history database.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"minline"
	"minline/config"
	"minline/history"
)

// commands is the completion vocabulary for the demo.
var commands = []string{
	"clear",
	"color",
	"colour",
	"exit",
	"help",
	"history",
	"mask",
	"quit",
}

func main() {
	initConfig := false
	maskMode := false

	for _, arg := range os.Args[1:] {
		switch arg {
		case "--init-config":
			initConfig = true
		case "--mask":
			maskMode = true
		case "-h", "--help":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown argument: %s\n", arg)
			printUsage()
			os.Exit(1)
		}
	}

	// Generate default config and exit
	if initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	if err := run(maskMode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(maskMode bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ed := minline.NewStandard()
	ed.History().SetMaxLen(cfg.History.MaxLen)
	ed.SetMaskMode(maskMode || cfg.Editor.MaskMode)

	// Persistent history: seed the in-memory log from the database and
	// record new submissions into it.
	var store *history.Store
	if cfg.History.Persist {
		path := cfg.History.File
		if path == "" {
			path, err = config.HistoryPath()
			if err != nil {
				return err
			}
		}
		store, err = history.OpenStore(path)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer store.Close()

		lines, err := store.Load(cfg.History.MaxLen)
		if err != nil {
			return fmt.Errorf("loading history: %w", err)
		}
		for _, line := range lines {
			ed.AddHistory(line)
		}
	}

	ed.BindKey('\t', func(ed *minline.Editor, key string) minline.Result {
		return completeCommand(ed, cfg.Editor.AllowPrefixCompletion)
	})

	for {
		line, err := ed.ReadLine("minline> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		ed.AddHistory(line)
		if store != nil {
			if err := store.Append(line); err != nil {
				return fmt.Errorf("recording history: %w", err)
			}
		}

		switch line {
		case "exit", "quit":
			return nil
		case "clear":
			if err := ed.ClearScreen(); err != nil {
				return err
			}
		case "help":
			fmt.Println("commands:", strings.Join(commands, " "))
		case "history":
			for _, e := range ed.History().Entries() {
				fmt.Println(e)
			}
		default:
			fmt.Printf("you typed: %s\n", line)
		}
	}
}

// completeCommand completes the first word of the line against the
// command vocabulary.
func completeCommand(ed *minline.Editor, allowPrefix bool) minline.Result {
	line := ed.Line()
	word := line[:ed.Point()]
	if i := strings.LastIndexByte(word, ' '); i >= 0 {
		// Only the command position completes.
		return minline.Result{}
	}

	var matches []string
	for _, c := range commands {
		if strings.HasPrefix(c, word) {
			matches = append(matches, c)
		}
	}

	accepted, res := ed.Complete(0, matches, allowPrefix)
	if accepted && res.Err == nil {
		r := ed.InsertText(" ")
		res.Refresh = res.Refresh || r.Refresh
		if r.Err != nil {
			res.Err = r.Err
		}
	}
	return res
}

func printUsage() {
	fmt.Println(`usage: minline [options]

A demo REPL for the minline line editor.

options:
  --init-config   print the default config file and exit
  --mask          echo '*' per typed byte
  -h, --help      show this help`)
}
