package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/taskveil/internal/audit"
	"github.com/1broseidon/taskveil/internal/platform"
	"github.com/1broseidon/taskveil/internal/registry"
)

func runPick(args []string) int {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: taskveil pick [--restore]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Pick a window interactively and hide it from the taskbar.")
		fmt.Fprintln(os.Stderr, "With --restore, pick from the currently hidden windows instead.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	path := fs.String("path", "", "Config file path (default: ~/.config/taskveil/config.yaml)")
	restore := fs.Bool("restore", false, "Pick a hidden window to restore")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "pick takes no arguments")
		fs.Usage()
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "pick requires an interactive terminal")
		return 1
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	backend, err := newBackend(cfg, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Close()

	logger := newAuditLogger(cfg)
	defer logger.Close()

	windows, err := backend.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	hidden := hiddenSet(backend)

	title := "Hide which window?"
	var opts []huh.Option[platform.WindowID]
	for _, w := range windows {
		if *restore != hidden[w.ID] {
			continue
		}
		label := fmt.Sprintf("%s  [%s, pid %d]", w.Title, w.Class, w.PID)
		opts = append(opts, huh.NewOption(label, w.ID))
	}
	if *restore {
		title = "Restore which window?"
	}
	if len(opts) == 0 {
		fmt.Fprintln(os.Stderr, "no windows to pick from")
		return 1
	}

	var picked platform.WindowID
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[platform.WindowID]().
				Title(title).
				Options(opts...).
				Value(&picked),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *restore {
		if err := backend.Restore(picked); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		logger.Log(audit.ActionRestore, uintptr(picked), nil)
		if err := registry.Remove(uint64(picked)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to update hidden-window registry: %v\n", err)
		}
		fmt.Printf("restored: %#x\n", uintptr(picked))
		return 0
	}

	pickedTitle := windowTitle(backend, picked)
	if err := backend.Hide(picked); err != nil {
		logger.Log(audit.ActionHideFailed, uintptr(picked), map[string]interface{}{"error": err.Error()})
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Log(audit.ActionHide, uintptr(picked), nil)
	if err := registry.Add(registry.Entry{Window: uint64(picked), Title: pickedTitle, Strategy: cfg.Strategy}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record hidden window: %v\n", err)
	}
	fmt.Printf("hidden: %#x\n", uintptr(picked))
	return 0
}
