package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/taskveil/internal/audit"
	"github.com/1broseidon/taskveil/internal/config"
	"github.com/1broseidon/taskveil/internal/platform"
	"github.com/1broseidon/taskveil/internal/registry"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "hide":
		os.Exit(runHide(os.Args[2:]))
	case "restore":
		os.Exit(runRestore(os.Args[2:]))
	case "pick":
		os.Exit(runPick(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: taskveil <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list                List visible top-level windows")
	fmt.Fprintln(w, "  hide <id|title>     Remove a window from the taskbar")
	fmt.Fprintln(w, "  restore <id|title>  List a hidden window in the taskbar again")
	fmt.Fprintln(w, "  pick                Pick a window to hide interactively")
	fmt.Fprintln(w, "  watch               Resident mode: hotkey toggle, tray, notifications")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'taskveil <command> --help' for command-specific options.")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// newBackend builds the platform backend from config, with an optional
// strategy override from the command line.
func newBackend(cfg *config.Config, strategyOverride platform.Strategy) (platform.Backend, error) {
	strategy := platform.Strategy(cfg.Strategy)
	if strategyOverride != "" {
		strategy = strategyOverride
	}
	return platform.NewBackend(platform.Options{
		Strategy:   strategy,
		OwnerTitle: cfg.OwnerTitle,
	})
}

func newAuditLogger(cfg *config.Config) *audit.Logger {
	logger, err := audit.New(audit.Config{
		Enabled:   cfg.Logging.Enabled,
		Level:     audit.ParseLevel(cfg.Logging.Level),
		FilePath:  cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: action log disabled: %v\n", err)
		return nil
	}
	return logger
}

// parseWindowID accepts a decimal or 0x-prefixed hex window ID.
func parseWindowID(s string) (platform.WindowID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return platform.WindowID(v), true
}

// resolveWindow turns a command-line reference into a window ID. Numeric
// references are used as-is; anything else is a case-insensitive title
// substring, first match wins.
func resolveWindow(backend platform.Backend, ref string) (platform.WindowID, error) {
	if id, ok := parseWindowID(ref); ok {
		return id, nil
	}

	windows, err := backend.ListWindows()
	if err != nil {
		return 0, err
	}
	needle := strings.ToLower(ref)
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), needle) {
			return w.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: no window title matches %q", platform.ErrWindowNotFound, ref)
}

// hiddenSet merges the backend's in-process tracking with the cross-process
// registry.
func hiddenSet(backend platform.Backend) map[platform.WindowID]bool {
	hidden := make(map[platform.WindowID]bool)
	for _, id := range backend.HiddenWindows() {
		hidden[id] = true
	}
	if entries, err := registry.List(); err == nil {
		for _, e := range entries {
			hidden[platform.WindowID(e.Window)] = true
		}
	}
	return hidden
}

// windowTitle returns the current title of a window, or "" when it cannot be
// resolved.
func windowTitle(backend platform.Backend, id platform.WindowID) string {
	windows, err := backend.ListWindows()
	if err != nil {
		return ""
	}
	for _, w := range windows {
		if w.ID == id {
			return w.Title
		}
	}
	return ""
}

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: taskveil list [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List visible top-level windows. Hidden windows are marked.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	path := fs.String("path", "", "Config file path (default: ~/.config/taskveil/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "list takes no arguments")
		fs.Usage()
		return 2
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

	windows, err := backend.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	hidden := hiddenSet(backend)

	for _, w := range windows {
		marker := " "
		if hidden[w.ID] {
			marker = "*"
		}
		fmt.Printf("%s %#-12x %-7d %-20s %s\n", marker, uintptr(w.ID), w.PID, w.Class, w.Title)
	}
	return 0
}

func runHide(args []string) int {
	fs := flag.NewFlagSet("hide", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: taskveil hide [--taskbar-list] <id|title>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Remove a window from the taskbar. The window stays open and focusable.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	path := fs.String("path", "", "Config file path (default: ~/.config/taskveil/config.yaml)")
	taskbarList := fs.Bool("taskbar-list", false, "Hide via the taskbar-list interface instead of an owner window")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "hide requires <id|title>")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var override platform.Strategy
	if *taskbarList {
		override = platform.StrategyTaskbarList
	}
	backend, err := newBackend(cfg, override)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Close()

	logger := newAuditLogger(cfg)
	defer logger.Close()

	id, err := resolveWindow(backend, fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	title := windowTitle(backend, id)
	if err := backend.Hide(id); err != nil {
		logger.Log(audit.ActionHideFailed, uintptr(id), map[string]interface{}{"error": err.Error()})
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Log(audit.ActionHide, uintptr(id), nil)

	strategy := cfg.Strategy
	if *taskbarList {
		strategy = string(platform.StrategyTaskbarList)
	}
	if err := registry.Add(registry.Entry{Window: uint64(id), Title: title, Strategy: strategy}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record hidden window: %v\n", err)
	}
	fmt.Printf("hidden: %#x\n", uintptr(id))
	return 0
}

func runRestore(args []string) int {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: taskveil restore <id|title>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List a previously hidden window in the taskbar again.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	path := fs.String("path", "", "Config file path (default: ~/.config/taskveil/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "restore requires <id|title>")
		fs.Usage()
		return 2
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

	id, err := resolveWindow(backend, fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := backend.Restore(id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Log(audit.ActionRestore, uintptr(id), nil)
	if err := registry.Remove(uint64(id)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to update hidden-window registry: %v\n", err)
	}
	fmt.Printf("restored: %#x\n", uintptr(id))
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  taskveil config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  taskveil config print [--path PATH]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/taskveil/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/taskveil/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		cfg, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := cfg.Print(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}
