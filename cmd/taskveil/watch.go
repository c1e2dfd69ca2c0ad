package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gen2brain/beeep"

	"github.com/1broseidon/taskveil/internal/audit"
	"github.com/1broseidon/taskveil/internal/config"
	"github.com/1broseidon/taskveil/internal/hotkeys"
	"github.com/1broseidon/taskveil/internal/platform"
	"github.com/1broseidon/taskveil/internal/registry"
	"github.com/1broseidon/taskveil/internal/tray"
)

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: taskveil watch [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run resident. The configured hotkey toggles taskbar visibility of the")
		fmt.Fprintln(os.Stderr, "active window; the tray menu restores hidden windows. All windows are")
		fmt.Fprintln(os.Stderr, "restored on exit.")
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
		fmt.Fprintln(os.Stderr, "watch takes no arguments")
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

	handler, err := hotkeys.Register(cfg.Watch.Hotkey)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer handler.Unregister()

	logger.Log(audit.ActionWatchStart, 0, map[string]interface{}{"hotkey": cfg.Watch.Hotkey})
	log.Printf("watching (hotkey: %s)", cfg.Watch.Hotkey)

	w := &watcher{
		backend: backend,
		logger:  logger,
		cfg:     cfg,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	go func() {
		for {
			select {
			case <-handler.Keydown():
				w.toggleActive()
			case <-ctx.Done():
				return
			}
		}
	}()

	if cfg.Watch.Tray {
		// The tray needs the main goroutine; quit it when the context dies.
		go func() {
			<-ctx.Done()
			tray.Quit()
		}()
		tray.Run(tray.Menu{
			OnRestoreAll: w.restoreAll,
			OnQuit:       cancel,
		})
	} else {
		<-ctx.Done()
	}

	w.restoreAll()
	logger.Log(audit.ActionWatchStop, 0, nil)
	return 0
}

// watcher holds the state shared between the hotkey loop and the tray menu.
type watcher struct {
	backend platform.Backend
	logger  *audit.Logger
	cfg     *config.Config
}

// toggleActive hides the focused window, or restores it when it is already
// hidden.
func (w *watcher) toggleActive() {
	id, err := w.backend.ActiveWindow()
	if err != nil {
		log.Printf("failed to resolve active window: %v", err)
		return
	}

	hidden := false
	for _, h := range w.backend.HiddenWindows() {
		if h == id {
			hidden = true
			break
		}
	}

	if hidden {
		if err := w.backend.Restore(id); err != nil {
			log.Printf("restore failed for %#x: %v", uintptr(id), err)
			return
		}
		w.logger.Log(audit.ActionRestore, uintptr(id), map[string]interface{}{"trigger": "hotkey"})
		if err := registry.Remove(uint64(id)); err != nil {
			log.Printf("failed to update hidden-window registry: %v", err)
		}
		w.notify("Window restored", fmt.Sprintf("%#x is listed in the taskbar again", uintptr(id)))
	} else {
		if err := w.backend.Hide(id); err != nil {
			w.logger.Log(audit.ActionHideFailed, uintptr(id), map[string]interface{}{"error": err.Error()})
			log.Printf("hide failed for %#x: %v", uintptr(id), err)
			return
		}
		w.logger.Log(audit.ActionHide, uintptr(id), map[string]interface{}{"trigger": "hotkey"})
		if err := registry.Add(registry.Entry{Window: uint64(id), Strategy: w.cfg.Strategy}); err != nil {
			log.Printf("failed to record hidden window: %v", err)
		}
		w.notify("Window hidden", fmt.Sprintf("%#x was removed from the taskbar", uintptr(id)))
	}

	if w.cfg.Watch.Tray {
		tray.SetHiddenCount(len(w.backend.HiddenWindows()))
	}
}

// restoreAll re-lists every hidden window in the taskbar.
func (w *watcher) restoreAll() {
	for _, id := range w.backend.HiddenWindows() {
		if err := w.backend.Restore(id); err != nil {
			log.Printf("restore failed for %#x: %v", uintptr(id), err)
			continue
		}
		w.logger.Log(audit.ActionRestore, uintptr(id), map[string]interface{}{"trigger": "restore-all"})
		if err := registry.Remove(uint64(id)); err != nil {
			log.Printf("failed to update hidden-window registry: %v", err)
		}
	}
	if w.cfg.Watch.Tray {
		tray.SetHiddenCount(len(w.backend.HiddenWindows()))
	}
}

// notify sends a desktop notification in a goroutine to avoid blocking the
// hotkey loop.
func (w *watcher) notify(title, message string) {
	if !w.cfg.Watch.Notify {
		return
	}
	go func() {
		if err := beeep.Notify(title, message, ""); err != nil {
			log.Printf("failed to send notification: %v", err)
		}
	}()
}
