// Package tray runs the system tray menu for watch mode.
package tray

import (
	"fmt"

	"github.com/getlantern/systray"
)

// Menu is the set of callbacks the tray menu drives. All callbacks are
// invoked from the tray's own goroutine.
type Menu struct {
	// OnRestoreAll restores every hidden window.
	OnRestoreAll func()
	// OnQuit is called once when the user picks Quit, before the tray exits.
	OnQuit func()
}

// Run starts the system tray and blocks until Quit is called. Must run on the
// main goroutine on platforms where the tray needs the main thread.
func Run(m Menu) {
	systray.Run(func() {
		systray.SetTitle("taskveil")
		systray.SetTooltip(hiddenTooltip(0))

		mRestore := systray.AddMenuItem("Restore all windows", "List every hidden window in the taskbar again")
		systray.AddSeparator()
		mQuit := systray.AddMenuItem("Quit", "Restore hidden windows and exit")

		go func() {
			for {
				select {
				case <-mRestore.ClickedCh:
					if m.OnRestoreAll != nil {
						m.OnRestoreAll()
					}
				case <-mQuit.ClickedCh:
					if m.OnQuit != nil {
						m.OnQuit()
					}
					systray.Quit()
					return
				}
			}
		}()
	}, nil)
}

// SetHiddenCount updates the tooltip with the number of hidden windows.
func SetHiddenCount(n int) {
	systray.SetTooltip(hiddenTooltip(n))
}

func hiddenTooltip(n int) string {
	if n == 0 {
		return "taskveil: no windows hidden"
	}
	return fmt.Sprintf("taskveil: %d hidden", n)
}

// Quit stops the tray loop.
func Quit() {
	systray.Quit()
}
