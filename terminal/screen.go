// Package terminal owns the tcell screen and turns its events into input events
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// NewScreen opens and initializes the terminal screen with the cursor hidden
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}
