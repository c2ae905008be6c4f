//go:build windows

package picker

import "github.com/gdamore/tcell/v2"

// The Windows console backend draws through the console API rather than
// stdout, so the default screen already keeps rendering off the result
// stream.
func newTtyScreen() (tcell.Screen, error) {
	return tcell.NewScreen()
}
