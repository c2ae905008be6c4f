//go:build !windows

package picker

import "github.com/gdamore/tcell/v2"

// newTtyScreen renders on the controlling terminal device directly, keeping
// the interactive frame off stdout so callers can read the selection result
// from it unambiguously.
func newTtyScreen() (tcell.Screen, error) {
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, err
	}
	return tcell.NewTerminfoScreenFromTty(tty)
}
