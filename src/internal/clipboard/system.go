package clipboard

import (
	"fmt"
	"runtime"

	atotto "github.com/atotto/clipboard"
)

// System is the OS clipboard.
type System struct{}

// PrimarySelection is the X11 primary selection on unix systems. Elsewhere it
// is the OS clipboard.
type PrimarySelection struct{}

func (System) Write(text string) error {
	return access(false, func() error { return atotto.WriteAll(text) })
}

func (System) Read() (string, error) { return readSelection(false) }

func (PrimarySelection) Write(text string) error {
	return access(true, func() error { return atotto.WriteAll(text) })
}

func (PrimarySelection) Read() (string, error) { return readSelection(true) }

func readSelection(primary bool) (string, error) {
	var out string
	err := access(primary, func() error {
		s, err := atotto.ReadAll()
		out = s
		return err
	})
	return out, err
}

func unavailable() error { return fmt.Errorf("%w on %s", ErrUnavailable, runtime.GOOS) }
