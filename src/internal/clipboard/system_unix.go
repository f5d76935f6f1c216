//go:build freebsd || linux || netbsd || openbsd || solaris || dragonfly

package clipboard

import (
	"sync"

	atotto "github.com/atotto/clipboard"
)

// atotto selects the X11 selection through a package-level flag.
var selectionMu sync.Mutex

func access(primary bool, fn func() error) error {
	if atotto.Unsupported {
		return unavailable()
	}
	selectionMu.Lock()
	defer selectionMu.Unlock()
	prev := atotto.Primary
	atotto.Primary = primary
	defer func() { atotto.Primary = prev }()
	return fn()
}
