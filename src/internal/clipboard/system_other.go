//go:build !(freebsd || linux || netbsd || openbsd || solaris || dragonfly)

package clipboard

import atotto "github.com/atotto/clipboard"

// Without a primary selection both slots reach the OS clipboard.
func access(_ bool, fn func() error) error {
	if atotto.Unsupported {
		return unavailable()
	}
	return fn()
}
