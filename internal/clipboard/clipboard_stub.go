//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "errors"

var errUnsupported = errors.New("clipboard operations are not supported on this platform")

func ensureInit() error { return errUnsupported }

// WritePNG is not supported on this platform.
func WritePNG([]byte) error { return errUnsupported }

// WriteText is not supported on this platform.
func WriteText(string) error { return errUnsupported }
