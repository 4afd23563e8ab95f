//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const defaultTimeout int32 = 5000

// hints builds the freedesktop hint map for opts.
func hints(opts Options) map[string]dbus.Variant {
	h := map[string]dbus.Variant{}
	if opts.Category != "" {
		h["category"] = dbus.MakeVariant(opts.Category)
	}
	if opts.IconPath != "" {
		h["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	return h
}

// Notify sends a desktop notification over the session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	return obj.Call("org.freedesktop.Notifications.Notify", 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, hints(opts), timeout).Err
}
