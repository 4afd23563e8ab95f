// Package notify turns saves and clipboard copies into desktop
// notifications.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/peakfinder/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when results or a figure are written.
	EventSave Event = "save"
	// EventCopy fires when results or a figure are copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences holds the notification title and one body template per event.
// Each template takes a single %s for the detail.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// envTemplates names the variables that override each event's template.
var envTemplates = map[Event]string{
	EventSave: "PEAKFINDER_NOTIFY_SAVE_TEXT",
	EventCopy: "PEAKFINDER_NOTIFY_COPY_TEXT",
}

// DefaultPreferences returns the built-in title and templates.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies PEAKFINDER_NOTIFY_TITLE and the per event
// PEAKFINDER_NOTIFY_*_TEXT variables to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PEAKFINDER_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for ev, key := range envTemplates {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[ev] = v
		}
	}
	return prefs
}

// Sender delivers one notification.
type Sender func(title, body string, opts platform.Options) error

// Notifier implements picker.Notifier on top of the platform notification
// service. A nil Notifier is valid and sends nothing.
type Notifier struct {
	title     string
	templates map[Event]string
	enabled   map[Event]bool
	send      Sender
}

// New returns a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	n := &Notifier{
		title:     prefs.Title,
		templates: make(map[Event]string, len(prefs.Templates)),
		enabled:   make(map[Event]bool),
		send:      platform.Notify,
	}
	for ev, tmpl := range prefs.Templates {
		n.templates[ev] = tmpl
	}
	return n
}

// WithSender replaces the platform sender.
func (n *Notifier) WithSender(s Sender) *Notifier {
	n.send = s
	return n
}

// Enable switches notifications for event on or off.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports a written file by its absolute path. PNG and JPEG figures
// double as the notification image.
func (n *Notifier) Save(path string) {
	if !n.on(EventSave) {
		return
	}
	opts := platform.Options{Category: platform.CategoryTransfer}
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(detail); err == nil {
		detail = abs
	}
	if isRaster(detail) {
		if _, err := os.Stat(detail); err == nil {
			opts.IconPath = detail
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy reports a clipboard copy. An empty detail reads as "results".
func (n *Notifier) Copy(detail string) {
	if !n.on(EventCopy) {
		return
	}
	if detail = strings.TrimSpace(detail); detail == "" {
		detail = "results"
	}
	n.dispatch(EventCopy, detail, platform.Options{Category: platform.CategoryTransfer})
}

func isRaster(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func (n *Notifier) on(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.templates[event])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, detail))
	if err := n.send(n.title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
