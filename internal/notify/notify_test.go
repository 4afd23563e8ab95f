package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/peakfinder/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recorder(out *[]sent) Sender {
	return func(title, body string, opts platform.Options) error {
		*out = append(*out, sent{title, body, opts})
		return nil
	}
}

func TestDisabledByDefault(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Save("peaks.dat")
	n.Copy("figure")
	if len(got) != 0 {
		t.Fatalf("unexpected notifications %v", got)
	}
	var nilNotifier *Notifier
	nilNotifier.Save("x")
	nilNotifier.Enable(EventSave, true)
}

func TestSaveUsesAbsolutePathAndRasterIcon(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "plot.png")
	if err := os.WriteFile(png, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Enable(EventSave, true)
	n.Save(png)
	n.Save(filepath.Join(dir, "peaks.dat"))
	if len(got) != 2 {
		t.Fatalf("got %d notifications", len(got))
	}
	if got[0].body != "Saved "+png || got[0].opts.IconPath != png {
		t.Errorf("png notification %+v", got[0])
	}
	if got[1].opts.IconPath != "" {
		t.Errorf("icon for data file %+v", got[1])
	}
	if got[0].opts.Category != platform.CategoryTransfer {
		t.Errorf("category %q", got[0].opts.Category)
	}
	if got[0].title != platform.AppName {
		t.Errorf("title %q", got[0].title)
	}
}

func TestCopyTemplateFromEnv(t *testing.T) {
	t.Setenv("PEAKFINDER_NOTIFY_COPY_TEXT", "clipboard has %s")
	t.Setenv("PEAKFINDER_NOTIFY_TITLE", "Lab")
	var got []sent
	n := New(LoadPreferences()).WithSender(recorder(&got))
	n.Enable(EventCopy, true)
	n.Copy("")
	if len(got) != 1 || got[0].body != "clipboard has results" || got[0].title != "Lab" {
		t.Fatalf("got %+v", got)
	}
}

func TestSendErrorIsNotFatal(t *testing.T) {
	n := New(DefaultPreferences()).WithSender(func(string, string, platform.Options) error {
		return errors.New("no bus")
	})
	n.Enable(EventCopy, true)
	n.Copy("figure")
}
