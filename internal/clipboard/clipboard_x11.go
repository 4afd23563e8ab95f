//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	owner        *x11Owner
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		o, err := newX11Owner()
		if err != nil {
			initErr = err
			return
		}
		owner = o
	})
	return initErr
}

// WritePNG publishes PNG encoded image data.
func WritePNG(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.publish(owner.atoms.png, data)
}

// WriteText writes text data to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.publish(owner.atoms.utf8, []byte(text))
}

// x11Owner holds the CLIPBOARD selection and answers conversion requests
// from other clients until another client takes ownership.
type x11Owner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomSet

	mu     sync.RWMutex
	target xproto.Atom
	data   []byte
}

type atomSet struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
}

func newX11Owner() (*x11Owner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	const eventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	o := &x11Owner{conn: conn, window: window, atoms: atoms}
	go o.eventLoop()
	return o, nil
}

func internAtoms(conn *xgb.Conn) (atomSet, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png"}
	atoms := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atomSet{}, err
		}
		atoms[i] = reply.Atom
	}
	return atomSet{
		clipboard: atoms[0],
		targets:   atoms[1],
		utf8:      atoms[2],
		textPlain: atoms[3],
		png:       atoms[4],
	}, nil
}

func (o *x11Owner) publish(target xproto.Atom, data []byte) error {
	o.mu.Lock()
	o.target = target
	o.data = append([]byte(nil), data...)
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *x11Owner) eventLoop() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.target, o.data = 0, nil
			o.mu.Unlock()
		}
	}
}

// offers lists the targets the held data can be converted to.
func (o *x11Owner) offers(target xproto.Atom) []xproto.Atom {
	switch target {
	case o.atoms.utf8:
		return []xproto.Atom{o.atoms.utf8, xproto.AtomString, o.atoms.textPlain}
	case o.atoms.png:
		return []xproto.Atom{o.atoms.png}
	}
	return nil
}

func (o *x11Owner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	o.mu.RLock()
	held, data := o.target, o.data
	o.mu.RUnlock()
	offers := o.offers(held)

	switch {
	case e.Target == o.atoms.targets:
		list := append([]xproto.Atom{o.atoms.targets}, offers...)
		buf := make([]byte, len(list)*4)
		for i, a := range list {
			xgb.Put32(buf[i*4:], uint32(a))
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(list)), buf)
	case len(data) > 0 && containsAtom(offers, e.Target):
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, held, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

func containsAtom(list []xproto.Atom, a xproto.Atom) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
