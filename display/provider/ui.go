package provider

import (
	"fmt"
	"sync/atomic"

	"github.com/robotn/xgb/xproto"
	"github.com/robotn/xgbutil"
	"github.com/robotn/xgbutil/ewmh"
	"github.com/robotn/xgbutil/motif"
	"github.com/robotn/xgbutil/xwindow"
	"github.com/rs/zerolog"
)

// Spec describes the kiosk window before it exists
type Spec struct {
	Title         string
	Width, Height int
	Decorated     bool
}

func newSpec(title string, width, height int) Spec {
	return Spec{Title: title, Width: width, Height: height}
}

// Window is an undecorated top-level X11 window covering the display
type Window struct {
	spec   Spec
	xu     *xgbutil.XUtil
	win    *xwindow.Window
	handle atomic.Uintptr
	log    zerolog.Logger
}

func newWindow(title string, log zerolog.Logger) (*Window, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connecting to X display: %w", err)
	}
	spec := WindowSpec(title, xu.Screen())

	win, err := xwindow.Generate(xu)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("allocating window id: %w", err)
	}

	// Static gravity keeps the origin pinned when the window manager reparents us
	err = win.CreateChecked(xu.RootWin(), 0, 0, spec.Width, spec.Height,
		xproto.CwBackPixel|xproto.CwWinGravity|xproto.CwEventMask,
		xu.Screen().BlackPixel, xproto.GravityStatic, xproto.EventMaskStructureNotify)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w := &Window{spec: spec, xu: xu, win: win, log: log}

	if err := ewmh.WmNameSet(xu, win.Id, spec.Title); err != nil {
		log.Warn().Err(err).Msg("setting window title")
	}
	if !spec.Decorated {
		hints := &motif.Hints{Flags: motif.HintDecorations, Decoration: motif.DecorationNone}
		if err := motif.WmHintsSet(xu, win.Id, hints); err != nil {
			log.Warn().Err(err).Msg("removing window decorations")
		}
	}

	go w.drainEvents()
	return w, nil
}

// xgb blocks its reader once the event queue fills up, so keep it empty
func (w *Window) drainEvents() {
	for {
		ev, err := w.xu.Conn().WaitForEvent()
		if ev == nil && err == nil {
			w.log.Debug().Msg("X connection closed")
			return
		}
		if err != nil {
			w.log.Debug().Str("error", err.Error()).Msg("X error")
		}
	}
}

// Show sizes the window to the display and maps it
func (w *Window) Show() {
	w.win.MoveResize(0, 0, w.spec.Width, w.spec.Height)
	w.win.Map()
	w.handle.Store(uintptr(w.win.Id))

	w.log.Info().
		Int("width", w.spec.Width).
		Int("height", w.spec.Height).
		Uint32("xid", uint32(w.win.Id)).
		Msg("window shown")
}

// Handle is the X11 window id, or 0 while the window is not mapped.
// Safe to call from any thread.
func (w *Window) Handle() uintptr {
	return w.handle.Load()
}

func (w *Window) Spec() Spec {
	return w.spec
}

func (w *Window) Close() {
	w.handle.Store(0)
	w.win.Destroy()
	w.xu.Conn().Close()
	w.log.Info().Msg("window closed")
}
