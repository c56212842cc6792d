package mainloop

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/tinyzimmer/go-glib/glib"
)

// Loop is the GLib main loop bus watches are dispatched on
type Loop struct {
	loop *glib.MainLoop
	log  zerolog.Logger
}

func New(log zerolog.Logger) *Loop {
	return &Loop{
		loop: glib.NewMainLoop(glib.MainContextDefault(), false),
		log:  log,
	}
}

// Run blocks until Quit is called
func (l *Loop) Run() {
	l.log.Debug().Msg("starting main loop")
	l.loop.Run()
}

func (l *Loop) Quit() {
	l.log.Debug().Msg("quitting main loop")
	l.loop.Quit()
}

// Post runs fn once on the loop. Safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	if _, err := glib.IdleAdd(func() bool {
		fn()
		return false
	}); err != nil {
		l.log.Error().Err(err).Msg("posting to main loop")
	}
}

// AfterFunc runs fn once on the loop after d
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	if d <= 0 {
		l.Post(fn)
		return
	}
	if _, err := glib.TimeoutAdd(uint(d.Milliseconds()), func() bool {
		fn()
		return false
	}); err != nil {
		l.log.Error().Err(err).Msg("adding timeout to main loop")
	}
}
