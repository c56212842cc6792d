package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/loopkiosk/internal/metrics"
	"github.com/loopkiosk/pkg/logger"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const DefaultTitle = "Loop Kiosk"

// What to do when a pipeline posts an error
const (
	PolicyReload = "reload"
	PolicyExit   = "exit"
)

// Burst of error reloads allowed before the retry delay kicks in
const retryBurst = 3

var ErrPlaybackFailed = errors.New("playback failed")

type Args struct {
	Source     string // Positional argument as given
	URI        string // Source normalised to a URI, filled by flags.Validate
	Title      string
	LogLevel   string
	LogFormat  string
	KeepAspect bool
	OnError    string
	RetryDelay time.Duration

	Watch         bool
	WatchDebounce time.Duration
	MetricsAddr   string
	ParkPointer   bool
}

func NewArgs() *Args {
	return &Args{}
}

// Main application which owns the window, the playback pipeline and the loop.
// Everything except the sync bus handler runs on the loop, so App needs no locking.
type App struct {
	*Args
	window   HandleSource
	factory  PipelineFactory
	loop     Loop
	current  Pipeline
	released int
	limiter  *rate.Limiter
	retrying bool
	gen      int // bumped by every Load, so a retry can tell it was overtaken
	err      error
	log      zerolog.Logger
}

// Returns a new instance of the application
func New(cfg *Args, window HandleSource, factory PipelineFactory, loop Loop) *App {
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &App{
		Args:    cfg,
		window:  window,
		factory: factory,
		loop:    loop,
		limiter: rate.NewLimiter(rate.Every(delay), retryBurst),
		log:     logger.WithComponent("app"),
	}
}

// Current returns the live pipeline, nil before the first Load or after Close
func (app *App) Current() Pipeline {
	return app.current
}

// Released reports how many pipelines have been torn down so far
func (app *App) Released() int {
	return app.released
}

// Err is the error that made the loop quit, if any
func (app *App) Err() error {
	return app.err
}

func (app *App) teardown() {
	prev := app.current
	if prev == nil {
		return
	}
	app.current = nil

	if err := prev.Stop(); err != nil {
		app.log.Warn().Err(err).Str("pipeline", prev.ID()).Msg("stopping pipeline")
	}
	// Handlers go before the pipeline so nothing calls back into released state
	prev.Unwatch()
	prev.Release()

	app.released++
	metrics.LivePipelines.Dec()
	app.log.Debug().Str("pipeline", prev.ID()).Msg("pipeline released")
}

// Load tears down the live pipeline, if any, and builds a fresh one for the same source.
// When Load returns the old pipeline is gone and Playing has been requested on the new
// one; the transition itself completes later.
func (app *App) Load(cause Cause) error {
	app.teardown()
	app.gen++
	app.retrying = false

	p, err := app.factory.NewPipeline(PipelineOptions{URI: app.URI, KeepAspect: app.KeepAspect})
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}

	p.Watch(app.busWatch(p.ID()), SyncHandler(app.window))
	app.current = p
	metrics.LivePipelines.Inc()
	metrics.ReloadsTotal.WithLabelValues(cause.String()).Inc()

	app.log.Info().
		Str("pipeline", p.ID()).
		Stringer("cause", cause).
		Str("uri", app.URI).
		Msg("loading video")

	if err := p.Play(); err != nil {
		return fmt.Errorf("starting pipeline %s: %w", p.ID(), err)
	}
	return nil
}

func (app *App) reload(cause Cause) {
	if err := app.Load(cause); err != nil {
		app.log.Error().Err(err).Stringer("cause", cause).Msg("reload failed")
		app.fail(err)
	}
}

// fail applies the error policy. Runs on the loop.
func (app *App) fail(err error) {
	if app.OnError == PolicyExit {
		app.err = fmt.Errorf("%w: %v", ErrPlaybackFailed, err)
		app.loop.Quit()
		return
	}

	if app.retrying {
		return
	}
	app.retrying = true

	delay := app.limiter.Reserve().Delay()
	app.log.Warn().Err(err).Dur("delay", delay).Msg("scheduling reload after error")

	gen := app.gen
	app.loop.AfterFunc(delay, func() {
		if gen != app.gen {
			app.log.Debug().Msg("pipeline already rebuilt, dropping scheduled reload")
			return
		}
		app.retrying = false
		app.reload(PlaybackError)
	})
}

// SourceChanged rebuilds the pipeline so a replaced source file is picked up.
// Safe to call from any goroutine.
func (app *App) SourceChanged() {
	app.loop.Post(func() {
		app.reload(SourceChanged)
	})
}

// Close releases the live pipeline. Call it after the loop has returned.
func (app *App) Close() {
	app.teardown()
}

// Run loads the first pipeline and blocks in the main loop until ctx is done or the
// error policy gives up.
func (app *App) Run(ctx context.Context) error {
	if err := app.Load(Startup); err != nil {
		app.Close()
		return err
	}

	stop := context.AfterFunc(ctx, func() {
		app.loop.Post(app.loop.Quit)
	})
	defer stop()

	app.log.Info().Msg("entering main loop")
	app.loop.Run()
	app.log.Info().Msg("main loop exited")

	app.Close()
	return app.err
}
