package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	app "github.com/loopkiosk/application"
	"github.com/loopkiosk/display"
	"github.com/loopkiosk/internal/mainloop"
	"github.com/loopkiosk/internal/metrics"
	"github.com/loopkiosk/internal/robot"
	"github.com/loopkiosk/internal/watch"
	"github.com/loopkiosk/pkg/flags"
	"github.com/loopkiosk/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("LOOPKIOSK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func newRootCmd() *cobra.Command {
	return newCommand(newViper())
}

func newCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loopkiosk [flags] <video>",
		Short: "Play a video fullscreen, looping forever",
		Long: `Opens a borderless window covering the primary display and plays the
given video in it. When the video ends the playback pipeline is rebuilt and
the video starts over.

The video may be a path or any URI GStreamer can play:
  loopkiosk /srv/signage/lobby.mp4
  loopkiosk https://cdn.example.com/promo.webm

Every flag can also be set from the environment, e.g. LOOPKIOSK_ON_ERROR=exit.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError{fmt.Errorf("%w: %v", flags.ErrNoSource, err)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadArgs(v, args[0])
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	// Bad flags are usage errors too, not just a wrong argument count
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := cmd.Flags()
	f.String("log-level", "info", "Log level: debug|info|warn|error")
	f.String("log-format", "console", "Log format: console|json")
	f.String("title", app.DefaultTitle, "Window title")
	f.Bool("keep-aspect", false, "Letterbox instead of stretching the video to fill the screen")
	f.String("on-error", app.PolicyReload, "What to do when playback fails: reload|exit")
	f.Duration("retry-delay", 2*time.Second, "Minimum spacing of reloads after repeated playback errors")
	f.Bool("watch", true, "Reload when a local source file is replaced")
	f.Duration("watch-debounce", 500*time.Millisecond, "Quiet period before reacting to source file changes")
	f.Bool("park-pointer", true, "Move the mouse pointer to the screen corner on start")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9102")

	if err := v.BindPFlags(f); err != nil {
		panic(fmt.Sprintf("binding flags: %v", err))
	}
	return cmd
}

func loadArgs(v *viper.Viper, source string) (*app.Args, error) {
	cfg := app.NewArgs()
	cfg.Source = source
	cfg.Title = v.GetString("title")
	cfg.LogLevel = v.GetString("log-level")
	cfg.LogFormat = v.GetString("log-format")
	cfg.KeepAspect = v.GetBool("keep-aspect")
	cfg.OnError = v.GetString("on-error")
	cfg.RetryDelay = v.GetDuration("retry-delay")
	cfg.Watch = v.GetBool("watch")
	cfg.WatchDebounce = v.GetDuration("watch-debounce")
	cfg.MetricsAddr = v.GetString("metrics-addr")
	cfg.ParkPointer = v.GetBool("park-pointer")

	if err := flags.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run wires the components together. Window first, then the pipeline; teardown
// goes the other way round.
func run(ctx context.Context, cfg *app.Args) error {
	log := logger.Configure(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Info().Str("version", Version).Str("uri", cfg.URI).Str("on_error", cfg.OnError).Msg("starting")

	display.Init()
	loop := mainloop.New(logger.WithComponent("loop"))

	ui, err := display.NewUI(cfg.Title, logger.WithComponent("window"))
	if err != nil {
		log.Error().Err(err).Msg("opening window")
		return err
	}
	defer ui.Close()
	ui.Show()

	if cfg.ParkPointer {
		spec := ui.Window.Spec()
		robot.ParkPointer(spec.Width, spec.Height)
	}

	playback := display.NewPlaybackProvider(logger.WithComponent("gst"))
	kiosk := app.New(cfg, ui, playback.Provider, loop)

	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if path, ok := flags.LocalPath(cfg.URI); ok && cfg.Watch {
		go func() {
			if err := watch.Source(bgCtx, logger.WithComponent("watch"), path, cfg.WatchDebounce, kiosk.SourceChanged); err != nil {
				log.Warn().Err(err).Msg("source watcher stopped")
			}
		}()
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(bgCtx, logger.WithComponent("metrics"), cfg.MetricsAddr); err != nil {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
	}

	if err := kiosk.Run(ctx); err != nil {
		log.Error().Err(err).Msg("playback stopped")
		return err
	}
	log.Info().Msg("shut down")
	return nil
}
