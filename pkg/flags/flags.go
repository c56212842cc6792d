package flags

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	app "github.com/loopkiosk/application"
)

var (
	ErrNoSource  = errors.New("no video source given")
	ErrBadPolicy = errors.New("unsupported error policy")
)

// SourceURI turns a path or URI into something playbin accepts.
// Anything with a scheme is passed through, plain paths become absolute file URIs.
func SourceURI(source string) (string, error) {
	if strings.Contains(source, "://") {
		return source, nil
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", source, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// LocalPath returns the filesystem path behind a file URI, or false for remote sources
func LocalPath(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

func validateSource(cfg *app.Args) error {
	if strings.TrimSpace(cfg.Source) == "" {
		return ErrNoSource
	}
	uri, err := SourceURI(cfg.Source)
	if err != nil {
		return err
	}
	cfg.URI = uri
	return nil
}

func validatePolicy(cfg *app.Args) error {
	switch cfg.OnError {
	case "":
		cfg.OnError = app.PolicyReload
	case app.PolicyReload, app.PolicyExit:
	default:
		return fmt.Errorf("%w: %q (expected %s|%s)", ErrBadPolicy, cfg.OnError, app.PolicyReload, app.PolicyExit)
	}
	return nil
}

func validateDurations(cfg *app.Args) error {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.WatchDebounce < 0 {
		return fmt.Errorf("--watch-debounce must not be negative, got %s", cfg.WatchDebounce)
	}
	return nil
}

// Validates the configuration needed to start the kiosk and fills in derived fields.
// Does not check that the source is actually playable
func Validate(cfg *app.Args) error {
	if err := validateSource(cfg); err != nil {
		return err
	}
	if err := validatePolicy(cfg); err != nil {
		return err
	}
	if cfg.Title == "" {
		cfg.Title = app.DefaultTitle
	}
	return validateDurations(cfg)
}
