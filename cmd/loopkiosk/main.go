package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/loopkiosk/pkg/flags"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func init() {
	// GLib and X11 want to be driven from one OS thread
	runtime.LockOSThread()
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "loopkiosk:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for anything the user got wrong on the command line, 1 otherwise
func exitCode(err error) int {
	var usage usageError
	if errors.As(err, &usage) || errors.Is(err, flags.ErrNoSource) || errors.Is(err, flags.ErrBadPolicy) {
		return 2
	}
	return 1
}
