package utils

import (
	"github.com/robotn/xgb/xproto"
)

// ScreenSize returns the screen's size in pixels, as the X server reports it.
// These are already device pixels; no scale factor applies.
func ScreenSize(screen *xproto.ScreenInfo) (width, height int) {
	// TODO: Pick the monitor the window lands on once multi-monitor kiosks need it (RandR)
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}
