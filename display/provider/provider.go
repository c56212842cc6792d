package provider

import (
	"github.com/loopkiosk/internal/utils"

	"github.com/robotn/xgb/xproto"
	"github.com/rs/zerolog"
)

// WindowSpec is the window GetWindowProvider opens on screen: all of it, undecorated
func WindowSpec(title string, screen *xproto.ScreenInfo) Spec {
	width, height := utils.ScreenSize(screen)
	return newSpec(title, width, height)
}

func GetWindowProvider(title string, log zerolog.Logger) (*Window, error) {
	return newWindow(title, log)
}
