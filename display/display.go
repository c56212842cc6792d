package display

import (
	"github.com/loopkiosk/display/play"
	"github.com/loopkiosk/display/provider"

	"github.com/rs/zerolog"
	"github.com/tinyzimmer/go-gst/gst"
)

type UI struct {
	Window *provider.Window
}

type Playback struct {
	Provider *play.Factory
}

// Init brings up GStreamer. Call once before any pipeline is built.
func Init() {
	gst.Init(nil)
}

func NewPlaybackProvider(log zerolog.Logger) *Playback {
	return &Playback{Provider: play.NewFactory(log)}
}

// NewUI opens the kiosk window without showing it
func NewUI(title string, log zerolog.Logger) (*UI, error) {
	w, err := provider.GetWindowProvider(title, log)
	if err != nil {
		return nil, err
	}
	return &UI{Window: w}, nil
}

func (u *UI) Show() {
	u.Window.Show()
}

func (u *UI) Handle() uintptr {
	return u.Window.Handle()
}

func (u *UI) Close() {
	u.Window.Close()
}
