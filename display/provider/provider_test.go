package provider

import (
	"testing"

	"github.com/robotn/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func TestWindowSpecMatchesScreen(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint16
	}{
		{"1080p", 1920, 1080},
		{"4k", 3840, 2160},
		{"portrait", 1080, 1920},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := &xproto.ScreenInfo{WidthInPixels: tt.width, HeightInPixels: tt.height}

			spec := WindowSpec("Lobby", screen)

			assert.Equal(t, "Lobby", spec.Title)
			assert.Equal(t, int(tt.width), spec.Width)
			assert.Equal(t, int(tt.height), spec.Height)
			assert.False(t, spec.Decorated)
		})
	}
}

func TestWindowHandleZeroBeforeShow(t *testing.T) {
	w := &Window{spec: newSpec("x", 10, 10)}
	assert.Zero(t, w.Handle())
}
