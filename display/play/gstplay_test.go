package play

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/loopkiosk/application"
	"github.com/loopkiosk/pkg/logger"
	"github.com/loopkiosk/pkg/message"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinyzimmer/go-glib/glib"
	"github.com/tinyzimmer/go-gst/gst"
)

func TestMain(m *testing.M) {
	logger.Configure(logger.Config{Output: io.Discard})
	gst.Init(nil)
	os.Exit(m.Run())
}

func newTestPlayback(t *testing.T, opts application.PipelineOptions) *GstPlayback {
	t.Helper()
	if gst.Find(playFactory) == nil {
		t.Skip("playbin not installed (gst-plugins-base)")
	}

	p, err := NewFactory(logger.WithComponent("gst")).NewPipeline(opts)
	require.NoError(t, err)
	return p.(*GstPlayback)
}

// dispatch runs the default main context until nothing is pending
func dispatch() {
	ctx := glib.MainContextDefault()
	for i := 0; i < 10 && ctx.Iteration(false); i++ {
	}
}

func TestNewPipelineSetsProperties(t *testing.T) {
	tests := []struct {
		name       string
		keepAspect bool
	}{
		{"stretch", false},
		{"letterbox", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestPlayback(t, application.PipelineOptions{URI: "file:///videos/loop.mp4", KeepAspect: tt.keepAspect})
			defer g.Release()

			uri, err := g.pipeline.GetProperty("uri")
			require.NoError(t, err)
			assert.Equal(t, "file:///videos/loop.mp4", uri)

			aspect, err := g.pipeline.GetProperty("force-aspect-ratio")
			require.NoError(t, err)
			assert.Equal(t, tt.keepAspect, aspect)
		})
	}
}

func TestNewPipelineUniqueIDs(t *testing.T) {
	a := newTestPlayback(t, application.PipelineOptions{URI: "file:///a.mp4"})
	b := newTestPlayback(t, application.PipelineOptions{URI: "file:///a.mp4"})

	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, a.pipeline.GetName(), b.pipeline.GetName())
}

func TestWatchDeliversMessages(t *testing.T) {
	g := newTestPlayback(t, application.PipelineOptions{URI: "file:///a.mp4"})

	var got []message.Message
	var synced []message.Kind
	g.Watch(func(msg message.Message) bool {
		got = append(got, msg)
		return true
	}, func(req message.OverlayRequest) message.SyncReply {
		synced = append(synced, req.Kind())
		return message.Pass
	})

	bus := g.pipeline.GetBus()
	require.True(t, bus.Post(gst.NewEOSMessage(g.pipeline)))
	require.True(t, bus.Post(gst.NewErrorMessage(g.pipeline, errors.New("resource not found"), "filesrc.c(123)", nil)))

	// The sync handler runs on the posting thread, before anything is queued
	assert.Equal(t, []message.Kind{message.EOS, message.Error}, synced)

	dispatch()

	require.Len(t, got, 2)
	assert.Equal(t, message.EOS, got[0].Kind)
	assert.Equal(t, g.ID(), got[0].Pipeline)
	assert.Equal(t, g.pipeline.GetName(), got[0].Source)

	assert.Equal(t, message.Error, got[1].Kind)
	require.Error(t, got[1].Err)
	assert.Contains(t, got[1].Err.Error(), "resource not found")
	assert.Equal(t, "filesrc.c(123)", got[1].Debug)

	g.Unwatch()
	g.Release()
}

func TestUnwatchDetachesAndFreesHandlers(t *testing.T) {
	g := newTestPlayback(t, application.PipelineOptions{URI: "file:///a.mp4"})
	before := liveHandles.Load()

	calls := 0
	g.Watch(func(message.Message) bool {
		calls++
		return true
	}, func(message.OverlayRequest) message.SyncReply {
		calls++
		return message.Pass
	})
	assert.Equal(t, before+2, liveHandles.Load())

	bus := g.pipeline.GetBus()
	g.Unwatch()

	assert.Nil(t, g.bus)
	assert.Equal(t, before, liveHandles.Load())
	// Nothing left to remove
	assert.False(t, bus.RemoveWatch())

	bus.Post(gst.NewEOSMessage(g.pipeline))
	dispatch()
	assert.Zero(t, calls)

	// Safe to repeat, and Release leaves nothing to stop
	g.Unwatch()
	g.Release()
	assert.Nil(t, g.pipeline)
	assert.NoError(t, g.Stop())
}

func TestReloadCycleDoesNotLeakHandlers(t *testing.T) {
	before := liveHandles.Load()

	for i := 0; i < 5; i++ {
		g := newTestPlayback(t, application.PipelineOptions{URI: "file:///a.mp4"})
		g.Watch(func(message.Message) bool { return true }, func(message.OverlayRequest) message.SyncReply { return message.Pass })
		require.NoError(t, g.Stop())
		g.Unwatch()
		g.Release()
	}

	assert.Equal(t, before, liveHandles.Load())
}

func TestKindOf(t *testing.T) {
	g := newTestPlayback(t, application.PipelineOptions{URI: "file:///a.mp4"})
	defer g.Release()

	tests := []struct {
		name string
		msg  *gst.Message
		want message.Kind
	}{
		{"eos", gst.NewEOSMessage(g.pipeline), message.EOS},
		{"error", gst.NewErrorMessage(g.pipeline, errors.New("boom"), "", nil), message.Error},
		{"warning", gst.NewWarningMessage(g.pipeline, "slow", "", nil), message.Warning},
		{"prepare-window-handle", gst.NewElementMessage(g.pipeline, gst.NewStructure("prepare-window-handle")), message.PrepareWindowHandle},
		{"other element message", gst.NewElementMessage(g.pipeline, gst.NewStructure("level")), message.Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kindOf(tt.msg))
			assert.Equal(t, tt.want, (&overlayRequest{msg: tt.msg}).Kind())
		})
	}
}

func TestSyncReply(t *testing.T) {
	assert.Equal(t, gst.BusPass, syncReply(message.Pass))
	assert.Equal(t, gst.BusDrop, syncReply(message.Drop))
}
