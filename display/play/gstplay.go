package play

import (
	"fmt"

	"github.com/loopkiosk/application"
	"github.com/loopkiosk/pkg/message"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tinyzimmer/go-gst/gst"
)

const playFactory = "playbin"

// GstPlayback is one playbin instance. It is built by Factory and thrown away on reload.
type GstPlayback struct {
	id       string
	pipeline *gst.Element
	bus      *gst.Bus
	log      zerolog.Logger
}

// Factory builds playbin pipelines. gst.Init must have been called.
type Factory struct {
	log zerolog.Logger
}

func NewFactory(log zerolog.Logger) *Factory {
	return &Factory{log: log}
}

func (f *Factory) NewPipeline(opts application.PipelineOptions) (application.Pipeline, error) {
	id := uuid.NewString()

	el, err := gst.NewElementWithName(playFactory, "kiosk-"+id[:8])
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", playFactory, err)
	}

	// Stretch the video to fill the window unless asked otherwise
	if err := el.SetProperty("force-aspect-ratio", opts.KeepAspect); err != nil {
		return nil, fmt.Errorf("setting force-aspect-ratio: %w", err)
	}
	if err := el.SetProperty("uri", opts.URI); err != nil {
		return nil, fmt.Errorf("setting uri: %w", err)
	}

	f.log.Debug().Str("pipeline", id).Str("uri", opts.URI).Msg("created playbin")

	return &GstPlayback{
		id:       id,
		pipeline: el,
		log:      f.log.With().Str("pipeline", id).Logger(),
	}, nil
}

func (g *GstPlayback) ID() string {
	return g.id
}

func (g *GstPlayback) Play() error {
	g.log.Debug().Msg("requesting Playing")
	return g.pipeline.SetState(gst.StatePlaying)
}

func (g *GstPlayback) Stop() error {
	if g.pipeline == nil {
		g.log.Debug().Msg("pipeline already released, nothing to stop")
		return nil
	}
	g.log.Debug().Msg("requesting Null")
	return g.pipeline.SetState(gst.StateNull)
}

func (g *GstPlayback) Watch(async message.AsyncHandler, sync message.SyncHandler) {
	g.bus = g.pipeline.GetBus()

	if !addBusWatch(g.bus, func(msg *gst.Message) bool {
		return async(g.convert(msg))
	}) {
		g.log.Warn().Msg("bus already has a watch")
	}
	setBusSyncHandler(g.bus, func(msg *gst.Message) gst.BusSyncReply {
		return syncReply(sync(&overlayRequest{msg: msg}))
	})
}

// Unwatch detaches both bus handlers and frees them
func (g *GstPlayback) Unwatch() {
	if g.bus == nil {
		return
	}
	if !clearBus(g.bus) {
		g.log.Warn().Msg("no bus watch to remove")
	}
	g.bus = nil
}

// Release drops the references to the element. The bindings unref on finalize.
func (g *GstPlayback) Release() {
	g.bus = nil
	g.pipeline = nil
}

func syncReply(r message.SyncReply) gst.BusSyncReply {
	if r == message.Drop {
		return gst.BusDrop
	}
	return gst.BusPass
}

func (g *GstPlayback) convert(msg *gst.Message) message.Message {
	out := message.Message{
		Kind:     kindOf(msg),
		Pipeline: g.id,
		Source:   msg.Source(),
	}
	switch out.Kind {
	case message.Error:
		gerr := msg.ParseError()
		out.Err, out.Debug = gerr, gerr.DebugString()
	case message.Warning:
		gerr := msg.ParseWarning()
		out.Err, out.Debug = gerr, gerr.DebugString()
	}
	return out
}

func kindOf(msg *gst.Message) message.Kind {
	switch msg.Type() {
	case gst.MessageEOS:
		return message.EOS
	case gst.MessageError:
		return message.Error
	case gst.MessageWarning:
		return message.Warning
	case gst.MessageStateChanged:
		return message.StateChanged
	case gst.MessageElement:
		if isPrepareWindowHandle(msg) {
			return message.PrepareWindowHandle
		}
	}
	return message.Other
}
