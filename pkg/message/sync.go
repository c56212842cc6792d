package message

// SyncReply tells the bus what to do with a message after the sync handler ran
type SyncReply uint8

const (
	Pass SyncReply = iota
	Drop
)

func (r SyncReply) String() string {
	switch r {
	case Pass:
		return "Pass"
	case Drop:
		return "Drop"
	default:
		return Unsupported
	}
}

// OverlayRequest is all a sync handler gets to see of a message. It runs on a
// streaming thread, so the only thing it may do is bind a window handle.
type OverlayRequest interface {
	Kind() Kind
	BindWindowHandle(handle uintptr)
}

// SyncHandler is invoked on the thread that posted the message
type SyncHandler func(req OverlayRequest) SyncReply

// AsyncHandler is invoked on the main loop. Returning false removes the watch.
type AsyncHandler func(msg Message) bool
