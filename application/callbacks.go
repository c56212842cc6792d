package application

import "github.com/loopkiosk/pkg/message"

// SyncHandler binds the window to the video overlay when the sink asks for it.
// Nothing else is looked at here: this runs on a streaming thread.
func SyncHandler(window HandleSource) message.SyncHandler {
	return func(req message.OverlayRequest) message.SyncReply {
		if req.Kind() != message.PrepareWindowHandle {
			return message.Pass
		}
		if handle := window.Handle(); handle != 0 {
			req.BindWindowHandle(handle)
		}
		return message.Pass
	}
}
