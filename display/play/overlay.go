package play

/*
#cgo pkg-config: gstreamer-1.0 gstreamer-video-1.0
#include <gst/gst.h>
#include <gst/video/videooverlay.h>

static gboolean kiosk_is_prepare_window_handle(GstMessage *msg) {
	return gst_is_video_overlay_prepare_window_handle_message(msg);
}

static void kiosk_set_window_handle(GstMessage *msg, guintptr handle) {
	gst_video_overlay_set_window_handle(GST_VIDEO_OVERLAY(GST_MESSAGE_SRC(msg)), handle);
}
*/
import "C"

import (
	"unsafe"

	"github.com/loopkiosk/pkg/message"

	"github.com/tinyzimmer/go-gst/gst"
)

// overlayRequest wraps a message seen by the sync handler. It only knows how to
// bind a window handle to the sink that posted it.
type overlayRequest struct {
	msg *gst.Message
}

func (r *overlayRequest) Kind() message.Kind {
	return kindOf(r.msg)
}

func (r *overlayRequest) BindWindowHandle(handle uintptr) {
	if !isPrepareWindowHandle(r.msg) {
		return
	}
	C.kiosk_set_window_handle(cMessage(r.msg), C.guintptr(handle))
}

func isPrepareWindowHandle(msg *gst.Message) bool {
	return C.kiosk_is_prepare_window_handle(cMessage(msg)) != 0
}

// go-gst's C types live in its own package, so go through unsafe.Pointer
func cMessage(msg *gst.Message) *C.GstMessage {
	return (*C.GstMessage)(unsafe.Pointer(msg.Instance()))
}
