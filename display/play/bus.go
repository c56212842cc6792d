package play

/*
#cgo pkg-config: gstreamer-1.0
#include "bus.h"
*/
import "C"

import (
	"runtime/cgo"
	"sync/atomic"
	"unsafe"

	"github.com/tinyzimmer/go-gst/gst"
)

// The bindings' Bus.AddWatch and Bus.SetSyncHandler keep their Go closures alive
// until the callback itself returns false, which never happens once the watch is
// removed from outside. Handlers installed here are cgo handles freed by the
// GLib destroy notify, so detaching a bus really lets go of them.

type busWatchFunc func(*gst.Message) bool

type busSyncFunc func(*gst.Message) gst.BusSyncReply

// handles not yet freed by a destroy notify
var liveHandles atomic.Int64

func newHandle(v any) C.guintptr {
	liveHandles.Add(1)
	return C.guintptr(cgo.NewHandle(v))
}

func cBus(bus *gst.Bus) *C.GstBus {
	return (*C.GstBus)(unsafe.Pointer(bus.Instance()))
}

// addBusWatch dispatches bus messages to fn on the default main context.
// False if the bus already has a watch.
func addBusWatch(bus *gst.Bus, fn busWatchFunc) bool {
	h := newHandle(fn)
	if C.kiosk_bus_add_watch(cBus(bus), h) == 0 {
		goKioskHandleDestroy(h)
		return false
	}
	return true
}

// setBusSyncHandler replaces the bus sync handler. fn runs on the posting thread.
func setBusSyncHandler(bus *gst.Bus, fn busSyncFunc) {
	C.kiosk_bus_set_sync_handler(cBus(bus), newHandle(fn))
}

// clearBus removes the watch and the sync handler. False if there was no watch.
func clearBus(bus *gst.Bus) bool {
	return C.kiosk_bus_clear(cBus(bus)) != 0
}

// Messages are borrowed for the duration of the call, so no ref is taken

//export goKioskBusWatch
func goKioskBusWatch(msg *C.GstMessage, handle C.guintptr) C.gboolean {
	fn := cgo.Handle(handle).Value().(busWatchFunc)
	if fn(gst.ToGstMessage(unsafe.Pointer(msg))) {
		return C.gboolean(1)
	}
	return C.gboolean(0)
}

//export goKioskBusSync
func goKioskBusSync(msg *C.GstMessage, handle C.guintptr) C.GstBusSyncReply {
	fn := cgo.Handle(handle).Value().(busSyncFunc)
	return C.GstBusSyncReply(fn(gst.ToGstMessage(unsafe.Pointer(msg))))
}

//export goKioskHandleDestroy
func goKioskHandleDestroy(handle C.guintptr) {
	cgo.Handle(handle).Delete()
	liveHandles.Add(-1)
}
