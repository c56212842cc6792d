package application

import (
	"time"

	"github.com/loopkiosk/pkg/message"
)

// PipelineOptions is what every pipeline instance is built from. It never changes
// for the lifetime of the process.
type PipelineOptions struct {
	URI        string
	KeepAspect bool
}

// Pipeline is a single playback pipeline instance. Instances are never reused:
// once Release is called the value must not be touched again.
type Pipeline interface {
	ID() string
	// Play requests the Playing state. The transition completes asynchronously.
	Play() error
	// Stop moves the pipeline to Null.
	Stop() error
	// Watch attaches the async bus watch and the sync bus handler.
	Watch(async message.AsyncHandler, sync message.SyncHandler)
	// Unwatch detaches both handlers installed by Watch.
	Unwatch()
	Release()
}

type PipelineFactory interface {
	NewPipeline(opts PipelineOptions) (Pipeline, error)
}

// HandleSource yields the native window handle, 0 while the window is not mapped.
// It is the only piece of window state visible from a streaming thread.
type HandleSource interface {
	Handle() uintptr
}

// Scheduler runs work on the main loop
type Scheduler interface {
	Post(fn func())
	AfterFunc(d time.Duration, fn func())
	Quit()
}

// Loop is the main loop all window and pipeline mutation runs on
type Loop interface {
	Scheduler
	Run()
}
