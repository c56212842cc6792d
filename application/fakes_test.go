package application

import (
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/loopkiosk/pkg/logger"
	"github.com/loopkiosk/pkg/message"

	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Configure(logger.Config{Output: io.Discard})
	os.Exit(m.Run())
}

type fakePipeline struct {
	id      string
	playErr error
	calls   []string
	async   message.AsyncHandler
	sync    message.SyncHandler
	opts    PipelineOptions
}

func (p *fakePipeline) ID() string { return p.id }

func (p *fakePipeline) Play() error {
	p.calls = append(p.calls, "play")
	return p.playErr
}

func (p *fakePipeline) Stop() error {
	p.calls = append(p.calls, "stop")
	return nil
}

func (p *fakePipeline) Watch(async message.AsyncHandler, sync message.SyncHandler) {
	p.calls = append(p.calls, "watch")
	p.async, p.sync = async, sync
}

func (p *fakePipeline) Unwatch() {
	p.calls = append(p.calls, "unwatch")
}

func (p *fakePipeline) Release() {
	p.calls = append(p.calls, "release")
}

func (p *fakePipeline) released() bool {
	return len(p.calls) > 0 && p.calls[len(p.calls)-1] == "release"
}

type fakeFactory struct {
	built   []*fakePipeline
	err     error
	playErr error
}

func (f *fakeFactory) NewPipeline(opts PipelineOptions) (Pipeline, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := &fakePipeline{id: fmt.Sprintf("p%d", len(f.built)), opts: opts, playErr: f.playErr}
	f.built = append(f.built, p)
	return p, nil
}

type timer struct {
	d  time.Duration
	fn func()
}

// fakeLoop runs posted work on whatever goroutine calls Run
type fakeLoop struct {
	posted chan func()
	timers []timer
	quit   bool
}

func newFakeLoop() *fakeLoop {
	return &fakeLoop{posted: make(chan func(), 16)}
}

func (l *fakeLoop) Post(fn func()) { l.posted <- fn }

func (l *fakeLoop) AfterFunc(d time.Duration, fn func()) {
	l.timers = append(l.timers, timer{d, fn})
}

func (l *fakeLoop) Quit() { l.quit = true }

func (l *fakeLoop) Run() {
	for !l.quit {
		fn := <-l.posted
		fn()
	}
}

// fire runs and clears pending timers
func (l *fakeLoop) fire() {
	timers := l.timers
	l.timers = nil
	for _, t := range timers {
		t.fn()
	}
}

type fixedHandle uintptr

func (h fixedHandle) Handle() uintptr { return uintptr(h) }

type mockOverlayRequest struct {
	mock.Mock
}

func (m *mockOverlayRequest) Kind() message.Kind {
	return m.Called().Get(0).(message.Kind)
}

func (m *mockOverlayRequest) BindWindowHandle(handle uintptr) {
	m.Called(handle)
}
