package application

import (
	"fmt"

	"github.com/loopkiosk/internal/metrics"
	"github.com/loopkiosk/pkg/logger"
	"github.com/loopkiosk/pkg/message"
)

// busWatch returns the async handler for pipeline id. It always asks to stay
// installed; messages arriving for a pipeline that is no longer current are dropped.
func (app *App) busWatch(id string) message.AsyncHandler {
	return func(msg message.Message) bool {
		if app.current == nil || app.current.ID() != id {
			return true
		}

		logger.LogMessage(app.log, msg)

		switch msg.Kind {
		case message.EOS:
			metrics.LoopsTotal.Inc()
			app.reload(EndOfStream)
		case message.Error:
			metrics.BusErrorsTotal.Inc()
			app.fail(fmt.Errorf("%s: %w", msg.Source, msg.Err))
		}
		return true
	}
}
