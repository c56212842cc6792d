package application

type Cause uint8

// Why a pipeline was (re)built
const (
	Startup Cause = iota
	EndOfStream
	PlaybackError
	SourceChanged
)

func (c Cause) String() string {
	switch c {
	case Startup:
		return "startup"
	case EndOfStream:
		return "eos"
	case PlaybackError:
		return "error"
	case SourceChanged:
		return "source_changed"
	default:
		return "unknown"
	}
}
