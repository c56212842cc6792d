package message

type Kind uint8

// Sum type for pipeline bus messages the kiosk cares about
const (
	Other Kind = iota
	EOS
	Error
	Warning
	StateChanged
	PrepareWindowHandle
)

const Unsupported = "Unsupported"

// Message is a toolkit neutral copy of a bus message, delivered on the main loop.
// Pipeline identifies the pipeline instance whose bus posted it.
type Message struct {
	Kind     Kind
	Pipeline string // ID of the posting pipeline
	Source   string // Name of the element that posted the message
	Err      error  // Set for Error and Warning
	Debug    string // Debug details for Error and Warning
}

func (k Kind) String() string {
	switch k {
	case Other:
		return "Other"
	case EOS:
		return "EOS"
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	case StateChanged:
		return "StateChanged"
	case PrepareWindowHandle:
		return "PrepareWindowHandle"
	default:
		return Unsupported
	}
}
