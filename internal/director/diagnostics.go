package director

// Level is the severity of a Diagnostic.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// Code classifies a Diagnostic.
type Code string

const (
	CodeInvalidInput         Code = "InvalidInput"
	CodeHostAllocationFailed Code = "HostAllocationFailed"
	CodeChannelMissing       Code = "ChannelMissing"
	CodeCameraAdded          Code = "CameraAdded"
	CodePlaybackRange        Code = "PlaybackRange"
)

// Diagnostic is one event reported by the Director.
type Diagnostic struct {
	Level   Level
	Code    Code
	Message string
	Camera  string
	Channel string
	Frame   int
}

// Sink receives diagnostics. Implementations must not retain the Director.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// NopSink drops every diagnostic.
type NopSink struct{}

func (NopSink) Report(Diagnostic) {}
