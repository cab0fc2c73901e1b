package logging

import (
	"github.com/rs/zerolog"

	"github.com/ivlev/autocamera/internal/director"
)

// Sink adapts zerolog.Logger to director.Sink.
type Sink struct {
	logger zerolog.Logger
}

// NewSink creates a new Sink wrapping a zerolog.Logger.
func NewSink(logger zerolog.Logger) *Sink {
	return &Sink{logger: logger}
}

// Report writes d as one structured log event.
func (s *Sink) Report(d director.Diagnostic) {
	ev := s.logger.WithLevel(toLevel(d.Level)).Str("code", string(d.Code))
	if d.Camera != "" {
		ev = ev.Str("camera", d.Camera)
	}
	if d.Channel != "" {
		ev = ev.Str("channel", d.Channel).Int("frame", d.Frame)
	}
	ev.Msg(d.Message)
}

func toLevel(l director.Level) zerolog.Level {
	switch l {
	case director.LevelDebug:
		return zerolog.DebugLevel
	case director.LevelInfo:
		return zerolog.InfoLevel
	case director.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
