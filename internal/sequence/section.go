package sequence

import (
	"github.com/google/uuid"

	"github.com/ivlev/autocamera/internal/timing"
)

// TransformSection is an in-memory section with the six transform channels.
type TransformSection struct {
	ID         uuid.UUID
	frameRange timing.FrameRange
	rowIndex   int
	blend      BlendType
	quatRot    bool
	channels   [NumChannels]*DoubleChannel
}

// NewTransformSection returns a section with all six channels allocated.
func NewTransformSection() *TransformSection {
	s := &TransformSection{ID: uuid.New()}
	for i := range s.channels {
		s.channels[i] = NewDoubleChannel()
	}
	return s
}

func (s *TransformSection) Range() timing.FrameRange { return s.frameRange }
func (s *TransformSection) SetRange(r timing.FrameRange) { s.frameRange = r }
func (s *TransformSection) RowIndex() int { return s.rowIndex }
func (s *TransformSection) SetRowIndex(row int) { s.rowIndex = row }
func (s *TransformSection) BlendType() BlendType { return s.blend }
func (s *TransformSection) SetBlendType(b BlendType) { s.blend = b }
func (s *TransformSection) UseQuaternionInterpolation() bool { return s.quatRot }

func (s *TransformSection) SetUseQuaternionInterpolation(on bool) {
	s.quatRot = on
}

func (s *TransformSection) Channel(i ChannelIndex) Channel {
	if c := s.DoubleChannel(i); c != nil {
		return c
	}
	return nil
}

// DoubleChannel returns the concrete channel at i, or nil.
func (s *TransformSection) DoubleChannel(i ChannelIndex) *DoubleChannel {
	if s == nil || i < 0 || int(i) >= NumChannels {
		return nil
	}
	return s.channels[i]
}
