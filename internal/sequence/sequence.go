package sequence

import (
	"github.com/google/uuid"

	"github.com/ivlev/autocamera/internal/timing"
)

// Binding is a spawnable object registered on a sequence.
type Binding struct {
	ID   uuid.UUID `yaml:"id"`
	Name string    `yaml:"name"`
}

// LevelSequence is an in-memory Sequence.
// It is not safe for concurrent use; one goroutine mutates a sequence at a time.
// A nil *LevelSequence behaves as a sequence that can't allocate anything.
type LevelSequence struct {
	Name     string
	rate     timing.FrameRate
	playback timing.FrameRange
	bindings []Binding
	tracks   map[uuid.UUID]*TransformTrack
	cutTrack *CameraCutTrack
}

// NewLevelSequence creates an empty sequence with the given time base.
func NewLevelSequence(name string, rate timing.FrameRate) *LevelSequence {
	return &LevelSequence{
		Name:   name,
		rate:   rate,
		tracks: make(map[uuid.UUID]*TransformTrack),
	}
}

func (s *LevelSequence) FrameRate() timing.FrameRate {
	if s == nil {
		return timing.FrameRate{}
	}
	return s.rate
}

func (s *LevelSequence) SetPlaybackRange(r timing.FrameRange) {
	if s == nil {
		return
	}
	s.playback = r
}

// PlaybackRange returns the range last set with SetPlaybackRange.
func (s *LevelSequence) PlaybackRange() timing.FrameRange {
	if s == nil {
		return timing.FrameRange{}
	}
	return s.playback
}

func (s *LevelSequence) CutTrack() CutTrack {
	if s == nil || s.cutTrack == nil {
		return nil
	}
	return s.cutTrack
}

// AddCutTrack creates the cut track, or returns the existing one.
func (s *LevelSequence) AddCutTrack() CutTrack {
	if s == nil {
		return nil
	}
	if s.cutTrack == nil {
		s.cutTrack = &CameraCutTrack{}
	}
	return s.cutTrack
}

// CameraCutTrack returns the concrete cut track, or nil.
func (s *LevelSequence) CameraCutTrack() *CameraCutTrack {
	if s == nil {
		return nil
	}
	return s.cutTrack
}

// CreateSpawnable registers a binding. It returns uuid.Nil on a nil sequence.
func (s *LevelSequence) CreateSpawnable(name string) uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	id := uuid.New()
	s.bindings = append(s.bindings, Binding{ID: id, Name: name})
	return id
}

// RemoveSpawnable drops a binding and its transform track.
func (s *LevelSequence) RemoveSpawnable(binding uuid.UUID) {
	if s == nil {
		return
	}
	delete(s.tracks, binding)
	for i, b := range s.bindings {
		if b.ID == binding {
			s.bindings = append(s.bindings[:i], s.bindings[i+1:]...)
			return
		}
	}
}

// AddTransformTrack returns the transform track of binding, creating it if
// needed. Unknown bindings get no track.
func (s *LevelSequence) AddTransformTrack(binding uuid.UUID) Track {
	if t := s.transformTrack(binding, true); t != nil {
		return t
	}
	return nil
}

// TransformTrack returns the concrete track of binding, or nil.
func (s *LevelSequence) TransformTrack(binding uuid.UUID) *TransformTrack {
	return s.transformTrack(binding, false)
}

func (s *LevelSequence) transformTrack(binding uuid.UUID, create bool) *TransformTrack {
	if s == nil {
		return nil
	}
	if t, ok := s.tracks[binding]; ok {
		return t
	}
	if !create || !s.hasBinding(binding) {
		return nil
	}
	t := NewTransformTrack(binding)
	s.tracks[binding] = t
	return t
}

func (s *LevelSequence) hasBinding(id uuid.UUID) bool {
	for _, b := range s.bindings {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Bindings returns the spawnables in creation order.
func (s *LevelSequence) Bindings() []Binding {
	if s == nil {
		return nil
	}
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}
