// Package sequence describes the timeline host that camera tracks are
// written into, and provides an in-memory implementation of it.
//
// The interfaces in this file are the only surface the director package
// depends on. Any engine binding that can create tracks, sections and cuts
// and can add, find and delete channel keys can stand in for LevelSequence.
package sequence

import (
	"github.com/google/uuid"

	"github.com/ivlev/autocamera/internal/timing"
)

// Sequence is the owning timeline.
type Sequence interface {
	FrameRate() timing.FrameRate
	SetPlaybackRange(r timing.FrameRange)

	// CutTrack returns the camera cut track, or nil if none exists yet.
	CutTrack() CutTrack
	AddCutTrack() CutTrack

	CreateSpawnable(name string) uuid.UUID
	// AddTransformTrack returns nil when the host could not allocate a track.
	AddTransformTrack(binding uuid.UUID) Track
}

// SpawnableRemover is implemented by hosts that can undo CreateSpawnable.
// The director uses it to roll back a camera that failed half way.
type SpawnableRemover interface {
	RemoveSpawnable(binding uuid.UUID)
}

// Track holds the sections bound to one object.
type Track interface {
	// CreateSection returns nil when the host could not allocate a section.
	CreateSection() Section
	AddSection(s Section)
	Sections() []Section
}

// Section is a bounded interval owning six transform channels.
type Section interface {
	Range() timing.FrameRange
	SetRange(r timing.FrameRange)
	RowIndex() int
	SetRowIndex(row int)
	SetBlendType(b BlendType)
	SetUseQuaternionInterpolation(on bool)

	// Channel returns nil when the section has no channel at index i.
	Channel(i ChannelIndex) Channel
}

// Channel is one scalar key curve.
type Channel interface {
	AddKey(frame int, value float64, mode Interpolation) KeyHandle
	// KeysInRange returns the frames and handles of keys in the closed
	// interval [lo, hi].
	KeysInRange(lo, hi int) ([]int, []KeyHandle)
	DeleteKeys(handles []KeyHandle)
}

// Evaluator is implemented by channels that can be sampled between keys.
type Evaluator interface {
	Evaluate(frame float64) (float64, bool)
}

// CutTrack records which binding is the active camera over time.
type CutTrack interface {
	AddCut(binding uuid.UUID, start int) CutSection
}

// CutSection is one entry on a CutTrack.
type CutSection interface {
	SetEndFrame(frame int)
}
