package sequence

import (
	"github.com/google/uuid"
)

// TransformTrack is the in-memory 3D transform track of one binding.
type TransformTrack struct {
	Binding  uuid.UUID
	sections []*TransformSection
}

// NewTransformTrack returns an empty track for binding.
func NewTransformTrack(binding uuid.UUID) *TransformTrack {
	return &TransformTrack{Binding: binding}
}

// CreateSection allocates a section that is not yet part of the track.
// A nil track allocates nothing.
func (t *TransformTrack) CreateSection() Section {
	if t == nil {
		return nil
	}
	return NewTransformSection()
}

// AddSection appends s. Sections from other host implementations are ignored.
func (t *TransformTrack) AddSection(s Section) {
	ts, ok := s.(*TransformSection)
	if t == nil || !ok || ts == nil {
		return
	}
	t.sections = append(t.sections, ts)
}

func (t *TransformTrack) Sections() []Section {
	if t == nil {
		return nil
	}
	out := make([]Section, len(t.sections))
	for i, s := range t.sections {
		out[i] = s
	}
	return out
}

// TransformSections returns the concrete sections in insertion order.
func (t *TransformTrack) TransformSections() []*TransformSection {
	if t == nil {
		return nil
	}
	out := make([]*TransformSection, len(t.sections))
	copy(out, t.sections)
	return out
}

// CameraCutSection marks Binding as the active camera over [Start, End).
type CameraCutSection struct {
	Binding uuid.UUID `yaml:"binding"`
	Start   int       `yaml:"start"`
	End     int       `yaml:"end"`
}

func (c *CameraCutSection) SetEndFrame(frame int) {
	c.End = frame
}

// CameraCutTrack is the sequence-wide cut track.
type CameraCutTrack struct {
	cuts []*CameraCutSection
}

// AddCut appends a cut starting at start. The end defaults to start until
// SetEndFrame is called.
func (t *CameraCutTrack) AddCut(binding uuid.UUID, start int) CutSection {
	if t == nil {
		return nil
	}
	c := &CameraCutSection{Binding: binding, Start: start, End: start}
	t.cuts = append(t.cuts, c)
	return c
}

// Cuts returns the cuts in insertion order.
func (t *CameraCutTrack) Cuts() []CameraCutSection {
	if t == nil {
		return nil
	}
	out := make([]CameraCutSection, len(t.cuts))
	for i, c := range t.cuts {
		out[i] = *c
	}
	return out
}
