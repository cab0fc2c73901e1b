// Package renderer evaluates synthesized camera sections the way a playback
// host would: per-frame camera state, dense baking and a path preview.
package renderer

import (
	"github.com/ivlev/autocamera/internal/director"
	"github.com/ivlev/autocamera/internal/sequence"
	"github.com/ivlev/autocamera/internal/timing"
)

// CameraState represents the camera location and rotation at a specific frame
type CameraState struct {
	Location director.Vector  `yaml:"location"`
	Rotation director.Rotator `yaml:"rotation"`
}

// FrameSample is the camera state at one tick frame
type FrameSample struct {
	Frame int         `yaml:"frame"`
	State CameraState `yaml:"state"`
}

// Sample evaluates all six channels of section at frame.
// Channels that are missing or empty contribute 0.
func Sample(section sequence.Section, frame float64) CameraState {
	var s CameraState
	if section == nil {
		return s
	}

	for _, idx := range sequence.AllChannels {
		ev, ok := section.Channel(idx).(sequence.Evaluator)
		if !ok {
			continue
		}
		if v, ok := ev.Evaluate(frame); ok {
			s.set(idx, v)
		}
	}
	return s
}

// Bake samples section once per display frame from the start of its range
// up to and including its end, so the last waypoint is always present.
// An invalid rate or inverted range bakes nothing.
func Bake(section sequence.Section, rate timing.FrameRate) []FrameSample {
	if section == nil {
		return nil
	}

	r := section.Range()
	if r.Inverted() {
		return nil
	}

	if err := rate.Validate(); err != nil {
		return nil
	}
	step := max(rate.Ratio(), 1)

	samples := make([]FrameSample, 0, r.Len()/step+1)
	for f := r.Start; ; f += step {
		samples = append(samples, FrameSample{Frame: f, State: Sample(section, float64(f))})
		// Stop before f += step could pass End (or overflow).
		if r.End-f < step {
			break
		}
	}
	return samples
}

type blender interface {
	BlendType() sequence.BlendType
}

// Blend combines every section active at frame. The absolute section with
// the highest row provides the base; additive sections are summed on top.
func Blend(sections []sequence.Section, frame int) CameraState {
	var base CameraState
	var baseRow int
	haveBase := false
	var additive []CameraState

	for _, sec := range sections {
		if sec == nil || !sec.Range().Contains(frame) {
			continue
		}

		state := Sample(sec, float64(frame))
		if b, ok := sec.(blender); ok && b.BlendType() == sequence.Additive {
			additive = append(additive, state)
			continue
		}
		if !haveBase || sec.RowIndex() > baseRow {
			base, baseRow, haveBase = state, sec.RowIndex(), true
		}
	}

	for _, a := range additive {
		base = base.add(a)
	}
	return base
}

func (s *CameraState) set(idx sequence.ChannelIndex, v float64) {
	switch idx {
	case sequence.PosX:
		s.Location.X = v
	case sequence.PosY:
		s.Location.Y = v
	case sequence.PosZ:
		s.Location.Z = v
	case sequence.RotRoll:
		s.Rotation.Roll = v
	case sequence.RotPitch:
		s.Rotation.Pitch = v
	case sequence.RotYaw:
		s.Rotation.Yaw = v
	}
}

func (s CameraState) add(o CameraState) CameraState {
	return CameraState{
		Location: director.Vector{
			X: s.Location.X + o.Location.X,
			Y: s.Location.Y + o.Location.Y,
			Z: s.Location.Z + o.Location.Z,
		},
		Rotation: director.Rotator{
			Roll:  s.Rotation.Roll + o.Rotation.Roll,
			Pitch: s.Rotation.Pitch + o.Rotation.Pitch,
			Yaw:   s.Rotation.Yaw + o.Rotation.Yaw,
		},
	}
}
