package director

import (
	"fmt"

	"github.com/ivlev/autocamera/internal/sequence"
	"github.com/ivlev/autocamera/internal/timing"
)

// Route describes one sequence and the cameras to add to it
type Route struct {
	Version  string       `yaml:"version"`
	Sequence SequenceSpec `yaml:"sequence"`
	Cameras  []Camera     `yaml:"cameras"`
}

// SequenceSpec is the time base and playback window of the target sequence.
// A zero StartTime/EndTime pair means "span all cameras".
type SequenceSpec struct {
	Name           string `yaml:"name"`
	TickResolution int    `yaml:"tickResolution"`
	DisplayRate    int    `yaml:"displayRate"`
	StartTime      int    `yaml:"startTime"`
	EndTime        int    `yaml:"endTime"`
}

// Camera is a list of waypoints spread evenly over [StartTime, EndTime]
type Camera struct {
	Name          string       `yaml:"name"`
	StartTime     int          `yaml:"startTime"` // Display units
	EndTime       int          `yaml:"endTime"`
	Interpolation string       `yaml:"interpolation,omitempty"` // cubic, linear, constant
	Points        []RoutePoint `yaml:"points"`
}

// RoutePoint is the camera location and rotation to hit at one key
type RoutePoint struct {
	Location Vector  `yaml:"location"`
	Rotation Rotator `yaml:"rotation"`
}

// Vector is a location in engine units
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Rotator is a rotation in degrees
type Rotator struct {
	Roll  float64 `yaml:"roll"`
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
}

// Component returns the value written to channel c.
func (p RoutePoint) Component(c sequence.ChannelIndex) float64 {
	switch c {
	case sequence.PosX:
		return p.Location.X
	case sequence.PosY:
		return p.Location.Y
	case sequence.PosZ:
		return p.Location.Z
	case sequence.RotRoll:
		return p.Rotation.Roll
	case sequence.RotPitch:
		return p.Rotation.Pitch
	case sequence.RotYaw:
		return p.Rotation.Yaw
	default:
		return 0
	}
}

// Policy resolves the camera's interpolation, using fallback when unset.
func (c Camera) Policy(fallback sequence.Interpolation) (sequence.Interpolation, error) {
	if c.Interpolation == "" {
		return fallback, nil
	}
	return sequence.ParseInterpolation(c.Interpolation)
}

// FrameRate returns the sequence time base.
func (s SequenceSpec) FrameRate() timing.FrameRate {
	return timing.FrameRate{TickResolution: s.TickResolution, DisplayRate: s.DisplayRate}
}

// PlaybackTimes returns the playback window in display units.
func (r *Route) PlaybackTimes() (start, end int) {
	if r.Sequence.StartTime != 0 || r.Sequence.EndTime != 0 || len(r.Cameras) == 0 {
		return r.Sequence.StartTime, r.Sequence.EndTime
	}

	start, end = r.Cameras[0].StartTime, r.Cameras[0].EndTime
	for _, c := range r.Cameras[1:] {
		start = min(start, c.StartTime)
		end = max(end, c.EndTime)
	}
	return start, end
}

// Validate checks the route before any sequence is touched.
func (r *Route) Validate() error {
	if err := r.Sequence.FrameRate().Validate(); err != nil {
		return fmt.Errorf("sequence %q: %w", r.Sequence.Name, err)
	}

	rate := r.Sequence.FrameRate()
	start, end := r.PlaybackTimes()
	if end < start {
		return fmt.Errorf("sequence %q: end time %d before start time %d", r.Sequence.Name, end, start)
	}
	if err := rate.CheckTimes(start, end); err != nil {
		return fmt.Errorf("sequence %q: %w", r.Sequence.Name, err)
	}

	seen := make(map[string]bool, len(r.Cameras))
	for i, c := range r.Cameras {
		if c.Name != "" {
			if seen[c.Name] {
				return fmt.Errorf("camera %d: duplicate name %q", i, c.Name)
			}
			seen[c.Name] = true
		}
		if c.EndTime < c.StartTime {
			return fmt.Errorf("camera %d (%s): end time %d before start time %d", i, c.Name, c.EndTime, c.StartTime)
		}
		if err := rate.CheckTimes(c.StartTime, c.EndTime); err != nil {
			return fmt.Errorf("camera %d (%s): %w", i, c.Name, err)
		}
		if _, err := c.Policy(sequence.Cubic); err != nil {
			return fmt.Errorf("camera %d (%s): %w", i, c.Name, err)
		}
	}

	return nil
}
