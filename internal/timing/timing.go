// Package timing converts time ranges expressed in display-rate units into
// host tick frames and spaces waypoints across the resulting range.
//
// All division here is integer (truncating) division, matching the host
// engine's tick arithmetic. Switching to rounding would move keys by up to
// one frame.
package timing

import (
	"fmt"
	"math"
)

// FrameRate is the host time base: TickResolution ticks per second and
// DisplayRate displayed frames per second.
type FrameRate struct {
	TickResolution int `yaml:"tickResolution"`
	DisplayRate    int `yaml:"displayRate"`
}

// Validate reports whether both rates are positive.
func (r FrameRate) Validate() error {
	if r.TickResolution <= 0 {
		return fmt.Errorf("tick resolution must be positive, got %d", r.TickResolution)
	}
	if r.DisplayRate <= 0 {
		return fmt.Errorf("display rate must be positive, got %d", r.DisplayRate)
	}
	return nil
}

// Ratio returns the number of ticks per display frame.
// It panics if the rate is not valid; callers loading rates from outside
// should call Validate first.
func (r FrameRate) Ratio() int {
	if err := r.Validate(); err != nil {
		panic("timing: " + err.Error())
	}
	return r.TickResolution / r.DisplayRate
}

// FrameRange is a tick interval [Start, End).
type FrameRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Len returns End - Start. It is negative for inverted ranges.
func (r FrameRange) Len() int {
	return r.End - r.Start
}

// Inverted reports whether End lies before Start.
func (r FrameRange) Inverted() bool {
	return r.End < r.Start
}

// Contains reports whether frame lies in [Start, End).
func (r FrameRange) Contains(frame int) bool {
	return frame >= r.Start && frame < r.End
}

func (r FrameRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Host frame numbers are 32-bit. Times that map outside [MinFrame, MaxFrame]
// are rejected by CheckTimes rather than wrapped.
const (
	MinFrame = math.MinInt32
	MaxFrame = math.MaxInt32
)

// CheckTimes reports an error when any of times, in display units, maps to a
// tick frame outside [MinFrame, MaxFrame] at rate.
func (r FrameRate) CheckTimes(times ...int) error {
	if err := r.Validate(); err != nil {
		return err
	}

	ratio := r.Ratio()
	if ratio == 0 {
		return nil
	}
	lo, hi := MinFrame/ratio, MaxFrame/ratio
	for _, t := range times {
		if t < lo || t > hi {
			return fmt.Errorf("time %d is outside [%d, %d] at %d ticks per frame", t, lo, hi, ratio)
		}
	}
	return nil
}

// MapRange converts a (startTime, endTime) pair in display units into ticks.
// No ordering check is done here.
func MapRange(startTime, endTime int, rate FrameRate) FrameRange {
	ratio := rate.Ratio()
	return FrameRange{
		Start: startTime * ratio,
		End:   endTime * ratio,
	}
}

// EvenSpacing returns the tick distance between consecutive waypoints when
// pointCount waypoints are spread over r. It is 0 for pointCount <= 1,
// where the single point sits at r.Start.
func EvenSpacing(r FrameRange, pointCount int) int {
	if pointCount <= 1 {
		return 0
	}
	return r.Len() / (pointCount - 1)
}

// KeyFrames returns the target frame for each of n waypoints.
func KeyFrames(r FrameRange, n int) []int {
	if n <= 0 {
		return nil
	}

	frames := make([]int, n)
	step := EvenSpacing(r, n)
	for i := range frames {
		frames[i] = r.Start + i*step
	}
	return frames
}
