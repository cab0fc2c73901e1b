package director

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/ivlev/autocamera/internal/sequence"
	"github.com/ivlev/autocamera/internal/timing"
)

// DefaultCameraName is used for cameras without a name
const DefaultCameraName = "CineCamera"

// Director writes camera route points into host transform tracks.
// A Director holds no per-sequence state and may be shared; the sequences
// it mutates may not.
type Director struct {
	Sink    Sink
	metrics *metrics
}

// NewDirector creates a new Director reporting to sink (nil drops reports)
func NewDirector(sink Sink) *Director {
	if sink == nil {
		sink = NopSink{}
	}

	m, err := newMetrics(meter())
	if err != nil {
		m = noopMetrics()
	}

	return &Director{Sink: sink, metrics: m}
}

// Result describes one camera added to a sequence.
type Result struct {
	Camera          string
	Binding         uuid.UUID
	Section         sequence.Section
	Range           timing.FrameRange
	KeysWritten     int
	KeysReplaced    int
	MissingChannels []sequence.ChannelIndex
}

// Valid reports whether the result refers to a created binding.
func (r Result) Valid() bool {
	return r.Binding != uuid.Nil && r.Section != nil
}

// Partial returns an ErrChannelMissing error listing the channels that could
// not be keyed, or nil.
func (r Result) Partial() error {
	if len(r.MissingChannels) == 0 {
		return nil
	}
	errs := make([]error, len(r.MissingChannels))
	for i, c := range r.MissingChannels {
		errs[i] = fmt.Errorf("%w: %s", ErrChannelMissing, c)
	}
	return errors.Join(errs...)
}

// keyStats accumulates what one synthesis pass did.
type keyStats struct {
	written  int
	replaced int
	missing  []sequence.ChannelIndex
}

// SetPlaybackRange sets the sequence playback window from display-unit times.
func (d *Director) SetPlaybackRange(seq sequence.Sequence, startTime, endTime int) (timing.FrameRange, error) {
	if isNil(seq) {
		return timing.FrameRange{}, d.fail(CodeInvalidInput, "", ErrInvalidInput, "sequence is nil")
	}

	rate := seq.FrameRate()
	if err := rate.CheckTimes(startTime, endTime); err != nil {
		return timing.FrameRange{}, d.fail(CodeInvalidInput, "", ErrInvalidInput, err.Error())
	}

	r := timing.MapRange(startTime, endTime, rate)
	if r.Inverted() {
		return timing.FrameRange{}, d.fail(CodeInvalidInput, "", ErrInvalidInput,
			fmt.Sprintf("playback range %s is inverted", r))
	}

	seq.SetPlaybackRange(r)
	d.Sink.Report(Diagnostic{
		Level:   LevelDebug,
		Code:    CodePlaybackRange,
		Message: fmt.Sprintf("playback range set to %s", r),
	})
	return r, nil
}

// AddCamera spawns a camera binding on seq, writes its route into a new
// additive transform section and registers a camera cut over the same range.
//
// A nil or mis-configured sequence, or an inverted range, fails with
// ErrInvalidInput before anything is mutated. When the host can't allocate a
// track or section the binding is removed again if seq implements
// sequence.SpawnableRemover, and the cut track is only created once the
// section is in place. Missing channels do not fail the call; they are listed
// in Result.MissingChannels.
func (d *Director) AddCamera(seq sequence.Sequence, cam Camera, fallback sequence.Interpolation) (Result, error) {
	name := cam.Name
	if name == "" {
		name = DefaultCameraName
	}

	if isNil(seq) {
		return Result{}, d.fail(CodeInvalidInput, name, ErrInvalidInput, "sequence is nil")
	}

	policy, err := cam.Policy(fallback)
	if err != nil {
		return Result{}, d.fail(CodeInvalidInput, name, ErrInvalidInput, err.Error())
	}

	rate := seq.FrameRate()
	if err := rate.CheckTimes(cam.StartTime, cam.EndTime); err != nil {
		return Result{}, d.fail(CodeInvalidInput, name, ErrInvalidInput, err.Error())
	}

	r := timing.MapRange(cam.StartTime, cam.EndTime, rate)
	if r.Inverted() {
		return Result{}, d.fail(CodeInvalidInput, name, ErrInvalidInput,
			fmt.Sprintf("camera range %s is inverted", r))
	}

	binding := seq.CreateSpawnable(name)

	track := seq.AddTransformTrack(binding)
	if isNil(track) {
		removeSpawnable(seq, binding)
		return Result{}, d.fail(CodeHostAllocationFailed, name, ErrHostAllocationFailed,
			"failed to create camera transform track")
	}

	section, stats, err := d.synthesize(name, track, cam.Points, r, policy)
	if err != nil {
		removeSpawnable(seq, binding)
		return Result{}, err
	}

	cuts := seq.CutTrack()
	if isNil(cuts) {
		cuts = seq.AddCutTrack()
	}
	if !isNil(cuts) {
		if cut := cuts.AddCut(binding, r.Start); !isNil(cut) {
			cut.SetEndFrame(r.End)
		}
	}

	d.metrics.camerasAdded.Add(context.Background(), 1)
	d.Sink.Report(Diagnostic{
		Level:   LevelInfo,
		Code:    CodeCameraAdded,
		Camera:  name,
		Message: fmt.Sprintf("camera added over %s with %d points (%s)", r, len(cam.Points), policy),
	})

	return Result{
		Camera:          name,
		Binding:         binding,
		Section:         section,
		Range:           r,
		KeysWritten:     stats.written,
		KeysReplaced:    stats.replaced,
		MissingChannels: stats.missing,
	}, nil
}

// Synthesize creates an additive, quaternion-interpolated section on track
// spanning r and keys every route point into it.
func (d *Director) Synthesize(track sequence.Track, points []RoutePoint, r timing.FrameRange, policy sequence.Interpolation) (sequence.Section, error) {
	section, _, err := d.synthesize("", track, points, r, policy)
	return section, err
}

func (d *Director) synthesize(camera string, track sequence.Track, points []RoutePoint, r timing.FrameRange, policy sequence.Interpolation) (sequence.Section, keyStats, error) {
	if isNil(track) {
		return nil, keyStats{}, d.fail(CodeInvalidInput, camera, ErrInvalidInput, "transform track is nil")
	}
	if r.Inverted() {
		return nil, keyStats{}, d.fail(CodeInvalidInput, camera, ErrInvalidInput,
			fmt.Sprintf("section range %s is inverted", r))
	}

	section := track.CreateSection()
	if isNil(section) {
		return nil, keyStats{}, d.fail(CodeHostAllocationFailed, camera, ErrHostAllocationFailed,
			"failed to create camera transform section")
	}

	section.SetUseQuaternionInterpolation(true)
	section.SetRange(r)
	section.SetBlendType(sequence.Additive)
	section.SetRowIndex(nextRowIndex(track))
	track.AddSection(section)

	stats := d.placeKeys(camera, section, points, r, policy)
	return section, stats, nil
}

// PlaceKeys writes points into an existing section at their evenly spaced
// frames. Re-running it with the same points and range replaces the keys
// it wrote before instead of duplicating them.
func (d *Director) PlaceKeys(section sequence.Section, points []RoutePoint, r timing.FrameRange, policy sequence.Interpolation) ([]sequence.ChannelIndex, error) {
	if isNil(section) {
		return nil, d.fail(CodeInvalidInput, "", ErrInvalidInput, "section is nil")
	}
	stats := d.placeKeys("", section, points, r, policy)
	return stats.missing, nil
}

func (d *Director) placeKeys(camera string, section sequence.Section, points []RoutePoint, r timing.FrameRange, policy sequence.Interpolation) keyStats {
	var stats keyStats
	reported := make(map[sequence.ChannelIndex]bool)

	frames := timing.KeyFrames(r, len(points))
	for i, p := range points {
		frame := frames[i]

		for _, idx := range sequence.AllChannels {
			ch := section.Channel(idx)
			if isNil(ch) {
				if !reported[idx] {
					reported[idx] = true
					stats.missing = append(stats.missing, idx)
					d.metrics.channelMissing.Add(context.Background(), 1)
					d.Sink.Report(Diagnostic{
						Level:   LevelWarn,
						Code:    CodeChannelMissing,
						Camera:  camera,
						Channel: idx.String(),
						Frame:   frame,
						Message: fmt.Sprintf("section has no channel %d", int(idx)),
					})
				}
				continue
			}

			stats.replaced += replaceKey(ch, frame, p.Component(idx), policy)
			stats.written++
		}
	}

	d.metrics.recordKeys(policy, stats.written, stats.replaced)
	return stats
}

// replaceKey deletes every key at exactly frame, then adds the new one.
// It returns the number of keys deleted.
func replaceKey(ch sequence.Channel, frame int, value float64, policy sequence.Interpolation) int {
	_, handles := ch.KeysInRange(frame, frame)
	if len(handles) > 0 {
		ch.DeleteKeys(handles)
	}
	ch.AddKey(frame, value, policy)
	return len(handles)
}

// nextRowIndex is one past the highest row used on track, or 0.
func nextRowIndex(track sequence.Track) int {
	row := -1
	for _, s := range track.Sections() {
		row = max(row, s.RowIndex())
	}
	return row + 1
}

func removeSpawnable(seq sequence.Sequence, binding uuid.UUID) {
	if r, ok := seq.(sequence.SpawnableRemover); ok {
		r.RemoveSpawnable(binding)
	}
}

// isNil also catches a nil pointer stored in a non-nil interface, such as a
// (*sequence.LevelSequence)(nil) passed as a sequence.Sequence.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func (d *Director) fail(code Code, camera string, sentinel error, msg string) error {
	d.Sink.Report(Diagnostic{
		Level:   LevelError,
		Code:    code,
		Camera:  camera,
		Message: msg,
	})
	return fmt.Errorf("%w: %s", sentinel, msg)
}
