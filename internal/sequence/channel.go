package sequence

import "sort"

// KeyHandle identifies a key independently of its position in the channel.
type KeyHandle uint64

// Key is a single (frame, value) entry on a channel.
type Key struct {
	Frame  int           `yaml:"frame"`
	Value  float64       `yaml:"value"`
	Mode   Interpolation `yaml:"interpolation"`
	Handle KeyHandle     `yaml:"-"`
}

// DoubleChannel is an in-memory key curve ordered by frame.
// It does not deduplicate keys; callers that need one key per frame
// must delete before adding.
type DoubleChannel struct {
	keys       []Key
	nextHandle KeyHandle
}

// NewDoubleChannel returns an empty channel.
func NewDoubleChannel() *DoubleChannel {
	return &DoubleChannel{}
}

// AddKey inserts a key after any existing keys at the same frame.
func (c *DoubleChannel) AddKey(frame int, value float64, mode Interpolation) KeyHandle {
	if mode > Constant {
		mode = Linear
	}

	c.nextHandle++
	k := Key{Frame: frame, Value: value, Mode: mode, Handle: c.nextHandle}

	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Frame > frame })
	c.keys = append(c.keys, Key{})
	copy(c.keys[i+1:], c.keys[i:])
	c.keys[i] = k

	return k.Handle
}

func (c *DoubleChannel) KeysInRange(lo, hi int) ([]int, []KeyHandle) {
	var frames []int
	var handles []KeyHandle

	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Frame >= lo })
	for ; i < len(c.keys) && c.keys[i].Frame <= hi; i++ {
		frames = append(frames, c.keys[i].Frame)
		handles = append(handles, c.keys[i].Handle)
	}
	return frames, handles
}

// DeleteKeys removes every key whose handle is listed. Unknown handles are ignored.
func (c *DoubleChannel) DeleteKeys(handles []KeyHandle) {
	if len(handles) == 0 {
		return
	}

	drop := make(map[KeyHandle]struct{}, len(handles))
	for _, h := range handles {
		drop[h] = struct{}{}
	}

	kept := c.keys[:0]
	for _, k := range c.keys {
		if _, ok := drop[k.Handle]; !ok {
			kept = append(kept, k)
		}
	}
	c.keys = kept
}

// Keys returns a copy of the channel's keys in frame order.
func (c *DoubleChannel) Keys() []Key {
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of keys.
func (c *DoubleChannel) Len() int {
	return len(c.keys)
}

// Evaluate samples the curve at frame. Outside the keyed interval the
// nearest end value is held. The second result is false for an empty channel.
func (c *DoubleChannel) Evaluate(frame float64) (float64, bool) {
	n := len(c.keys)
	if n == 0 {
		return 0, false
	}
	if frame <= float64(c.keys[0].Frame) {
		return c.keys[0].Value, true
	}

	next := sort.Search(n, func(i int) bool { return float64(c.keys[i].Frame) > frame })
	if next == n {
		return c.keys[n-1].Value, true
	}
	prev := next - 1

	k0, k1 := c.keys[prev], c.keys[next]
	dt := float64(k1.Frame - k0.Frame)
	s := (frame - float64(k0.Frame)) / dt

	switch k0.Mode {
	case Constant:
		return k0.Value, true
	case Cubic:
		m0 := c.autoTangent(prev)
		m1 := c.autoTangent(next)
		return hermite(k0.Value, m0*dt, k1.Value, m1*dt, s), true
	default:
		return lerp(k0.Value, k1.Value, s), true
	}
}

// autoTangent is the slope through the neighbouring keys, flat at both ends.
func (c *DoubleChannel) autoTangent(i int) float64 {
	if i == 0 || i == len(c.keys)-1 {
		return 0
	}
	before, after := c.keys[i-1], c.keys[i+1]
	span := float64(after.Frame - before.Frame)
	if span == 0 {
		return 0
	}
	return (after.Value - before.Value) / span
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// hermite evaluates a cubic Hermite segment with start/end values p0, p1
// and tangents m0, m1 already scaled to the segment length.
func hermite(p0, m0, p1, m1, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return (2*t3-3*t2+1)*p0 + (t3-2*t2+t)*m0 + (-2*t3+3*t2)*p1 + (t3-t2)*m1
}
