package timing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRate_Ratio(t *testing.T) {
	tests := []struct {
		name string
		rate FrameRate
		want int
	}{
		{"24000 over 24", FrameRate{TickResolution: 24000, DisplayRate: 24}, 1000},
		{"24000 over 30 floors", FrameRate{TickResolution: 24000, DisplayRate: 30}, 800},
		{"60000 over 7 floors", FrameRate{TickResolution: 60000, DisplayRate: 7}, 8571},
		{"equal rates", FrameRate{TickResolution: 30, DisplayRate: 30}, 1},
		{"display above ticks", FrameRate{TickResolution: 24, DisplayRate: 30}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rate.Ratio())
		})
	}
}

func TestFrameRate_RatioPanicsOnZeroDisplayRate(t *testing.T) {
	rate := FrameRate{TickResolution: 24000, DisplayRate: 0}

	require.Error(t, rate.Validate())
	assert.Panics(t, func() { rate.Ratio() })
}

func TestMapRange(t *testing.T) {
	rate := FrameRate{TickResolution: 24000, DisplayRate: 24}

	got := MapRange(0, 5, rate)
	assert.Equal(t, FrameRange{Start: 0, End: 5000}, got)

	got = MapRange(2, 7, rate)
	assert.Equal(t, FrameRange{Start: 2000, End: 7000}, got)
}

func TestMapRange_Linear(t *testing.T) {
	rates := []FrameRate{
		{TickResolution: 24000, DisplayRate: 24},
		{TickResolution: 24000, DisplayRate: 30},
		{TickResolution: 90000, DisplayRate: 60},
	}

	for _, rate := range rates {
		for t0 := -3; t0 <= 3; t0++ {
			for t1 := t0; t1 <= t0+6; t1++ {
				single := MapRange(t0, t1, rate)
				double := MapRange(2*t0, 2*t1, rate)
				assert.Equal(t, 2*single.Start, double.Start, "rate %v t0=%d", rate, t0)
				assert.Equal(t, 2*single.End, double.End, "rate %v t1=%d", rate, t1)
			}
		}
	}
}

func TestMapRange_InvertedIsNotRejected(t *testing.T) {
	got := MapRange(5, 2, FrameRate{TickResolution: 24000, DisplayRate: 24})

	assert.True(t, got.Inverted())
	assert.Equal(t, -3000, got.Len())
}

func TestEvenSpacing(t *testing.T) {
	r := FrameRange{Start: 0, End: 5000}

	assert.Equal(t, 0, EvenSpacing(r, 0))
	assert.Equal(t, 0, EvenSpacing(r, 1))
	assert.Equal(t, 5000, EvenSpacing(r, 2))
	assert.Equal(t, 2500, EvenSpacing(r, 3))
	assert.Equal(t, 1666, EvenSpacing(r, 4))
}

func TestKeyFrames(t *testing.T) {
	r := FrameRange{Start: 0, End: 5000}

	assert.Equal(t, []int{0, 2500, 5000}, KeyFrames(r, 3))
	assert.Equal(t, []int{0}, KeyFrames(r, 1))
	assert.Empty(t, KeyFrames(r, 0))
}

func TestKeyFrames_MonotonicAndBounded(t *testing.T) {
	r := FrameRange{Start: 1200, End: 9001}

	for n := 2; n <= 17; n++ {
		frames := KeyFrames(r, n)
		require.Len(t, frames, n)
		assert.Equal(t, r.Start, frames[0])
		assert.LessOrEqual(t, frames[n-1], r.End)
		for i := 1; i < n; i++ {
			assert.Greater(t, frames[i], frames[i-1], "n=%d i=%d", n, i)
		}
	}
}

func TestFrameRange_Contains(t *testing.T) {
	r := FrameRange{Start: 10, End: 20}

	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(19))
	assert.False(t, r.Contains(20))
	assert.False(t, r.Contains(9))
	assert.Equal(t, "[10, 20)", r.String())
}

func TestFrameRate_CheckTimes(t *testing.T) {
	rate := FrameRate{TickResolution: 24000, DisplayRate: 24}
	limit := MaxFrame / 1000

	assert.NoError(t, rate.CheckTimes(0, 5, -5))
	assert.NoError(t, rate.CheckTimes(limit, -limit))
	assert.Error(t, rate.CheckTimes(0, limit+1))
	assert.Error(t, rate.CheckTimes(MinFrame/1000-1))
	assert.Error(t, rate.CheckTimes(math.MaxInt/2), "would overflow int when multiplied")

	// A zero ratio maps every time to frame 0.
	assert.NoError(t, FrameRate{TickResolution: 24, DisplayRate: 30}.CheckTimes(math.MaxInt))

	assert.Error(t, FrameRate{}.CheckTimes(0))
}
