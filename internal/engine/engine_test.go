package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/autocamera/internal/config"
	"github.com/ivlev/autocamera/internal/director"
	"github.com/ivlev/autocamera/internal/sequence"
)

const flybyRoute = `
version: "1.0"
sequence:
  name: flyby
cameras:
  - name: wide
    startTime: 0
    endTime: 5
    interpolation: linear
    points:
      - location: {x: 0, y: 0, z: 100}
        rotation: {roll: 0, pitch: 0, yaw: 0}
      - location: {x: 100, y: 50, z: 100}
        rotation: {roll: 0, pitch: -5, yaw: 45}
      - location: {x: 200, y: 0, z: 120}
        rotation: {roll: 0, pitch: 0, yaw: 90}
  - name: close
    startTime: 4
    endTime: 8
    points:
      - location: {x: 200, y: 0, z: 120}
        rotation: {roll: 0, pitch: 0, yaw: 90}
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		OutputDir:      t.TempDir(),
		TickResolution: 24000,
		DisplayRate:    24,
		Interpolation:  "cubic",
		PreviewSize:    64,
		Workers:        2,
	}
}

func writeRoute(t *testing.T, dir, name, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestProject_Run(t *testing.T) {
	cfg := testConfig(t)
	path := writeRoute(t, t.TempDir(), "flyby.yaml", flybyRoute)

	project := NewProject(cfg, nil, zerolog.Nop())
	report, err := project.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "flyby", report.Sequence)
	assert.Equal(t, 2, report.Cameras)
	assert.Equal(t, 4*sequence.NumChannels, report.KeysWritten)
	assert.Zero(t, report.KeysReplaced)
	assert.NoError(t, report.Partial)
	assert.Empty(t, report.BakePath)
	assert.Empty(t, report.PreviewPath)

	snap, err := sequence.ReadSnapshot(report.SnapshotPath)
	require.NoError(t, err)

	// Rate came from the config; playback spans both cameras.
	assert.Equal(t, 1000, snap.FrameRate.Ratio())
	assert.Equal(t, 0, snap.PlaybackRange.Start)
	assert.Equal(t, 8000, snap.PlaybackRange.End)

	require.Len(t, snap.Bindings, 2)
	wide := snap.Bindings[0]
	assert.Equal(t, "wide", wide.Name)
	require.Len(t, wide.Sections, 1)
	sec := wide.Sections[0]
	assert.Equal(t, sequence.Additive, sec.Blend)
	assert.True(t, sec.UseQuaternionInterpolation)
	assert.Equal(t, 0, sec.RowIndex)
	require.Len(t, sec.Channels, sequence.NumChannels)

	yaw := sec.Channels[sequence.RotYaw]
	require.Len(t, yaw.Keys, 3)
	assert.Equal(t, []int{0, 2500, 5000}, []int{yaw.Keys[0].Frame, yaw.Keys[1].Frame, yaw.Keys[2].Frame})
	assert.Equal(t, 45.0, yaw.Keys[1].Value)
	assert.Equal(t, sequence.Linear, yaw.Keys[1].Mode)

	// Camera without interpolation uses the configured fallback.
	closeX := snap.Bindings[1].Sections[0].Channels[sequence.PosX]
	require.Len(t, closeX.Keys, 1)
	assert.Equal(t, 4000, closeX.Keys[0].Frame)
	assert.Equal(t, sequence.Cubic, closeX.Keys[0].Mode)

	require.Len(t, snap.Cuts, 2)
	assert.Equal(t, 4000, snap.Cuts[1].Start)
	assert.Equal(t, 8000, snap.Cuts[1].End)
}

func TestProject_RunWithBakeAndPreview(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bake = true
	cfg.Preview = true
	cfg.OutputPath = filepath.Join(cfg.OutputDir, "flyby_out.yaml")
	path := writeRoute(t, t.TempDir(), "flyby.yaml", flybyRoute)

	report, err := NewProject(cfg, nil, zerolog.Nop()).Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, cfg.OutputPath, report.SnapshotPath)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "flyby_out_bake.yaml"), report.BakePath)
	assert.FileExists(t, report.PreviewPath)

	doc, err := ReadBake(report.BakePath)
	require.NoError(t, err)
	assert.Equal(t, "flyby", doc.Sequence)
	require.Len(t, doc.Cameras, 2)

	// One sample per display frame, both ends included.
	wide := doc.Cameras[0]
	require.Len(t, wide.Samples, 6)
	last := wide.Samples[5]
	assert.Equal(t, 5000, last.Frame)
	assert.Equal(t, 200.0, last.State.Location.X)
	assert.Equal(t, 90.0, last.State.Rotation.Yaw)
	assert.NotEmpty(t, wide.Binding)
}

func TestProject_RunInvalidRoute(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()

	inverted := writeRoute(t, dir, "inverted.yaml", `
sequence: {name: bad}
cameras:
  - {name: a, startTime: 5, endTime: 1}
`)
	_, err := NewProject(cfg, nil, zerolog.Nop()).Run(context.Background(), inverted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, director.ErrInvalidInput))

	_, err = NewProject(cfg, nil, zerolog.Nop()).Run(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed routes must not write output")
}

func TestProject_RunCanceled(t *testing.T) {
	cfg := testConfig(t)
	path := writeRoute(t, t.TempDir(), "flyby.yaml", flybyRoute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProject(cfg, nil, zerolog.Nop()).Run(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProject_RunBatch(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputPath = filepath.Join(cfg.OutputDir, "ignored.yaml")
	dir := t.TempDir()

	paths := []string{
		writeRoute(t, dir, "one.yaml", flybyRoute),
		writeRoute(t, dir, "broken.yaml", "cameras: [this is not a camera"),
		writeRoute(t, dir, "two.yaml", flybyRoute),
	}

	reports, err := NewProject(cfg, nil, zerolog.Nop()).RunBatch(context.Background(), paths)
	require.Error(t, err)
	require.Len(t, reports, 3)

	assert.Nil(t, reports[1])
	for _, i := range []int{0, 2} {
		require.NotNil(t, reports[i], paths[i])
		assert.Equal(t, 2, reports[i].Cameras)
		assert.FileExists(t, reports[i].SnapshotPath)
		assert.NotEqual(t, cfg.OutputPath, reports[i].SnapshotPath)
	}
	assert.NotEqual(t, reports[0].SnapshotPath, reports[2].SnapshotPath)
}
