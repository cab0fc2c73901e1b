package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/autocamera/internal/config"
	"github.com/ivlev/autocamera/internal/director"
	"github.com/ivlev/autocamera/internal/renderer"
	"github.com/ivlev/autocamera/internal/sequence"
)

// Project turns route files into level sequences and writes their outputs.
type Project struct {
	Config   *config.Config
	Director *director.Director
	Logger   zerolog.Logger
}

func NewProject(cfg *config.Config, d *director.Director, logger zerolog.Logger) *Project {
	if d == nil {
		d = director.NewDirector(nil)
	}
	return &Project{
		Config:   cfg,
		Director: d,
		Logger:   logger,
	}
}

// Report summarises one processed route file.
type Report struct {
	RoutePath    string
	Sequence     string
	SnapshotPath string
	BakePath     string
	PreviewPath  string
	Cameras      int
	KeysWritten  int
	KeysReplaced int
	Partial      error
	Duration     time.Duration
}

// Run processes a single route file. Each call builds its own sequence,
// so Run is safe to call concurrently.
func (p *Project) Run(ctx context.Context, path string) (*Report, error) {
	startTime := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	route, err := director.ReadRoute(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route %s: %w", path, err)
	}

	// Частоту, не заданную в маршруте, берем из конфигурации
	if route.Sequence.TickResolution == 0 {
		route.Sequence.TickResolution = p.Config.TickResolution
	}
	if route.Sequence.DisplayRate == 0 {
		route.Sequence.DisplayRate = p.Config.DisplayRate
	}
	if err := route.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", director.ErrInvalidInput, path, err)
	}

	fallback, err := p.Config.Policy()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", director.ErrInvalidInput, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := route.Sequence.Name
	if name == "" {
		name = base
	}

	log := p.Logger.With().Str("route", path).Str("sequence", name).Logger()

	seq := sequence.NewLevelSequence(name, route.Sequence.FrameRate())
	start, end := route.PlaybackTimes()
	if _, err := p.Director.SetPlaybackRange(seq, start, end); err != nil {
		return nil, err
	}

	report := &Report{RoutePath: path, Sequence: name}

	var partial []error
	var baked []BakedCamera
	for _, cam := range route.Cameras {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := p.Director.AddCamera(seq, cam, fallback)
		if err != nil {
			return nil, fmt.Errorf("camera %q: %w", cam.Name, err)
		}

		report.Cameras++
		report.KeysWritten += res.KeysWritten
		report.KeysReplaced += res.KeysReplaced
		if perr := res.Partial(); perr != nil {
			log.Warn().Err(perr).Str("camera", res.Camera).Msg("camera added with missing channels")
			partial = append(partial, fmt.Errorf("camera %q: %w", res.Camera, perr))
		}

		if p.Config.Bake || p.Config.Preview {
			baked = append(baked, BakedCamera{
				Name:    res.Camera,
				Binding: res.Binding.String(),
				Samples: renderer.Bake(res.Section, seq.FrameRate()),
			})
		}
	}
	report.Partial = errors.Join(partial...)

	outDir := p.Config.OutputDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	report.SnapshotPath = p.Config.OutputPath
	if report.SnapshotPath == "" {
		report.SnapshotPath = director.GenerateOutputPath(outDir, base, ".yaml")
	}
	if err := sequence.WriteSnapshot(seq, report.SnapshotPath); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	stem := strings.TrimSuffix(report.SnapshotPath, filepath.Ext(report.SnapshotPath))

	if p.Config.Bake {
		report.BakePath = stem + "_bake.yaml"
		doc := &BakeDocument{
			Version:   "1.0",
			Sequence:  name,
			FrameRate: seq.FrameRate(),
			Cameras:   baked,
		}
		if err := WriteBake(doc, report.BakePath); err != nil {
			return nil, fmt.Errorf("failed to write bake: %w", err)
		}
	}

	if p.Config.Preview {
		report.PreviewPath = stem + "_preview.png"
		paths := make([][]renderer.FrameSample, len(baked))
		for i, b := range baked {
			paths[i] = b.Samples
		}
		if err := renderer.WritePreview(report.PreviewPath, paths, p.Config.PreviewSize); err != nil {
			return nil, fmt.Errorf("failed to write preview: %w", err)
		}
	}

	report.Duration = time.Since(startTime)
	log.Info().
		Int("cameras", report.Cameras).
		Int("keys", report.KeysWritten).
		Str("snapshot", report.SnapshotPath).
		Dur("took", report.Duration).
		Msg("sequence written")

	return report, nil
}

// RunBatch processes paths with at most Config.Workers routes in flight.
// A failing route does not stop the others; all failures are joined into
// the returned error. Reports line up with paths and are nil for failures.
func (p *Project) RunBatch(ctx context.Context, paths []string) ([]*Report, error) {
	reports := make([]*Report, len(paths))
	failures := make([]error, len(paths))

	// У каждого маршрута свое имя выходного файла с меткой времени
	cfg := *p.Config
	cfg.OutputPath = ""
	batch := &Project{Config: &cfg, Director: p.Director, Logger: p.Logger}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.Config.Workers, 1))

	for i, path := range paths {
		g.Go(func() error {
			report, err := batch.Run(gctx, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				p.Logger.Error().Err(err).Str("route", path).Msg("route failed")
				failures[i] = err
				return nil
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, errors.Join(failures...)
}
