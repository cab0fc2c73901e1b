package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"
)

var (
	previewBackground = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	previewPath       = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	previewStart      = color.RGBA{R: 40, G: 170, B: 60, A: 255}
	previewEnd        = color.RGBA{R: 210, G: 50, B: 40, A: 255}
)

// DrawPreview draws the top-down (X/Y) path of each camera into a
// size x size image. All paths share one scale, fitted with a 5% margin.
func DrawPreview(paths [][]FrameSample, size int) *image.RGBA {
	if size <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(previewBackground), image.Point{}, draw.Src)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, samples := range paths {
		for _, s := range samples {
			minX = math.Min(minX, s.State.Location.X)
			maxX = math.Max(maxX, s.State.Location.X)
			minY = math.Min(minY, s.State.Location.Y)
			maxY = math.Max(maxY, s.State.Location.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return img
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	margin := float64(size) * 0.05
	scale := (float64(size) - 2*margin) / span

	// Screen Y grows downwards; world Y is flipped so +Y points up.
	project := func(s FrameSample) (float32, float32) {
		x := margin + (s.State.Location.X-minX)*scale
		y := float64(size) - margin - (s.State.Location.Y-minY)*scale
		return float32(x), float32(y)
	}

	z := vector.NewRasterizer(size, size)
	width := float32(math.Max(1.5, float64(size)/200))

	for _, samples := range paths {
		if len(samples) == 0 {
			continue
		}

		for i := 1; i < len(samples); i++ {
			ax, ay := project(samples[i-1])
			bx, by := project(samples[i])
			if ax == bx && ay == by {
				continue
			}
			z.Reset(size, size)
			segment(z, ax, ay, bx, by, width)
			z.Draw(img, img.Bounds(), image.NewUniform(previewPath), image.Point{})
		}

		sx, sy := project(samples[0])
		ex, ey := project(samples[len(samples)-1])
		for _, m := range []struct {
			x, y float32
			c    color.RGBA
		}{{sx, sy, previewStart}, {ex, ey, previewEnd}} {
			z.Reset(size, size)
			square(z, m.x, m.y, width*2.5)
			z.Draw(img, img.Bounds(), image.NewUniform(m.c), image.Point{})
		}
	}

	return img
}

// WritePreview writes the path preview as a PNG file.
func WritePreview(path string, paths [][]FrameSample, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, DrawPreview(paths, size)); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}

// segment adds a quad of the given width centred on the line a-b.
func segment(z *vector.Rasterizer, ax, ay, bx, by, width float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	nx, ny := -dy/l*width/2, dx/l*width/2

	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

func square(z *vector.Rasterizer, cx, cy, half float32) {
	z.MoveTo(cx-half, cy-half)
	z.LineTo(cx+half, cy-half)
	z.LineTo(cx+half, cy+half)
	z.LineTo(cx-half, cy+half)
	z.ClosePath()
}
