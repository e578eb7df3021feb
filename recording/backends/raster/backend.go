// Package raster provides a software backend that paints grobs into an
// in-memory RGBA image using golang.org/x/image/draw.
//
// The raster backend serves multiple purposes:
//   - Reference output for scripts run from the command line
//   - Playback target for recordings
//   - Pixel-level testing of grob rendering
//
// # Supported Features
//
//   - Solid rectangle fills and strokes under any affine transform
//   - Bilinear image resampling with opacity
//   - Global alpha and hard-edged drop shadows from effects
//   - State management (Save/Restore)
//   - PNG output
//
// # Limitations
//
// Blend modes other than normal composite as normal, shadows are not
// blurred, and dash patterns stroke as solid lines.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/grob/recording/backends/raster"
//
//	// Create via registry
//	backend, _ := recording.NewBackend("raster", 512, 512)
//
//	// Or create directly
//	backend := raster.New(512, 512)
//	_ = ctx.Render(backend)
//
//	// Get output
//	backend.SavePNG("output.png")
//	img := backend.Image()
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/grob"
	"github.com/gogpu/grob/recording"
)

func init() {
	recording.Register("raster", func(width, height int) grob.Backend {
		return New(width, height)
	})
}

// Backend paints into an *image.RGBA.
type Backend struct {
	dst *image.RGBA

	ctm    grob.Matrix
	effect grob.Effect
	stack  []state
}

type state struct {
	ctm    grob.Matrix
	effect grob.Effect
}

// Ensure Backend implements grob.Backend.
var _ grob.Backend = (*Backend)(nil)

// New creates a backend with a transparent canvas of the given size.
func New(width, height int) *Backend {
	return &Backend{
		dst:    image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		ctm:    grob.Identity(),
		effect: grob.DefaultEffect(),
	}
}

// Clear fills the whole canvas with c, ignoring the transform.
func (b *Backend) Clear(c grob.Color) {
	draw.Draw(b.dst, b.dst.Bounds(), image.NewUniform(c.Std()), image.Point{}, draw.Src)
}

// Save implements grob.Backend.
func (b *Backend) Save() {
	b.stack = append(b.stack, state{ctm: b.ctm, effect: b.effect})
}

// Restore implements grob.Backend. Unbalanced calls are ignored.
func (b *Backend) Restore() {
	if len(b.stack) == 0 {
		return
	}
	s := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.ctm, b.effect = s.ctm, s.effect
}

// Concat implements grob.Backend.
func (b *Backend) Concat(m grob.Matrix) {
	b.ctm = b.ctm.Multiply(m)
}

// SetEffect implements grob.Backend.
func (b *Backend) SetEffect(e grob.Effect) {
	b.effect = e
}

// FillRect implements grob.Backend.
func (b *Backend) FillRect(r grob.Rect, c grob.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	if sh := b.effect.Shadow; sh.Visible() {
		offset := grob.Translate(sh.DX, sh.DY).Multiply(b.ctm)
		b.fill(offset, r, sh.Color.WithAlpha(b.effect.Alpha))
	}
	b.fill(b.ctm, r, c.WithAlpha(b.effect.Alpha))
}

// StrokeRect implements grob.Backend. The outline is centered on the
// rectangle's edges.
func (b *Backend) StrokeRect(r grob.Rect, c grob.Color, s grob.Stroke) {
	w := s.Width
	if w <= 0 {
		return
	}
	c = c.WithAlpha(b.effect.Alpha)
	h := w / 2
	bands := []grob.Rect{
		{X: r.X - h, Y: r.Y - h, W: r.W + w, H: w},
		{X: r.X - h, Y: r.Y + r.H - h, W: r.W + w, H: w},
	}
	if inner := r.H - w; inner > 0 {
		bands = append(bands,
			grob.Rect{X: r.X - h, Y: r.Y + h, W: w, H: inner},
			grob.Rect{X: r.X + r.W - h, Y: r.Y + h, W: w, H: inner},
		)
	}
	for _, band := range bands {
		b.fill(b.ctm, band, c)
	}
}

// fill paints a unit uniform image scaled onto r and mapped by m.
func (b *Backend) fill(m grob.Matrix, r grob.Rect, c grob.Color) {
	if !c.Visible() {
		return
	}
	s2d := m.Multiply(grob.Translate(r.X, r.Y)).Multiply(grob.Scale(r.W, r.H))
	draw.NearestNeighbor.Transform(b.dst, aff3(s2d), image.NewUniform(c.Std()),
		image.Rect(0, 0, 1, 1), draw.Over, nil)
}

// DrawImage implements grob.Backend.
func (b *Backend) DrawImage(img image.Image, at grob.Point, src image.Rectangle, opacity float64) {
	if img == nil || src.Empty() {
		return
	}
	opacity *= b.effect.Alpha
	if opacity <= 0 {
		return
	}
	s2d := b.ctm.
		Multiply(grob.Translate(at.X, at.Y)).
		Multiply(grob.Translate(-float64(src.Min.X), -float64(src.Min.Y)))

	var opts *draw.Options
	if opacity < 1 {
		a := uint16(math.Round(opacity * 0xffff))
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha16{A: a})}
	}
	draw.ApproxBiLinear.Transform(b.dst, aff3(s2d), img, src, draw.Over, opts)
}

func aff3(m grob.Matrix) f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// Image returns the rendered image.
func (b *Backend) Image() *image.RGBA {
	return b.dst
}

// Width returns the canvas width.
func (b *Backend) Width() int {
	return b.dst.Bounds().Dx()
}

// Height returns the canvas height.
func (b *Backend) Height() int {
	return b.dst.Bounds().Dy()
}

// WriteTo writes the rendered content as PNG to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.dst)
	return cw.n, err
}

// SavePNG saves the rendered content as a PNG file.
func (b *Backend) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
