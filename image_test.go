package grob

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(w, h)); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "img.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImageCacheSharesDecodes(t *testing.T) {
	path := writePNG(t, 8, 4)
	ctx := NewContext()

	a, err := NewImage(ctx, ImageSource{Path: path}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewImage(ctx, ImageSource{Path: path}, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if a.Decoded() != b.Decoded() {
		t.Error("same path decoded twice")
	}
	if w, h := a.Size(); w != 8 || h != 4 {
		t.Errorf("Size = %vx%v, want 8x4", w, h)
	}

	ctx.Reset()
	c, err := NewImage(ctx, ImageSource{Path: path}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Decoded() != a.Decoded() {
		t.Error("Reset dropped the image cache")
	}

	want := ImageCacheStats{Images: 1, Limit: defaultOptions().cacheLimit, Hits: 2, Misses: 1}
	if diff := cmp.Diff(want, ctx.ImageCacheStats()); diff != "" {
		t.Errorf("ImageCacheStats() mismatch (-want +got):\n%s", diff)
	}
}

func TestImageCacheRemovedAndCleared(t *testing.T) {
	path := writePNG(t, 2, 2)
	ctx := NewContext()
	if _, err := NewImage(ctx, ImageSource{Path: path}, 0, 0); err != nil {
		t.Fatal(err)
	}

	ctx.ClearImageCache()
	if n := ctx.ImageCacheStats().Images; n != 0 {
		t.Errorf("%d images cached after ClearImageCache, want 0", n)
	}
	if _, err := NewImage(ctx, ImageSource{Path: path}, 0, 0); err != nil {
		t.Fatal(err)
	}
	if st := ctx.ImageCacheStats(); st.Images != 1 || st.Misses != 2 {
		t.Errorf("ImageCacheStats() = %+v, want 1 image after 2 misses", st)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := NewImage(ctx, ImageSource{Path: path}, 0, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("NewImage of removed file: error = %v, want ErrNotFound", err)
	}
	if n := ctx.ImageCacheStats().Images; n != 0 {
		t.Errorf("removed file still cached (%d images)", n)
	}
}

func TestImageCacheInvalidatedByMtime(t *testing.T) {
	path := writePNG(t, 4, 4)
	ctx := NewContext()
	a, err := NewImage(ctx, ImageSource{Path: path}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	b, err := NewImage(ctx, ImageSource{Path: path}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if a.Decoded() == b.Decoded() {
		t.Error("modified file served from cache")
	}
	if st := ctx.ImageCacheStats(); st.Stale != 1 || st.Images != 1 {
		t.Errorf("ImageCacheStats() = %+v, want 1 stale reload of 1 image", st)
	}
}

func TestImageSourceErrors(t *testing.T) {
	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  ImageSource
		want error
	}{
		{"missing path", ImageSource{Path: filepath.Join(t.TempDir(), "nope.png")}, ErrNotFound},
		{"undecodable file", ImageSource{Path: garbage}, ErrUnreadable},
		{"undecodable data", ImageSource{Data: []byte{1, 2, 3}}, ErrUnreadable},
		{"no source", ImageSource{}, ErrInvalidArgument},
		{"two sources", ImageSource{Path: garbage, Image: testImage(1, 1)}, ErrInvalidArgument},
	}
	ctx := NewContext()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImage(ctx, tt.src, 0, 0)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestImageFromData(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(3, 2)); err != nil {
		t.Fatal(err)
	}
	img, err := NewImage(NewContext(), ImageSource{Data: buf.Bytes()}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := img.Size(); w != 3 || h != 2 {
		t.Errorf("Size = %vx%v, want 3x2", w, h)
	}
}

// The center of a size-constrained image stays put whatever it is rotated by.
func TestImageCenterPivot(t *testing.T) {
	src := testImage(200, 200)
	for _, deg := range []float64{0, 45, 90} {
		ctx := NewContext()
		img, err := NewImage(ctx, ImageSource{Image: src}, 10, 20, WithSize(100, 50))
		if err != nil {
			t.Fatal(err)
		}
		img.Rotate(deg)
		img.Inherit(ctx)

		fb := newFakeBackend()
		img.Render(fb)

		draw, ok := fb.find("image")
		if !ok {
			t.Fatalf("%v deg: no DrawImage call", deg)
		}
		if got := draw.ctm.TransformPoint(Pt(100, 100)); !approxPoint(got, Pt(35, 45)) {
			t.Errorf("%v deg: center at %v, want (35,45)", deg, got)
		}
		if deg == 0 {
			if got := draw.ctm.TransformPoint(Pt(200, 200)); !approxPoint(got, Pt(60, 70)) {
				t.Errorf("far corner at %v, want (60,70)", got)
			}
		}
	}
}

func TestImageCenterUnconstrained(t *testing.T) {
	ctx := NewContext()
	img, err := NewImage(ctx, ImageSource{Image: testImage(40, 20)}, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	img.Rotate(30)
	img.Inherit(ctx)

	fb := newFakeBackend()
	img.Render(fb)
	draw, _ := fb.find("image")
	if got := draw.ctm.TransformPoint(Pt(20, 10)); !approxPoint(got, Pt(120, 110)) {
		t.Errorf("center at %v, want (120,110)", got)
	}
	if draw.at != (Point{}) || draw.opacity != 1 {
		t.Errorf("drawn at %v opacity %v, want origin and 1", draw.at, draw.opacity)
	}
}

func TestImageCornerOrder(t *testing.T) {
	ctx := NewContext()
	if err := ctx.SetTransformMode(TransformCorner); err != nil {
		t.Fatal(err)
	}
	img, err := NewImage(ctx, ImageSource{Image: testImage(10, 10)}, 5, 5, WithWidth(20), WithAlpha(0.3))
	if err != nil {
		t.Fatal(err)
	}
	img.Translate(100, 0)
	img.Inherit(ctx)

	fb := newFakeBackend()
	img.Render(fb)

	want := []string{"save", "concat", "concat", "image", "restore"}
	if diff := cmp.Diff(want, fb.ops()); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}
	if !approxMatrix(fb.calls[1].m, Translate(100, 0)) {
		t.Errorf("first concat = %v, want the grob transform", fb.calls[1].m)
	}
	draw := fb.calls[3]
	if got := draw.ctm.TransformPoint(Pt(10, 10)); !approxPoint(got, Pt(125, 25)) {
		t.Errorf("far corner at %v, want (125,25)", got)
	}
	if draw.opacity != 0.3 {
		t.Errorf("opacity = %v, want 0.3", draw.opacity)
	}
}

func TestImageDebugRect(t *testing.T) {
	for _, mode := range []TransformMode{TransformCenter, TransformCorner} {
		ctx := NewContext()
		_ = ctx.SetTransformMode(mode)
		img, err := NewImage(ctx, ImageSource{Image: testImage(200, 100)}, 0, 0,
			WithHeight(50), WithDebug(true))
		if err != nil {
			t.Fatal(err)
		}
		img.Inherit(ctx)

		fb := newFakeBackend()
		img.Render(fb)
		if _, ok := fb.find("image"); ok {
			t.Errorf("%v: debug image drew pixels", mode)
		}
		fill, ok := fb.find("fill")
		if !ok {
			t.Fatalf("%v: no placeholder", mode)
		}
		if fill.color != Black {
			t.Errorf("%v: placeholder color %v", mode, fill.color)
		}
		lo := fill.ctm.TransformPoint(Pt(fill.rect.X, fill.rect.Y))
		hi := fill.ctm.TransformPoint(Pt(fill.rect.X+fill.rect.W, fill.rect.Y+fill.rect.H))
		if !approxPoint(lo, Pt(0, 0)) || !approxPoint(hi, Pt(100, 50)) {
			t.Errorf("%v: placeholder spans %v-%v, want (0,0)-(100,50)", mode, lo, hi)
		}
	}
}

func TestImageCopySharesPixels(t *testing.T) {
	ctx := NewContext()
	img, err := NewImage(ctx, ImageSource{Image: testImage(2, 2)}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	g, err := img.Copy()
	if err != nil {
		t.Fatal(err)
	}
	cp := g.(*Image)
	cp.SetPosition(9, 9)
	cp.ClearSize()
	if img.Position() == cp.Position() {
		t.Error("copy shares position")
	}
	if cp.Decoded() != img.Decoded() {
		t.Error("copy re-decoded pixels")
	}
}
