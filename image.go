package grob

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"time"

	"github.com/gogpu/grob/internal/cache"
	"github.com/gogpu/grob/internal/imageio"
)

// ImageKind is the kind name of Image.
const ImageKind = "image"

var imageAttrs = RegisterKind(ImageKind, TransformAttrs)

// ImageKwargs are the keywords accepted by NewImageKwargs.
var ImageKwargs = joinKwargs(
	[]string{"path", "x", "y", "width", "height", "alpha", "debug"},
	TransformKwargs,
)

// ImageSource names where an Image's pixels come from. Exactly one field
// must be set.
type ImageSource struct {
	// Path is a file on the local filesystem. Decoded files are cached by
	// the context, keyed by path and invalidated by modification time.
	Path string

	// Data is encoded image bytes (PNG, JPEG, GIF, BMP, TIFF or WebP).
	Data []byte

	// Image is an already decoded image. It is used as is.
	Image image.Image
}

// ImageOption configures an Image during construction.
type ImageOption func(*Image)

// WithWidth constrains the drawn width; the image is scaled uniformly.
func WithWidth(w float64) ImageOption {
	return func(i *Image) { i.SetWidth(w) }
}

// WithHeight constrains the drawn height; the image is scaled uniformly.
func WithHeight(h float64) ImageOption {
	return func(i *Image) { i.SetHeight(h) }
}

// WithSize constrains both dimensions. The image keeps its aspect ratio
// and is scaled by the smaller of the two factors.
func WithSize(w, h float64) ImageOption {
	return func(i *Image) {
		i.SetWidth(w)
		i.SetHeight(h)
	}
}

// WithAlpha sets the drawing opacity, clamped to [0, 1].
func WithAlpha(a float64) ImageOption {
	return func(i *Image) { i.SetAlpha(a) }
}

// WithDebug makes the image draw as a black rectangle of the same extents.
func WithDebug(debug bool) ImageOption {
	return func(i *Image) { i.debug = debug }
}

// Image is a grob drawing a bitmap. It carries the transform capability
// only; its alpha is a plain opacity, not an inherited effect.
type Image struct {
	Base
	TransformCap

	img   image.Image
	x, y  float64
	alpha float64
	debug bool

	width, height       float64
	hasWidth, hasHeight bool
}

// NewImage creates an Image at (x, y) from exactly one source.
//
// Errors: ErrInvalidArgument if src names zero or several sources,
// ErrNotFound if the path does not exist, ErrUnreadable if decoding fails.
func NewImage(ctx *Context, src ImageSource, x, y float64, opts ...ImageOption) (*Image, error) {
	img, err := ctx.decode(src)
	if err != nil {
		return nil, err
	}
	i := &Image{
		Base:         Base{kind: ImageKind, attrs: imageAttrs},
		TransformCap: newTransformCap(ctx),
		img:          img,
		x:            x,
		y:            y,
		alpha:        1.0,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

func (c *Context) decode(src ImageSource) (image.Image, error) {
	n := 0
	if src.Path != "" {
		n++
	}
	if src.Data != nil {
		n++
	}
	if src.Image != nil {
		n++
	}
	if n != 1 {
		return nil, fmt.Errorf("%w: image needs exactly one of path, data or image, got %d", ErrInvalidArgument, n)
	}

	switch {
	case src.Image != nil:
		return src.Image, nil
	case src.Data != nil:
		img, _, err := imageio.LoadBytes(src.Data)
		if err != nil {
			return nil, fmt.Errorf("%w from data: %w", ErrUnreadable, err)
		}
		return img, nil
	default:
		return c.images.load(src.Path)
	}
}

// Decoded returns the decoded pixels. They are shared between copies and
// must not be modified.
func (i *Image) Decoded() image.Image { return i.img }

// Size returns the pixel dimensions of the source image.
func (i *Image) Size() (w, h float64) {
	b := i.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Position returns where the image is placed.
func (i *Image) Position() Point { return Pt(i.x, i.y) }

// SetPosition moves the image.
func (i *Image) SetPosition(x, y float64) { i.x, i.y = x, y }

// Width returns the width constraint, if any.
func (i *Image) Width() (float64, bool) { return i.width, i.hasWidth }

// SetWidth sets the width constraint.
func (i *Image) SetWidth(w float64) { i.width, i.hasWidth = w, true }

// Height returns the height constraint, if any.
func (i *Image) Height() (float64, bool) { return i.height, i.hasHeight }

// SetHeight sets the height constraint.
func (i *Image) SetHeight(h float64) { i.height, i.hasHeight = h, true }

// ClearSize removes both size constraints.
func (i *Image) ClearSize() { i.hasWidth, i.hasHeight = false, false }

// Alpha returns the drawing opacity.
func (i *Image) Alpha() float64 { return i.alpha }

// SetAlpha sets the drawing opacity, clamped to [0, 1].
func (i *Image) SetAlpha(a float64) { i.alpha = clampAlpha(a) }

// Debug reports whether the image draws as a placeholder rectangle.
func (i *Image) Debug() bool { return i.debug }

// SetDebug switches placeholder drawing on or off.
func (i *Image) SetDebug(debug bool) { i.debug = debug }

// Copy returns a duplicate sharing the decoded pixels.
func (i *Image) Copy() (Grob, error) {
	cp := *i
	return &cp, nil
}

// Inherit resolves the transform and pivot mode against p.
func (i *Image) Inherit(p StateProvider) {
	i.TransformCap.inherit(p)
}

// fitFactor returns the uniform scale implied by the size constraints.
func (i *Image) fitFactor(srcW, srcH float64) (float64, bool) {
	switch {
	case i.hasWidth && i.hasHeight:
		return min(i.width/srcW, i.height/srcH), true
	case i.hasWidth:
		return i.width / srcW, true
	case i.hasHeight:
		return i.height / srcH, true
	}
	return 1, false
}

// Render draws the image. All coordinate-space changes are bracketed by
// Save/Restore.
func (i *Image) Render(b Backend) {
	bounds := i.img.Bounds()
	srcW, srcH := float64(bounds.Dx()), float64(bounds.Dy())
	if srcW == 0 || srcH == 0 {
		return
	}
	t := i.Transform()
	center := i.TransformMode() == TransformCenter

	b.Save()
	defer b.Restore()

	if factor, ok := i.fitFactor(srcW, srcH); ok {
		if center {
			// Order matters in every step below. The placement goes in
			// first so that t pivots on the placed image, not the origin.
			b.Concat(Translate(i.x, i.y))
			// Half of the scaled extents; nothing is scaled yet.
			dx, dy := srcW*factor/2, srcH*factor/2
			b.Concat(Translate(dx, dy))
			b.Concat(t)
			b.Concat(Translate(-dx, -dy))
			b.Concat(Scale(factor, factor))
		} else {
			b.Concat(t)
			b.Concat(Translate(i.x, i.y).Multiply(Scale(factor, factor)))
		}
		i.paint(b, Point{}, bounds)
		return
	}

	pt := Pt(i.x, i.y)
	if center {
		dx, dy := srcW/2, srcH/2
		b.Concat(Translate(i.x+dx, i.y+dy))
		pt = Pt(-dx, -dy)
	}
	b.Concat(t)
	i.paint(b, pt, bounds)
}

// paint draws the pixels, or the debug placeholder, with the top-left
// corner at pt in the current space.
func (i *Image) paint(b Backend, pt Point, bounds image.Rectangle) {
	if i.debug {
		b.FillRect(Rect{X: pt.X, Y: pt.Y, W: float64(bounds.Dx()), H: float64(bounds.Dy())}, Black)
		return
	}
	// Position through the matrix and draw at the origin, so that every
	// backend places the image the same way.
	if pt != (Point{}) {
		b.Concat(Translate(pt.X, pt.Y))
	}
	b.DrawImage(i.img, Point{}, bounds, i.alpha)
}

// imageEntry is a decoded file and the modification time it was read at.
type imageEntry struct {
	img   image.Image
	mtime time.Time
}

// ImageCacheStats describes a context's image decode cache.
type ImageCacheStats struct {
	// Images is the number of decoded files held.
	Images int
	// Limit is the soft limit; 0 means unlimited.
	Limit int
	// Hits counts lookups served from the cache.
	Hits uint64
	// Misses counts paths decoded for the first time.
	Misses uint64
	// Stale counts files decoded again after their modification time
	// changed.
	Stale uint64
}

// imageCache maps file paths to decoded images. Entries whose file has a
// different modification time are decoded again.
type imageCache struct {
	entries *cache.Cache[string, imageEntry]
}

func newImageCache(limit int) *imageCache {
	return &imageCache{entries: cache.New[string, imageEntry](limit)}
}

func (ic *imageCache) stats() ImageCacheStats {
	st := ic.entries.Stats()
	return ImageCacheStats{
		Images: st.Len,
		Limit:  st.Capacity,
		Hits:   st.Hits,
		Misses: st.Misses,
		Stale:  st.Stale,
	}
}

func (ic *imageCache) load(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if ic.entries.Delete(path) {
				Logger().Debug("grob: image cache invalidated", "path", path)
			}
			return nil, fmt.Errorf("%w: image %q", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w %q: %w", ErrUnreadable, path, err)
	}
	mtime := info.ModTime()

	e, hit, err := ic.entries.Load(path,
		func(e imageEntry) bool { return e.mtime.Equal(mtime) },
		func() (imageEntry, error) {
			img, format, err := imageio.Load(path)
			if err != nil {
				return imageEntry{}, fmt.Errorf("%w %q: %w", ErrUnreadable, path, err)
			}
			Logger().Debug("grob: image decoded", "path", path, "format", format,
				"width", img.Bounds().Dx(), "height", img.Bounds().Dy(), "mtime", mtime)
			return imageEntry{img: img, mtime: mtime}, nil
		})
	if err != nil {
		return nil, err
	}
	if hit {
		Logger().Debug("grob: image cache hit", "path", path)
	}
	return e.img, nil
}
