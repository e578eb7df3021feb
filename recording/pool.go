package recording

import (
	"image"
	"reflect"
)

// ResourcePool stores the images referenced by a recording. An image added
// twice (the same value) gets the same reference.
type ResourcePool struct {
	images []image.Image
	index  map[image.Image]ImageRef
}

// NewResourcePool creates an empty pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		images: make([]image.Image, 0, 8),
		index:  make(map[image.Image]ImageRef),
	}
}

// AddImage adds an image to the pool and returns its reference.
// Images are stored directly as decoded images are treated as immutable.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	if isComparable(img) {
		if ref, ok := p.index[img]; ok {
			return ref
		}
	}
	p.images = append(p.images, img)
	ref := ImageRef(uint32(len(p.images) - 1))
	if isComparable(img) {
		p.index[img] = ref
	}
	return ref
}

// GetImage returns the image for the given reference, or nil.
func (p *ResourcePool) GetImage(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// ImageCount returns the number of images in the pool.
func (p *ResourcePool) ImageCount() int {
	return len(p.images)
}

// Clear removes all images.
func (p *ResourcePool) Clear() {
	clear(p.images)
	p.images = p.images[:0]
	clear(p.index)
}

// isComparable reports whether img can be used as a map key. Standard
// library images are pointers; a value type holding a slice is not.
func isComparable(img image.Image) bool {
	return reflect.ValueOf(img).Comparable()
}
