package grob

import "image"

// call is one Backend method invocation seen by fakeBackend.
type call struct {
	op      string
	m       Matrix
	rect    Rect
	color   Color
	stroke  Stroke
	effect  Effect
	at      Point
	src     image.Rectangle
	opacity float64
	ctm     Matrix
}

// fakeBackend logs calls and tracks the CTM so tests can check where
// things land without rasterizing.
type fakeBackend struct {
	calls []call
	ctm   Matrix
	stack []Matrix
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{ctm: Identity()}
}

func (f *fakeBackend) Save() {
	f.stack = append(f.stack, f.ctm)
	f.calls = append(f.calls, call{op: "save"})
}

func (f *fakeBackend) Restore() {
	if n := len(f.stack); n > 0 {
		f.ctm = f.stack[n-1]
		f.stack = f.stack[:n-1]
	}
	f.calls = append(f.calls, call{op: "restore"})
}

func (f *fakeBackend) Concat(m Matrix) {
	f.ctm = f.ctm.Multiply(m)
	f.calls = append(f.calls, call{op: "concat", m: m})
}

func (f *fakeBackend) SetEffect(e Effect) {
	f.calls = append(f.calls, call{op: "effect", effect: e})
}

func (f *fakeBackend) FillRect(r Rect, c Color) {
	f.calls = append(f.calls, call{op: "fill", rect: r, color: c, ctm: f.ctm})
}

func (f *fakeBackend) StrokeRect(r Rect, c Color, s Stroke) {
	f.calls = append(f.calls, call{op: "stroke", rect: r, color: c, stroke: s, ctm: f.ctm})
}

func (f *fakeBackend) DrawImage(img image.Image, at Point, src image.Rectangle, opacity float64) {
	f.calls = append(f.calls, call{op: "image", at: at, src: src, opacity: opacity, ctm: f.ctm})
}

func (f *fakeBackend) ops() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.op
	}
	return out
}

// find returns the first call with the given op.
func (f *fakeBackend) find(op string) (call, bool) {
	for _, c := range f.calls {
		if c.op == op {
			return c, true
		}
	}
	return call{}, false
}

func approxMatrix(a, b Matrix) bool {
	return approxPoint(Pt(a.A, a.B), Pt(b.A, b.B)) &&
		approxPoint(Pt(a.C, a.D), Pt(b.C, b.D)) &&
		approxPoint(Pt(a.E, a.F), Pt(b.E, b.F))
}
