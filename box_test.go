package grob

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBoxIsStateProvider(t *testing.T) {
	ctx := NewContext()
	parent := NewBox(ctx, 0, 0, 1, 1)
	parent.SetFill(RGB(0, 1, 0))
	parent.SetStrokeWidth(3)
	parent.Translate(5, 0)

	child := NewBox(ctx, 0, 0, 1, 1)
	child.Inherit(parent)
	if child.Fill() != RGB(0, 1, 0) || child.StrokeWidth() != 3 {
		t.Errorf("child fill/width = %v/%v, want parent's", child.Fill(), child.StrokeWidth())
	}
	if got := child.Transform().TransformPoint(Pt(0, 0)); !approxPoint(got, Pt(5, 0)) {
		t.Errorf("child transform maps origin to %v", got)
	}
}

func TestBoxInheritedTransformStartsFromIdentity(t *testing.T) {
	ctx := NewContext()
	ctx.Translate(100, 100)
	b := NewBox(ctx, 0, 0, 1, 1)
	if got := b.Transform().TransformPoint(Pt(0, 0)); !approxPoint(got, Pt(100, 100)) {
		t.Errorf("inherited transform maps origin to %v, want (100,100)", got)
	}
	b.Scale(2, 2)
	if got := b.Transform().TransformPoint(Pt(1, 1)); !approxPoint(got, Pt(2, 2)) {
		t.Errorf("local transform maps (1,1) to %v, want (2,2)", got)
	}
	ctx.Translate(5, 5)
	_ = ctx.Draw(b)
	committed := ctx.Canvas().At(0).(*Box)
	if got := committed.Transform().TransformPoint(Pt(1, 1)); !approxPoint(got, Pt(2, 2)) {
		t.Errorf("local transform replaced on Draw: %v", got)
	}
}

func TestBoxRenderCenter(t *testing.T) {
	ctx := NewContext()
	b := NewBox(ctx, 10, 20, 40, 20)
	b.Rotate(90)
	b.SetStroke(Black)
	b.SetAlpha(0.5)
	b.Inherit(ctx)

	fb := newFakeBackend()
	b.Render(fb)

	want := []string{"save", "concat", "concat", "concat", "effect", "fill", "stroke", "restore"}
	if diff := cmp.Diff(want, fb.ops()); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}
	fill, _ := fb.find("fill")
	if got := fill.ctm.TransformPoint(Pt(30, 30)); !approxPoint(got, Pt(30, 30)) {
		t.Errorf("center moved to %v, want (30,30)", got)
	}
	// A quarter turn swaps the box's extents around its center.
	if got := fill.ctm.TransformPoint(Pt(10, 20)); !approxPoint(got, Pt(20, 50)) {
		t.Errorf("corner (10,20) -> %v, want (20,50)", got)
	}
	eff, _ := fb.find("effect")
	if eff.effect.Alpha != 0.5 {
		t.Errorf("effect alpha = %v, want 0.5", eff.effect.Alpha)
	}
	st, _ := fb.find("stroke")
	if st.stroke.Width != 1 {
		t.Errorf("stroke width = %v, want 1", st.stroke.Width)
	}
}

func TestBoxRenderCornerNoPaint(t *testing.T) {
	ctx := NewContext()
	if err := ctx.SetTransformMode(TransformCorner); err != nil {
		t.Fatal(err)
	}
	ctx.SetFill(NoColor)
	b := NewBox(ctx, 0, 0, 5, 5)
	b.Inherit(ctx)

	fb := newFakeBackend()
	b.Render(fb)
	want := []string{"save", "concat", "restore"}
	if diff := cmp.Diff(want, fb.ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}
