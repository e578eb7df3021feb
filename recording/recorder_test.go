package recording

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/grob"
)

func commandTypes(cmds []Command) []CommandType {
	out := make([]CommandType, len(cmds))
	for i, c := range cmds {
		out[i] = c.Type()
	}
	return out
}

func TestRecorderTracksCTM(t *testing.T) {
	rec := NewRecorder()
	rec.Save()
	rec.Concat(grob.Translate(10, 20))
	rec.Concat(grob.Scale(2, 2))
	rec.FillRect(grob.Rect{W: 5, H: 5}, grob.Black)
	rec.Restore()
	rec.FillRect(grob.Rect{W: 5, H: 5}, grob.White)

	want := []CommandType{CmdSave, CmdConcat, CmdConcat, CmdFillRect, CmdRestore, CmdFillRect}
	if diff := cmp.Diff(want, commandTypes(rec.Commands())); diff != "" {
		t.Fatalf("command types mismatch (-want +got):\n%s", diff)
	}

	inner := rec.Commands()[3].(FillRectCommand)
	if got := inner.CTM.TransformPoint(grob.Pt(1, 1)); got != grob.Pt(12, 22) {
		t.Errorf("inner CTM maps (1,1) to %v, want (12,22)", got)
	}
	outer := rec.Commands()[5].(FillRectCommand)
	if !outer.CTM.IsIdentity() {
		t.Errorf("outer CTM = %v, want identity", outer.CTM)
	}
	if rec.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", rec.Depth())
	}
}

func TestRecorderRestoreEmpty(t *testing.T) {
	rec := NewRecorder()
	rec.Restore()
	if n := len(rec.Commands()); n != 0 {
		t.Errorf("unbalanced Restore recorded %d commands", n)
	}
}

func TestRecorderEffectRestored(t *testing.T) {
	rec := NewRecorder()
	rec.Save()
	fx := grob.DefaultEffect()
	fx.Alpha = 0.5
	rec.SetEffect(fx)
	if rec.Effect().Alpha != 0.5 {
		t.Fatalf("Effect().Alpha = %v, want 0.5", rec.Effect().Alpha)
	}
	rec.Restore()
	if rec.Effect().Alpha != 1 {
		t.Errorf("Effect().Alpha after Restore = %v, want 1", rec.Effect().Alpha)
	}
}

func TestRecorderStrokeClonesDash(t *testing.T) {
	rec := NewRecorder()
	s := grob.DefaultStroke()
	s.Dash = []int{4, 2}
	rec.StrokeRect(grob.Rect{W: 1, H: 1}, grob.Black, s)
	s.Dash[0] = 99

	got := rec.Commands()[0].(StrokeRectCommand).Stroke.Dash
	if diff := cmp.Diff([]int{4, 2}, got); diff != "" {
		t.Errorf("recorded dash mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderPoolDedup(t *testing.T) {
	rec := NewRecorder()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	rec.DrawImage(img, grob.Point{}, img.Bounds(), 1)
	rec.DrawImage(img, grob.Point{}, img.Bounds(), 0.5)
	other := image.NewUniform(color.White)
	rec.DrawImage(other, grob.Point{}, image.Rect(0, 0, 1, 1), 1)

	if n := rec.Resources().ImageCount(); n != 2 {
		t.Fatalf("ImageCount = %d, want 2", n)
	}
	a := rec.Commands()[0].(DrawImageCommand)
	b := rec.Commands()[1].(DrawImageCommand)
	if a.Image != b.Image {
		t.Errorf("same image got refs %d and %d", a.Image, b.Image)
	}
	if rec.Resources().GetImage(a.Image) != image.Image(img) {
		t.Error("GetImage returned a different image")
	}
	if rec.Resources().GetImage(42) != nil {
		t.Error("GetImage(42) should be nil")
	}
}

func TestRecorderPlayback(t *testing.T) {
	src := NewRecorder()
	src.Save()
	src.Concat(grob.Translate(3, 4))
	fx := grob.DefaultEffect()
	fx.Blend = grob.BlendMultiply
	src.SetEffect(fx)
	src.FillRect(grob.Rect{X: 1, Y: 1, W: 2, H: 2}, grob.RGB(1, 0, 0))
	src.StrokeRect(grob.Rect{W: 2, H: 2}, grob.Black, grob.DefaultStroke())
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	src.DrawImage(img, grob.Pt(0, 0), img.Bounds(), 0.25)
	src.Restore()

	dst := NewRecorder()
	src.Playback(dst)

	if diff := cmp.Diff(src.Commands(), dst.Commands()); diff != "" {
		t.Errorf("playback mismatch (-src +dst):\n%s", diff)
	}
}

func TestRecorderReset(t *testing.T) {
	rec := NewRecorder()
	rec.Save()
	rec.Concat(grob.Scale(2, 2))
	rec.DrawImage(image.NewRGBA(image.Rect(0, 0, 1, 1)), grob.Point{}, image.Rect(0, 0, 1, 1), 1)
	rec.Reset()

	if len(rec.Commands()) != 0 || rec.Resources().ImageCount() != 0 || rec.Depth() != 0 {
		t.Errorf("Reset left commands=%d images=%d depth=%d",
			len(rec.Commands()), rec.Resources().ImageCount(), rec.Depth())
	}
	if !rec.CTM().IsIdentity() {
		t.Errorf("CTM after Reset = %v, want identity", rec.CTM())
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		typ  CommandType
		want string
	}{
		{CmdSave, "Save"},
		{CmdConcat, "Concat"},
		{CmdDrawImage, "DrawImage"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
