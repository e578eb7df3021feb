package scene

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/grob"
	"github.com/gogpu/grob/recording"
)

const demo = `
width = 200
height = 100
plotstyle = "COPY"
background = "#ffffff"

[[var]]
name = "angle"
default = 30
min = 0
max = 90

[[var]]
name = "label"
type = "text"

[[draw]]
kind = "state"
fill = [1, 0, 0]
strokewidth = 2
dash = [4, 2, 1]

[[draw]]
kind = "push"

[[draw]]
kind = "state"
translate = [10, 5]

[[draw]]
kind = "box"
x = 0
y = 0
width = 20
height = 10
rotate = "$angle"
stroke = "#000"

[[draw]]
kind = "pop"

[[draw]]
kind = "box"
width = 5
height = 5
shadow = { dx = "$angle" }
`

func TestParseAndRun(t *testing.T) {
	s, err := Parse(demo)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	bg, ok, err := s.BackgroundColor()
	if err != nil || !ok || bg != grob.White {
		t.Errorf("BackgroundColor = (%v, %v, %v)", bg, ok, err)
	}

	ctx := grob.NewContext()
	vars, err := Run(ctx, s, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if w, h := ctx.Size(); w != 200 || h != 100 {
		t.Errorf("Size = %dx%d, want 200x100", w, h)
	}
	if got := vars["angle"].Number(); got != 30 {
		t.Errorf("angle = %v, want 30", got)
	}
	if got := vars["label"].Text(); got != "hello" {
		t.Errorf("label = %q, want hello", got)
	}

	if n := ctx.Canvas().Len(); n != 2 {
		t.Fatalf("canvas length = %d, want 2", n)
	}
	first := ctx.Canvas().At(0).(*grob.Box)
	if first.Fill() != grob.RGB(1, 0, 0) || first.StrokeWidth() != 2 {
		t.Errorf("first box fill/width = %v/%v", first.Fill(), first.StrokeWidth())
	}
	if diff := cmp.Diff([]int{4, 2, 1, 1}, first.DashStyle()); diff != "" {
		t.Errorf("dash mismatch (-want +got):\n%s", diff)
	}
	// A local rotate replaces the pushed translation.
	if got := first.Transform().TransformPoint(grob.Pt(0, 0)); got != grob.Pt(0, 0) {
		t.Errorf("box transform maps origin to %v, want (0,0)", got)
	}

	second := ctx.Canvas().At(1).(*grob.Box)
	if !second.Transform().IsIdentity() {
		t.Errorf("pop did not restore the transform: %v", second.Transform())
	}
	if got := second.Shadow().DX; got != 30 {
		t.Errorf("shadow dx = %v, want 30", got)
	}

	rec := recording.NewRecorder()
	if err := ctx.Render(rec); err != nil {
		t.Fatal(err)
	}
	var fills int
	for _, c := range rec.Commands() {
		if c.Type() == recording.CmdFillRect {
			fills++
		}
	}
	if fills != 2 {
		t.Errorf("recorded %d fills, want 2", fills)
	}
}

func TestRunKeepsCompliantValues(t *testing.T) {
	s, err := Parse(demo)
	if err != nil {
		t.Fatal(err)
	}
	ctx := grob.NewContext()
	vars, err := Run(ctx, s, nil)
	if err != nil {
		t.Fatal(err)
	}
	vars["angle"].Set(80)
	vars["label"].Set("kept")

	vars, err = Run(ctx, s, vars)
	if err != nil {
		t.Fatal(err)
	}
	if got := vars["angle"].Number(); got != 80 {
		t.Errorf("angle = %v, want kept 80", got)
	}
	if got := vars["label"].Text(); got != "kept" {
		t.Errorf("label = %q, want kept", got)
	}

	narrower := *s
	narrower.Vars = []VarDecl{{Name: "angle", Min: ptr(0.0), Max: ptr(45.0)}}
	vars, err = Run(ctx, &narrower, vars)
	if err != nil {
		t.Fatal(err)
	}
	if got := vars["angle"].Number(); got != 50 {
		t.Errorf("angle = %v, want default 50 after narrowing", got)
	}
}

func ptr[T any](v T) *T { return &v }

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want error
	}{
		{"unknown kind", "[[draw]]\nkind = \"circle\"", grob.ErrInvalidArgument},
		{"unknown key", "[[draw]]\nkind = \"box\"\nradius = 3", grob.ErrInvalidArgument},
		{"undeclared var", "[[draw]]\nkind = \"box\"\nx = \"$nope\"", grob.ErrInvalidArgument},
		{"bad style", "[[draw]]\nkind = \"state\"\ncap = \"pointy\"", grob.ErrInvalidStyle},
		{"push with args", "[[draw]]\nkind = \"push\"\nx = 1", grob.ErrInvalidArgument},
		{"bad plot style", "plotstyle = \"sometimes\"", grob.ErrInvalidArgument},
		{"bad var type", "[[var]]\nname = \"v\"\ntype = \"slider\"", grob.ErrInvalidArgument},
		{"missing image", "[[draw]]\nkind = \"image\"\npath = \"/no/such/file.png\"", grob.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.toml)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if _, err := Run(grob.NewContext(), s, nil); !errors.Is(err, tt.want) {
				t.Errorf("Run error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseUndecoded(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"top-level key", "title = \"x\"\nwidth = 10", true},
		{"unknown table", "[window]\nw = 1", true},
		{"unknown var field", "[[var]]\nname = \"a\"\nstep = 1", true},
		{"shadow table", "[[draw]]\nkind = \"box\"\nshadow = { dx = 2, dy = 3, color = \"#000\" }", false},
		{"nested shadow with stray top key", "title = 1\n[[draw]]\nshadow = { dx = 2 }", true},
		{"var default table", "[[var]]\nname = \"a\"\ntype = \"text\"\ndefault = { s = 1 }", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if got := errors.Is(err, ErrUndecoded); got != tt.want {
				t.Errorf("Parse error = %v, want ErrUndecoded %v", err, tt.want)
			}
		})
	}
}

func TestParseShadowTable(t *testing.T) {
	s, err := Parse("[[draw]]\nkind = \"box\"\nwidth = 4\nheight = 4\nshadow = { dx = 2, dy = 3, blur = 0 }")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx := grob.NewContext()
	if _, err := Run(ctx, s, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := ctx.Canvas().Len(); n != 1 {
		t.Fatalf("canvas holds %d grobs, want 1", n)
	}
	sh := ctx.Canvas().At(0).(*grob.Box).Shadow()
	if sh.DX != 2 || sh.DY != 3 || sh.Blur != 0 {
		t.Errorf("Shadow = %+v, want dx 2 dy 3 blur 0", sh)
	}
}

func TestLoadResolvesImagePaths(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pic.png"), buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	scenePath := filepath.Join(dir, "s.toml")
	src := "[[draw]]\nkind = \"image\"\npath = \"pic.png\"\nwidth = 8\n"
	if err := os.WriteFile(scenePath, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(scenePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ctx := grob.NewContext()
	if _, err := Run(ctx, s, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	img := ctx.Canvas().At(0).(*grob.Image)
	if w, h := img.Size(); w != 4 || h != 2 {
		t.Errorf("image size = %vx%v, want 4x2", w, h)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}
