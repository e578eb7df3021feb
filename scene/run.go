package scene

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/gogpu/grob"
)

// Entry kinds.
const (
	KindState = "state"
	KindPush  = "push"
	KindPop   = "pop"
)

// StateKwargs are the keys accepted by a "state" entry.
var StateKwargs = []string{
	"fill", "stroke", "alpha", "blend", "shadow",
	"mode", "translate", "rotate", "scale", "skew", "reset",
	"nib", "strokewidth", "cap", "capstyle", "join", "joinstyle", "dash", "dashstyle",
}

// Run resets ctx, applies the scene's canvas settings, binds its variables
// and executes its draw entries in order. It returns the bound variables,
// which the caller passes back as prev on the next run.
//
// Execution stops at the first failing entry; grobs drawn before it stay
// on the canvas.
func Run(ctx *grob.Context, s *Scene, prev map[string]*grob.Variable) (map[string]*grob.Variable, error) {
	ctx.Reset()
	if s.Width != 0 || s.Height != 0 {
		w, h := ctx.Size()
		if s.Width != 0 {
			w = s.Width
		}
		if s.Height != 0 {
			h = s.Height
		}
		if err := ctx.SetSize(w, h); err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
	}
	if s.PlotStyle != "" {
		style, err := grob.ParsePlotStyle(strings.ToLower(s.PlotStyle))
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		if err := ctx.SetPlotStyle(style); err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
	}

	vars, err := s.Declare(prev)
	if err != nil {
		return nil, err
	}

	for i, entry := range s.Draws {
		kind, _ := entry["kind"].(string)
		if err := s.exec(ctx, kind, entry, vars); err != nil {
			return vars, fmt.Errorf("scene: draw[%d] (%s): %w", i, kind, err)
		}
	}
	grob.Logger().Debug("scene: run complete",
		"entries", len(s.Draws), "vars", len(vars), "grobs", ctx.Canvas().Len())
	return vars, nil
}

func (s *Scene) exec(ctx *grob.Context, kind string, entry map[string]any, vars map[string]*grob.Variable) error {
	kw := make(grob.Kwargs, len(entry))
	for k, v := range entry {
		if k == "kind" {
			continue
		}
		r, err := substitute(v, vars)
		if err != nil {
			return err
		}
		kw[k] = r
	}

	switch kind {
	case KindState:
		return applyState(ctx, kw)
	case KindPush, KindPop:
		if err := grob.Validate(kw, nil); err != nil {
			return err
		}
		if kind == KindPush {
			ctx.Push()
		} else {
			ctx.Pop()
		}
		return nil
	case grob.BoxKind:
		b, err := grob.NewBoxKwargs(ctx, kw)
		if err != nil {
			return err
		}
		return ctx.Draw(b)
	case grob.ImageKind:
		if p, ok := kw["path"].(string); ok && s.dir != "" && !filepath.IsAbs(p) {
			kw = maps.Clone(kw)
			kw["path"] = filepath.Join(s.dir, p)
		}
		img, err := grob.NewImageKwargs(ctx, kw)
		if err != nil {
			return err
		}
		return ctx.Draw(img)
	}
	return fmt.Errorf("%w: unknown entry kind %q", grob.ErrInvalidArgument, kind)
}

// substitute replaces "$name" strings, also inside lists and tables, with
// the named variable's value.
func substitute(v any, vars map[string]*grob.Variable) (any, error) {
	switch t := v.(type) {
	case string:
		name, ok := strings.CutPrefix(t, "$")
		if !ok {
			return t, nil
		}
		vr, ok := vars[name]
		if !ok {
			return nil, fmt.Errorf("%w: undeclared variable %q", grob.ErrInvalidArgument, name)
		}
		return vr.Value, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			r, err := substitute(item, vars)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			r, err := substitute(item, vars)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	}
	return v, nil
}

// applyState changes the context the way the matching script calls do.
// A reset clears the transform before translate, rotate, scale and skew
// apply in that order.
func applyState(ctx *grob.Context, kw grob.Kwargs) error {
	if err := grob.Validate(kw, StateKwargs); err != nil {
		return err
	}

	if err := grob.ApplyColorKwargs(ctx, kw); err != nil {
		return err
	}
	if err := grob.ApplyEffectsKwargs(ctx, kw); err != nil {
		return err
	}
	if reset, _, err := kw.Bool("reset"); err != nil {
		return err
	} else if reset {
		ctx.ResetTransform()
	}
	if err := grob.ApplyTransformKwargs(ctx, kw); err != nil {
		return err
	}
	return grob.ApplyPenKwargs(ctx, kw)
}
