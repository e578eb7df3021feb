package recording

import (
	"image"

	"github.com/gogpu/grob"
)

// Recorder is a grob.Backend that records every call as a command.
//
// Example:
//
//	rec := recording.NewRecorder()
//	_ = ctx.Render(rec)
//	cmds := rec.Commands()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	commands  []Command
	resources *ResourcePool

	// Current state
	transform grob.Matrix
	effect    grob.Effect

	// State stack
	stateStack []recorderState
}

// recorderState stores the graphics state for Save/Restore.
type recorderState struct {
	transform grob.Matrix
	effect    grob.Effect
}

// Ensure Recorder implements grob.Backend.
var _ grob.Backend = (*Recorder)(nil)

// NewRecorder creates an empty Recorder with an identity transform.
func NewRecorder() *Recorder {
	return &Recorder{
		commands:  make([]Command, 0, 64),
		resources: NewResourcePool(),
		transform: grob.Identity(),
		effect:    grob.DefaultEffect(),
	}
}

// Commands returns the recorded commands in order.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Resources returns the pool of recorded images.
func (r *Recorder) Resources() *ResourcePool {
	return r.resources
}

// CTM returns the current transformation matrix.
func (r *Recorder) CTM() grob.Matrix {
	return r.transform
}

// Effect returns the current effect.
func (r *Recorder) Effect() grob.Effect {
	return r.effect
}

// Depth returns the number of unmatched Save calls.
func (r *Recorder) Depth() int {
	return len(r.stateStack)
}

// Reset discards all commands and state.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.resources.Clear()
	r.transform = grob.Identity()
	r.effect = grob.DefaultEffect()
	r.stateStack = r.stateStack[:0]
}

// Save implements grob.Backend.
func (r *Recorder) Save() {
	r.stateStack = append(r.stateStack, recorderState{
		transform: r.transform,
		effect:    r.effect,
	})
	r.commands = append(r.commands, SaveCommand{})
}

// Restore implements grob.Backend.
func (r *Recorder) Restore() {
	if len(r.stateStack) == 0 {
		return
	}
	s := r.stateStack[len(r.stateStack)-1]
	r.stateStack = r.stateStack[:len(r.stateStack)-1]
	r.transform = s.transform
	r.effect = s.effect
	r.commands = append(r.commands, RestoreCommand{})
}

// Concat implements grob.Backend.
func (r *Recorder) Concat(m grob.Matrix) {
	r.transform = r.transform.Multiply(m)
	r.commands = append(r.commands, ConcatCommand{Matrix: m})
}

// SetEffect implements grob.Backend.
func (r *Recorder) SetEffect(e grob.Effect) {
	r.effect = e
	r.commands = append(r.commands, SetEffectCommand{Effect: e})
}

// FillRect implements grob.Backend.
func (r *Recorder) FillRect(rect grob.Rect, c grob.Color) {
	r.commands = append(r.commands, FillRectCommand{Rect: rect, Color: c, CTM: r.transform})
}

// StrokeRect implements grob.Backend.
func (r *Recorder) StrokeRect(rect grob.Rect, c grob.Color, s grob.Stroke) {
	r.commands = append(r.commands, StrokeRectCommand{
		Rect:   rect,
		Color:  c,
		Stroke: s.Clone(),
		CTM:    r.transform,
	})
}

// DrawImage implements grob.Backend.
func (r *Recorder) DrawImage(img image.Image, pt grob.Point, src image.Rectangle, opacity float64) {
	r.commands = append(r.commands, DrawImageCommand{
		Image:   r.resources.AddImage(img),
		At:      pt,
		SrcRect: src,
		Opacity: opacity,
		CTM:     r.transform,
	})
}

// Playback replays the recorded commands onto b.
func (r *Recorder) Playback(b grob.Backend) {
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			b.Save()
		case RestoreCommand:
			b.Restore()
		case ConcatCommand:
			b.Concat(c.Matrix)
		case SetEffectCommand:
			b.SetEffect(c.Effect)
		case FillRectCommand:
			b.FillRect(c.Rect, c.Color)
		case StrokeRectCommand:
			b.StrokeRect(c.Rect, c.Color, c.Stroke)
		case DrawImageCommand:
			b.DrawImage(r.resources.GetImage(c.Image), c.At, c.SrcRect, c.Opacity)
		}
	}
}
