package grob

import "image"

// Backend receives the drawing calls grobs sequence when the canvas is
// rendered. It owns the actual pixel (or vector) work.
//
// A Backend keeps a current transformation matrix (CTM) and a state stack.
// Concat post-multiplies the CTM: the concatenated matrix acts in the
// current local space, before the transforms already applied.
//
// # Implementation Contract
//
// Each backend must:
//  1. Save the CTM and effect on Save and bring them back on Restore
//     (Restore on an empty stack is a no-op)
//  2. Interpret every coordinate through the CTM
//  3. Apply the effect set with SetEffect to subsequent drawing calls
type Backend interface {
	// Save pushes the graphics state.
	Save()

	// Restore pops the graphics state.
	Restore()

	// Concat concatenates m onto the current transformation matrix.
	Concat(m Matrix)

	// SetEffect sets alpha, blend mode and shadow for subsequent drawing.
	SetEffect(e Effect)

	// FillRect fills r with c.
	FillRect(r Rect, c Color)

	// StrokeRect outlines r with c using the pen s.
	StrokeRect(r Rect, c Color, s Stroke)

	// DrawImage draws the src region of img with its top-left corner at pt,
	// at the given opacity in [0, 1].
	DrawImage(img image.Image, pt Point, src image.Rectangle, opacity float64)
}
