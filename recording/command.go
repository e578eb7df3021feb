package recording

import (
	"image"

	"github.com/gogpu/grob"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave      CommandType = iota // Save current state
	CmdRestore                      // Restore previous state
	CmdConcat                       // Concatenate a matrix onto the CTM
	CmdSetEffect                    // Set alpha, blend and shadow

	// Drawing commands
	CmdFillRect   // Fill a rectangle
	CmdStrokeRect // Stroke a rectangle
	CmdDrawImage  // Draw an image
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSave:       "Save",
	CmdRestore:    "Restore",
	CmdConcat:     "Concat",
	CmdSetEffect:  "SetEffect",
	CmdFillRect:   "FillRect",
	CmdStrokeRect: "StrokeRect",
	CmdDrawImage:  "DrawImage",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// SaveCommand saves the current graphics state.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand restores the previously saved graphics state.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// ConcatCommand concatenates Matrix onto the current transform.
type ConcatCommand struct {
	Matrix grob.Matrix
}

// Type implements Command.
func (ConcatCommand) Type() CommandType { return CmdConcat }

// SetEffectCommand sets the effect for subsequent drawing.
type SetEffectCommand struct {
	Effect grob.Effect
}

// Type implements Command.
func (SetEffectCommand) Type() CommandType { return CmdSetEffect }

// FillRectCommand fills a rectangle. CTM is the effective transform.
type FillRectCommand struct {
	Rect  grob.Rect
	Color grob.Color
	CTM   grob.Matrix
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// StrokeRectCommand outlines a rectangle. CTM is the effective transform.
type StrokeRectCommand struct {
	Rect   grob.Rect
	Color  grob.Color
	Stroke grob.Stroke
	CTM    grob.Matrix
}

// Type implements Command.
func (StrokeRectCommand) Type() CommandType { return CmdStrokeRect }

// DrawImageCommand draws a pooled image. CTM is the effective transform.
type DrawImageCommand struct {
	Image   ImageRef
	At      grob.Point
	SrcRect image.Rectangle
	Opacity float64
	CTM     grob.Matrix
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }
