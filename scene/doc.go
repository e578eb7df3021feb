// Package scene loads TOML scene files and runs them against a
// [grob.Context].
//
// A scene is a declarative stand-in for a drawing script. It declares
// variables and lists draw entries executed in order:
//
//	width = 400
//	height = 300
//	background = "#ffffff"
//
//	[[var]]
//	name = "angle"
//	type = "number"
//	default = 30
//	min = 0
//	max = 360
//
//	[[draw]]
//	kind = "state"
//	fill = [1, 0, 0]
//
//	[[draw]]
//	kind = "box"
//	x = 50
//	y = 50
//	width = 100
//	height = 60
//	rotate = "$angle"
//
// Entry kinds are "state" (change the context), "push" and "pop" (save and
// restore the context transform), "box" and "image" (construct a grob and
// draw it). Any value of the form "$name" is replaced by the current value
// of the variable called name.
//
// [Run] resets the context first, so the same scene can be run repeatedly.
// Variable values from a previous run survive when they still comply with
// the new declaration.
package scene
