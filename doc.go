// Package grob provides a retained-mode object model for 2D drawing scripts.
//
// # Overview
//
// A script builds graphic objects ("grobs") such as [Box] and [Image] and
// commits them to the canvas of a [Context] with [Context.Draw]. Attributes a
// grob does not set locally are inherited from the context when the grob is
// committed. At the end of a pass the canvas is handed to a [Backend], which
// performs the actual pixel work.
//
// # Quick Start
//
//	ctx := grob.NewContext()
//	ctx.SetFill(grob.RGB(1, 0, 0))
//
//	r := grob.NewBox(ctx, 10, 10, 100, 50)
//	r.Rotate(30)
//	_ = ctx.Draw(r)
//
//	img, err := grob.NewImage(ctx, grob.ImageSource{Path: "photo.png"}, 200, 100,
//	    grob.WithSize(160, 120))
//	if err != nil {
//	    // handle error
//	}
//	_ = ctx.Draw(img)
//
//	b := raster.New(512, 512)
//	_ = ctx.Render(b)
//	_ = b.SavePNG("out.png")
//
// # Inheritance
//
// Every inheritable attribute is an [Attr]: either locally set or inherited.
// Accessors such as [ColorCap.Fill] read through to the context's current
// value while the attribute is inherited. [Context.Draw] resolves inherited
// attributes exactly once; after that the committed grob holds concrete,
// frozen values.
//
// # Plot Styles
//
// The context's [PlotStyle] decides what Draw commits:
//   - [PlotCopy]: a deep copy of the grob (the default)
//   - [PlotLive]: the grob itself, so later mutation shows up on the canvas
//   - [PlotOff]: nothing
//
// # Coordinate System
//
// Origin at top-left, X increases right, Y increases down. Rotation angles
// given to grobs and to the context are in degrees; positive angles turn
// counter-clockwise on screen, which is the mathematically negative direction
// in the flipped coordinate space.
//
// # Concurrency
//
// A Context belongs to one script execution and is not safe for concurrent
// use. Only its image cache is internally synchronized.
package grob
