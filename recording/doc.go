// Package recording captures the backend calls of a grob render pass.
//
// A [Recorder] is a [grob.Backend] that stores every call as a typed
// command instead of drawing. Drawing commands carry the effective
// transformation matrix at the time they were issued, which makes a
// recording easy to inspect in tests. A recording can be replayed onto any
// other backend with [Recorder.Playback].
//
//	rec := recording.NewRecorder()
//	_ = ctx.Render(rec)
//
//	for _, cmd := range rec.Commands() {
//	    fmt.Println(cmd.Type())
//	}
//
//	out := raster.New(512, 512)
//	rec.Playback(out)
//
// # Backend Registration
//
// Backends are registered by name following the database/sql driver
// pattern. The recorder registers itself as "recording"; the raster
// backend registers as "raster" when imported:
//
//	import _ "github.com/gogpu/grob/recording/backends/raster"
//
//	b, err := recording.NewBackend("raster", 512, 512)
//
// Decoded images are pooled by identity, so two commands drawing the same
// cached image share one [ImageRef].
package recording
