// Command grobdemo renders a TOML scene with the grob object model.
//
//	grobdemo -scene demo.toml -out demo.png
//	grobdemo -scene demo.toml -out demo.png -watch
//
// With -watch the scene is re-run whenever the file changes; variable
// values survive a re-run when they still fit the new declarations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/grob"
	"github.com/gogpu/grob/recording"
	_ "github.com/gogpu/grob/recording/backends/raster"
	"github.com/gogpu/grob/scene"
)

func main() {
	var (
		scenePath = flag.String("scene", "scene.toml", "scene file")
		output    = flag.String("out", "out.png", "output file")
		backend   = flag.String("backend", "raster", "rendering backend")
		watch     = flag.Bool("watch", false, "re-render when the scene changes")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	grob.SetLogger(logger)

	r := &renderer{
		scenePath: *scenePath,
		output:    *output,
		backend:   *backend,
		ctx:       grob.NewContext(),
		log:       logger,
	}
	if err := r.render(); err != nil {
		if !*watch {
			logger.Error("render failed", "err", err)
			os.Exit(1)
		}
		logger.Warn("render failed", "err", err)
	}
	if !*watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := r.watch(ctx); err != nil {
		logger.Error("watch failed", "err", err)
		os.Exit(1)
	}
}

// renderer runs a scene repeatedly against one context, carrying the
// variables from run to run.
type renderer struct {
	scenePath string
	output    string
	backend   string

	ctx  *grob.Context
	vars map[string]*grob.Variable
	log  *slog.Logger
}

func (r *renderer) render() error {
	start := time.Now()
	s, err := scene.Load(r.scenePath)
	if err != nil {
		return err
	}
	vars, err := scene.Run(r.ctx, s, r.vars)
	if vars != nil {
		r.vars = vars
	}
	if err != nil {
		return err
	}

	w, h := r.ctx.Size()
	b, err := recording.NewBackend(r.backend, w, h)
	if err != nil {
		return err
	}
	if bg, ok, err := s.BackgroundColor(); err != nil {
		return err
	} else if ok {
		if c, isClearer := b.(interface{ Clear(grob.Color) }); isClearer {
			c.Clear(bg)
		}
	}
	grobs := r.ctx.Canvas().Len()
	if err := r.ctx.Render(b); err != nil {
		return err
	}

	switch out := b.(type) {
	case interface{ SavePNG(string) error }:
		if err := out.SavePNG(r.output); err != nil {
			return fmt.Errorf("save %s: %w", r.output, err)
		}
	case *recording.Recorder:
		r.log.Info("recorded", "commands", len(out.Commands()), "images", out.Resources().ImageCount())
	}
	r.log.Info("rendered", "scene", r.scenePath, "out", r.output,
		"size", fmt.Sprintf("%dx%d", w, h), "grobs", grobs, "took", time.Since(start))
	return nil
}

// watch re-renders on writes to the scene file until ctx is done. The
// directory is watched so that editors replacing the file are noticed.
func (r *renderer) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target, err := filepath.Abs(r.scenePath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	r.log.Info("watching", "scene", target)

	const settle = 100 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if name, _ := filepath.Abs(event.Name); name != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(settle)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("watch error", "err", err)
		case <-timer.C:
			if err := r.render(); err != nil {
				r.log.Warn("render failed", "err", err)
			}
		}
	}
}
