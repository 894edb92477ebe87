// Package app implements the application layer for precache.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/precache/internal/adapters/watcher"
	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports"
	"go.trai.ch/precache/internal/engine/manifest"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	copier       ports.Copier
	generator    *manifest.Generator
	renderer     ports.ScriptRenderer
	watcher      ports.Watcher
	logger       ports.Logger
	tracer       ports.Tracer

	debounceWindow time.Duration
	buildMu        sync.Mutex
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	copier ports.Copier,
	generator *manifest.Generator,
	renderer ports.ScriptRenderer,
	w ports.Watcher,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader:   loader,
		copier:         copier,
		generator:      generator,
		renderer:       renderer,
		watcher:        w,
		logger:         log,
		tracer:         tracer,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithDebounceWindow sets how long the watch loop waits for changes to settle before rebuilding.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// Options selects the configuration a command runs with.
type Options struct {
	// ConfigPath is an explicit config file. When empty the file is discovered from WorkDir.
	ConfigPath string
	// WorkDir is where config discovery starts. Defaults to the current directory.
	WorkDir string
}

// SetJSONLogs switches the logger to JSON output when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// LoadConfig resolves the configuration selected by opts.
func (a *App) LoadConfig(opts Options) (domain.Config, error) {
	if opts.ConfigPath != "" {
		cfg, err := a.configLoader.LoadFile(opts.ConfigPath)
		if err != nil {
			return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
		}
		return cfg, nil
	}

	dir := opts.WorkDir
	if dir == "" {
		dir = "."
	}
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// Build copies the helper scripts and the development tree, then writes the worker script.
func (a *App) Build(ctx context.Context, opts Options) error {
	cfg, err := a.LoadConfig(opts)
	if err != nil {
		return err
	}
	return a.build(ctx, cfg)
}

// Copy runs the copy stages only.
func (a *App) Copy(ctx context.Context, opts Options) error {
	cfg, err := a.LoadConfig(opts)
	if err != nil {
		return err
	}
	_, err = a.CopyStage(ctx, cfg)
	return err
}

// Generate writes the worker script from the current distribution tree without copying.
func (a *App) Generate(ctx context.Context, opts Options) error {
	cfg, err := a.LoadConfig(opts)
	if err != nil {
		return err
	}
	_, err = a.GenerateAndWrite(ctx, cfg)
	return err
}

// Clean removes the distribution tree and the helper scripts mirrored into the development tree.
func (a *App) Clean(_ context.Context, opts Options) error {
	cfg, err := a.LoadConfig(opts)
	if err != nil {
		return err
	}

	var errs error
	remove := func(path, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(cfg.DistDir, "distribution directory")
	remove(cfg.HelpersTarget(), "copied helper scripts")

	if errs != nil {
		return errors.Join(domain.ErrCleanFailed, errs)
	}
	return nil
}

// Watch builds once and then rebuilds after every settled burst of changes under the
// development and helper trees, until ctx is cancelled. Build failures are logged, not returned.
func (a *App) Watch(ctx context.Context, opts Options) error {
	cfg, err := a.LoadConfig(opts)
	if err != nil {
		return err
	}

	a.rebuild(ctx, cfg)

	roots := []string{cfg.DevDir}
	if info, err := os.Stat(cfg.HelpersDir); err == nil && info.IsDir() {
		roots = append(roots, cfg.HelpersDir)
	}

	if err := a.watcher.Start(ctx, roots...); err != nil {
		return err
	}
	a.logger.Info("watching " + strings.Join(roots, ", "))

	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		a.logger.Info(fmt.Sprintf("%d files changed, rebuilding", len(paths)))
		a.rebuild(ctx, cfg)
	})
	defer debouncer.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		return a.watcher.Stop()
	})

	g.Go(func() error {
		mirrored := cfg.HelpersTarget() + string(filepath.Separator)
		for event := range a.watcher.Events() {
			// Helper scripts mirrored into the development tree are build output.
			if strings.HasPrefix(event.Path, mirrored) {
				continue
			}
			debouncer.Add(event.Path)
		}
		if ctx.Err() == nil {
			return errors.Join(domain.ErrWatchFailed, zerr.New("watcher stopped unexpectedly"))
		}
		return nil
	})

	return g.Wait()
}

// CopyStage mirrors the helper scripts into the development tree and then the development
// tree into the distribution tree, pruning distribution files whose source is gone.
// A missing helpers directory is skipped.
func (a *App) CopyStage(ctx context.Context, cfg domain.Config) (domain.CopyStats, error) {
	ctx, span := a.tracer.Start(ctx, "copy")
	defer span.End()

	var total domain.CopyStats

	if info, err := os.Stat(cfg.HelpersDir); err == nil && info.IsDir() {
		stats, err := a.copier.CopyMatching(ctx, cfg.HelpersDir, domain.HelperScriptPattern, cfg.HelpersTarget())
		if err != nil {
			span.RecordError(err)
			return total, zerr.Wrap(err, "failed to copy helper scripts")
		}
		total = total.Add(stats)
	} else {
		a.logger.Warn(fmt.Sprintf("helpers directory %s not found, skipping helper scripts", cfg.HelpersDir))
	}

	stats, err := a.copier.CopyTree(ctx, cfg.DevDir, cfg.DistDir, cfg.MirrorOptions())
	if err != nil {
		span.RecordError(err)
		return total, zerr.Wrap(err, "failed to copy development tree")
	}
	total = total.Add(stats)

	span.SetAttribute("copy.copied", total.Copied)
	span.SetAttribute("copy.unchanged", total.Unchanged)
	span.SetAttribute("copy.removed", total.Removed)
	span.SetAttribute("copy.bytes", total.Bytes)

	a.logger.Info(fmt.Sprintf("Copied %d files, %d unchanged, %d bytes", total.Copied, total.Unchanged, total.Bytes))
	if total.Removed > 0 {
		a.logger.Info(fmt.Sprintf("Removed %d stale files", total.Removed))
	}

	return total, nil
}

// GenerateAndWrite generates the manifest from cfg.DistDir and injects it into the worker
// script template. Nothing is written if generation fails.
func (a *App) GenerateAndWrite(ctx context.Context, cfg domain.Config) (domain.Manifest, error) {
	m, _, err := a.generator.Generate(ctx, cfg)
	if err != nil {
		return domain.Manifest{}, zerr.Wrap(err, "failed to generate manifest")
	}

	_, span := a.tracer.Start(ctx, "render")
	defer span.End()

	payload, err := manifest.Serialize(m)
	if err != nil {
		span.RecordError(err)
		return domain.Manifest{}, err
	}

	out := cfg.OutputPath()
	if err := a.renderer.Render(cfg.Template, cfg.Placeholder, payload, out); err != nil {
		span.RecordError(err)
		return domain.Manifest{}, zerr.Wrap(err, "failed to render worker script")
	}
	span.SetAttribute("output", out)

	a.logger.Info(fmt.Sprintf("Wrote %s with %d groups", cfg.Output, len(m.Entries)))

	return m, nil
}

func (a *App) build(ctx context.Context, cfg domain.Config) error {
	a.buildMu.Lock()
	defer a.buildMu.Unlock()

	ctx, span := a.tracer.Start(ctx, "build")
	defer span.End()

	if _, err := a.CopyStage(ctx, cfg); err != nil {
		span.RecordError(err)
		return err
	}
	if _, err := a.GenerateAndWrite(ctx, cfg); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// rebuild runs a build for the watch loop, reporting failures instead of returning them.
func (a *App) rebuild(ctx context.Context, cfg domain.Config) {
	if ctx.Err() != nil {
		return
	}
	if err := a.build(ctx, cfg); err != nil && ctx.Err() == nil {
		a.logger.Error(err)
	}
}
