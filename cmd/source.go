package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/hypershape/internal/app"
	"github.com/chazu/hypershape/internal/watch"
	"github.com/chazu/hypershape/pkg/cutlist"
)

// evaluateFile runs path through the pipeline. Files ending in .toml are
// cut lists; anything else is a cut script.
func evaluateFile(ctx context.Context, a *app.App, path string, mesh bool) (app.Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cl, err := cutlist.Load(path)
		if err != nil {
			return app.Result{}, err
		}
		return a.BuildCutList(ctx, cl, mesh), nil
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return app.Result{}, fmt.Errorf("reading script: %w", err)
	}
	return a.EvaluateScript(ctx, string(source), mesh), nil
}

// reportFile evaluates path and prints its report, and the boundary tree
// when tree is set.
func reportFile(ctx context.Context, w io.Writer, a *app.App, path string, tree bool) error {
	r, err := evaluateFile(ctx, a, path, false)
	if err != nil {
		return err
	}
	if !printReport(w, filepath.Base(path), r) {
		return fmt.Errorf("%s: %d error(s)", path, len(r.Errors))
	}
	if tree {
		return r.Arena.Dump(w)
	}
	return nil
}

// watchFile calls rebuild once and then again after every change to path,
// until ctx is canceled. Rebuild errors are logged, not returned.
func watchFile(ctx context.Context, path string, rebuild func() error) error {
	w, err := watch.New(path, watch.DefaultDebounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	if err := rebuild(); err != nil {
		logger.Warn("rebuild failed", "file", path, "error", err)
	}
	logger.Info("watching for changes", "file", w.File)

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if c.Kind == watch.ChangeRemoved {
				logger.Warn("file removed, waiting for it to return", "file", c.File)
				continue
			}
			logger.Debug("file changed", "file", c.File)
			if err := rebuild(); err != nil {
				logger.Warn("rebuild failed", "file", path, "error", err)
			}
		}
	}
}
