package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"honnef.co/go/animcurve/internal/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Render a document and render it again whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	addRenderFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	bindRenderFlags(cmd)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watch(ctx, path, outDir, cfg.Render)
}

func rerender(path, outDir string, cfg config.RenderConfig) {
	out, err := renderFile(path, outDir, cfg)
	if err != nil {
		// Keep watching; the next save may fix the document.
		slog.Error("render failed", "document", path, "err", err)
		return
	}
	slog.Info("rendered", "document", path, "output", out)
}

// watch renders path once and then after every change until ctx is done.
// Editors often replace files instead of writing them, so the directory is
// watched rather than the file.
func watch(ctx context.Context, path, outDir string, cfg config.RenderConfig) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	rerender(path, outDir, cfg)

	// Debounce bursts of events from a single save.
	const debounce = 100 * time.Millisecond
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				slog.Debug("document changed", "document", path, "op", event.Op)
				timer.Reset(debounce)
			}
		case <-timer.C:
			rerender(path, outDir, cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "err", err)
		}
	}
}
