package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"honnef.co/go/animcurve/internal/config"
	"honnef.co/go/animcurve/internal/document"
	"honnef.co/go/animcurve/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <file>...",
	Short: "Draw the curves of documents as SVG or PNG",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRender,
}

func init() {
	addRenderFlags(renderCmd)
}

// addRenderFlags registers the flags shared by render and watch.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "svg", "output format, svg or png")
	cmd.Flags().String("out", "", "output directory (default next to each document)")
	cmd.Flags().Int("width", 800, "image width in pixels")
	cmd.Flags().Int("height", 400, "image height in pixels")
}

// bindRenderFlags binds the flags of cmd to the render config. Flags are
// registered on several commands, so they're bound when the command runs.
func bindRenderFlags(cmd *cobra.Command) {
	for _, name := range []string{"format", "width", "height"} {
		_ = viper.BindPFlag("render."+name, cmd.Flags().Lookup(name))
	}
}

func renderOptions(cfg config.RenderConfig) render.Options {
	return render.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Padding:     cfg.Padding,
		StrokeWidth: cfg.StrokeWidth,
		DrawSamples: cfg.DrawSamples,
	}
}

// outputPath returns where the rendering of the document at path goes.
func outputPath(path, outDir, format string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "." + format
	if outDir == "" {
		return filepath.Join(filepath.Dir(path), base)
	}
	return filepath.Join(outDir, base)
}

// renderFile renders the document at path and returns the output's path.
func renderFile(path, outDir string, cfg config.RenderConfig) (string, error) {
	s, err := document.Load(path)
	if err != nil {
		return "", err
	}
	out := outputPath(path, outDir, cfg.Format)
	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	opts := renderOptions(cfg)
	switch cfg.Format {
	case "png":
		err = render.PNG(f, &s.Curves.CurveList, opts)
	default:
		err = render.SVG(f, &s.Curves.CurveList, opts)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", path, err)
	}
	return out, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	bindRenderFlags(cmd)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return err
		}
	}
	return renderAll(cmd.Context(), args, outDir, cfg.Render)
}

// renderAll renders documents concurrently, at most cfg.Workers at a time.
func renderAll(ctx context.Context, paths []string, outDir string, cfg config.RenderConfig) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := renderFile(path, outDir, cfg)
			if err != nil {
				return err
			}
			slog.Info("rendered", "document", path, "output", out)
			return nil
		})
	}
	return g.Wait()
}
