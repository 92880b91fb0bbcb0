package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fromsvg/svgraster/pkg/pipeline"
	"github.com/fromsvg/svgraster/pkg/source/local"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path (default: input name with .png)
	width       int     // output width in pixels (overrides scale)
	scale       float64 // scale factor applied to the intrinsic size
	background  string  // background color (#rrggbb or "transparent")
	borderWidth int     // border frame width in pixels
	borderColor string  // border frame color (#rrggbb or "transparent")
	tensor      bool    // also export the float32 tensor as JSON
	noCache     bool    // disable the artifact cache
	refresh     bool    // force a fresh render, bypassing cached artifacts
	configPath  string  // config file path (default: ~/.config/svgraster/config.toml)
}

// renderCommand creates the render command for rasterizing SVG files.
//
// Sizing precedence: an explicit --width wins over --scale; when neither is
// given, the config file default applies, falling back to a 512px preview.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Rasterize an SVG file into a PNG preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			applyRenderConfig(cmd, &opts, cfg.Render)
			if cfg.Cache.Disabled {
				opts.noCache = true
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .png)")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, fmt.Sprintf("output width in pixels (default %d when no scale given)", pipeline.DefaultPreviewWidth))
	cmd.Flags().Float64VarP(&opts.scale, "scale", "s", 0, "scale factor applied to the intrinsic SVG size")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (#rrggbb, default transparent)")
	cmd.Flags().IntVar(&opts.borderWidth, "border-width", 0, "border frame width in pixels")
	cmd.Flags().StringVar(&opts.borderColor, "border-color", "", "border frame color (#rrggbb, default transparent)")
	cmd.Flags().BoolVar(&opts.tensor, "tensor", false, "also export the normalized tensor as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached artifacts and re-render")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file path")

	return cmd
}

// applyRenderConfig fills in flag values from the config file for flags the
// user did not set explicitly. Flags always win over config.
func applyRenderConfig(cmd *cobra.Command, opts *renderOpts, cfg RenderConfig) {
	flags := cmd.Flags()
	if !flags.Changed("width") && cfg.Width > 0 {
		opts.width = cfg.Width
	}
	if !flags.Changed("scale") && cfg.Scale > 0 {
		opts.scale = cfg.Scale
	}
	if !flags.Changed("background") && cfg.Background != "" {
		opts.background = cfg.Background
	}
	if !flags.Changed("border-width") && cfg.BorderWidth > 0 {
		opts.borderWidth = cfg.BorderWidth
	}
	if !flags.Changed("border-color") && cfg.BorderColor != "" {
		opts.borderColor = cfg.BorderColor
	}
	// The preview default applies only when no sizing was requested at all.
	if opts.width == 0 && opts.scale == 0 {
		opts.width = pipeline.DefaultPreviewWidth
	}
}

// outputPath derives the PNG output path from the output flag and input path.
func outputPath(output, input string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
}

// tensorPath derives the tensor JSON path from the PNG output path.
func tensorPath(pngPath string) string {
	return strings.TrimSuffix(pngPath, filepath.Ext(pngPath)) + ".tensor.json"
}

// runRender loads the SVG, runs the pipeline, and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := c.Logger
	logger.Debugf("Rendering %s", input)
	prog := newProgress(logger)

	svg, hash, err := local.Load(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d bytes, hash %s", input, len(svg), hash[:12])

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		SVG:         string(svg),
		Width:       opts.width,
		Scale:       opts.scale,
		Background:  opts.background,
		BorderWidth: opts.borderWidth,
		BorderColor: opts.borderColor,
		Tensor:      opts.tensor,
		Refresh:     opts.refresh,
		Logger:      logger,
	})
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}
	spinner.Stop()

	outPath := outputPath(opts.output, input)
	if err := os.WriteFile(outPath, result.PNG, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	prog.done(fmt.Sprintf("Wrote %s", outPath))
	printSuccess("Rendered %s", filepath.Base(input))
	printStats(result.Stats.Width, result.Stats.Height, len(result.PNG), result.CacheInfo.ArtifactHit)
	printFile(outPath)

	if opts.tensor && result.Tensor != nil {
		tPath := tensorPath(outPath)
		data, err := json.Marshal(result.Tensor)
		if err != nil {
			return fmt.Errorf("marshal tensor: %w", err)
		}
		if err := os.WriteFile(tPath, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", tPath, err)
		}
		printFile(tPath)
	}

	return nil
}
