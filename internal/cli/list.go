package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fromsvg/svgraster/pkg/pipeline"
	"github.com/fromsvg/svgraster/pkg/source/local"
)

// listOpts holds the command-line flags for the list command.
type listOpts struct {
	interactive bool   // pick a file interactively and print its path
	preview     bool   // render a preview PNG for each discovered file
	outDir      string // directory for preview output (default: the input dir)
	noCache     bool   // disable the artifact cache for previews
}

// listCommand creates the list command for discovering SVG sources.
func (c *CLI) listCommand() *cobra.Command {
	var opts listOpts

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List SVG sources in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			files, err := local.List(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				printInfo("No SVG files found in %s", dir)
				return nil
			}

			if opts.interactive {
				return c.runPicker(files)
			}
			if opts.preview {
				return c.runPreviews(cmd.Context(), files, dir, &opts)
			}

			for _, f := range files {
				printFile(f.Name)
				printDetail("%d bytes · %s", f.Size, f.ModTime.Format("Jan 2, 2006 15:04"))
			}
			printInfo("%d SVG file(s) in %s", len(files), dir)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick a file interactively and print its path")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, fmt.Sprintf("render a %dpx preview PNG for each file", pipeline.DefaultPreviewWidth))
	cmd.Flags().StringVar(&opts.outDir, "out", "", "directory for preview output (default: the input directory)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runPicker shows the interactive file picker and prints the selected path.
func (c *CLI) runPicker(files []local.File) error {
	model := NewFileListModel(files)
	p := tea.NewProgram(model)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	m, ok := final.(FileListModel)
	if !ok || m.Selected == nil {
		printInfo("No file selected")
		return nil
	}

	fmt.Println(m.Selected.Path)
	return nil
}

// runPreviews renders every discovered file at the default preview width.
// Failures are reported per file; the batch continues.
func (c *CLI) runPreviews(ctx context.Context, files []local.File, dir string, opts *listOpts) error {
	outDir := opts.outDir
	if outDir == "" {
		outDir = dir
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	rendered, failed := 0, 0
	for _, f := range files {
		svg, _, err := local.Load(f.Path)
		if err != nil {
			printError("%s: %v", f.Name, err)
			failed++
			continue
		}

		result, err := runner.Execute(ctx, pipeline.Options{
			SVG:    string(svg),
			Width:  pipeline.DefaultPreviewWidth,
			Logger: c.Logger,
		})
		if err != nil {
			printError("%s: %v", f.Name, err)
			failed++
			continue
		}

		outPath := filepath.Join(outDir, strings.TrimSuffix(f.Name, filepath.Ext(f.Name))+".png")
		if err := os.WriteFile(outPath, result.PNG, 0644); err != nil {
			printError("%s: %v", f.Name, err)
			failed++
			continue
		}

		printFile(outPath)
		printStats(result.Stats.Width, result.Stats.Height, len(result.PNG), result.CacheInfo.ArtifactHit)
		rendered++
	}

	if failed > 0 {
		printInfo("Rendered %d preview(s), %d failed", rendered, failed)
		return nil
	}
	printSuccess("Rendered %d preview(s)", rendered)
	return nil
}
