// Command sceneinfo loads scene files and prints their size
// and the number of primitives they hold.
package main

import (
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tobguent/usvg-scenes/sceneraster"
	"github.com/tobguent/usvg-scenes/scenexml"
	"gopkg.in/yaml.v3"
)

type options struct {
	yaml       bool
	verbose    bool
	dialect    string
	sorted     bool
	previewDir string
	scale      float64
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "sceneinfo [flags] FILE...",
		Short: "Print a summary of diffusion curve and gradient mesh scenes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, opts, stdout, stderr)
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.BoolVar(&opts.yaml, "yaml", false, "print summaries as a YAML document")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information to stderr")
	flags.StringVar(&opts.dialect, "dialect", "auto", "document dialect: auto, unified or legacy")
	flags.BoolVar(&opts.sorted, "sort", false, "sort colors and weights by parameter")
	flags.StringVar(&opts.previewDir, "preview", "", "directory receiving a PNG wireframe of each scene")
	flags.Float64Var(&opts.scale, "scale", 1, "scale of the PNG wireframes")
	return cmd
}

func parseDialect(s string) (scenexml.Dialect, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return scenexml.DialectAuto, nil
	case "unified":
		return scenexml.DialectUnified, nil
	case "legacy":
		return scenexml.DialectLegacy, nil
	}
	return 0, fmt.Errorf("unknown dialect %q", s)
}

func run(files []string, opts options, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dialect, err := parseDialect(opts.dialect)
	if err != nil {
		return err
	}
	loadOpts := []scenexml.Option{
		scenexml.WithLogger(logger),
		scenexml.WithDialect(dialect),
		scenexml.WithSortParameters(opts.sorted),
	}

	summaries := make(map[string]scenexml.Summary, len(files))
	for _, file := range files {
		sc, err := scenexml.ReadScene(file, loadOpts...)
		if err != nil {
			return err
		}
		summaries[file] = sc.Summary()
		if opts.previewDir != "" {
			if err := writePreview(sc, file, opts); err != nil {
				return err
			}
		}
		if !opts.yaml {
			printSummary(stdout, file, summaries[file])
		}
	}
	if opts.yaml {
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(summaries); err != nil {
			return err
		}
		return enc.Close()
	}
	return nil
}

func printSummary(w io.Writer, file string, s scenexml.Summary) {
	fmt.Fprintln(w, "----------------------------------------------------------------")
	fmt.Fprintf(w, "Successfully read XML file: %s\n", file)
	fmt.Fprintf(w, "Dialect: %s\n", s.Dialect)
	fmt.Fprintf(w, "Image dimensions: %d x %d\n", s.Width, s.Height)
	fmt.Fprintf(w, "Number of diffusion curves: %d\n", s.DiffusionCurves)
	fmt.Fprintf(w, "Number of Poisson curves: %d\n", s.PoissonCurves)
	fmt.Fprintf(w, "Number of gradient meshes: %d\n", s.GradientMeshes)
}

func writePreview(sc *scenexml.Scene, file string, opts options) error {
	rasterOpts := sceneraster.DefaultOptions
	rasterOpts.Scale = opts.scale
	img, err := sceneraster.Rasterize(sc, &rasterOpts)
	if err != nil {
		return fmt.Errorf("preview of %s: %w", file, err)
	}
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ".png"
	out, err := os.Create(filepath.Join(opts.previewDir, name))
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
