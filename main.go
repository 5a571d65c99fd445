package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/imageio"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene  string
	Config renderer.Config
	FOV    float64
	Format imageio.Format
	Out    string
	Help   bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	defaults := renderer.DefaultConfig()
	opts := options{Config: defaults}

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.Scene, "scene", "default", "Scene to render: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&opts.Config.Width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&opts.Config.Height, "height", defaults.Height, "Image height in pixels")
	fs.IntVar(&opts.Config.SamplesPerPixel, "samples", defaults.SamplesPerPixel, "Samples per pixel")
	fs.IntVar(&opts.Config.MaxDepth, "depth", defaults.MaxDepth, "Maximum ray bounce depth")
	fs.IntVar(&opts.Config.NumTiles, "tiles", defaults.NumTiles, "Number of tiles rendered in parallel")
	fs.IntVar(&opts.Config.NumWorkers, "workers", defaults.NumWorkers, "Number of workers (0 = logical CPU count)")
	fs.Int64Var(&opts.Config.Seed, "seed", defaults.Seed, "Random seed")
	fs.BoolVar(&opts.Config.Jitter, "jitter", defaults.Jitter, "Jitter samples horizontally within each pixel")
	fs.Float64Var(&opts.FOV, "fov", 40, "Vertical field of view in degrees")
	format := fs.String("format", string(imageio.FormatPNG), "Output format: ppm, png or bmp")
	fs.StringVar(&opts.Out, "out", "", "Output path (default output/<scene>/render_<timestamp>.<format>)")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.Help {
		printUsage(output, fs)
		return opts, nil
	}

	f, err := imageio.ParseFormat(*format)
	if err != nil {
		return options{}, err
	}
	opts.Format = f

	if err := opts.Config.Validate(); err != nil {
		return options{}, err
	}
	if opts.FOV <= 0 || opts.FOV >= 180 {
		return options{}, fmt.Errorf("field of view must be in (0, 180) degrees, got %g", opts.FOV)
	}
	return opts, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Sphere Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output is saved to output/<scene>/render_<timestamp>.<format> unless -out is given")
}

// outputPath returns opts.Out, or a timestamped path under output/<scene>/
func outputPath(opts options, now time.Time) string {
	if opts.Out != "" {
		return opts.Out
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", opts.Scene, fmt.Sprintf("render_%s.%s", timestamp, opts.Format))
}

// run renders one frame and returns the path it was saved to
func run(opts options, logger core.Logger) (string, error) {
	selectedScene, err := scene.Create(opts.Scene)
	if err != nil {
		return "", err
	}
	logger.Printf("Using %s scene (%d shapes)...\n", opts.Scene, selectedScene.Len())

	r, err := renderer.NewRenderer(opts.Config, logger)
	if err != nil {
		return "", err
	}
	defer r.Close()

	camera := renderer.NewCamera(opts.FOV, opts.Config.AspectRatio())
	frame := make([]byte, opts.Config.FrameSize())

	timer := renderer.NewFrameTimer()
	timer.Start()
	stats, err := r.Draw(selectedScene, camera, frame)
	if err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}
	timer.Stop()

	logger.Printf("Render completed in %v (%d pixels, %d samples, %.0f samples/s)\n",
		stats.Elapsed, stats.TotalPixels, stats.TotalSamples, stats.SamplesPerSecond())
	timer.Report(logger)

	path := outputPath(opts, time.Now())
	if err := imageio.SaveFrame(path, opts.Format, opts.Config.Width, opts.Config.Height, frame); err != nil {
		return "", err
	}
	return path, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if opts.Help {
		return
	}

	fmt.Println("Starting Sphere Raytracer...")

	path, err := run(opts, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", path)
}
