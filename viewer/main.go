package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/df07/go-interactive-raytracer/pkg/navigation"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
	"github.com/df07/go-interactive-raytracer/pkg/session"
	"github.com/df07/go-interactive-raytracer/pkg/sysinfo"
	"github.com/df07/go-interactive-raytracer/viewer/window"
)

func main() {
	config := renderer.DefaultConfig()
	config.Width = 400
	config.Height = 225
	config.SamplesPerPixel = 8
	config.MaxDepth = 10

	sceneName := flag.String("scene", "default", "Scene to show: "+strings.Join(scene.Names(), ", "))
	flag.IntVar(&config.Width, "width", config.Width, "Frame width in pixels")
	flag.IntVar(&config.Height, "height", config.Height, "Frame height in pixels")
	flag.IntVar(&config.SamplesPerPixel, "samples", config.SamplesPerPixel, "Samples per pixel")
	flag.IntVar(&config.MaxDepth, "depth", config.MaxDepth, "Maximum ray bounce depth")
	flag.IntVar(&config.NumTiles, "tiles", config.NumTiles, "Number of tiles rendered in parallel")
	flag.IntVar(&config.NumWorkers, "workers", config.NumWorkers, "Number of workers (0 = logical CPU count)")
	fov := flag.Float64("fov", 40, "Vertical field of view in degrees")
	scale := flag.Int("scale", 2, "Window pixels per frame pixel")
	step := flag.Float64("step", navigation.DefaultStep, "Camera movement per key press")
	flag.Parse()

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := renderer.NewDefaultLogger()
	if info, err := sysinfo.Collect(); err == nil {
		logger.Printf("System: %s\n", info)
	}

	r, err := renderer.NewRenderer(config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer r.Close()

	s, err := session.New(r, *sceneName, *fov, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	v := window.New(s, window.Options{
		Title: fmt.Sprintf("Sphere Raytracer - %s", *sceneName),
		Scale: *scale,
		Step:  *step,
	}, logger)
	if err := v.Run(); err != nil {
		logger.Printf("Viewer stopped: %v\n", err)
		r.Close()
		os.Exit(1)
	}
}
