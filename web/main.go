package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/session"
	"github.com/df07/go-interactive-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	sceneName := flag.String("scene", "default", "Initial scene")
	width := flag.Int("width", 400, "Frame width in pixels")
	height := flag.Int("height", 225, "Frame height in pixels")
	samples := flag.Int("samples", 10, "Samples per pixel")
	fov := flag.Float64("fov", 40, "Vertical field of view in degrees")
	flag.Parse()

	config := renderer.DefaultConfig()
	config.Width = *width
	config.Height = *height
	config.SamplesPerPixel = *samples

	console := server.NewConsoleLog(200, true)
	r, err := renderer.NewRenderer(config, console)
	if err != nil {
		log.Printf("Error creating renderer: %v", err)
		os.Exit(1)
	}
	defer r.Close()

	s, err := session.New(r, *sceneName, *fov, console)
	if err != nil {
		log.Printf("Error creating session: %v", err)
		os.Exit(1)
	}

	// Create and start web server
	webServer := server.NewServer(*port, s, console)

	log.Printf("Interactive Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/frame to render the current view", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		r.Close()
		os.Exit(1)
	}
}
