package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-interactive-raytracer/pkg/imageio"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

// RenderRequest represents a one-off render request from the client
type RenderRequest struct {
	Scene  string          // Scene name, empty for the session's scene
	Config renderer.Config // Frame size and sampling
	FOV    float64         // Vertical field of view in degrees
	Format imageio.Format
}

// parseRenderRequest parses request parameters, defaulting to the session's configuration
func (s *Server) parseRenderRequest(c echo.Context) (*RenderRequest, error) {
	query := c.QueryParams()
	req := &RenderRequest{
		Scene:  query.Get("scene"),
		Config: s.session.Config(),
		FOV:    s.session.FOV(),
		Format: imageio.FormatPNG,
	}

	if format := query.Get("format"); format != "" {
		f, err := imageio.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		req.Format = f
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Config.Width, err = parseIntParam(query, "width", req.Config.Width, 16, 2000); err != nil {
		return nil, err
	}
	if req.Config.Height, err = parseIntParam(query, "height", req.Config.Height, 16, 2000); err != nil {
		return nil, err
	}
	if req.Config.SamplesPerPixel, err = parseIntParam(query, "samples", req.Config.SamplesPerPixel, 1, 10000); err != nil {
		return nil, err
	}
	if req.Config.MaxDepth, err = parseIntParam(query, "depth", req.Config.MaxDepth, 0, 1000); err != nil {
		return nil, err
	}
	if req.Config.NumTiles, err = parseIntParam(query, "tiles", req.Config.NumTiles, 1, 4096); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(query, "fov", req.FOV, 1, 179); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Config.Width*req.Config.Height > 800*600 && req.Config.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// handleFrame renders the next session frame, applying queued camera moves,
// and returns it as an image
func (s *Server) handleFrame(c echo.Context) error {
	format := imageio.FormatPNG
	if name := c.QueryParam("format"); name != "" {
		f, err := imageio.ParseFormat(name)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		format = f
	}

	stats, err := s.session.RenderFrame()
	if err != nil {
		s.console.Errorf("Frame failed: %v\n", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	s.console.Printf("Frame %d rendered in %v (%.0f samples/s)\n",
		s.session.Generation(), stats.Elapsed, stats.SamplesPerSecond())

	config := s.session.Config()
	frame := make([]byte, config.FrameSize())
	s.session.CopyFrame(frame)
	return s.writeImage(c, format, config.Width, config.Height, frame)
}

// handleRender renders a single frame at a custom size from the session's
// camera position without touching the session's own frames
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	sceneObj, sessionCamera := s.session.Snapshot()
	if req.Scene != "" && req.Scene != s.session.SceneName() {
		if sceneObj, err = scene.Create(req.Scene); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	// Same position as the session camera, possibly a new aspect ratio
	camera := renderer.NewCamera(req.FOV, req.Config.AspectRatio())
	camera.Shift(sessionCamera.Origin())

	r, err := renderer.NewRenderer(req.Config, s.console)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer r.Close()

	frame := make([]byte, req.Config.FrameSize())
	stats, err := r.Draw(sceneObj, camera, frame)
	if err != nil {
		s.console.Errorf("Render failed: %v\n", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	s.console.Printf("Rendered %dx%d in %v (%d samples)\n",
		req.Config.Width, req.Config.Height, stats.Elapsed, stats.TotalSamples)

	return s.writeImage(c, req.Format, req.Config.Width, req.Config.Height, frame)
}

func (s *Server) writeImage(c echo.Context, format imageio.Format, width, height int, frame []byte) error {
	var buf bytes.Buffer
	if err := imageio.Write(&buf, format, width, height, frame); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
	}
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
