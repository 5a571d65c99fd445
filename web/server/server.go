package server

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/navigation"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
	"github.com/df07/go-interactive-raytracer/pkg/session"
	"github.com/df07/go-interactive-raytracer/pkg/sysinfo"
)

// Server handles web requests for the interactive raytracer
type Server struct {
	port    int
	session *session.Session
	console *ConsoleLog
	echo    *echo.Echo
}

// NewServer creates a new web server driving the given session
func NewServer(port int, s *session.Session, console *ConsoleLog) *Server {
	server := &Server{
		port:    port,
		session: s,
		console: console,
		echo:    echo.New(),
	}
	server.echo.HideBanner = true
	server.echo.Use(corsMiddleware)
	server.routes()
	return server
}

func (s *Server) routes() {
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/scene", s.handleScene)
	s.echo.PUT("/api/scene", s.handleSetScene)
	s.echo.GET("/api/camera", s.handleCamera)
	s.echo.POST("/api/camera/shift", s.handleShift)
	s.echo.GET("/api/frame", s.handleFrame)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.GET("/api/console", s.handleConsole)
	s.echo.GET("/api/system", s.handleSystem)
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.List())
}

// SceneResponse describes the scene the session is showing
type SceneResponse struct {
	Scene  string     `json:"scene"`
	Shapes int        `json:"shapes"`
	Camera [3]float64 `json:"camera"`
	Frames int        `json:"frames"`
}

func (s *Server) sceneResponse() SceneResponse {
	sc, _ := s.session.Snapshot()
	origin := s.session.CameraOrigin()
	return SceneResponse{
		Scene:  s.session.SceneName(),
		Shapes: sc.Len(),
		Camera: vecArray(origin),
		Frames: s.session.Generation(),
	}
}

// handleScene returns the current scene and camera position
func (s *Server) handleScene(c echo.Context) error {
	return c.JSON(http.StatusOK, s.sceneResponse())
}

// SetSceneRequest switches the session to another built-in scene
type SetSceneRequest struct {
	Scene string `json:"scene"`
}

func (s *Server) handleSetScene(c echo.Context) error {
	var req SetSceneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}
	if err := s.session.SetScene(req.Scene); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.console.Printf("Switched to %s scene\n", req.Scene)
	return c.JSON(http.StatusOK, s.sceneResponse())
}

// CameraResponse reports where the next frame will be rendered from
type CameraResponse struct {
	Origin [3]float64 `json:"origin"`
	FOV    float64    `json:"fov"`
}

func (s *Server) handleCamera(c echo.Context) error {
	return c.JSON(http.StatusOK, CameraResponse{
		Origin: vecArray(s.session.CameraOrigin()),
		FOV:    s.session.FOV(),
	})
}

// ShiftRequest moves the camera either by an explicit delta or by key
// letters (w/s/a/d/e/q) scaled by step
type ShiftRequest struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Keys string  `json:"keys"`
	Step float64 `json:"step"`
}

// handleShift queues a camera move for the next frame
func (s *Server) handleShift(c echo.Context) error {
	var req ShiftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	delta := core.NewVec3(req.X, req.Y, req.Z)
	if req.Keys != "" {
		keys, err := navigation.ParseKeys(req.Keys)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		step := req.Step
		if step <= 0 {
			step = navigation.DefaultStep
		}
		delta = delta.Add(keys.Delta(step))
	}

	s.session.Shift(delta)
	return s.handleCamera(c)
}

// handleConsole returns the most recent log messages
func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, s.console.Messages())
}

// handleSystem reports the host CPU and memory
func (s *Server) handleSystem(c echo.Context) error {
	info, err := sysinfo.Collect()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, info)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
