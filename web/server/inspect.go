package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/material"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

// inspectTMin matches the renderer's self-intersection offset
const inspectTMin = 0.001

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	ShapeIndex   int                    `json:"shapeIndex"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo extracts detailed material information for the material kind
func extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo.X, mat.Albedo.Y, mat.Albedo.Z)
	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo.X, mat.Albedo.Y, mat.Albedo.Z)
		properties["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	default:
		return "unknown", properties
	}
	return mat.Kind.String(), properties
}

func hexColor(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit        bool
	HitRecord  material.HitRecord
	Shape      geometry.Shape // The shape that was hit
	ShapeIndex int            // Position of Shape in the scene, -1 if unknown
}

// inspectPixel casts a ray through the centre of the pixel and returns the first object hit
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, width, height, pixelX, pixelY int) InspectResult {
	u := (float64(pixelX) + 0.5) / float64(width)
	v := float64(pixelY) / float64(height)
	ray := camera.GetRay(u, v)

	hit, isHit := sceneObj.Hit(ray, inspectTMin, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false, ShapeIndex: -1}
	}

	// Find the specific shape that was hit by testing all shapes
	// (the scene doesn't return the shape, just the hit record)
	shapes := sceneObj.Shapes()
	for i := range shapes {
		if shapeHit, shapeIsHit := shapes[i].Hit(ray, inspectTMin, hit.T+inspectTMin); shapeIsHit {
			if shapeHit.T == hit.T { // Same intersection
				return InspectResult{
					Hit:        true,
					HitRecord:  hit,
					Shape:      shapes[i],
					ShapeIndex: i,
				}
			}
		}
	}

	// Fallback: return hit without specific shape
	return InspectResult{Hit: true, HitRecord: hit, ShapeIndex: -1}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch shape.Kind {
	case geometry.ShapeSphere:
		properties["center"] = vecArray(shape.Sphere.Center)
		properties["radius"] = shape.Sphere.Radius
		if shape.Sphere.Radius < 0 {
			properties["hollow"] = true
		}
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests against the session's
// scene and camera at the session resolution
func (s *Server) handleInspect(c echo.Context) error {
	config := s.session.Config()

	pixelX, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid y coordinate")
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		return echo.NewHTTPError(http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	sceneObj, camera := s.session.Snapshot()
	result := inspectPixel(sceneObj, &camera, config.Width, config.Height, pixelX, pixelY)
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false, ShapeIndex: -1})
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)

	// Combine properties
	allProperties := make(map[string]interface{})
	allProperties["material"] = materialProps

	geometryType := "unknown"
	if result.ShapeIndex >= 0 {
		var geometryProps map[string]interface{}
		geometryType, geometryProps = extractGeometryInfo(result.Shape)
		allProperties["geometry"] = geometryProps
	}

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		ShapeIndex:   result.ShapeIndex,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties:   allProperties,
	})
}
