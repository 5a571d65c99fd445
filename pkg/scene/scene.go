package scene

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// Scene is an ordered list of shapes. It owns every primitive and material,
// and is only read while a frame is being drawn.
type Scene struct {
	shapes []geometry.Shape
}

// NewScene creates a scene holding the given shapes in order
func NewScene(shapes ...geometry.Shape) *Scene {
	s := &Scene{shapes: make([]geometry.Shape, 0, len(shapes))}
	s.shapes = append(s.shapes, shapes...)
	return s
}

// Add appends a shape to the scene
func (s *Scene) Add(shape geometry.Shape) {
	s.shapes = append(s.shapes, shape)
}

// AddSphere appends a sphere with the given material
func (s *Scene) AddSphere(center core.Point, radius float64, mat material.Material) {
	s.Add(geometry.NewSphereShape(center, radius, mat))
}

// Len returns the number of shapes in the scene
func (s *Scene) Len() int {
	return len(s.shapes)
}

// Shapes returns a copy of the scene's shapes
func (s *Scene) Shapes() []geometry.Shape {
	out := make([]geometry.Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Hit finds the closest intersection in [tMin, tMax] across all shapes.
// Each hit narrows the search range, so the result does not depend on
// insertion order except for exact ties.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closest material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	// Index into the slice so material pointers refer to scene storage
	for i := range s.shapes {
		if hit, ok := s.shapes[i].Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}
