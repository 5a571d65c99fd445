package geometry

import (
	"fmt"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// ShapeKind identifies the primitive stored in a Shape
type ShapeKind uint8

const (
	ShapeSphere ShapeKind = iota
)

// Shape is a closed set of primitives that can be hit by rays.
// Adding a primitive means adding a kind, a payload field and a case in Hit.
type Shape struct {
	Kind   ShapeKind
	Sphere Sphere
}

// NewSphereShape wraps a sphere as a scene primitive
func NewSphereShape(center core.Point, radius float64, mat material.Material) Shape {
	return Shape{Kind: ShapeSphere, Sphere: NewSphere(center, radius, mat)}
}

// Hit dispatches to the primitive's intersection routine
func (s *Shape) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	switch s.Kind {
	case ShapeSphere:
		return s.Sphere.Hit(ray, tMin, tMax)
	default:
		panic(fmt.Sprintf("geometry: unknown shape kind %d", uint8(s.Kind)))
	}
}

// String describes the shape for logs
func (s Shape) String() string {
	switch s.Kind {
	case ShapeSphere:
		return s.Sphere.String()
	default:
		return fmt.Sprintf("shape(kind=%d)", uint8(s.Kind))
	}
}
