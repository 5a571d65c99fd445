package scene

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// Ground sphere shared by the built-in scenes: a huge sphere whose top sits at y = -0.5
var (
	groundCenter = core.NewVec3(0, -100.5, -1)
	groundRadius = 100.0
	groundColor  = core.NewVec3(0.8, 0.8, 0.0)
)

// NewGroundScene creates a scene containing only the yellow ground sphere
func NewGroundScene() *Scene {
	s := NewScene()
	s.AddSphere(groundCenter, groundRadius, material.NewLambertian(groundColor))
	return s
}

// NewDefaultScene creates the four sphere world: ground, a dielectric with a
// negative index in the middle, fuzzy silver on the left and rough gold on the right.
func NewDefaultScene() *Scene {
	return newFourSphereScene(material.NewDielectric(-0.4))
}

// NewGlassScene is the default world with a hollow glass sphere in the middle
func NewGlassScene() *Scene {
	glass := material.NewDielectric(1.5)
	s := newFourSphereScene(glass)

	// A negative radius flips the normals, making the inside of a glass shell
	s.AddSphere(core.NewVec3(0, 0, -1), -0.45, glass)
	return s
}

func newFourSphereScene(center material.Material) *Scene {
	materialGround := material.NewLambertian(groundColor)
	materialLeft := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s := NewScene()
	s.AddSphere(groundCenter, groundRadius, materialGround)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, materialLeft)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, materialRight)
	return s
}
