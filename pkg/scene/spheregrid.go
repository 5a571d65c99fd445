package scene

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

const (
	gridSize    = 8
	gridSpacing = 0.5
	gridRadius  = 0.16
	gridFloorY  = -0.5
	gridNearZ   = -1.5
)

// NewSphereGridScene creates a grid of small spheres on the ground, cycling
// through lambertian, metal and glass. Hue varies across x and chroma across z.
func NewSphereGridScene() *Scene {
	s := NewScene()
	s.AddSphere(
		core.NewVec3(0, gridFloorY-1000, -1),
		1000,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
	)

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25
	halfWidth := float64(gridSize-1) * gridSpacing / 2

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*gridSpacing - halfWidth
			z := gridNearZ - float64(j)*gridSpacing
			position := core.NewVec3(x, gridFloorY+gridRadius, z)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			var mat material.Material
			switch (i + j) % 3 {
			case 0:
				mat = material.NewLambertian(color)
			case 1:
				mat = material.NewMetal(color, 0.05+0.1*float64(j%3))
			default:
				mat = material.NewDielectric(1.5)
			}

			s.AddSphere(position, gridRadius, mat)
		}
	}

	return s
}
