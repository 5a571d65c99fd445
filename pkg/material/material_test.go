package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// fixedSampler returns the same values on every draw
type fixedSampler struct {
	oneD   float64
	threeD core.Vec3
}

func (f fixedSampler) Get1D() float64  { return f.oneD }
func (f fixedSampler) Get3D() core.Vec3 { return f.threeD }

func upHit(m *Material, frontFace bool) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: frontFace,
		Material:  m,
	}
}

func TestSetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 1, 0)
	tests := []struct {
		name          string
		direction     core.Vec3
		expectedFront bool
		expectedNorm  core.Vec3
	}{
		{"ray from outside", core.NewVec3(0, -1, 0), true, core.NewVec3(0, 1, 0)},
		{"ray from inside", core.NewVec3(0, 1, 0), false, core.NewVec3(0, -1, 0)},
		{"oblique inside", core.NewVec3(1, 0.5, 0), false, core.NewVec3(0, -1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			hit.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), outward)
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected FrontFace %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal != tt.expectedNorm {
				t.Errorf("Expected normal %v, got %v", tt.expectedNorm, hit.Normal)
			}
		})
	}
}

func TestLambertianAlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	hit := upHit(&lambertian, true)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}
		// normal + unit vector never points below the tangent plane
		if scatter.Scattered.Direction.Dot(hit.Normal) < -1e-12 {
			t.Fatalf("Scattered direction %v points into the surface", scatter.Scattered.Direction)
		}
	}
}

func TestLambertianDegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	hit := upHit(&lambertian, true)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// Get3D of (0.5, 0.25, 0.5) maps to (0, -0.5, 0), whose unit vector cancels the normal
	sampler := fixedSampler{threeD: core.NewVec3(0.5, 0.25, 0.5)}
	scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != hit.Normal {
		t.Errorf("Expected fallback direction %v, got %v", hit.Normal, scatter.Scattered.Direction)
	}
}

func TestNewMetalFuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
			if metal.Kind != KindMetal {
				t.Errorf("Expected kind metal, got %v", metal.Kind)
			}
		})
	}
}

func TestMetalPerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize())
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction.Normalize()
	if actual.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetalScattersOnlyAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)
	hit := upHit(&metal, true)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(3)))

	// Grazing incidence with full fuzz produces both outcomes
	rayIn := core.NewRay(core.NewVec3(-1, 0.05, 0), core.NewVec3(1, -0.05, 0))
	scattered, absorbed := 0, 0
	for i := 0; i < 2000; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		above := scatter.Scattered.Direction.Dot(hit.Normal) > 0
		if didScatter != above {
			t.Fatalf("Scatter result %t disagrees with dot(dir, n) > 0 for %v", didScatter, scatter.Scattered.Direction)
		}
		if didScatter {
			scattered++
		} else {
			absorbed++
		}
	}
	if scattered == 0 || absorbed == 0 {
		t.Errorf("Expected both outcomes at grazing incidence, got %d scattered, %d absorbed", scattered, absorbed)
	}
}

func TestMetalAbsorbsBelowSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	hit := upHit(&metal, true)
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))

	// Perturbation of (0, -0.5, 0) pushes the reflection under the surface
	sampler := fixedSampler{threeD: core.NewVec3(0.5, 0.25, 0.5)}
	if _, didScatter := metal.Scatter(rayIn, hit, sampler); didScatter {
		t.Error("Expected metal to absorb a ray perturbed below the surface")
	}
}

func TestDielectricAlwaysScatters(t *testing.T) {
	for _, ir := range []float64{1.5, 2.4, 1.0, 0.5, -0.4} {
		glass := NewDielectric(ir)
		for _, front := range []bool{true, false} {
			hit := upHit(&glass, front)
			sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
			for i := 0; i < 200; i++ {
				dir := core.NewVec3(math.Cos(float64(i)), -1, math.Sin(float64(i)))
				result, scattered := glass.Scatter(core.NewRay(core.NewVec3(0, 1, 0), dir), hit, sampler)
				if !scattered {
					t.Fatalf("Dielectric ir=%g should always scatter", ir)
				}
				if result.Attenuation != core.NewVec3(1, 1, 1) {
					t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
				}
			}
		}
	}
}

func TestDielectricNormalIncidence(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := upHit(&glass, true)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	tests := []struct {
		name     string
		draw     float64
		expected core.Vec3
	}{
		// Reflectance at normal incidence is ~0.04
		{"draw above reflectance refracts", 0.9, core.NewVec3(0, -1, 0)},
		{"draw below reflectance reflects", 0.0, core.NewVec3(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := glass.Scatter(ray, hit, fixedSampler{oneD: tt.draw})
			if result.Scattered.Direction.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expected, result.Scattered.Direction)
			}
		})
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Shallow ray exiting the material
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)
	hit := upHit(&glass, false)

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if 1.5*sinTheta <= 1.0 {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	// Even a draw of 0.999 cannot force refraction
	result, scattered := glass.Scatter(ray, hit, fixedSampler{oneD: 0.999})
	if !scattered {
		t.Fatal("Dielectric should always scatter")
	}
	if result.Scattered.Direction.Y <= 0 {
		t.Errorf("Expected reflected ray going up, got %v", result.Scattered.Direction)
	}
	if math.Abs(result.Scattered.Direction.X-rayDirection.X) > 1e-10 {
		t.Errorf("Expected X component %.6f, got %.6f", rayDirection.X, result.Scattered.Direction.X)
	}
}

func TestDielectricNegativeIndexActsAsMirror(t *testing.T) {
	// With ir=-0.4 Schlick's r0 exceeds 1 on both faces, so every draw reflects
	glass := NewDielectric(-0.4)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(11)))

	for _, front := range []bool{true, false} {
		hit := upHit(&glass, front)
		for i := 0; i < 500; i++ {
			dir := core.NewVec3(math.Cos(float64(i))*0.8, -1, math.Sin(float64(i))*0.8).Normalize()
			result, _ := glass.Scatter(core.NewRay(core.NewVec3(0, 1, 0), dir), hit, sampler)
			expected := core.Reflect(dir, hit.Normal)
			if result.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
				t.Fatalf("front=%t: expected mirror reflection %v, got %v", front, expected, result.Scattered.Direction)
			}
		}
	}
}

func TestReflectanceFunction(t *testing.T) {
	r0 := Reflectance(1.0, 1.0/1.5)
	if r0 < 0.03 || r0 > 0.06 {
		t.Errorf("Normal incidence reflectance = %.3f, expected ~0.04", r0)
	}

	r90 := Reflectance(0.0, 1.0/1.5)
	if r90 < 0.95 {
		t.Errorf("Grazing incidence reflectance = %.3f, expected close to 1.0", r90)
	}

	r45 := Reflectance(0.707, 1.0/1.5)
	if r45 <= r0 || r90 <= r45 {
		t.Errorf("Reflectance should increase with angle: R(0°)=%.3f, R(45°)=%.3f, R(90°)=%.3f", r0, r45, r90)
	}
}

func TestScatterUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for unknown material kind")
		}
	}()
	m := Material{Kind: Kind(99)}
	m.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), upHit(&m, true), fixedSampler{})
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindLambertian, "lambertian"},
		{KindMetal, "metal"},
		{KindDielectric, "dielectric"},
		{Kind(7), "kind(7)"},
	}
	for _, tt := range tests {
		if tt.kind.String() != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, tt.kind.String())
		}
	}
}
