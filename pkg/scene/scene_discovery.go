package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Create
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Shapes      int    `json:"shapes"`      // Number of primitives
}

type builtin struct {
	description string
	build       func() *Scene
}

var builtins = map[string]builtin{
	"default": {
		description: "Ground, negative-index dielectric, fuzzy silver and rough gold spheres",
		build:       NewDefaultScene,
	},
	"ground": {
		description: "Only the ground sphere under the sky gradient",
		build:       NewGroundScene,
	},
	"glass": {
		description: "Default world with a hollow glass sphere in the middle",
		build:       NewGlassScene,
	},
	"sphere-grid": {
		description: "Grid of lambertian, metal and glass spheres in OKLCH colors",
		build:       NewSphereGridScene,
	},
}

// Create builds the built-in scene with the given ID
func Create(id string) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(Names(), ", "))
	}
	return b.build(), nil
}

// Names returns the IDs of all built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for id := range builtins {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// List returns metadata for every built-in scene, sorted by ID
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, id := range Names() {
		b := builtins[id]
		infos = append(infos, SceneInfo{
			ID:          id,
			Name:        titleCase(id),
			Description: b.description,
			Shapes:      b.build().Len(),
		})
	}
	return infos
}

// titleCase converts an ID-style string to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
