package scene

import (
	"sort"
	"strings"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
	"github.com/pkg/errors"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("scene: unknown scene")

// Builder creates a scene rendered onto film with sampler
type Builder func(film renderer.Film, sampler core.Sampler) *Scene

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string
	Name        string
	Description string
	build       Builder
}

var builtIn = []SceneInfo{
	{ID: "cornell", Description: "Cornell box with a metal and a glass sphere", build: NewCornellScene},
	{ID: "emitter", Description: "Single emitting quad facing the camera", build: NewEmitterScene},
	{ID: "spheres", Description: "Spheres of every material under a sky", build: NewSpheresScene},
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, len(builtIn))
	for i, info := range builtIn {
		info.Name = titleCase(info.ID)
		scenes[i] = info
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Names returns the IDs of the built-in scenes
func Names() []string {
	var names []string
	for _, info := range List() {
		names = append(names, info.ID)
	}
	return names
}

// Build creates the built-in scene with the given ID
func Build(id string, film renderer.Film, sampler core.Sampler) (*Scene, error) {
	for _, info := range builtIn {
		if info.ID == id {
			return info.build(film, sampler), nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownScene, "%q (available: %s)", id, strings.Join(Names(), ", "))
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
