// Package scenedef loads body layouts from YAML scene files and spawns them into a
// physics world.
package scenedef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"action-physics/internal/mapgen"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// Per-body defaults, matching a freshly attached body component.
const (
	DefaultMass         = 1
	DefaultFriction     = 0.1
	DefaultGravityScale = 0.1
)

const terrainColor = "#6b8e4e"

var (
	ErrEmptyScene      = errors.New("scenedef: scene has no document")
	ErrMissingName     = errors.New("scenedef: body has no name")
	ErrDuplicateName   = errors.New("scenedef: duplicate body name")
	ErrUnknownTemplate = errors.New("scenedef: unknown template")
)

// BodyDef describes one body. Pointer fields distinguish "not set" from an explicit
// zero so that templates and defaults only fill what the author left out.
// Vectors are [x, y, z] except Impulse, which is [forward, right, up].
type BodyDef struct {
	Name         string     `yaml:"name"`
	Template     string     `yaml:"template,omitempty"`
	Position     [3]float32 `yaml:"position"`
	Size         [3]float32 `yaml:"size,omitempty"`
	Offset       [3]float32 `yaml:"offset,omitempty"`
	Mass         *float32   `yaml:"mass,omitempty"`
	Friction     *float32   `yaml:"friction,omitempty"`
	GravityScale *float32   `yaml:"gravity_scale,omitempty"`
	Simulate     *bool      `yaml:"simulate,omitempty"`
	Impulse      [3]float32 `yaml:"impulse,omitempty"`
	Color        string     `yaml:"color,omitempty"`
}

// Scene is a parsed scene file. After Parse, Bodies holds fully resolved
// definitions: templates applied, terrain expanded and defaults filled.
type Scene struct {
	Name      string             `yaml:"name"`
	Templates map[string]BodyDef `yaml:"templates,omitempty"`
	Terrain   *mapgen.Options    `yaml:"terrain,omitempty"`
	Bodies    []BodyDef          `yaml:"bodies"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenedef: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene document and resolves it. Unknown keys are errors.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScene
		}
		return nil, fmt.Errorf("scenedef: decode: %w", err)
	}
	if err := s.resolve(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) resolve() error {
	resolved := make([]BodyDef, 0, len(s.Bodies))
	seen := make(map[string]bool, len(s.Bodies))
	add := func(d BodyDef) error {
		if d.Name == "" {
			return fmt.Errorf("scenedef: body %d: %w", len(resolved), ErrMissingName)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w %q", ErrDuplicateName, d.Name)
		}
		seen[d.Name] = true
		resolved = append(resolved, d.withDefaults())
		return nil
	}

	for _, d := range s.Bodies {
		if d.Template != "" {
			merged, err := s.applyTemplate(d)
			if err != nil {
				return err
			}
			d = merged
		}
		if err := add(d); err != nil {
			return err
		}
	}

	if s.Terrain != nil {
		static := false
		for i, b := range mapgen.GenerateBlocks(*s.Terrain) {
			err := add(BodyDef{
				Name:     fmt.Sprintf("terrain-%d", i),
				Position: b.Position,
				Size:     b.Size,
				Simulate: &static,
				Color:    terrainColor,
			})
			if err != nil {
				return err
			}
		}
	}

	s.Bodies = resolved
	return nil
}

// applyTemplate deep-copies the named template and overlays every field d sets.
func (s *Scene) applyTemplate(d BodyDef) (BodyDef, error) {
	tmpl, ok := s.Templates[d.Template]
	if !ok {
		return d, fmt.Errorf("scenedef: body %q: %w %q", d.Name, ErrUnknownTemplate, d.Template)
	}
	var merged BodyDef
	if err := copier.CopyWithOption(&merged, &tmpl, copier.Option{DeepCopy: true}); err != nil {
		return d, fmt.Errorf("scenedef: template %q: %w", d.Template, err)
	}
	if err := copier.CopyWithOption(&merged, &d, copier.Option{DeepCopy: true, IgnoreEmpty: true}); err != nil {
		return d, fmt.Errorf("scenedef: body %q: %w", d.Name, err)
	}
	merged.Template = ""
	return merged, nil
}

func (d BodyDef) withDefaults() BodyDef {
	if d.Size == ([3]float32{}) {
		d.Size = [3]float32{1, 1, 1}
	}
	if d.Mass == nil {
		d.Mass = ptr[float32](DefaultMass)
	}
	if d.Friction == nil {
		d.Friction = ptr[float32](DefaultFriction)
	}
	if d.GravityScale == nil {
		d.GravityScale = ptr[float32](DefaultGravityScale)
	}
	if d.Simulate == nil {
		d.Simulate = ptr(false)
	}
	return d
}

func ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
