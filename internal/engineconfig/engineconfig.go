package engineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"action-physics/internal/physics"

	"github.com/chewxy/math32"
)

// DefaultPath is the tuning file location, relative to the process working directory.
const DefaultPath = "config/physics.json"

var (
	ErrInvalidTickRate = errors.New("engineconfig: tick_hz must be greater than zero")
	ErrInvalidMaxTicks = errors.New("engineconfig: max_ticks_per_frame must be at least 1")
	ErrInvalidElastic  = errors.New("engineconfig: elastic_rate must be a finite value greater than zero")
)

// Prefs holds the world-wide physics tuning and host settings. Per-body tuning lives
// in scene files.
type Prefs struct {
	ElasticRate      float32 `json:"elastic_rate"`
	TickHz           int     `json:"tick_hz"`
	PerAxisTolerance bool    `json:"per_axis_tolerance"`
	MaxTicksPerFrame int     `json:"max_ticks_per_frame"`
	ScenePath        string  `json:"scene_path"`
	LogPath          string  `json:"log_path"`
	ShowHUD          bool    `json:"show_hud"`
}

// Default returns elastic rate 2.0 at 50 Hz with the HUD on.
func Default() Prefs {
	return Prefs{
		ElasticRate:      physics.DefaultElasticRate,
		TickHz:           50,
		MaxTicksPerFrame: 5,
		ScenePath:        "scenes/drop.yaml",
		LogPath:          "logs/physics.txt",
		ShowHUD:          true,
	}
}

// Validate reports the first value that cannot drive a world.
func (p Prefs) Validate() error {
	if !(p.ElasticRate > 0) || math32.IsInf(p.ElasticRate, 0) {
		return ErrInvalidElastic
	}
	if p.TickHz <= 0 {
		return ErrInvalidTickRate
	}
	if p.MaxTicksPerFrame < 1 {
		return ErrInvalidMaxTicks
	}
	return nil
}

// TickDuration is one physics tick at TickHz.
func (p Prefs) TickDuration() time.Duration {
	if p.TickHz <= 0 {
		return physics.DefaultTickDuration
	}
	return time.Second / time.Duration(p.TickHz)
}

// Settings converts the prefs into world settings.
func (p Prefs) Settings() physics.Settings {
	return physics.Settings{
		ElasticRate:      p.ElasticRate,
		TickDuration:     p.TickDuration(),
		PerAxisTolerance: p.PerAxisTolerance,
	}
}

// Load reads prefs from path. A missing file yields Default() without creating one.
// Keys absent from the file keep their default values. Malformed JSON and invalid
// values are errors.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("engineconfig: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("engineconfig: parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("engineconfig: %s: %w", path, err)
	}
	return p, nil
}

// Save writes prefs to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Environment keys read by ApplyEnv.
const (
	EnvElasticRate      = "PHYSICS_ELASTIC_RATE"
	EnvTickHz           = "PHYSICS_TICK_HZ"
	EnvScene            = "PHYSICS_SCENE"
	EnvPerAxisTolerance = "PHYSICS_PER_AXIS_TOLERANCE"
)

// ApplyEnv overrides prefs from lookup (usually env.Lookup). The result is validated.
func ApplyEnv(p Prefs, lookup func(key string) (string, bool)) (Prefs, error) {
	if v, ok := lookup(EnvElasticRate); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return p, fmt.Errorf("engineconfig: %s: %w", EnvElasticRate, err)
		}
		p.ElasticRate = float32(f)
	}
	if v, ok := lookup(EnvTickHz); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("engineconfig: %s: %w", EnvTickHz, err)
		}
		p.TickHz = n
	}
	if v, ok := lookup(EnvPerAxisTolerance); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("engineconfig: %s: %w", EnvPerAxisTolerance, err)
		}
		p.PerAxisTolerance = b
	}
	if v, ok := lookup(EnvScene); ok && v != "" {
		p.ScenePath = v
	}
	return p, p.Validate()
}
