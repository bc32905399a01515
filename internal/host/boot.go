package host

import (
	"fmt"

	"action-physics/internal/engineconfig"
	"action-physics/internal/env"
	"action-physics/internal/logger"
	"action-physics/internal/physics"
)

// BootOptions are the command-line inputs shared by the front ends.
type BootOptions struct {
	ConfigPath string
	EnvPath    string
	ScenePath  string // overrides the configured scene when set
	LogPath    string // overrides the configured log file when set
}

// Boot reads the dotenv file and prefs, opens the log, builds the world and loads the
// scene. Prefs that fail to load fall back to defaults and the failure is logged.
func Boot(opts BootOptions) (*Host, engineconfig.Prefs, error) {
	vars, err := env.Load(opts.EnvPath)
	if err != nil {
		return nil, engineconfig.Prefs{}, fmt.Errorf("read %s: %w", opts.EnvPath, err)
	}
	prefs, prefsErr := engineconfig.Load(opts.ConfigPath)
	prefs, envErr := engineconfig.ApplyEnv(prefs, env.Lookup(vars))
	if opts.ScenePath != "" {
		prefs.ScenePath = opts.ScenePath
	}
	if opts.LogPath != "" {
		prefs.LogPath = opts.LogPath
	}
	if envErr != nil {
		return nil, prefs, envErr
	}

	log := logger.New(prefs.LogPath, 0)
	if prefsErr != nil {
		log.Logf("using default prefs: %v", prefsErr)
	}
	world, err := physics.NewWorld(prefs.Settings())
	if err != nil {
		return nil, prefs, err
	}
	h := New(world, log, prefs.ScenePath)
	if err := h.Load(); err != nil {
		return nil, prefs, err
	}
	log.Logf("world ready: %d Hz, elastic rate %g, per-axis tolerance %t",
		prefs.TickHz, prefs.ElasticRate, prefs.PerAxisTolerance)
	return h, prefs, nil
}

// Log returns the host's logger.
func (h *Host) Log() *logger.Logger { return h.log }
