package impulse

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is the cause of every error returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid solver config")

// Config tunes the velocity solver and the warm-start cache.
type Config struct {
	// Iterations is the number of normal and friction passes. Must be non-zero.
	Iterations int `yaml:"iterations"`

	// PenetrationSlop is the amount of penetration left alone by the stabilization term.
	//
	// Keeps resting contacts from jittering and the warm-start cache warm.
	PenetrationSlop float64 `yaml:"penetration_slop"`

	// RestitutionSlop is the approach speed under which contacts do not bounce.
	RestitutionSlop float64 `yaml:"restitution_slop"`

	// StabilizationScale determines how fast overlapping bodies are pushed apart.
	//
	// The bias velocity is StabilizationScale * penetration / dt, so 0.25 removes a quarter of
	// the overlap per step.
	StabilizationScale float64 `yaml:"stabilization_scale"`

	// WarmStarting applies the impulses of the previous step before iterating.
	WarmStarting bool `yaml:"warm_starting"`

	// Persistence is the number of steps a contact missing from collision detection keeps its
	// cached impulses.
	Persistence uint `yaml:"persistence"`
}

// DefaultConfig returns the solver defaults: 7 iterations, warm starting on.
func DefaultConfig() Config {
	return Config{
		Iterations:         DefaultIterations,
		PenetrationSlop:    DefaultPenetrationSlop,
		RestitutionSlop:    DefaultRestitutionSlop,
		StabilizationScale: DefaultStabilizationScale,
		WarmStarting:       true,
		Persistence:        DefaultPersistence,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Iterations <= 0:
		return errors.Wrapf(ErrInvalidConfig, "iterations must be positive, got %d", c.Iterations)
	case c.PenetrationSlop < 0:
		return errors.Wrapf(ErrInvalidConfig, "penetration_slop must not be negative, got %g", c.PenetrationSlop)
	case c.RestitutionSlop < 0:
		return errors.Wrapf(ErrInvalidConfig, "restitution_slop must not be negative, got %g", c.RestitutionSlop)
	case c.StabilizationScale <= 0:
		return errors.Wrapf(ErrInvalidConfig, "stabilization_scale must be positive, got %g", c.StabilizationScale)
	}
	return nil
}

// ParseConfig decodes YAML on top of DefaultConfig, so fields missing from data keep their
// default value. Unknown fields are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// An empty document leaves the defaults.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, errors.Wrap(err, "decode solver config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read solver config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}
