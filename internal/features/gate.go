// Package features decides whether named capabilities are switched on.
//
// A feature is on by default in development and staging and off everywhere
// else. An explicit override, looked up fresh on every call, wins over the
// environment default.
package features

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/saeid-a/TennisCoachBack/internal/config"
	"gopkg.in/yaml.v3"
)

const TrainingSessionManagement = "feature.trainingSessionManagement"

type OverrideSource interface {
	Lookup(name string) (string, bool)
}

type Gate struct {
	cfg     *config.Config
	sources []OverrideSource
}

func NewGate(cfg *config.Config, sources ...OverrideSource) *Gate {
	return &Gate{cfg: cfg, sources: sources}
}

// NewGateFromConfig wires the environment overrides and, when configured,
// the YAML overrides file.
func NewGateFromConfig(cfg *config.Config) *Gate {
	sources := []OverrideSource{EnvOverrides{}}
	if cfg.FeatureFlagsFile != "" {
		sources = append(sources, FileOverrides{Path: cfg.FeatureFlagsFile})
	}
	return NewGate(cfg, sources...)
}

// IsEnabled treats any override other than "true" (in any case) as off, so
// values such as "1" or "yes" disable the feature.
func (g *Gate) IsEnabled(name string) bool {
	for _, source := range g.sources {
		value, ok := source.Lookup(name)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		return strings.EqualFold(strings.TrimSpace(value), "true")
	}

	if g.cfg == nil {
		return false
	}
	switch g.cfg.AppEnv {
	case config.EnvDevelopment, config.EnvStaging:
		return true
	default:
		return false
	}
}

// EnvOverrides reads FEATURE_<NAME> from the process environment, where NAME
// is the feature name without its "feature." prefix, upper-cased, with dots
// and dashes replaced by underscores.
type EnvOverrides struct{}

func (EnvOverrides) Lookup(name string) (string, bool) {
	return os.LookupEnv(EnvKey(name))
}

func EnvKey(name string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(name), "feature.")
	replacer := strings.NewReplacer(".", "_", "-", "_")
	return "FEATURE_" + strings.ToUpper(replacer.Replace(trimmed))
}

// FileOverrides reads a flat YAML mapping of feature name to value.
type FileOverrides struct {
	Path string
}

func (f FileOverrides) Lookup(name string) (string, bool) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("feature flags: read %s: %v", f.Path, err)
		}
		return "", false
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		log.Printf("feature flags: parse %s: %v", f.Path, err)
		return "", false
	}

	value, ok := values[name]
	if !ok || value == nil {
		return "", false
	}
	return fmt.Sprint(value), true
}
