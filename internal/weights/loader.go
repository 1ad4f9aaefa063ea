package weights

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Loader reads weight overrides from YAML files
type Loader struct {
	log zerolog.Logger
}

// NewLoader creates a new weights loader
func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{
		log: log.With().Str("component", "weights_loader").Logger(),
	}
}

// Load returns the default weights, overridden by the YAML file at path
// when one is provided. Missing keys in the file keep their defaults.
func (l *Loader) Load(path string) (Weights, error) {
	w := Defaults()

	if path == "" {
		l.log.Debug().Msg("No weights file configured, using defaults")
		return w, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("failed to read weights file: %w", err)
	}

	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("failed to parse weights file: %w", err)
	}

	l.log.Info().Str("path", path).Msg("Scoring weights loaded")

	return w, nil
}
