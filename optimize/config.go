package optimize

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/VaibhavRumale/Constant-Fold/internal"
	"github.com/VaibhavRumale/Constant-Fold/internal/ast"
)

const (
	DefaultConfigPath = ".constfold.yaml"
	DefaultInput      = "src/files/before.leo"
	DefaultOutput     = "src/files/generated.leo"
)

// Config represents the optimizer configuration file.
type Config struct {
	Name         string `yaml:"name"`
	ConstantFold bool   `yaml:"constant_fold"`
	EmitLeo      bool   `yaml:"emit_leo"`
	Input        string `yaml:"input"`
	Output       string `yaml:"output"`
	DefaultType  string `yaml:"default_type"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Name:        "constfold",
		Input:       DefaultInput,
		Output:      DefaultOutput,
		DefaultType: ast.DefaultIntType.String(),
	}
}

// LoadConfig reads the configuration at path. A missing file yields
// DefaultConfig; keys absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("error parsing configuration %s: %w", path, err)
	}

	if _, err := config.EngineConfig(); err != nil {
		return config, err
	}
	return config, nil
}

// EngineConfig converts the file configuration into engine settings.
func (c Config) EngineConfig() (internal.EngineConfig, error) {
	typ := ast.DefaultIntType
	if c.DefaultType != "" {
		t, ok := ast.ParseIntType(c.DefaultType)
		if !ok {
			return internal.EngineConfig{}, fmt.Errorf("unknown default_type %q", c.DefaultType)
		}
		typ = t
	}
	return internal.EngineConfig{ConstantFold: c.ConstantFold, DefaultType: typ}, nil
}

// WriteConfig writes config as YAML to path.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}
