package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/repofs/pkg/repofs"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "repofs.yaml"
	EnvFileName    = ".env"

	EnvPrettyPrint = "REPOFS_PRETTY_PRINT"
	EnvWorkers     = "REPOFS_WORKERS"
)

// KindConfig describes the canonical shape of one kind directory.
type KindConfig struct {
	NameField string         `yaml:"name_field,omitempty"`
	Defaults  map[string]any `yaml:"defaults,omitempty"`
}

// RepositoryConfig is the content of repofs.yaml.
type RepositoryConfig struct {
	PrettyPrint *bool                 `yaml:"pretty_print,omitempty"`
	Workers     int                   `yaml:"workers,omitempty" validate:"gte=0,lte=64"`
	Kinds       map[string]KindConfig `yaml:"kinds" validate:"required,min=1"`
}

// DefaultKinds are the kind directories mounted when no repofs.yaml exists.
var DefaultKinds = []string{"clients", "environments", "nodes", "roles", "users"}

var validate = validator.New()

// Default returns the configuration used for repositories without repofs.yaml.
func Default() *RepositoryConfig {
	cfg := &RepositoryConfig{Kinds: make(map[string]KindConfig, len(DefaultKinds))}
	for _, kind := range DefaultKinds {
		cfg.Kinds[kind] = KindConfig{NameField: "name"}
	}
	return cfg
}

// Load reads and validates repofs.yaml from the repository root.
func Load(sourcePath string) (*RepositoryConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg RepositoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", repofs.ErrInvalidConfig, ConfigFileName, err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve returns the effective configuration for a repository: repofs.yaml
// (or Default when absent) with overrides from the repository's .env file
// and the process environment applied. Process environment wins over .env;
// empty values count as unset.
func Resolve(sourcePath string) (*RepositoryConfig, error) {
	cfg, err := Load(sourcePath)
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
		cfg = Default()
	}

	vars, err := envOverrides(sourcePath)
	if err != nil {
		return nil, err
	}
	if v := vars[EnvPrettyPrint]; v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %w", repofs.ErrInvalidConfig, EnvPrettyPrint, v, err)
		}
		cfg.PrettyPrint = &enabled
	}
	if v := vars[EnvWorkers]; v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %w", repofs.ErrInvalidConfig, EnvWorkers, v, err)
		}
		cfg.Workers = workers
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOverrides(sourcePath string) (map[string]string, error) {
	vars, err := godotenv.Read(filepath.Join(sourcePath, EnvFileName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", repofs.ErrInvalidConfig, EnvFileName, err)
		}
		vars = make(map[string]string)
	}
	for _, key := range []string{EnvPrettyPrint, EnvWorkers} {
		if v := os.Getenv(key); v != "" {
			vars[key] = v
		}
	}
	return vars, nil
}

// Validate checks struct tags and the rules tags cannot express.
func Validate(cfg *RepositoryConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%w: %s: validation failed on '%s' tag (value: %v)",
				repofs.ErrInvalidConfig, e.Namespace(), e.Tag(), e.Value())
		}
		return fmt.Errorf("%w: %w", repofs.ErrInvalidConfig, err)
	}

	for _, kind := range cfg.KindNames() {
		if kind == "" || kind == "." || kind == ".." || strings.ContainsAny(kind, `/\`) {
			return fmt.Errorf("%w: kinds: %q is not a directory name", repofs.ErrInvalidConfig, kind)
		}
	}
	return nil
}

// KindNames returns the configured kinds in sorted order.
func (c *RepositoryConfig) KindNames() []string {
	names := make([]string, 0, len(c.Kinds))
	for name := range c.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EffectivePrettyPrint returns the configured flag or repofs.DefaultPrettyPrint.
func (c *RepositoryConfig) EffectivePrettyPrint() bool {
	if c.PrettyPrint == nil {
		return repofs.DefaultPrettyPrint
	}
	return *c.PrettyPrint
}

// EffectiveWorkers returns the configured worker count or repofs.DefaultWorkers.
func (c *RepositoryConfig) EffectiveWorkers() int {
	if c.Workers == 0 {
		return repofs.DefaultWorkers
	}
	return c.Workers
}
