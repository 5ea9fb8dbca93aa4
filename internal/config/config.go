package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Stimuli describes the input image directories and their naming scheme.
// Directory values are kept exactly as configured (relative paths included)
// because the generated CSV embeds stimulus paths verbatim for the
// experiment runner to resolve.
type Stimuli struct {
	IdentityDir          string `toml:"identity_dir"`
	CategoryDir          string `toml:"category_dir"`
	ImageExt             string `toml:"image_ext"`
	ExemplarsPerCategory int    `toml:"exemplars_per_category"`
	ExemplarsPerIdentity int    `toml:"exemplars_per_identity"`
}

// Design contains the counterbalancing constants.
type Design struct {
	CategoriesPerCondition int   `toml:"categories_per_condition"`
	Repeats                int   `toml:"repeats"`
	Seed                   int64 `toml:"seed"`
}

// Output describes where trial lists and the run manifest are written.
type Output struct {
	Dir             string `toml:"dir"`
	FilePrefix      string `toml:"file_prefix"`
	ManifestEnabled bool   `toml:"manifest_enabled"`
	ManifestPath    string `toml:"manifest_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for trialgen.
//
// Configuration sections:
//   - Stimuli: identity/category image directories and exemplar counts
//   - Design: repeats, categories per condition, random seed
//   - Output: trial list directory, file naming, run manifest
//   - Logging: log format, level, optional log directory
type Config struct {
	Stimuli Stimuli `toml:"stimuli"`
	Design  Design  `toml:"design"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/trialgen/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has user paths expanded and defaults applied for unset fields.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("trialgen.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output directory tree. Creation is
// idempotent so repeated runs reuse the existing layout.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Output.Dir}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dirs = append(dirs, c.Logging.Dir)
	}
	if c.Output.ManifestEnabled && strings.TrimSpace(c.Output.ManifestPath) != "" {
		dirs = append(dirs, filepath.Dir(c.Output.ManifestPath))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	return pathValue, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
