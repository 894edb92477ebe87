// Package config provides the configuration loader for precache.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// SupportedVersion is the only config file version understood by this loader.
const SupportedVersion = "1"

var validGroupNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers precache.yaml by walking up from cwd and resolves it.
// Without a config file the defaults rooted at cwd are returned.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	configPath, found := findConfiguration(absCwd)
	if !found {
		return domain.DefaultConfig(absCwd), nil
	}

	return l.LoadFile(configPath)
}

// LoadFile reads the configuration from an explicit path.
// Relative paths inside the file are resolved against the file's directory.
func (l *Loader) LoadFile(path string) (domain.Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to resolve config path"), "path", path)
	}

	var file Precachefile
	if err := readAndUnmarshalYAML(absPath, &file); err != nil {
		return domain.Config{}, err
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("unsupported config version %q in %s, reading it as version %s",
			file.Version, domain.ConfigFileName, SupportedVersion))
	}

	cfg, err := buildConfig(filepath.Dir(absPath), &file)
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "invalid configuration"), "config", absPath)
	}

	return cfg, nil
}

// DiscoverRoot walks up from cwd to find the directory containing precache.yaml.
// Without a config file cwd itself is the root.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	configPath, found := findConfiguration(absCwd)
	if !found {
		return absCwd, nil
	}

	return filepath.Dir(configPath), nil
}

// findConfiguration returns the nearest precache.yaml at or above dir.
func findConfiguration(dir string) (string, bool) {
	currentDir := dir

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

// buildConfig maps the file DTO onto a domain.Config rooted at root, applying defaults.
func buildConfig(root string, file *Precachefile) (domain.Config, error) {
	cfg := domain.DefaultConfig(root)

	cfg.DevDir = resolvePath(root, file.DevDir, cfg.DevDir)
	cfg.DistDir = resolvePath(root, file.DistDir, cfg.DistDir)
	cfg.HelpersDir = resolvePath(root, file.HelpersDir, cfg.HelpersDir)
	cfg.Template = resolvePath(root, file.Template, filepath.Join(cfg.HelpersDir, domain.TemplateFileName))

	if file.Placeholder != "" {
		cfg.Placeholder = file.Placeholder
	}

	if file.Output != "" {
		output, err := validateOutput(file.Output)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Output = output
	}

	limits, err := buildLimits(file.Limits)
	if err != nil {
		return domain.Config{}, err
	}
	cfg.Limits = limits

	if file.Groups != nil {
		groups, err := buildGroups(file.Groups)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Groups = groups
	}

	ignore, err := buildCopyIgnore(file.CopyIgnore)
	if err != nil {
		return domain.Config{}, err
	}
	cfg.CopyIgnore = ignore

	return cfg, nil
}

// buildCopyIgnore validates the base-name patterns excluded from the development tree mirror.
func buildCopyIgnore(patterns []string) ([]string, error) {
	for _, pattern := range patterns {
		if pattern == "" || strings.Contains(pattern, "/") || !doublestar.ValidatePattern(pattern) {
			return nil, errors.Join(domain.ErrInvalidPattern,
				zerr.With(zerr.New("copyIgnore entries must be base-name globs"), "pattern", pattern))
		}
	}
	return patterns, nil
}

// buildLimits rejects negative ceilings and replaces zero ceilings with the defaults.
func buildLimits(dto LimitsDTO) (domain.Limits, error) {
	limits := domain.DefaultLimits()

	if dto.MaxBytes < 0 {
		return domain.Limits{}, errors.Join(domain.ErrInvalidLimits,
			zerr.With(zerr.New("maxBytes is negative"), "max_bytes", dto.MaxBytes))
	}
	if dto.MaxFiles < 0 {
		return domain.Limits{}, errors.Join(domain.ErrInvalidLimits,
			zerr.With(zerr.New("maxFiles is negative"), "max_files", dto.MaxFiles))
	}

	if dto.MaxBytes > 0 {
		limits.MaxBytes = dto.MaxBytes
	}
	if dto.MaxFiles > 0 {
		limits.MaxFiles = dto.MaxFiles
	}

	return limits, nil
}

// buildGroups validates the group map and returns the groups sorted by name.
func buildGroups(dtos map[string]string) ([]domain.FileGroup, error) {
	groups := make([]domain.FileGroup, 0, len(dtos))

	for name, pattern := range dtos {
		if !validGroupNameRegex.MatchString(name) {
			return nil, errors.Join(domain.ErrInvalidGroupName,
				zerr.With(zerr.New("group names may only contain letters, digits, '.', '_' and '-'"), "group", name))
		}
		if pattern == "" || !doublestar.ValidatePattern(pattern) {
			return nil, errors.Join(domain.ErrInvalidPattern,
				zerr.With(zerr.With(zerr.New("malformed glob"), "group", name), "pattern", pattern))
		}

		groups = append(groups, domain.FileGroup{Name: name, Pattern: pattern})
	}

	slices.SortFunc(groups, func(a, b domain.FileGroup) int {
		return strings.Compare(a.Name, b.Name)
	})

	return groups, nil
}

// validateOutput cleans the configured output path and rejects paths outside the distribution tree.
func validateOutput(output string) (string, error) {
	cleaned := filepath.Clean(output)
	if filepath.IsAbs(cleaned) || cleaned == "." || cleaned == ".." ||
		strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errors.Join(domain.ErrInvalidOutput,
			zerr.With(zerr.New("output escapes the distribution directory"), "output", output))
	}
	return cleaned, nil
}

// resolvePath resolves value against base, falling back to def when value is empty.
func resolvePath(base, value, def string) string {
	if value == "" {
		return def
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Clean(filepath.Join(base, value))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered or provided by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Join(domain.ErrConfigReadFailed,
			zerr.With(zerr.Wrap(err, "failed to read file"), "path", configPath))
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return errors.Join(domain.ErrConfigParseFailed,
			zerr.With(zerr.Wrap(parseErr, "failed to parse YAML"), "path", configPath))
	}

	return nil
}
