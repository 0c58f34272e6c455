// Package config loads envsync configuration: embedded defaults, then the
// optional user file under the XDG config dir, then ENVSYNC_* environment
// overrides.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/envsync/pkg/errors"
)

//go:embed defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// Config is the resolved envsync configuration.
type Config struct {
	Mount    MountConfig    `koanf:"mount"`
	Artifact ArtifactConfig `koanf:"artifact"`
	Vars     VarsConfig     `koanf:"vars"`
}

type MountConfig struct {
	Path string `koanf:"path"`
}

type ArtifactConfig struct {
	Source     string `koanf:"source"`
	TargetName string `koanf:"target_name"`
}

type VarsConfig struct {
	Script string `koanf:"script"`
}

// UserConfigPath is where the optional override file lives.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "envsync", "envsync.toml")
}

// Load builds the configuration from defaults, the user file (if present)
// and ENVSYNC_* environment variables, in that precedence order.
func Load() (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default configuration")
	}

	// 2. User config file, if it exists
	userPath := UserConfigPath()
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userPath)
		}
	}

	// 3. Environment overrides: ENVSYNC_MOUNT_PATH -> mount.path
	if err := k.Load(env.Provider("ENVSYNC_", ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, "ENVSYNC_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.Artifact.Source = expandHome(cfg.Artifact.Source)
	cfg.Vars.Script = expandHome(cfg.Vars.Script)
	return &cfg, nil
}

// GetUserDefaultsContent returns the commented defaults file for genconfig.
func GetUserDefaultsContent() string {
	return string(defaultConfig)
}

// expandHome resolves a leading ~/ against the current user's home.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
