package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the config
const EnvPrefix = "SCAFFOLD_"

// DotEnvFile is read from the working directory before the real environment
const DotEnvFile = ".env"

// LoadOptions tunes where configuration is read from
type LoadOptions struct {
	// WorkDir holds the project config and .env file. Empty means the cwd.
	WorkDir string

	// UserConfigPath overrides the XDG user config file
	UserConfigPath string

	// Overrides are dotted keys applied last, typically from CLI flags
	Overrides map[string]interface{}
}

// Load reads configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions layers every configuration source and unmarshals the result
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = filepath.Join(paths.ConfigDir(), paths.UserConfigFile)
	}
	if err := loadTOMLIfExists(k, userPath); err != nil {
		return nil, err
	}

	workDir := opts.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to get current directory")
		}
		workDir = cwd
	}

	// 3. Project config
	if err := loadTOMLIfExists(k, filepath.Join(workDir, paths.ProjectConfigFile)); err != nil {
		return nil, err
	}

	// 4. .env file
	if err := loadDotEnv(k, filepath.Join(workDir, DotEnvFile)); err != nil {
		return nil, err
	}

	// 5. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 6. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("baseDir", cfg.Output.BaseDir).
		Str("overwrite", cfg.Output.Overwrite).
		Str("mode", cfg.Execution.Mode).
		Msg("Configuration loaded")
	return cfg, nil
}

// Default returns the embedded defaults without reading any other source
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(err)
	}
	return cfg
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

func loadTOMLIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

// loadDotEnv reads SCAFFOLD_* entries from a .env file without touching
// the process environment.
func loadDotEnv(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to read %s", path).
			WithDetail("path", path)
	}

	values := make(map[string]interface{})
	for name, value := range vars {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		if key := envKey(name); key != "" {
			values[key] = value
		}
	}
	if len(values) == 0 {
		return nil
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load .env values")
	}
	return nil
}

// envKey maps SCAFFOLD_SECTION_KEY to section.key. The path override
// variables are not config keys and are skipped, except SCAFFOLD_BASE_DIR
// which sets output.base_dir.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	switch key {
	case "base_dir":
		return "output.base_dir"
	case "config_dir", "state_dir":
		return ""
	}

	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return ""
	}
	return section + "." + rest
}
