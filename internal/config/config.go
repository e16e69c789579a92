// Package config loads minijs settings from a minijs.{toml,yaml,json} file,
// MINIJS_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/orizon-lang/minijs/internal/logger"
	"github.com/orizon-lang/minijs/internal/optimize"
	"github.com/orizon-lang/minijs/internal/transform"
)

// FileName is the configuration file base name, without extension.
const FileName = "minijs"

// EnvPrefix prefixes every environment variable, as in MINIJS_OUT_DIR.
const EnvPrefix = "MINIJS"

// Setting keys. Flags bound with BindFlags use the same names.
const (
	KeyMinify    = "minify"
	KeySourceMap = "source-map"
	KeyPasses    = "passes"
	KeyOutDir    = "out-dir"
	KeyRequires  = "requires"
	KeyLogFormat = "log.format"
	KeyLogLevel  = "log.level"
)

// Config holds the build settings.
type Config struct {
	Minify    bool   `toml:"minify" mapstructure:"minify"`
	SourceMap bool   `toml:"source-map" mapstructure:"source-map"`
	OutDir    string `toml:"out-dir" mapstructure:"out-dir"`
	// Passes are extra built-in passes run after the minifier preset.
	Passes []string `toml:"passes" mapstructure:"passes"`
	// Requires is a semantic version constraint on the tool, e.g. ">= 0.4".
	Requires string        `toml:"requires,omitempty" mapstructure:"requires"`
	Log      logger.Config `toml:"log" mapstructure:"log"`
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Minify: true,
		Passes: []string{},
		Log:    logger.NewConfig(),
	}
}

// NewViper returns a viper instance primed with the defaults and the
// environment binding.
func NewViper() *viper.Viper {
	v := viper.New()

	d := NewConfig()
	v.SetDefault(KeyMinify, d.Minify)
	v.SetDefault(KeySourceMap, d.SourceMap)
	v.SetDefault(KeyOutDir, d.OutDir)
	v.SetDefault(KeyPasses, d.Passes)
	v.SetDefault(KeyRequires, d.Requires)
	v.SetDefault(KeyLogFormat, d.Log.Format)
	v.SetDefault(KeyLogLevel, d.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// MINIJS_SOURCE_MAP, MINIJS_LOG_LEVEL.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	return v
}

// BindFlags registers every flag of fs whose name is a setting key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case KeyMinify, KeySourceMap, KeyPasses, KeyOutDir, KeyRequires:
			err = multierr.Append(err, v.BindPFlag(f.Name, f))
		case "log-format":
			err = multierr.Append(err, v.BindPFlag(KeyLogFormat, f))
		case "log-level":
			err = multierr.Append(err, v.BindPFlag(KeyLogLevel, f))
		}
	})
	return err
}

// Load reads the configuration. When file is empty, minijs.* is searched
// for in dirs (the working directory when none are given) and a missing
// file is not an error. The result is validated against toolVersion.
func Load(v *viper.Viper, file, toolVersion string, dirs ...string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		if len(dirs) == 0 {
			dirs = []string{"."}
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := c.Validate(toolVersion); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every problem with c at once.
func (c Config) Validate(toolVersion string) error {
	var err error

	for _, name := range c.Passes {
		if _, ok := optimize.Lookup(name); !ok {
			err = multierr.Append(err, fmt.Errorf("unknown pass %q (known: %s)", name, strings.Join(optimize.Names(), ", ")))
		}
	}

	if c.Requires != "" {
		err = multierr.Append(err, CheckCompatibility(c.Requires, toolVersion))
	}

	err = multierr.Append(err, c.Log.Validate())
	return err
}

// Plugins resolves Passes to pass instances.
func (c Config) Plugins() ([]transform.Pass, error) {
	passes := make([]transform.Pass, 0, len(c.Passes))
	for _, name := range c.Passes {
		pass, ok := optimize.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown pass %q", name)
		}
		passes = append(passes, pass)
	}
	return passes, nil
}

// CheckCompatibility reports an error when version does not satisfy the
// constraint requires.
func CheckCompatibility(requires, version string) error {
	constraint, err := semver.NewConstraint(requires)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("configuration requires minijs %s, running %s", requires, v)
	}
	return nil
}

// WriteTOML encodes c as TOML.
func WriteTOML(w io.Writer, c Config) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Init writes the default configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return multierr.Append(WriteTOML(f, NewConfig()), f.Close())
}
