// Package config loads ecbb settings from an optional YAML file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/smallyu/go-tpm-ec/internal/crypto/curves"
)

const (
	// DefaultFile is the config file looked up in each search path.
	DefaultFile = "ecbb.yaml"

	// EnvPrefix prefixes environment overrides, e.g. ECBB_LOG_LEVEL.
	EnvPrefix = "ECBB"
)

// Log configures the CLI logger.
type Log struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// Config holds the CLI settings.
type Config struct {
	Curve string `mapstructure:"curve" validate:"required,curve"`
	Hash  string `mapstructure:"hash" validate:"oneof=sha256 sha384 sha512 sha3-256 sha3-512 blake2b-256 blake2b-512"`
	Log   Log    `mapstructure:"log"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"curve":      "curve",
	"hash":       "hash",
	"log-level":  "log.level",
	"log-format": "log.format",
}

var defaults = map[string]any{
	"curve":      curves.NameSecp256k1,
	"hash":       "sha256",
	"log.level":  "info",
	"log.format": "console",
}

// Loader reads a Config through viper.
type Loader struct {
	viper    *viper.Viper
	validate *validator.Validate
	name     string
	paths    []string
}

// NewLoader returns a loader that searches paths for name.  The file is
// optional; defaults apply when it is absent.
func NewLoader(name string, paths ...string) *Loader {
	v := viper.New()

	configType := strings.TrimPrefix(path.Ext(name), ".")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName(strings.TrimSuffix(name, path.Ext(name)))
	v.SetConfigType(configType)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	return &Loader{
		viper:    v,
		validate: newValidator(),
		name:     name,
		paths:    paths,
	}
}

// SetFile reads configuration from an explicit file instead of searching.
// Unlike a searched file, an explicit file must exist.
func (l *Loader) SetFile(file string) {
	l.viper.SetConfigFile(file)
}

// RegisterFlags defines the config flags on fs and binds them.
func (l *Loader) RegisterFlags(fs *pflag.FlagSet) error {
	fs.String("curve", curves.NameSecp256k1, "curve name")
	fs.String("hash", "sha256", "digest for --message inputs")
	fs.String("log-level", "info", "log level")
	fs.String("log-format", "console", "log format (console|json)")
	return l.BindFlags(fs)
}

// BindFlags binds any config flags present on fs.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for flag, key := range flagKeys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := l.viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads, merges and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	if err := l.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := new(Config)
	if err := l.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.Hash = strings.ToLower(cfg.Hash)

	if err := l.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ConfigFileUsed returns the file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.viper.ConfigFileUsed()
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails on an empty tag or a nil function.
	_ = v.RegisterValidation("curve", func(fl validator.FieldLevel) bool {
		_, ok := curves.Lookup(fl.Field().String())
		return ok
	})
	return v
}
