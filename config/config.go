// Package config loads govox settings from a config file, GOVOX_*
// environment variables and command line flags.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ErrUnknownLogFormat is returned for log formats other than text and json.
var ErrUnknownLogFormat = errors.New("unknown log format")

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Nav    NavConfig    `mapstructure:"nav"`
	Parser ParserConfig `mapstructure:"parser"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type NavConfig struct {
	// Wrap selects wrapping cursors.
	Wrap bool `mapstructure:"wrap"`
	// Start is the id of the element navigation starts on.
	Start string `mapstructure:"start"`
}

type ParserConfig struct {
	// Desktop puts parsed documents under a desktop node.
	Desktop bool `mapstructure:"desktop"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("nav.wrap", true)
	v.SetDefault("nav.start", "")
	v.SetDefault("parser.desktop", false)
}

// Load reads the configuration into v and decodes it. path may be empty, in
// which case only defaults, environment and bound flags apply.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("GOVOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return &cfg, nil
}

// Apply configures logger with the level and formatter of c.
func (c LogConfig) Apply(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", c.Level)
	}
	logger.SetLevel(level)

	switch strings.ToLower(c.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Wrapf(ErrUnknownLogFormat, "%q", c.Format)
	}
	logger.SetOutput(os.Stderr)
	return nil
}
