package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Output   OutputConfig `mapstructure:"output"`
	Sine     SineConfig   `mapstructure:"sine"`
}

// OutputConfig describes the PCM layout of files written by wavtool.
type OutputConfig struct {
	SampleRate int `mapstructure:"sample_rate"`
	BitDepth   int `mapstructure:"bit_depth"`
}

type SineConfig struct {
	Frequency float64 `mapstructure:"frequency"`
	Seconds   float64 `mapstructure:"seconds"`
	Amplitude float64 `mapstructure:"amplitude"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

var errInvalidOutput = errors.New("invalid output settings")

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Output: OutputConfig{
			SampleRate: 44100,
			BitDepth:   16,
		},
		Sine: SineConfig{
			Frequency: 440,
			Seconds:   4,
			Amplitude: 0.5,
		},
	}
}

// flagKeys maps flag names to their config keys.
var flagKeys = map[string]string{
	"log-level":          "log_level",
	"output-sample-rate": "output.sample_rate",
	"output-bit-depth":   "output.bit_depth",
	"sine-frequency":     "sine.frequency",
	"sine-seconds":       "sine.seconds",
	"sine-amplitude":     "sine.amplitude",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.Int("output-sample-rate", defaults.Output.SampleRate, "Sample rate of generated files in Hz")
	fs.Int("output-bit-depth", defaults.Output.BitDepth, "Bit depth of generated files (16|24|32)")
	fs.Float64("sine-frequency", defaults.Sine.Frequency, "Frequency of the generated tone in Hz")
	fs.Float64("sine-seconds", defaults.Sine.Seconds, "Length of the generated tone in seconds")
	fs.Float64("sine-amplitude", defaults.Sine.Amplitude, "Peak amplitude of the generated tone (0..1]")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)

	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("PCMWAV")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("wavtool")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects output settings the encoder can't write.
func (c Config) Validate() error {
	switch c.Output.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: bit depth %d", errInvalidOutput, c.Output.BitDepth)
	}

	if c.Output.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", errInvalidOutput, c.Output.SampleRate)
	}

	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("output.sample_rate", c.Output.SampleRate)
	v.SetDefault("output.bit_depth", c.Output.BitDepth)
	v.SetDefault("sine.frequency", c.Sine.Frequency)
	v.SetDefault("sine.seconds", c.Sine.Seconds)
	v.SetDefault("sine.amplitude", c.Sine.Amplitude)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	return nil
}
