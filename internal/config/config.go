// Package config provides the configuration schema and loader of the
// autocorrect service.
package config

import (
	"autocorrect/internal/lexicon"
	"autocorrect/pkg/options"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Redis     RedisConfig     `yaml:"redis"`
	Corrector CorrectorConfig `yaml:"corrector"`

	// DictionaryDir is the directory that resource paths in Languages are
	// relative to.
	DictionaryDir string `yaml:"dictionary_dir"`

	// Languages maps language codes to their resource files. When omitted
	// the built-in English, Indonesian and Spanish table is used.
	Languages lexicon.Table `yaml:"languages"`
}

type ServerConfig struct {
	// ListenAddr is the TCP address the HTTP server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	LogLevel LogLevel `yaml:"log_level"`
}

// RedisConfig locates the custom dictionary. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type CorrectorConfig struct {
	MaxEditDistance int             `yaml:"max_edit_distance"`
	TopK            int             `yaml:"top_k"`
	Ranking         options.Ranking `yaml:"ranking"`
	BigramWeight    float64         `yaml:"bigram_weight"`
}

// Options converts c into corrector options.
func (c CorrectorConfig) Options() []options.Options {
	return []options.Options{
		options.WithMaxEditDistance(c.MaxEditDistance),
		options.WithTopK(c.TopK),
		options.WithRanking(c.Ranking),
		options.WithBigramWeight(c.BigramWeight),
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	d := options.DefaultOptions
	return &Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
			LogLevel:   LogInfo,
		},
		Corrector: CorrectorConfig{
			MaxEditDistance: d.MaxEditDistance,
			TopK:            d.TopK,
			Ranking:         d.Ranking,
			BigramWeight:    d.BigramWeight,
		},
		DictionaryDir: "dictionaries",
		Languages:     lexicon.DefaultTable(),
	}
}
