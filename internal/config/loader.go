package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"autocorrect/internal/lexicon"
)

// Load reads the YAML configuration file at path, applies environment
// overrides and returns a validated [Config]. An empty path yields
// [Default] with overrides applied.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		if err := ApplyEnv(cfg); err != nil {
			return nil, err
		}
		if err := Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over [Default] and validates
// the result. Environment overrides are not applied.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg, err := decode(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := Default()
	// A languages section replaces the built-in table instead of merging
	// into it.
	cfg.Languages = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = lexicon.DefaultTable()
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with HTTP_ADDR, REDIS_ADDR, REDIS_PASSWORD,
// REDIS_DB, DICTIONARY_DIR and LOG_LEVEL when they are set.
func ApplyEnv(cfg *Config) error {
	cfg.Server.ListenAddr = getenv("HTTP_ADDR", cfg.Server.ListenAddr)
	cfg.Server.LogLevel = LogLevel(getenv("LOG_LEVEL", string(cfg.Server.LogLevel)))
	cfg.Redis.Addr = getenv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getenv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.DictionaryDir = getenv("DICTIONARY_DIR", cfg.DictionaryDir)

	db, err := getEnvInt("REDIS_DB", cfg.Redis.DB)
	if err != nil {
		return err
	}
	cfg.Redis.DB = db
	return nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("redis.db %d must not be negative", cfg.Redis.DB))
	}

	c := cfg.Corrector
	if c.MaxEditDistance < 0 {
		errs = append(errs, fmt.Errorf("corrector.max_edit_distance %d must not be negative", c.MaxEditDistance))
	}
	if c.TopK < 1 {
		errs = append(errs, fmt.Errorf("corrector.top_k %d must be at least 1", c.TopK))
	}
	if !c.Ranking.IsValid() {
		errs = append(errs, fmt.Errorf("corrector.ranking %q is invalid; valid values: weighted, bigram-first", c.Ranking))
	}
	if c.BigramWeight <= 0 {
		errs = append(errs, fmt.Errorf("corrector.bigram_weight %v must be positive", c.BigramWeight))
	}

	if err := cfg.Languages.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("languages: %w", err))
	}

	return errors.Join(errs...)
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, v, err)
	}
	return i, nil
}
