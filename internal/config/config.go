// Package config loads the settings of the command line tool from an
// optional YAML file and from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported digest algorithms.
const (
	HashSHA512   = "sha512"
	HashSHA3_512 = "sha3-512"
)

type Config struct {
	// Bit length of p for new key pairs: 1024 | 2048 | 3072.
	KeyBits int `yaml:"key_bits"`

	// Concurrent (p, q) search workers; 0 derives the count from the CPUs.
	Workers int `yaml:"workers"`

	// Miller-Rabin witnesses for p candidates and key validation.
	Witnesses int `yaml:"witnesses"`

	// Message digest: sha512 | sha3-512.
	Hash string `yaml:"hash"`

	Log struct {
		// dev | prod
		Env   string `yaml:"env"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the YAML file at path (if path is not empty), fills the unset
// values with defaults, then applies the DSA_* environment overrides.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	c.applyDefaults()
	c.applyEnv()
	return &c, nil
}

// LoadEnvFile loads variables from a .env file into the environment,
// without overriding variables which are already set. A missing file is
// not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

func (c *Config) applyDefaults() {
	if c.KeyBits == 0 {
		c.KeyBits = 1024
	}
	if c.Witnesses == 0 {
		c.Witnesses = 10
	}
	if c.Hash == "" {
		c.Hash = HashSHA512
	}
	if c.Log.Env == "" {
		c.Log.Env = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) applyEnv() {
	if v, ok := getEnvInt("DSA_KEY_BITS"); ok {
		c.KeyBits = v
	}
	if v, ok := getEnvInt("DSA_WORKERS"); ok {
		c.Workers = v
	}
	if v, ok := getEnvInt("DSA_WITNESSES"); ok {
		c.Witnesses = v
	}
	if v, ok := getEnvStr("DSA_HASH"); ok {
		c.Hash = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := getEnvStr("DSA_LOG_ENV"); ok {
		c.Log.Env = v
	}
	if v, ok := getEnvStr("DSA_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
}

// Validate checks the values which the tool cannot work around.
func (c *Config) Validate() error {
	switch c.KeyBits {
	case 1024, 2048, 3072:
	default:
		return fmt.Errorf("wrong key size %d: the only allowed values are 1024, 2048, 3072", c.KeyBits)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative (got %d)", c.Workers)
	}
	if c.Witnesses < 1 {
		return fmt.Errorf("witnesses must be at least 1 (got %d)", c.Witnesses)
	}
	switch c.Hash {
	case HashSHA512, HashSHA3_512:
	default:
		return fmt.Errorf("unknown hash %q (allowed: %s, %s)", c.Hash, HashSHA512, HashSHA3_512)
	}
	return nil
}

// ---- env helpers ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
