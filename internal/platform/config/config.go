package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"

	fileName = "config.yaml"
	envFile  = ".env"
)

type Config struct {
	DataDir        string
	StatePath      string
	DBPath         string
	ReportDir      string
	Store          string
	LogMode        string
	Timezone       string
	CapMarkAtTotal bool
}

// fileConfig mirrors <data-dir>/config.yaml. Pointers distinguish unset keys.
type fileConfig struct {
	Store          *string `yaml:"store"`
	LogMode        *string `yaml:"log_mode"`
	Timezone       *string `yaml:"timezone"`
	CapMarkAtTotal *bool   `yaml:"cap_mark_at_total"`
}

// New resolves configuration for dataDir: defaults, then config.yaml, then
// .env files and ATTEND_* environment variables.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:   dataDir,
		StatePath: filepath.Join(dataDir, "attendanceData.json"),
		DBPath:    filepath.Join(dataDir, "attend.db"),
		ReportDir: filepath.Join(dataDir, "reports"),
		Store:     StoreFile,
		LogMode:   "dev",
		Timezone:  "Local",
	}
	if err := cfg.applyFile(filepath.Join(dataDir, fileName)); err != nil {
		return Config{}, err
	}
	// godotenv.Load never overrides variables already present in the environment.
	for _, path := range []string{envFile, filepath.Join(dataDir, envFile)} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if fc.Store != nil {
		c.Store = *fc.Store
	}
	if fc.LogMode != nil {
		c.LogMode = *fc.LogMode
	}
	if fc.Timezone != nil {
		c.Timezone = *fc.Timezone
	}
	if fc.CapMarkAtTotal != nil {
		c.CapMarkAtTotal = *fc.CapMarkAtTotal
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("ATTEND_STORE"); ok && v != "" {
		c.Store = v
	}
	if v, ok := os.LookupEnv("ATTEND_LOG_MODE"); ok && v != "" {
		c.LogMode = v
	}
	if v, ok := os.LookupEnv("ATTEND_TIMEZONE"); ok && v != "" {
		c.Timezone = v
	}
	if v, ok := os.LookupEnv("ATTEND_CAP_MARK_AT_TOTAL"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ATTEND_CAP_MARK_AT_TOTAL: %w", err)
		}
		c.CapMarkAtTotal = b
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("unsupported store %q", c.Store)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the time zone statistics are bucketed in.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
