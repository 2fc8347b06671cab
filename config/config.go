// Package config resolves runtime settings from defaults, an optional YAML
// file, the environment (including a .env file) and finally CLI flags.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/medcost/pkg/errors"
	"github.com/YuminosukeSato/medcost/pkg/log"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MEDCOST_"

// Token bucket defaults for the predict API.
const (
	DefaultPredictRate  = 20.0
	DefaultPredictBurst = 40
)

// Config holds all runtime configuration.
type Config struct {
	ModelPath    string  `yaml:"model_path"`
	DatasetPath  string  `yaml:"dataset_path"`
	Addr         string  `yaml:"addr"`
	LogLevel     string  `yaml:"log_level"`
	LogFormat    string  `yaml:"log_format"` // "text" or "json"
	PredictRate  float64 `yaml:"predict_rate"` // requests per second on the predict API
	PredictBurst int     `yaml:"predict_burst"`
	ChartDir     string  `yaml:"chart_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ModelPath:    "models/model.json",
		DatasetPath:  "data/insurance.csv",
		Addr:         ":8080",
		LogLevel:     "info",
		LogFormat:    "json",
		PredictRate:  DefaultPredictRate,
		PredictBurst: DefaultPredictBurst,
		ChartDir:     "charts",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), then the process environment and any dotenv files.
func Load(path string, dotenv ...string) (Config, error) {
	c := Default()
	if path != "" {
		if err := c.LoadFromFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := c.LoadEnv(dotenv...); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFromFile reads a YAML config file and merges its non-zero values into c.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIOError("read config", path, err)
	}
	var fc Config
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return errors.NewValidationError("config", "parse yaml: "+err.Error(), path)
	}
	c.merge(fc)
	return nil
}

func (c *Config) merge(o Config) {
	if o.ModelPath != "" {
		c.ModelPath = o.ModelPath
	}
	if o.DatasetPath != "" {
		c.DatasetPath = o.DatasetPath
	}
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.PredictRate != 0 {
		c.PredictRate = o.PredictRate
	}
	if o.PredictBurst != 0 {
		c.PredictBurst = o.PredictBurst
	}
	if o.ChartDir != "" {
		c.ChartDir = o.ChartDir
	}
}

// LoadEnv applies MEDCOST_* variables. Values already set in the process
// environment win over values read from dotenv files; missing dotenv files
// are ignored.
func (c *Config) LoadEnv(dotenv ...string) error {
	fileVars := map[string]string{}
	for _, f := range dotenv {
		vars, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Named("config").Debug("dotenv file not found", "file", f)
				continue
			}
			return errors.NewIOError("read dotenv", f, err)
		}
		for k, v := range vars {
			fileVars[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}
	return c.applyEnv(lookup)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("MODEL_PATH", &c.ModelPath)
	str("DATASET_PATH", &c.DatasetPath)
	str("ADDR", &c.Addr)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("CHART_DIR", &c.ChartDir)

	if v, ok := lookup(EnvPrefix + "PREDICT_RATE"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.NewValidationError(EnvPrefix+"PREDICT_RATE", "not a number", v)
		}
		c.PredictRate = f
	}
	if v, ok := lookup(EnvPrefix + "PREDICT_BURST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewValidationError(EnvPrefix+"PREDICT_BURST", "not an integer", v)
		}
		c.PredictBurst = n
	}
	return nil
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ModelPath) == "" {
		return errors.NewValidationError("model_path", "is required", c.ModelPath)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.NewValidationError("addr", "is required", c.Addr)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.NewValidationError("log_level", "must be debug, info, warn or error", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.NewValidationError("log_format", `must be "text" or "json"`, c.LogFormat)
	}
	if c.PredictRate <= 0 {
		return errors.NewValidationError("predict_rate", "must be positive", c.PredictRate)
	}
	if c.PredictBurst < 1 {
		return errors.NewValidationError("predict_burst", "must be at least 1", c.PredictBurst)
	}
	return nil
}
