// Package config loads the YAML configuration file of the arith command.
//
//	max_operators: 10
//	custom_measurements:
//	  - measurements.custom
//	cache_size: 1024
//	log:
//	  level: info
//	  file: /var/log/arith.log
//	  max_size_mb: 100
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("fieldname", validateFieldName)
}

// validateFieldName checks that a custom measurement could appear as a
// field in an equation.
func validateFieldName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	for i := range len(s) {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '.') {
			return false
		}
	}
	return true
}

type Config struct {
	MaxOperators       int      `yaml:"max_operators" validate:"gte=0,lte=1000"`
	CustomMeasurements []string `yaml:"custom_measurements" validate:"dive,fieldname"`
	CacheSize          int      `yaml:"cache_size" validate:"gte=0"`
	Log                Log      `yaml:"log"`
}

type Log struct {
	Level     string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" validate:"gte=0"`
}

func Default() *Config {
	return &Config{
		CacheSize: 1024,
		Log:       Log{Level: "info", MaxSizeMB: 100},
	}
}

// Load reads the configuration in the file named path.  Settings absent
// from the file keep their values from Default.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(b []byte) (*Config, error) {
	c := Default()
	d := yaml.NewDecoder(bytes.NewReader(b))
	d.KnownFields(true)
	if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	return validate.Struct(c)
}
