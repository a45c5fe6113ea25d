package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Decode strictly decodes a generic document (as produced by viper, YAML, or
// a CLI flag set already collected into a map) into a Config. Unknown
// top-level keys are an error, per spec §6 ("Schema validation rejects
// unknown top-level keys and out-of-range numeric values").
func Decode(doc map[string]any) (Config, error) {
	var c Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &c,
	})
	if err != nil {
		return Config{}, fmt.Errorf("build config decoder: %w", err)
	}
	if err := decoder.Decode(doc); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadViper reads the bound viper instance (flags, env, config file already
// merged by the caller's cobra.OnInitialize hook) into a Config using the
// same strict decoding as Decode.
func LoadViper(v *viper.Viper) (Config, error) {
	return Decode(v.AllSettings())
}
