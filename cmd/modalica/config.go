package main

import (
	"errors"
	"io"
	"os"

	// Packages
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ModelFlags are the model parameters of the generate commands. Values
// from a configuration file are overridden by flags.
type ModelFlags struct {
	Config      string   `name:"config" type:"existingfile" help:"Model configuration file (YAML or JSON)" optional:""`
	Model       string   `name:"model" help:"Model name" optional:""`
	Temperature *float64 `name:"temperature" help:"Sampling temperature" optional:""`
	MaxTokens   *uint    `name:"max-tokens" help:"Maximum number of tokens to generate" optional:""`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ModelConfig returns the model configuration, with the model falling back
// to the stored default for key
func (f ModelFlags) ModelConfig(defaults *Defaults, key string) (schema.ModelConfig, error) {
	var config schema.ModelConfig
	if err := loadConfig(f.Config, &config); err != nil {
		return config, err
	}
	f.apply(&config)
	if config.ModelName == "" && defaults != nil {
		config.ModelName = defaults.GetString(key)
	}
	return config, nil
}

// ChatModelConfig returns the chat configuration, with the system
// instruction from the flag when it is set
func (f ModelFlags) ChatModelConfig(defaults *Defaults, system string) (schema.ChatModelConfig, error) {
	var config schema.ChatModelConfig
	if err := loadConfig(f.Config, &config); err != nil {
		return config, err
	}
	f.apply(&config.ModelConfig)
	if config.ModelName == "" && defaults != nil {
		config.ModelName = defaults.GetString(keyChatModel)
	}
	if system != "" {
		config.System = system
	}
	return config, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (f ModelFlags) apply(config *schema.ModelConfig) {
	if f.Model != "" {
		config.ModelName = f.Model
	}
	if f.Temperature != nil {
		config.Temperature = f.Temperature
	}
	if f.MaxTokens != nil {
		config.MaxTokens = f.MaxTokens
	}
}

// loadConfig decodes a YAML or JSON file into v. An empty path or an empty
// file leaves v unchanged.
func loadConfig(path string, v any) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
