package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	assert "github.com/stretchr/testify/assert"
)

// Defaults persist between stores
func Test_defaults_001(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "modalica", defaultsFile)

	d, err := NewDefaults(path)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("", d.GetString(keySession))
	assert.NoError(d.Set(keySession, "abc"))
	assert.NoError(d.Set(keyChatModel, "gpt-4"))

	d2, err := NewDefaults(path)
	assert.NoError(err)
	assert.Equal("abc", d2.GetString(keySession))
	assert.Equal("gpt-4", d2.GetString(keyChatModel))

	assert.NoError(d2.Set(keySession, ""))
	d3, err := NewDefaults(path)
	assert.NoError(err)
	assert.Equal("", d3.GetString(keySession))
}

// Defaults without a path are not persisted
func Test_defaults_002(t *testing.T) {
	assert := assert.New(t)
	d, err := NewDefaults("")
	assert.NoError(err)
	assert.NoError(d.Set(keySession, "abc"))
	assert.Equal("abc", d.GetString(keySession))
}

// Model configuration from a file, overridden by flags
func Test_config_001(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "chat.yaml")
	assert.NoError(os.WriteFile(path, []byte("model_name: gpt-3.5-turbo\ntemperature: 0.1\nsystem: Answer in <5 words\n"), 0o600))

	flags := ModelFlags{Config: path, MaxTokens: types.Ptr(uint(50))}
	config, err := flags.ChatModelConfig(nil, "")
	assert.NoError(err)
	assert.Equal("gpt-3.5-turbo", config.ModelName)
	assert.Equal(types.Ptr(0.1), config.Temperature)
	assert.Equal(types.Ptr(uint(50)), config.MaxTokens)
	assert.Equal("Answer in <5 words", config.System)

	flags.Model = "gpt-4"
	config, err = flags.ChatModelConfig(nil, "Be terse")
	assert.NoError(err)
	assert.Equal("gpt-4", config.ModelName)
	assert.Equal("Be terse", config.System)
}

// JSON configuration and stored default models
func Test_config_002(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "text.json")
	assert.NoError(os.WriteFile(path, []byte(`{"temperature": 0.5}`), 0o600))

	defaults, _ := NewDefaults("")
	defaults.Set(keyTextModel, "llama3")
	config, err := ModelFlags{Config: path}.ModelConfig(defaults, keyTextModel)
	assert.NoError(err)
	assert.Equal(schema.ModelConfig{ModelName: "llama3", Temperature: types.Ptr(0.5)}, config)
}

// Empty configuration files are allowed
func Test_config_003(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "empty.yaml")
	assert.NoError(os.WriteFile(path, nil, 0o600))

	var history []schema.Turn
	assert.NoError(loadConfig(path, &history))
	assert.Empty(history)
	assert.NoError(loadConfig("", &history))
	assert.Error(loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), &history))
}

// Message history from YAML
func Test_config_004(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "history.yaml")
	assert.NoError(os.WriteFile(path, []byte("- role: system\n  content: Be terse\n- role: user\n  content: hi\n"), 0o600))

	var history []schema.Turn
	assert.NoError(loadConfig(path, &history))
	assert.Equal([]schema.Turn{schema.SystemTurn("Be terse"), schema.UserTurn("hi")}, history)
}

func Test_image_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("cat.png", imagePath("cat.png", 0, 1))
	assert.Equal("cat-1.png", imagePath("cat.png", 0, 2))
	assert.Equal("out/cat-2", imagePath("out/cat", 1, 2))
}

func Test_table_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("No results", TableSummary(0, 0, 0))
	assert.Equal("All 3 rows displayed", TableSummary(3, 0, 3))
	assert.Equal("Displaying rows 2-3 of 5", TableSummary(2, 1, 5))
}

// A failed turn keeps the system instruction for the next prompt
func Test_repl_001(t *testing.T) {
	assert := assert.New(t)
	var systems []string
	var errs strings.Builder
	loop := &repl{
		in:          strings.NewReader("first\nsecond\nthird\n"),
		errs:        &errs,
		interactive: true,
		turn: func(prompt string, config schema.ChatModelConfig) error {
			systems = append(systems, config.System)
			if prompt == "first" {
				return errors.New("unavailable")
			}
			return nil
		},
	}
	assert.NoError(loop.Run(context.Background(), schema.ChatModelConfig{System: "Be terse"}))
	assert.Equal([]string{"Be terse", "Be terse", ""}, systems)
	assert.Contains(errs.String(), "unavailable")
}

// Without a terminal a failed turn ends the loop
func Test_repl_002(t *testing.T) {
	assert := assert.New(t)
	var prompts []string
	loop := &repl{
		in: strings.NewReader("first\nsecond\n"),
		turn: func(prompt string, config schema.ChatModelConfig) error {
			prompts = append(prompts, prompt)
			return errors.New("unavailable")
		},
	}
	assert.EqualError(loop.Run(context.Background(), schema.ChatModelConfig{}), "unavailable")
	assert.Equal([]string{"first"}, prompts)
}

// Commands and blank lines
func Test_repl_003(t *testing.T) {
	assert := assert.New(t)
	var prompts []string
	resets := 0
	loop := &repl{
		in: strings.NewReader("\n  hello  \n/reset\n/exit\nignored\n"),
		turn: func(prompt string, config schema.ChatModelConfig) error {
			prompts = append(prompts, prompt)
			return nil
		},
		reset: func() error {
			resets++
			return nil
		},
	}
	assert.NoError(loop.Run(context.Background(), schema.ChatModelConfig{}))
	assert.Equal([]string{"hello"}, prompts)
	assert.Equal(1, resets)
}
