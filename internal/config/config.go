// Package config loads the application configuration from an optional YAML
// file plus APIDOCGEN_* environment overrides. The resulting Config is passed
// by reference into each pipeline stage; there is no package-global state.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LLMConfig configures the text-generation service client.
type LLMConfig struct {
	APIKey             string        `mapstructure:"api_key"`
	BaseURL            string        `mapstructure:"base_url"`
	Model              string        `mapstructure:"model"`
	Timeout            time.Duration `mapstructure:"timeout"`
	ClassifyMaxTokens  int           `mapstructure:"classify_max_tokens"`
	SynthesisMaxTokens int           `mapstructure:"synthesis_max_tokens"`
}

// PipelineConfig configures the scan/classify/load/synthesize pipeline.
type PipelineConfig struct {
	// Extensions lists the source-file extensions the content loader accepts.
	Extensions []string `mapstructure:"extensions"`
	// ContentBudget caps the serialized file contents embedded into the
	// synthesis prompt, in characters.
	ContentBudget int `mapstructure:"content_budget"`
	// Output is the default artifact filename for documentation runs.
	Output string `mapstructure:"output"`
}

// ServerConfig configures the documentation HTTP server.
type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	UITitle string `mapstructure:"ui_title"`
	Theme   string `mapstructure:"theme"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load loads configuration from the given file (optional; pass "" to use only
// defaults and environment variables).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("apidocgen")
		// A missing default config file is fine; defaults and env cover it.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("APIDOCGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The original tool reads its key from OPENAI_API_KEY; keep that contract.
	if config.LLM.APIKey == "" {
		config.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Every key needs a default so AutomaticEnv can bind it.
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.timeout", 120*time.Second)
	v.SetDefault("llm.classify_max_tokens", 1000)
	v.SetDefault("llm.synthesis_max_tokens", 10000)

	v.SetDefault("pipeline.extensions", []string{".py"})
	v.SetDefault("pipeline.content_budget", 48000)
	v.SetDefault("pipeline.output", "api_documentation_swagger.yaml")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.ui_title", "API Documentation")
	v.SetDefault("server.theme", "dark")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
}
