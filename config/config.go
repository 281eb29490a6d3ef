package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string  `mapstructure:"port"`
	AIEndpoint         string  `mapstructure:"ai_endpoint"`
	Model              string  `mapstructure:"model"`
	OpenAIAPIKey       string  `mapstructure:"OPENAI_API_KEY"`
	OutputDir          string  `mapstructure:"output_dir"`
	RenderZoom         float64 `mapstructure:"render_zoom"`
	PageTimeoutSeconds int     `mapstructure:"page_timeout_seconds"`
	MaxUploadSizeMB    int64   `mapstructure:"max_upload_size_mb"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Defaults mirror the constants the tool runs with when no config exists
	v.SetDefault("port", "8080")
	v.SetDefault("ai_endpoint", "http://localhost:11434/v1")
	v.SetDefault("model", "gemma-3-4b-it-gpu:latest")
	v.SetDefault("OPENAI_API_KEY", "ollama")
	v.SetDefault("output_dir", "md_docs")
	v.SetDefault("render_zoom", 2.0)
	v.SetDefault("page_timeout_seconds", 120)
	v.SetDefault("max_upload_size_mb", 25)

	// Set up Viper to read from environment variables
	v.AutomaticEnv()
	v.BindEnv("OPENAI_API_KEY")

	// Read config file; a missing file is fine, the defaults carry the run
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
