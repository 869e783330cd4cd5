// Package config handles persistent tool configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the directory under $HOME holding tool state.
	ConfigDirName = ".research_pal"

	// ConfigFileName is the YAML configuration file name.
	ConfigFileName = "config.yaml"

	// DBFileName is the paper store database file name.
	DBFileName = "papers.db"
)

// Config holds all settings consumed by the pipeline. API keys may come
// from the file, a .env file, or the process environment; the environment
// wins.
type Config struct {
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`

	DefaultModel     string `yaml:"default_model"`
	ChunkSize        int    `yaml:"chunk_size"`
	ChunkOverlap     int    `yaml:"chunk_overlap"`
	OutputTokenLimit int    `yaml:"output_token_limit"`

	DBPath    string `yaml:"db_path"`
	OutputDir string `yaml:"output_dir"`

	OllamaURL      string `yaml:"ollama_url"`
	EmbeddingModel string `yaml:"embedding_model"`

	PDFReader string `yaml:"pdf_reader"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DefaultModel:     "gpt-4o-mini",
		ChunkSize:        8000,
		ChunkOverlap:     200,
		OutputTokenLimit: 4096,
		DBPath:           filepath.Join(home, ConfigDirName, DBFileName),
		OutputDir:        filepath.Join(home, "research_pal_output"),
		PDFReader:        "system",
	}
}

// DefaultPath returns the path of the user's configuration file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName, ConfigFileName), nil
}

// Load reads configuration from the given path, layering file values over
// defaults and environment values over both. A missing file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.DBPath = ExpandPath(cfg.DBPath)
	cfg.OutputDir = ExpandPath(cfg.OutputDir)

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables, loading a .env file first if
// one is present in the working directory.
func (c *Config) applyEnv() {
	_ = godotenv.Load() // missing .env is fine

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAIAPIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.AnthropicAPIKey = v
	}
	if v := os.Getenv("RESEARCHPAL_DEFAULT_MODEL"); v != "" {
		c.DefaultModel = v
	}
	if v := os.Getenv("RESEARCHPAL_DB_PATH"); v != "" {
		c.DBPath = ExpandPath(v)
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		c.OllamaURL = v
	}
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
