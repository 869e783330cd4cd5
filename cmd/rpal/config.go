package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arcAman07/research-pal/internal/config"
	"github.com/arcAman07/research-pal/internal/pdf"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or modify configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set writes one value back to the config file. Keys:

  default_model, chunk_size, chunk_overlap, output_token_limit,
  db_path, output_dir, ollama_url, embedding_model, pdf_reader,
  openai_api_key, anthropic_api_key`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigView is the show output with credentials masked.
type ConfigView struct {
	OpenAIAPIKey     string `json:"openai_api_key"`
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	DefaultModel     string `json:"default_model"`
	ChunkSize        int    `json:"chunk_size"`
	ChunkOverlap     int    `json:"chunk_overlap"`
	OutputTokenLimit int    `json:"output_token_limit"`
	DBPath           string `json:"db_path"`
	OutputDir        string `json:"output_dir"`
	OllamaURL        string `json:"ollama_url"`
	EmbeddingModel   string `json:"embedding_model"`
	PDFReader        string `json:"pdf_reader"`
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	return "(set)"
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, err)
	}

	view := ConfigView{
		OpenAIAPIKey:     maskKey(cfg.OpenAIAPIKey),
		AnthropicAPIKey:  maskKey(cfg.AnthropicAPIKey),
		DefaultModel:     cfg.DefaultModel,
		ChunkSize:        cfg.ChunkSize,
		ChunkOverlap:     cfg.ChunkOverlap,
		OutputTokenLimit: cfg.OutputTokenLimit,
		DBPath:           cfg.DBPath,
		OutputDir:        cfg.OutputDir,
		OllamaURL:        cfg.OllamaURL,
		EmbeddingModel:   cfg.EmbeddingModel,
		PDFReader:        cfg.PDFReader,
	}

	if humanOutput {
		fmt.Printf("openai_api_key:     %s\n", view.OpenAIAPIKey)
		fmt.Printf("anthropic_api_key:  %s\n", view.AnthropicAPIKey)
		fmt.Printf("default_model:      %s\n", view.DefaultModel)
		fmt.Printf("chunk_size:         %d\n", view.ChunkSize)
		fmt.Printf("chunk_overlap:      %d\n", view.ChunkOverlap)
		fmt.Printf("output_token_limit: %d\n", view.OutputTokenLimit)
		fmt.Printf("db_path:            %s\n", view.DBPath)
		fmt.Printf("output_dir:         %s\n", view.OutputDir)
		fmt.Printf("ollama_url:         %s\n", view.OllamaURL)
		fmt.Printf("embedding_model:    %s\n", view.EmbeddingModel)
		fmt.Printf("pdf_reader:         %s\n", view.PDFReader)
		return nil
	}
	return outputJSON(view)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			exitWithError(ExitConfigError, err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		exitWithError(ExitConfigError, err)
	}

	if err := setConfigValue(cfg, key, value); err != nil {
		exitWithError(ExitConfigError, err)
	}

	if err := cfg.Save(path); err != nil {
		exitWithError(ExitConfigError, err)
	}

	if humanOutput {
		fmt.Printf("Set %s\n", key)
		return nil
	}
	return outputJSON(map[string]string{"updated": key})
}

func setConfigValue(cfg *config.Config, key, value string) error {
	intValue := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		return n, nil
	}

	switch key {
	case "openai_api_key":
		cfg.OpenAIAPIKey = value
	case "anthropic_api_key":
		cfg.AnthropicAPIKey = value
	case "default_model":
		cfg.DefaultModel = value
	case "chunk_size":
		n, err := intValue()
		if err != nil {
			return err
		}
		cfg.ChunkSize = n
	case "chunk_overlap":
		n, err := intValue()
		if err != nil {
			return err
		}
		cfg.ChunkOverlap = n
	case "output_token_limit":
		n, err := intValue()
		if err != nil {
			return err
		}
		cfg.OutputTokenLimit = n
	case "db_path":
		cfg.DBPath = config.ExpandPath(value)
	case "output_dir":
		cfg.OutputDir = config.ExpandPath(value)
	case "ollama_url":
		cfg.OllamaURL = value
	case "embedding_model":
		cfg.EmbeddingModel = value
	case "pdf_reader":
		if !slices.Contains(pdf.ValidReaders, value) {
			return fmt.Errorf("pdf_reader must be one of %v", pdf.ValidReaders)
		}
		cfg.PDFReader = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
