package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ghostllm/internal/config"
	"ghostllm/internal/registry"
	"ghostllm/pkg/ghost"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	cfg := &config.Config{}
	var cfgPath string

	root := &cobra.Command{
		Use:           "ghostllm",
		Short:         "Drive a local text-generation model: load, configure, generate",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (.yaml/.json/.toml)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug|info|warn|error (default off)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfgPath != "" {
			fileCfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			mergeConfig(cfg, fileCfg, cmd)
		}
		if cfg.LogLevel != "" {
			lvl, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
			ghost.SetLogger(l)
		}
		return nil
	}

	root.AddCommand(buildGenerateCmd(cfg))
	root.AddCommand(buildModelsCmd(cfg))
	root.AddCommand(buildSanityCmd())
	return root
}

// mergeConfig fills cfg from the file for every field the flags left unset.
func mergeConfig(cfg *config.Config, file config.Config, cmd *cobra.Command) {
	if cfg.ModelsDir == "" {
		cfg.ModelsDir = file.ModelsDir
	}
	if cfg.Model == "" {
		cfg.Model = file.Model
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = file.MaxTokens
	}
	if !cmd.Flags().Changed("temperature") && file.Temperature != 0 {
		cfg.Temperature = file.Temperature
	}
	if cfg.CtxSize == 0 {
		cfg.CtxSize = file.CtxSize
	}
	if cfg.Threads == 0 {
		cfg.Threads = file.Threads
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = file.LogLevel
	}
}

func buildGenerateCmd(cfg *config.Config) *cobra.Command {
	var prompt string
	var quiet bool

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate text for a prompt, streaming tokens to stdout",
		Example: "  ghostllm generate -m llama-3.1-8b-q4_k_m.gguf --models-dir ~/models/llm -p 'Hello'",
		RunE: func(cmd *cobra.Command, args []string) error {
			if prompt == "" {
				return fmt.Errorf("--prompt is required")
			}
			path, err := resolveModel(cfg)
			if err != nil {
				return err
			}

			opts := ghost.Options{
				Engine: ghost.EngineParams{CtxSize: cfg.CtxSize, Threads: cfg.Threads},
			}
			c, err := ghost.LoadWithOptions(ghost.NewLlamaEngine(), path, opts)
			if err != nil {
				return err
			}
			defer func() { _ = c.Release() }()

			if cfg.MaxTokens != 0 {
				if err := c.SetMaxTokens(cfg.MaxTokens); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("temperature") || cfg.Temperature != 0 {
				if err := c.SetTemperature(cfg.Temperature); err != nil {
					return err
				}
			}

			var onToken ghost.TokenFunc
			if !quiet {
				onToken = func(tok string) { fmt.Print(tok) }
			}
			resp := c.Generate(context.Background(), prompt, onToken)
			defer resp.Release()
			if !resp.Ok() {
				return resp.Err()
			}
			if quiet {
				fmt.Println(resp.Text())
			} else {
				fmt.Println()
			}
			fmt.Fprintf(os.Stderr, "tokens used: %d\n", resp.TokensUsed())
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfg.Model, "model", "m", "", "Model id (within --models-dir) or path to a .gguf file")
	cmd.Flags().StringVar(&cfg.ModelsDir, "models-dir", "", "Directory to scan for *.gguf model files")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Prompt text")
	cmd.Flags().Uint32Var(&cfg.MaxTokens, "max-tokens", 0, "Cap on newly generated tokens (default 2048)")
	cmd.Flags().Float32Var(&cfg.Temperature, "temperature", 0, "Sampling temperature in [0,2] (default 0.7)")
	cmd.Flags().IntVar(&cfg.CtxSize, "ctx-size", 0, "Backend context size (0 = backend default)")
	cmd.Flags().IntVar(&cfg.Threads, "threads", 0, "Backend threads (0 = backend default)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress streaming; print the full text at the end")
	return cmd
}

func buildModelsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List *.gguf models found in --models-dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ModelsDir == "" {
				return fmt.Errorf("--models-dir is required")
			}
			models, err := registry.LoadDir(cfg.ModelsDir)
			if err != nil {
				return err
			}
			for _, m := range models {
				fmt.Println(m.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.ModelsDir, "models-dir", "", "Directory to scan for *.gguf model files")
	return cmd
}

func buildSanityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanity",
		Short: "Report whether a real inference backend is compiled in",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := json.MarshalIndent(ghost.SanityCheck(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		},
	}
}

// resolveModel turns the configured model reference into a loadable path,
// consulting the registry when a models dir is configured.
func resolveModel(cfg *config.Config) (string, error) {
	if cfg.Model == "" {
		return "", fmt.Errorf("--model is required")
	}
	var models []registry.Model
	if cfg.ModelsDir != "" {
		var err error
		models, err = registry.LoadDir(cfg.ModelsDir)
		if err != nil {
			return "", err
		}
	}
	return registry.Resolve(models, cfg.Model)
}
