package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ponder/cmd/ponder/chat"
	"ponder/internal/config"
	"ponder/internal/logging"
	"ponder/internal/store"
	"ponder/internal/stream"
)

var (
	// Global flags
	verbose      bool
	cfgPath      string
	providerFlag string
	modelFlag    string

	// Logger for the non-interactive commands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ponder",
	Short: "ponder - streaming chat with a live status line",
	Long: `ponder is a terminal chat client for reasoning models.

While the model thinks, ponder distills the raw reasoning stream into a
short human-readable status ("Analyzing the request...") and keeps it
moving through the phases of the response, so the wait never looks stuck.

Run without arguments to start the interactive chat interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "ponder" && cmd.CalledAs() == "ponder" {
			return nil
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ponder version",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.DefaultConfig()
		fmt.Printf("%s %s (%s %s/%s)\n",
			cfg.Name, cfg.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging and the candidate status line")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "Override the configured provider (gemini, openai, scripted)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Override the configured model")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	// Pick up API keys from a local .env before anything reads the environment.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig applies the global flag overrides on top of the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if providerFlag != "" {
		cfg.LLM.Provider = providerFlag
	}
	if modelFlag != "" {
		cfg.LLM.Model = modelFlag
	}
	if verbose {
		cfg.Status.Verbose = true
		cfg.Logging.DebugMode = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runChat launches the interactive chat interface.
func runChat() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize("."); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.CloseAll()

	client, err := stream.New(context.Background(), cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", cfg.LLM.Provider, err)
	}

	var history *store.HistoryStore
	if cfg.History.Enabled {
		history, err = store.NewHistoryStore(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer history.Close()
	}

	return chat.Run(*cfg, client, history)
}
