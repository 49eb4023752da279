package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/planestic/ud-assistant/internal/assistant"
	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	botType    string

	// cfg is loaded once per invocation in PersistentPreRunE.
	cfg     *config.Config
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "ud-assistant",
	Short: "Web-search-backed question answering for Universidad Distrital",
	Long: `ud-assistant answers questions about Universidad Distrital Francisco José de Caldas.
Each question is searched on the web, the results are ranked and packed into a
context, and a language model writes a cited answer.

Commands:
  ud-assistant ask "<pregunta>"     Answer one question
  ud-assistant search "<pregunta>"  Print the ranked context without calling the model
  ud-assistant serve                Run the web UI and chat platforms
  ud-assistant mcp                  Serve ask_ud and web_search over MCP stdio`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The MCP transport owns stdout, so logs always go to stderr.
		logger.SetOutput(os.Stderr)

		if cmd.Flags().Changed("log") {
			if err := setLevel(logLevel); err != nil {
				return err
			}
		}

		cfg = config.Load(config.ResolvePath(configPath))
		if botType != "" {
			cfg.BotType = botType
		}

		if !cmd.Flags().Changed("log") {
			if err := setLevel(cfg.Logging.Level); err != nil {
				logger.Warn("[Config] %v, keeping %q", err, logLevel)
				_ = setLevel(logLevel)
			}
		}

		if cfg.Logging.File != "" {
			f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			logFile = f
			logger.SetOutput(io.MultiWriter(os.Stderr, f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml (default: $"+config.EnvConfigPath+", then next to the executable, then the XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&botType, "bot", "",
		"Override bot_type: deepseek, llama or claude")
}

func setLevel(s string) error {
	level, err := logger.ParseLevel(s)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}

// newAssistant builds the assistant from the loaded configuration.
func newAssistant() (*assistant.Assistant, error) {
	a, err := assistant.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("[Assistant] Ready: %s", a.Info())
	return a, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
