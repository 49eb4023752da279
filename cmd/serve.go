package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/planestic/ud-assistant/internal/ai"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/planestic/ud-assistant/internal/platforms/discord"
	"github.com/planestic/ud-assistant/internal/platforms/telegram"
	"github.com/planestic/ud-assistant/internal/router"
	"github.com/planestic/ud-assistant/internal/webui"
	"github.com/spf13/cobra"
)

var (
	servePort     int
	serveNoWeb    bool
	telegramToken string
	discordToken  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI and the configured chat platforms",
	Long: `Serve answers over HTTP and chat platforms.

HTTP endpoints:
  POST /api/chat     {"message": "..."} -> {"response": "...", "sources": [...]}
  GET  /api/status   health, uptime and process memory
  GET  /api/system   bot type, features and available models
  GET  /ws           WebSocket, one question per text frame

Chat platforms start when a token is configured:
  - Telegram: platforms.telegram.token or TELEGRAM_BOT_TOKEN
  - Discord:  platforms.discord.token or DISCORD_BOT_TOKEN`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Web UI listen port (default: web.port from config)")
	serveCmd.Flags().BoolVar(&serveNoWeb, "no-web", false, "Do not start the web UI")
	serveCmd.Flags().StringVar(&telegramToken, "telegram-token", "", "Telegram Bot Token (overrides config)")
	serveCmd.Flags().StringVar(&discordToken, "discord-token", "", "Discord Bot Token (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newAssistant()
	if err != nil {
		return err
	}

	if telegramToken != "" {
		cfg.Platforms.Telegram.Token = telegramToken
	}
	if discordToken != "" {
		cfg.Platforms.Discord.Token = discordToken
	}

	r := router.New(a.HandleMessage, router.WithWorkers(cfg.Workers))
	if token := cfg.Platforms.Telegram.Token; token != "" {
		p, err := telegram.New(telegram.Config{Token: token, Debug: cfg.Platforms.Telegram.Debug})
		if err != nil {
			return err
		}
		r.Register(p)
	}
	if token := cfg.Platforms.Discord.Token; token != "" {
		p, err := discord.New(discord.Config{Token: token})
		if err != nil {
			return err
		}
		r.Register(p)
	}

	if serveNoWeb && len(r.Platforms()) == 0 {
		return fmt.Errorf("nothing to serve: web UI disabled and no chat platform configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.Start(ctx); err != nil {
		r.Stop()
		return fmt.Errorf("start router: %w", err)
	}
	defer r.Stop()

	var httpServer *http.Server
	errCh := make(chan error, 1)
	if !serveNoWeb {
		port := servePort
		if port <= 0 {
			port = cfg.Web.Port
		}
		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           webui.NewServer(a, ai.BotTypes()).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("[WebUI] Listening on http://127.0.0.1:%d", port)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	logger.Info("[Serve] Running (platforms: %v). Press Ctrl+C to stop.", r.Platforms())

	select {
	case <-ctx.Done():
		logger.Info("[Serve] Shutting down...")
	case err := <-errCh:
		return fmt.Errorf("web UI server: %w", err)
	}

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}
	return nil
}
