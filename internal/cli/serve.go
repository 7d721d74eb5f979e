package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/config"
	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/llm"
	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/metrics"
	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/prompt"
	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/slackbot"
	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/summarizer"
	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/youtube"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Slack and handle mentions until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	cfg := config.Load()

	logger, cleanup := config.SetupLogger(cfg.LogFile, logLevelOverride(cfg.LogLevel))
	defer func() {
		if err := cleanup(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, err := llm.NewModel(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init model: %w", err)
	}

	library, err := prompt.LoadLibrary()
	if err != nil {
		return fmt.Errorf("load prompts: %w", err)
	}
	template, err := library.Get(cfg.PromptName)
	if err != nil {
		return err
	}

	source, err := youtube.NewClient(cfg.ProxyURL("http"))
	if err != nil {
		return fmt.Errorf("init transcript client: %w", err)
	}

	collector := metrics.NewCollector()
	bot := slackbot.New(cfg, logger)
	service := summarizer.NewService(bot.Chat(), source, model, template, collector,
		summarizer.WithTranscriptCap(cfg.TranscriptCap),
		summarizer.WithLogger(logger),
	)

	logger.Info("starting YouTube summary bot",
		"model", model.Model(),
		"prompt", template.Name,
		"proxy_configured", cfg.ProxyDomain != "",
	)

	err = bot.Run(ctx, service)

	snap := collector.Snapshot()
	logger.Info("shutting down",
		"uptime_s", snap.UptimeSeconds,
		"events_handled", snap.EventsHandled,
		"events_failed", snap.EventsFailed,
	)

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("socket mode: %w", err)
	}
	return nil
}
