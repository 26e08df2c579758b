// Command linkcard renders link preview cards in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/linkcard/internal/adapters/driven/config/file"
	"github.com/custodia-labs/linkcard/internal/adapters/driven/fetcher/github"
	"github.com/custodia-labs/linkcard/internal/adapters/driven/fetcher/web"
	"github.com/custodia-labs/linkcard/internal/adapters/driven/fetcher/youtube"
	"github.com/custodia-labs/linkcard/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/linkcard/internal/adapters/driven/opener/system"
	"github.com/custodia-labs/linkcard/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/linkcard/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/cli"
	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/core/services"
	"github.com/custodia-labs/linkcard/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBuilder(build)

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// build wires config, stores and services from the global flags.
func build(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Info("Config file: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if err := settingsService.Validate(); err != nil {
		logger.Warn("Invalid settings, check %s: %v", configStore.Path(), err)
	}

	historyStore, closeStore := openHistoryStore(opts)
	historyService := services.NewHistoryService(historyStore, settingsService)

	metrics := prometheus.New()
	fetcher := withEnrichers(web.NewFetcher(web.ConfigFromSettings(settings.Fetch)), settings.Enrich)

	previewService := services.NewPreviewService(fetcher, settingsService)
	previewService.SetHistory(historyService)
	previewService.SetMetrics(metrics)

	templateDir := ""
	if opts.ConfigDir != "" {
		templateDir = filepath.Join(opts.ConfigDir, "templates")
	}
	templates, err := file.NewTemplateStore(templateDir)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("creating template store: %w", err), closeStore())
	}

	return &cli.Services{
		Preview:    previewService,
		History:    historyService,
		Settings:   settingsService,
		Templates:  templates,
		Opener:     system.NewOpener(),
		Metrics:    metrics.Handler(),
		ConfigPath: configStore.Path(),
		Close:      closeStore,
	}, nil
}

// openHistoryStore opens the sqlite history, falling back to memory when
// --ephemeral is set or the database cannot be opened.
func openHistoryStore(opts cli.Options) (driven.HistoryStore, func() error) {
	noop := func() error { return nil }

	if opts.Ephemeral {
		logger.Debug("History kept in memory")
		return memory.NewHistoryStore(), noop
	}

	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		logger.Warn("History kept in memory, database unavailable: %v", err)
		return memory.NewHistoryStore(), noop
	}
	logger.Debug("History database: %s", store.Path())
	return store.HistoryStore(), store.Close
}

// withEnrichers layers the enabled site lookups over the scraping fetcher.
// An enricher that cannot be created is skipped.
func withEnrichers(fetcher driven.PreviewFetcher, cfg domain.EnrichSettings) driven.PreviewFetcher {
	if cfg.GitHub {
		e, err := github.NewEnricher(fetcher, github.Config{Token: cfg.GitHubToken})
		if err != nil {
			logger.Warn("GitHub lookups disabled: %v", err)
		} else {
			fetcher = e
			logger.Debug("GitHub lookups enabled (authenticated=%t)", cfg.GitHubToken != "")
		}
	}

	if cfg.YouTubeAPIKey != "" {
		e, err := youtube.NewEnricher(context.Background(), fetcher, youtube.Config{APIKey: cfg.YouTubeAPIKey})
		if err != nil {
			logger.Warn("YouTube lookups disabled: %v", err)
		} else {
			fetcher = e
			logger.Debug("YouTube lookups enabled")
		}
	}

	return fetcher
}
