// Package cli provides the cobra command tree for linkcard.
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
	"github.com/custodia-labs/linkcard/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
	ephemeral bool
)

// Services driven by the commands. Set by SetServices or built on demand.
var (
	previewService  driving.PreviewService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	templateStore   driven.TemplateStore
	urlOpener       driven.URLOpener
	metricsHandler  http.Handler
	configPath      string
)

// Options are the global flag values services are built from.
type Options struct {
	ConfigDir string
	DataDir   string
	Ephemeral bool
}

// Services bundles everything the commands drive.
type Services struct {
	Preview   driving.PreviewService
	History   driving.HistoryService
	Settings  driving.SettingsService
	Templates driven.TemplateStore
	Opener    driven.URLOpener

	// Metrics serves the Prometheus exposition format. Optional.
	Metrics http.Handler

	// ConfigPath is the config file backing Settings, if any.
	ConfigPath string

	// Close releases stores. Optional.
	Close func() error
}

// Builder creates services once global flags are parsed.
type Builder func(opts Options) (*Services, error)

var (
	builder Builder
	svc     *Services
)

// annotationNoServices marks commands that run without services.
const annotationNoServices = "linkcard/no-services"

var rootCmd = &cobra.Command{
	Use:   "linkcard",
	Short: "Link previews for the terminal",
	Long: `linkcard finds the first link in a piece of text, fetches its metadata,
and renders a preview card.

Run "linkcard preview <text>" for a one-off card, "linkcard tui" for an
interactive editor with live previews, or "linkcard mcp serve" to expose
previews to AI assistants.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.linkcard)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.linkcard/data)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep history in memory only")
}

// SetBuilder sets how services are created after flags are parsed.
func SetBuilder(b Builder) {
	builder = b
}

// SetServices installs ready-made services. Passing nil clears them.
func SetServices(s *Services) {
	svc = s
	if s == nil {
		previewService = nil
		historyService = nil
		settingsService = nil
		templateStore = nil
		urlOpener = nil
		metricsHandler = nil
		configPath = ""
		return
	}
	previewService = s.Preview
	historyService = s.History
	settingsService = s.Settings
	templateStore = s.Templates
	urlOpener = s.Opener
	metricsHandler = s.Metrics
	configPath = s.ConfigPath
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationNoServices] == "true" || svc != nil || builder == nil {
		return nil
	}

	logger.Section("Startup")
	s, err := builder(Options{
		ConfigDir: configDir,
		DataDir:   dataDir,
		Ephemeral: ephemeral,
	})
	if err != nil {
		return err
	}
	SetServices(s)
	return nil
}

func closeServices() error {
	if svc == nil || svc.Close == nil {
		return nil
	}
	err := svc.Close()
	svc.Close = nil
	return err
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which commands observe for
// cancellation.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeServices(); closeErr != nil {
		logger.Warn("closing services: %v", closeErr)
		err = errors.Join(err, closeErr)
	}
	return err
}
