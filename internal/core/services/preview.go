package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
	"github.com/custodia-labs/linkcard/internal/logger"
)

// Ensure PreviewService implements the interface.
var _ driving.PreviewService = (*PreviewService)(nil)

// PreviewService builds lifecycle controllers and resolves one-shot previews.
type PreviewService struct {
	fetcher  driven.PreviewFetcher
	settings driving.SettingsService
	history  driving.HistoryService
	metrics  driven.PreviewMetrics
}

// NewPreviewService creates a new preview service.
// The settings parameter is optional (defaults are used when nil).
func NewPreviewService(fetcher driven.PreviewFetcher, settings driving.SettingsService) *PreviewService {
	return &PreviewService{
		fetcher:  fetcher,
		settings: settings,
	}
}

// SetHistory sets the history service that records accepted previews.
func (s *PreviewService) SetHistory(history driving.HistoryService) {
	s.history = history
}

// SetMetrics sets the lifecycle metrics sink.
func (s *PreviewService) SetMetrics(metrics driven.PreviewMetrics) {
	s.metrics = metrics
}

// Policy returns the configured render policy.
func (s *PreviewService) Policy() domain.RenderPolicy {
	return s.currentSettings().Preview.Policy
}

// NewController creates a lifecycle controller wired to the configured
// fetcher, metrics and history.
func (s *PreviewService) NewController(opts driving.ControllerOptions) driving.PreviewController {
	return s.newController(opts)
}

func (s *PreviewService) newController(opts driving.ControllerOptions) *Controller {
	settings := s.currentSettings()

	var animator driven.LayoutAnimator
	if opts.Animate != nil {
		animator = animatorFunc(opts.Animate)
	}

	return NewController(s.fetcher, ControllerOptions{
		EnableAnimation: settings.Preview.EnableAnimation,
		Animator:        animator,
		Metrics:         s.metrics,
		OnFetched:       opts.OnFetched,
		OnAccepted:      s.recordAccepted,
	})
}

// Resolve runs one lifecycle to completion and returns the accepted preview.
func (s *PreviewService) Resolve(ctx context.Context, req domain.PreviewRequest) (*domain.PreviewData, error) {
	if req.Precomputed == nil && strings.TrimSpace(req.Text) == "" {
		return nil, domain.ErrNoText
	}
	if req.RequestTimeout <= 0 {
		req.RequestTimeout = s.currentSettings().Preview.RequestTimeout
	}

	ctrl := s.newController(driving.ControllerOptions{})
	defer ctrl.Close()

	h := ctrl.Start(ctx, req)
	select {
	case <-h.Done():
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	data := ctrl.State()
	if data == nil {
		return nil, domain.ErrControllerClosed
	}
	return data, nil
}

// recordAccepted stores accepted results in history, if configured.
func (s *PreviewService) recordAccepted(req domain.PreviewRequest, data domain.PreviewData) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(context.Background(), req.Text, data); err != nil {
		logger.Warn("Failed to record preview history: %v", err)
	}
}

func (s *PreviewService) currentSettings() domain.AppSettings {
	if s.settings == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := s.settings.Get()
	if err != nil || settings == nil {
		return domain.DefaultAppSettings()
	}
	return *settings
}

// animatorFunc adapts a plain function to driven.LayoutAnimator.
type animatorFunc func()

func (f animatorFunc) Animate() { f() }
