package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.PreviewFetcher = (*Fetcher)(nil)

// DefaultUserAgent identifies the fetcher to remote sites.
const DefaultUserAgent = "linkcard/1.0 (+link preview)"

// maxRedirects bounds redirect chains.
const maxRedirects = 5

// Config configures a Fetcher.
type Config struct {
	// UserAgent sent with every request. Empty uses DefaultUserAgent.
	UserAgent string

	// MaxBodyBytes caps how much of a page or image is read.
	MaxBodyBytes int64

	// RatePerSecond and Burst bound outgoing page requests.
	RatePerSecond float64
	Burst         int

	// Client overrides the HTTP client. Optional.
	Client *http.Client
}

// DefaultConfig returns the default fetcher configuration.
func DefaultConfig() Config {
	return Config{
		UserAgent:     DefaultUserAgent,
		MaxBodyBytes:  1 << 20,
		RatePerSecond: 4,
		Burst:         4,
	}
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(settings domain.FetchSettings) Config {
	cfg := DefaultConfig()
	if settings.UserAgent != "" {
		cfg.UserAgent = settings.UserAgent
	}
	if settings.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = int64(settings.MaxBodyBytes)
	}
	if settings.RatePerSecond > 0 {
		cfg.RatePerSecond = float64(settings.RatePerSecond)
		cfg.Burst = settings.RatePerSecond
	}
	return cfg
}

// Fetcher extracts link previews over HTTP.
// Concurrent fetches of the same URL share one request, bounded by the
// deadline of the caller that started it.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	group     singleflight.Group
	userAgent string
	maxBody   int64
}

// NewFetcher creates a fetcher. Zero config fields take their defaults.
func NewFetcher(cfg Config) *Fetcher {
	defaults := DefaultConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = defaults.RatePerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		}
	}

	return &Fetcher{
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodyBytes,
	}
}

// Fetch extracts preview data for the first link in text.
// It never fails; on any error the fields found so far are returned.
func (f *Fetcher) Fetch(ctx context.Context, text string, timeout time.Duration) domain.PreviewData {
	target := ExtractURL(text)
	if target == "" {
		return domain.PreviewData{}
	}
	if timeout <= 0 {
		timeout = domain.DefaultRequestTimeout
	}

	// Callers share a flight only with the same timeout. The flight runs
	// detached from the caller that started it, so a caller giving up early
	// does not cut short the others.
	key := target + "|" + timeout.String()
	result := f.group.DoChan(key, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		return f.fetch(flightCtx, target), nil
	})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case res := <-result:
		data, _ := res.Val.(domain.PreviewData)
		return copyPreview(data)
	case <-ctx.Done():
		logger.Debug("Preview fetch for %s timed out after %s", target, timeout)
		return domain.PreviewData{}
	}
}

func (f *Fetcher) fetch(ctx context.Context, target string) domain.PreviewData {
	var data domain.PreviewData

	if err := f.limiter.Wait(ctx); err != nil {
		logger.Debug("Rate limiter rejected %s: %v", target, err)
		return data
	}

	resp, err := f.get(ctx, target, "text/html,application/xhtml+xml,image/*;q=0.9,*/*;q=0.8")
	if err != nil {
		logger.Debug("Preview fetch for %s failed: %v", target, err)
		return data
	}
	defer resp.Body.Close()

	// A response arrived, so the link is real.
	data.Link = target
	data.Domain = DomainOf(target)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Debug("Preview fetch for %s returned HTTP %d", target, resp.StatusCode)
		return data
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		logger.Debug("Reading %s failed: %v", target, err)
		return data
	}

	mediaType := contentType(resp)
	if strings.HasPrefix(mediaType, "image/") {
		if img, ok := decodeImage(target, body); ok {
			data.Image = img
		}
		return data
	}
	if mediaType != "" && mediaType != "text/html" && mediaType != "application/xhtml+xml" {
		return data
	}

	base := resp.Request.URL
	meta := extractMetaTags(body)

	var article readability.Article
	if parsed, err := readability.FromReader(bytes.NewReader(body), base); err == nil {
		article = parsed
	} else {
		logger.Debug("Readability failed for %s: %v", target, err)
	}

	data.Title = coalesce(meta.OGTitle, meta.TwitterTitle, meta.Title, article.Title)
	data.Description = coalesce(meta.OGDescription, meta.TwitterDesc, meta.Description, article.Excerpt)

	imageURL := resolveReference(base, coalesce(meta.OGImage, meta.TwitterImage, article.Image))
	if imageURL != "" {
		if img, ok := f.fetchImage(ctx, imageURL); ok {
			data.Image = img
		}
	}

	return data
}

// fetchImage downloads imageURL and decodes its dimensions.
func (f *Fetcher) fetchImage(ctx context.Context, imageURL string) (*domain.PreviewImage, bool) {
	resp, err := f.get(ctx, imageURL, "image/*")
	if err != nil {
		logger.Debug("Image fetch for %s failed: %v", imageURL, err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return nil, false
	}
	return decodeImage(imageURL, body)
}

func (f *Fetcher) get(ctx context.Context, target, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// errNoDimensions is returned for images whose size cannot be decoded.
var errNoDimensions = errors.New("image has no decodable dimensions")

// decodeImage returns the image only when its dimensions can be decoded.
func decodeImage(imageURL string, body []byte) (*domain.PreviewImage, bool) {
	w, h, err := imageSize(body)
	if err != nil {
		logger.Debug("Ignoring image %s: %v", imageURL, err)
		return nil, false
	}
	return &domain.PreviewImage{URL: imageURL, Width: float64(w), Height: float64(h)}, true
}

func imageSize(body []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, errNoDimensions
	}
	return cfg.Width, cfg.Height, nil
}

func contentType(resp *http.Response) string {
	header := resp.Header.Get("Content-Type")
	if header == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(header))
	}
	return strings.ToLower(mediaType)
}

// copyPreview detaches the image so callers sharing a flight don't alias it.
func copyPreview(data domain.PreviewData) domain.PreviewData {
	if data.Image != nil {
		img := *data.Image
		data.Image = &img
	}
	return data
}
