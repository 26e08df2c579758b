package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/logger"
)

// Ensure Enricher implements the interface.
var _ driven.PreviewFetcher = (*Enricher)(nil)

// videoIDPattern matches YouTube's 11 character video IDs.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Config configures an Enricher.
type Config struct {
	// APIKey authenticates requests. Required.
	APIKey string

	// Endpoint overrides the API base URL. Optional.
	Endpoint string

	// Client overrides the HTTP client. Optional.
	Client *http.Client
}

// Enricher replaces scraped video metadata with API data.
type Enricher struct {
	next driven.PreviewFetcher
	svc  *yt.Service
}

// NewEnricher wraps next.
func NewEnricher(ctx context.Context, next driven.PreviewFetcher, cfg Config) (*Enricher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube api key: %w", domain.ErrInvalidInput)
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Client != nil {
		opts = append(opts, option.WithHTTPClient(cfg.Client))
	}

	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Enricher{next: next, svc: svc}, nil
}

// Fetch runs the wrapped fetcher, then refines video previews.
func (e *Enricher) Fetch(ctx context.Context, text string, timeout time.Duration) domain.PreviewData {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	data := e.next.Fetch(ctx, text, timeout)

	id, ok := VideoIDFromLink(data.Link)
	if !ok {
		return data
	}

	resp, err := e.svc.Videos.List([]string{"snippet"}).Id(id).Context(ctx).Do()
	if err != nil {
		logger.Debug("YouTube lookup for %s failed: %v", id, err)
		return data
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		logger.Debug("YouTube lookup for %s found no video", id)
		return data
	}

	snippet := resp.Items[0].Snippet
	if snippet.Title != "" {
		data.Title = snippet.Title
	}
	if d := describe(snippet); d != "" {
		data.Description = d
	}
	if img := bestThumbnail(snippet.Thumbnails); img != nil {
		data.Image = img
	}
	logger.Debug("YouTube lookup for %s succeeded", id)
	return data
}

// describe returns the channel and the first line of the video description.
func describe(s *yt.VideoSnippet) string {
	first := ""
	for _, line := range strings.Split(s.Description, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			first = line
			break
		}
	}
	switch {
	case s.ChannelTitle != "" && first != "":
		return s.ChannelTitle + " · " + first
	case s.ChannelTitle != "":
		return s.ChannelTitle
	default:
		return first
	}
}

// bestThumbnail picks the largest thumbnail with known dimensions.
func bestThumbnail(t *yt.ThumbnailDetails) *domain.PreviewImage {
	if t == nil {
		return nil
	}
	for _, th := range []*yt.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if th == nil || th.Url == "" || th.Width <= 0 || th.Height <= 0 {
			continue
		}
		return &domain.PreviewImage{
			URL:    th.Url,
			Width:  float64(th.Width),
			Height: float64(th.Height),
		}
	}
	return nil
}

// VideoIDFromLink extracts the video ID from watch, short, embed and
// youtu.be links.
func VideoIDFromLink(link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}

	var id string
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.Trim(u.Path, "/")
	switch host {
	case "youtu.be":
		id = path
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		switch {
		case path == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"), strings.HasPrefix(path, "embed/"), strings.HasPrefix(path, "live/"):
			id = path[strings.Index(path, "/")+1:]
		}
	}

	if !videoIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}
