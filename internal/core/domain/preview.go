package domain

import "time"

// DefaultRequestTimeout is the fetch timeout used when a request leaves it unset.
const DefaultRequestTimeout = 5000 * time.Millisecond

// PreviewImage is the image shown on a preview card.
// Width and Height are in pixels and are always positive when an image is present.
type PreviewImage struct {
	URL    string  `json:"url"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PreviewData is the metadata extracted for a piece of text.
// An empty string means the field was not found.
type PreviewData struct {
	Link        string        `json:"link,omitempty"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Domain      string        `json:"domain,omitempty"`
	Image       *PreviewImage `json:"image,omitempty"`
}

// IsEmpty returns true if no field carries a value.
func (p PreviewData) IsEmpty() bool {
	return p.Link == "" && p.Title == "" && p.Description == "" && p.Domain == "" && p.Image == nil
}

// HasImage returns true if an image is attached.
func (p PreviewData) HasImage() bool {
	return p.Image != nil
}

// AspectRatio returns width/height of the image.
// The second return value is false when there is no image.
func (p PreviewData) AspectRatio() (float64, bool) {
	if p.Image == nil || p.Image.Height == 0 {
		return 0, false
	}
	return p.Image.Width / p.Image.Height, true
}

// Equal reports whether two previews carry the same values.
func (p PreviewData) Equal(other PreviewData) bool {
	if p.Link != other.Link || p.Title != other.Title ||
		p.Description != other.Description || p.Domain != other.Domain {
		return false
	}
	if p.Image == nil || other.Image == nil {
		return p.Image == nil && other.Image == nil
	}
	return *p.Image == *other.Image
}

// PreviewRequest holds the inputs of one preview lifecycle.
// Any change to these values restarts the lifecycle.
type PreviewRequest struct {
	// Text is the free-form text that may contain a URL.
	Text string

	// RequestTimeout bounds the fetch. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration

	// Precomputed, when set, is adopted as-is and no fetch happens.
	Precomputed *PreviewData
}

// WithDefaults returns a copy of the request with unset fields defaulted.
func (r PreviewRequest) WithDefaults() PreviewRequest {
	if r.RequestTimeout <= 0 {
		r.RequestTimeout = DefaultRequestTimeout
	}
	return r
}

// Equal reports whether two requests are equal by value.
func (r PreviewRequest) Equal(other PreviewRequest) bool {
	if r.Text != other.Text || r.RequestTimeout != other.RequestTimeout {
		return false
	}
	if r.Precomputed == nil || other.Precomputed == nil {
		return r.Precomputed == nil && other.Precomputed == nil
	}
	return r.Precomputed.Equal(*other.Precomputed)
}
