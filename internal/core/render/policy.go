package render

import "github.com/custodia-labs/linkcard/internal/core/domain"

// Pick returns override when it is set and fallback otherwise.
// Each region of the card is picked independently.
func Pick[A any](override, fallback func(A) *Node) func(A) *Node {
	if override != nil {
		return override
	}
	return fallback
}

// Visible reports whether a card should be shown for data.
//
// Strict shows a card only when there is a description or a title.
// Loose also shows it when both the link and the domain are known.
func Visible(data *domain.PreviewData, policy domain.RenderPolicy) bool {
	if data == nil {
		return false
	}
	if data.Description != "" || data.Title != "" {
		return true
	}
	if policy == domain.PolicyLoose {
		return data.Link != "" && data.Domain != ""
	}
	return false
}

// TitleText returns the title to display. Under the loose policy an absent
// title falls back to the link.
func TitleText(data *domain.PreviewData, policy domain.RenderPolicy) string {
	if data == nil {
		return ""
	}
	if data.Title != "" || policy != domain.PolicyLoose {
		return data.Title
	}
	return data.Link
}

// DescriptionText returns the description to display. Under the loose policy
// an absent description falls back to the domain.
func DescriptionText(data *domain.PreviewData, policy domain.RenderPolicy) string {
	if data == nil {
		return ""
	}
	if data.Description != "" || policy != domain.PolicyLoose {
		return data.Description
	}
	return data.Domain
}
