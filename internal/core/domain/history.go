package domain

import "time"

// HistoryEntry is an accepted preview recorded for later display.
type HistoryEntry struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// Text is the input text the preview was fetched for.
	Text string `json:"text"`

	// Data is the accepted preview.
	Data PreviewData `json:"data"`

	// FetchedAt is when the preview was accepted.
	FetchedAt time.Time `json:"fetched_at"`
}
