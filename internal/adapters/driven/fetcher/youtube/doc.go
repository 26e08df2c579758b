// Package youtube refines previews of YouTube video links with data from the
// YouTube Data API.
//
// It wraps another driven.PreviewFetcher and needs an API key. Thumbnails
// from the API carry their dimensions, so no image download is needed.
package youtube
