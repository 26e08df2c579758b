// Package web implements driven.PreviewFetcher over HTTP.
//
// The fetcher finds the first link in free-form text, downloads it and
// extracts title, description, site and image from the page's meta tags,
// falling back to readability extraction. Failures never surface as errors:
// they produce a PreviewData with whatever fields were found.
package web
