// Package github refines previews of GitHub repository links with data from
// the GitHub REST API.
//
// It wraps another driven.PreviewFetcher. Scraped data is kept whenever the
// API call fails, so the enricher never makes a preview worse.
package github
