// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PreviewFetcher: Resolves text into PreviewData (network + metadata extraction)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - URLOpener: Opens a card's link. Without it, tapping a card does nothing.
//   - LayoutAnimator: Cosmetic transition hint before an accepted result is shown.
//   - PreviewMetrics: Lifecycle counters and fetch durations.
//   - HistoryStore: Persistence of accepted previews.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
