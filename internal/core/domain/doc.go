// Package domain defines the core entities for linkcard.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PreviewData: Metadata extracted for a piece of text
//   - PreviewImage: The preview image and its pixel dimensions
//   - PreviewRequest: The inputs that drive one fetch lifecycle
//   - HistoryEntry: An accepted preview kept for later display
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
