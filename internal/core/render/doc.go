// Package render turns accepted preview state into a node tree.
//
// Rendering is pure: Render maps (state, options) to a tree and never
// performs I/O. The only side effect a tree carries is the press handler on
// its Pressable root, which opens the preview link through a driven.URLOpener.
//
// Adapters draw the tree with their own primitives; the terminal UI renders
// it with lipgloss.
package render
