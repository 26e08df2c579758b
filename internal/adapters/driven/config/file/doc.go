// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the linkcard config directory (~/.linkcard).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - TemplateStore: user-editable output templates
package file
