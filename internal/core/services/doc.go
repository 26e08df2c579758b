// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The preview lifecycle lives in Controller: it owns one card's fetch
// sessions and decides which results are allowed to reach state.
package services
