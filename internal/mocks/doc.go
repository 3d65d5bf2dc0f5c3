// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes function fields for per-test behavior overrides and a
// small in-memory default implementation for the common path, so tests only
// customize the calls they care about.
package mocks
