// Package version exposes build metadata for fliptime.
//
// Version, Commit and BuildTime are injected at build time via ldflags.
package version
