// Package watcher reports changes to the persisted settings and alarm files,
// so a running clock picks up edits made by the CLI from another terminal.
package watcher
