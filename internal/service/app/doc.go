// Package app wires the clock engine to its stores, tick source and presenter
// and runs it either as the terminal UI or headless.
package app
