// Package ui is the terminal presenter of the flip clock.
//
// Board implements the engine's Presenter and alarm Effects: it tracks the
// three flip cards, the date lines, the theme and the alarm flash, and queues
// the tea commands that end each animation. Model is the bubbletea program
// around it, with the settings and alarm panels. All engine calls happen
// inside Model.Update, so the program loop is the only goroutine touching the
// engine; clock ticks and store reloads arrive as messages.
package ui
