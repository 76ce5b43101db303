// Package effects holds the alarm effects shared by the presenters.
package effects
