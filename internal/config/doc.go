// Package config defines the fliptime configuration and provides helpers to
// load, validate and save it in YAML format.
//
// Values come from the YAML file first, then from FLIPTIME_* environment
// variables, and Validate fills every unset field with its default.
package config
