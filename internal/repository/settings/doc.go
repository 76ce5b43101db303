// Package settings persists the user's clock settings as the
// "fliptime-settings" JSON record of a kv.Store.
package settings
