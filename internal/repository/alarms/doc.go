// Package alarms persists the ordered alarm list as the "fliptime-alarms"
// JSON record of a kv.Store.
package alarms
