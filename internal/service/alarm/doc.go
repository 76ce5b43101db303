// Package alarm decides which alarms fire on a tick and triggers their effects.
//
// Evaluation only happens on the zero second of a minute, which limits every
// alarm to one firing per matching minute. A tick that misses the zero second
// skips that minute's alarms; nothing remembers what already fired.
package alarm
