// Package kv implements the key-value string store the clock persists into.
//
// FileStore keeps one JSON document per key on disk and replaces it through a
// temporary file and rename, so readers never observe a partial write.
// MemoryStore is the in-process variant used by tests and ephemeral runs.
package kv
