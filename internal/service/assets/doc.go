// Package assets downloads the offline asset manifest into a local cache.
//
// Every file is stored under <dir>/<host>/<path> and recorded in
// manifest.yaml together with its base64 SHA-512 checksum.
package assets
