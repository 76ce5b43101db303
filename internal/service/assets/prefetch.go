package assets

import (
	"context"
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/fliptime/internal/logger"
	"github.com/oshokin/fliptime/internal/version"

	// Ensure SHA512 available for checksum calculation.
	_ "crypto/sha512"
)

const (
	// ManifestFilename is written next to the cached files.
	ManifestFilename = "manifest.yaml"

	// ChecksumFunction is used to hash cached files.
	ChecksumFunction crypto.Hash = crypto.SHA512

	// indexFilename stands in for directory URLs such as "./".
	indexFilename = "index.html"

	filePermissions = 0o644
	dirPermissions  = 0o755
)

var (
	// ErrNothingFetched is returned when every download failed or the list was empty.
	ErrNothingFetched = errors.New("no asset could be fetched")
	// ErrRelativeWithoutBase is returned for relative entries when no base URL is set.
	ErrRelativeWithoutBase = errors.New("relative asset without base URL")

	errBadHTTPStatus     = errors.New("unexpected http status")
	errUnsupportedScheme = errors.New("unsupported URL scheme")
	errHashUnavailable   = errors.New("hash function unavailable")
)

// Entry describes one cached file.
type Entry struct {
	// URL is the absolute source URL.
	URL string `yaml:"url"`
	// Checksum is the base64 SHA-512 of the file.
	Checksum string `yaml:"checksum"`
	// Size is the file length in bytes.
	Size int64 `yaml:"size"`
}

// Manifest is the description written to ManifestFilename.
type Manifest struct {
	// Version is the fliptime version that fetched the files.
	Version string `yaml:"version"`
	// FetchedAt is when the prefetch finished.
	FetchedAt time.Time `yaml:"fetched_at"`
	// Files maps cache-relative paths to entries.
	Files map[string]Entry `yaml:"files"`
}

// Options are the inputs of Prefetch.
type Options struct {
	// BaseURL resolves relative entries.
	BaseURL string
	// URLs is the manifest to download.
	URLs []string
	// Dir is the cache directory.
	Dir string
	// Timeout bounds each download; zero means no per-file limit.
	Timeout time.Duration
	// Client is the HTTP client; nil means http.DefaultClient.
	Client *http.Client
}

// Prefetch downloads every asset and writes the manifest. Individual failures
// are logged and skipped, keeping the entry of an earlier run when the cached
// file is still there. ErrNothingFetched is returned when no download succeeded.
func Prefetch(ctx context.Context, opts *Options) (*Manifest, error) {
	ctx = logger.WithName(ctx, "prefetch")

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	manifest := &Manifest{
		Version: version.Short(),
		Files:   make(map[string]Entry, len(opts.URLs)),
	}

	previous, err := ReadManifest(opts.Dir)
	if err != nil {
		logger.DebugKV(ctx, "No previous manifest", "error", err)

		previous = &Manifest{}
	}

	fetched := 0

	for _, raw := range opts.URLs {
		source, err := Resolve(opts.BaseURL, raw)
		if err != nil {
			logger.WarnKV(ctx, "Skipping asset", "url", raw, "error", err)

			continue
		}

		name := CacheName(source)

		target := filepath.Join(opts.Dir, filepath.FromSlash(name))

		entry, err := download(ctx, client, opts.Timeout, source, target)
		if err != nil {
			logger.WarnKV(ctx, "Asset download failed", "url", source.String(), "error", err)

			if old, ok := previous.Files[name]; ok && fileExists(target) {
				manifest.Files[name] = old
			}

			continue
		}

		fetched++
		manifest.Files[name] = entry
		logger.InfoKV(ctx, "Downloaded asset", "url", entry.URL, "path", name, "size", entry.Size)
	}

	if fetched == 0 {
		return nil, ErrNothingFetched
	}

	manifest.FetchedAt = time.Now().UTC()

	if err := writeManifest(opts.Dir, manifest); err != nil {
		return nil, err
	}

	return manifest, nil
}

// Resolve turns a manifest entry into an absolute http(s) URL.
func Resolve(base, raw string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", raw, err)
	}

	if !ref.IsAbs() {
		if base == "" {
			return nil, fmt.Errorf("%w: %q", ErrRelativeWithoutBase, raw)
		}

		var baseURL *url.URL

		baseURL, err = url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}

		ref = baseURL.ResolveReference(ref)
	}

	if ref.Scheme != "http" && ref.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", errUnsupportedScheme, ref.Scheme)
	}

	return ref, nil
}

// CacheName maps a URL onto a slash-separated path below the cache directory.
func CacheName(u *url.URL) string {
	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		p += indexFilename
	}

	// Cleaning a rooted path drops any "..".
	return u.Host + path.Clean("/"+p)
}

// download fetches source into target, hashing it on the way.
func download(
	ctx context.Context,
	client *http.Client,
	timeout time.Duration,
	source *url.URL,
	target string,
) (Entry, error) {
	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if !ChecksumFunction.Available() {
		return Entry{}, errHashUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.String(), http.NoBody)
	if err != nil {
		return Entry{}, err
	}

	req.Header.Set("User-Agent", version.UserAgent())

	response, err := client.Do(req)
	if err != nil {
		return Entry{}, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return Entry{}, fmt.Errorf("%w: %s", errBadHTTPStatus, response.Status)
	}

	if err = os.MkdirAll(filepath.Dir(target), dirPermissions); err != nil {
		return Entry{}, err
	}

	// A failed transfer must not replace a previously cached copy.
	output, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+"-*")
	if err != nil {
		return Entry{}, err
	}

	tmpName := output.Name()

	defer func() {
		_ = os.Remove(tmpName)
	}()

	hasher := ChecksumFunction.New()

	size, err := io.Copy(io.MultiWriter(output, hasher), response.Body)
	if err != nil {
		_ = output.Close()

		return Entry{}, err
	}

	if err = output.Chmod(filePermissions); err != nil {
		_ = output.Close()

		return Entry{}, err
	}

	if err = output.Close(); err != nil {
		return Entry{}, err
	}

	if err = os.Rename(tmpName, filepath.Clean(target)); err != nil {
		return Entry{}, err
	}

	return Entry{
		URL:      source.String(),
		Checksum: base64.StdEncoding.EncodeToString(hasher.Sum(nil)),
		Size:     size,
	}, nil
}

func fileExists(name string) bool {
	info, err := os.Stat(name)

	return err == nil && info.Mode().IsRegular()
}

// writeManifest stores the manifest as YAML in dir.
func writeManifest(dir string, manifest *Manifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err = os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	if err = os.WriteFile(filepath.Join(dir, ManifestFilename), data, filePermissions); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// ReadManifest loads the manifest written by Prefetch. The prefetch command
// uses it to list the cache and Prefetch uses it to keep entries of failed downloads.
func ReadManifest(dir string) (*Manifest, error) {
	contents, err := os.ReadFile(filepath.Join(filepath.Clean(dir), ManifestFilename))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err = yaml.Unmarshal(contents, &manifest); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &manifest, nil
}
