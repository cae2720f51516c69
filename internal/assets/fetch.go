// Package assets turns furniture mesh references into local files raylib can load.
// Local paths pass through untouched. http(s) URLs are downloaded once into a cache
// directory, and zip archives are unpacked beside the download.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultDir is the download cache, relative to the working directory.
const DefaultDir = "assets/models/downloaded"

// DefaultParallel bounds concurrent downloads in Prefetch.
const DefaultParallel = 4

// ModelExts are the model formats raylib loads, most preferred first.
var ModelExts = []string{".glb", ".gltf", ".obj", ".iqm", ".m3d", ".vox"}

// Fetcher resolves mesh references. It is safe for concurrent use: Prefetch runs on
// background goroutines while the renderer polls Cached every frame.
type Fetcher struct {
	Dir    string
	Client *http.Client
	log    logrus.FieldLogger

	mu       sync.Mutex
	resolved map[string]string
}

// NewFetcher returns a Fetcher caching into dir.
func NewFetcher(dir string, log logrus.FieldLogger) *Fetcher {
	if dir == "" {
		dir = DefaultDir
	}
	return &Fetcher{
		Dir:      dir,
		Client:   &http.Client{Timeout: 60 * time.Second},
		log:      log,
		resolved: make(map[string]string),
	}
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Cached returns the local path for ref without doing any I/O. Local refs are
// always "cached"; remote refs are once Resolve has succeeded.
func (f *Fetcher) Cached(ref string) (string, bool) {
	if !IsRemote(ref) {
		return ref, true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.resolved[ref]
	return p, ok
}

// Resolve returns a local model path for ref, downloading and unpacking it if needed.
// A download left by an earlier run is reused.
func (f *Fetcher) Resolve(ctx context.Context, ref string) (string, error) {
	if p, ok := f.Cached(ref); ok {
		return p, nil
	}
	archive := filepath.Join(f.Dir, cacheName(ref))
	if _, err := os.Stat(archive); err != nil {
		if err := f.download(ctx, ref, archive); err != nil {
			return "", err
		}
		f.log.WithField("url", ref).Info("model downloaded")
	}
	p := archive
	if strings.EqualFold(filepath.Ext(archive), ".zip") {
		dir := strings.TrimSuffix(archive, filepath.Ext(archive))
		files, err := Unzip(archive, dir)
		if err != nil {
			return "", err
		}
		var ok bool
		if p, ok = pickModel(files); !ok {
			return "", fmt.Errorf("assets: %s holds no model file", ref)
		}
	}
	f.mu.Lock()
	f.resolved[ref] = p
	f.mu.Unlock()
	return p, nil
}

// Prefetch resolves every remote ref, at most parallel at a time. Failures are logged;
// the returned error is the first one, or ctx's error if it was cancelled.
func (f *Fetcher) Prefetch(ctx context.Context, refs []string, parallel int) error {
	if parallel <= 0 {
		parallel = DefaultParallel
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	seen := make(map[string]bool)
	for _, ref := range refs {
		if !IsRemote(ref) || seen[ref] {
			continue
		}
		seen[ref] = true
		g.Go(func() error {
			if _, err := f.Resolve(ctx, ref); err != nil {
				f.log.WithError(err).WithField("url", ref).Warn("model prefetch failed")
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: HTTP %d", url, resp.StatusCode)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("download: %w", err)
	}
	// Write to a temp name so a half-written file is never mistaken for a cached one.
	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	_, err = io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("download: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("download: %w", err)
	}
	return nil
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// cacheName is "<hash>-<name><ext>": the URL's base name made file-safe, prefixed
// with a short hash of the whole URL so equal base names on different hosts differ.
func cacheName(url string) string {
	sum := sha256.Sum256([]byte(url))
	path := url
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	base := safeNameRe.ReplaceAllString(filepath.Base(path), "_")
	if len(base) > 64 {
		base = base[len(base)-64:]
	}
	if base == "" || base == "." || base == "_" {
		base = "model"
	}
	return hex.EncodeToString(sum[:4]) + "-" + base
}

// pickModel returns the first file with the most preferred model extension.
func pickModel(files []string) (string, bool) {
	for _, ext := range ModelExts {
		for _, f := range files {
			if strings.EqualFold(filepath.Ext(f), ext) {
				return f, true
			}
		}
	}
	return "", false
}
