// Package fingerprint hashes batches of files with caching and soul
// registration. It is the layer both the CLI and embedding build tools use so
// cache and registry handling is not duplicated.
package fingerprint

import (
	"context"
	"encoding/json"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/soulhash/pkg/cache"
	errs "github.com/matzehuels/soulhash/pkg/errors"
	"github.com/matzehuels/soulhash/pkg/hasher"
	"github.com/matzehuels/soulhash/pkg/observability"
	"github.com/matzehuels/soulhash/pkg/soul"
)

// keyTypeFile labels file-key cache events for hooks.
const keyTypeFile = "file"

// Options controls how files are hashed.
type Options struct {
	// Mode selects the identity computed. Ignored when Auto is set.
	Mode hasher.Mode

	// Auto picks the mode per file from its content.
	Auto bool

	// TTL bounds how long cached fingerprints live. Zero keeps them forever.
	TTL time.Duration
}

// modeName identifies the options in cache keys and logs.
func (o Options) modeName() string {
	if o.Auto {
		return "auto"
	}
	return o.Mode.String()
}

// Result is the outcome for one file.
type Result struct {
	Path   string
	Hash   string // formatted per the requested mode
	Soul   string // semantic half of Hash, empty if none was computed
	Size   int64
	Cached bool
	Err    error
}

// record is the cached form of a Result.
type record struct {
	Hash string `json:"hash"`
	Soul string `json:"soul,omitempty"`
}

// Runner hashes files with caching.
//
// The Runner holds no per-run state besides the Registry, which is safe for
// concurrent use, so one Runner can serve several goroutines.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Registry *soul.Registry // optional; souls are registered when set
	Logger   *log.Logger
	Workers  int // concurrent file reads; <= 0 means GOMAXPROCS
}

// NewRunner creates a runner. Nil arguments fall back to NullCache,
// DefaultKeyer and log.Default(). A nil registry disables registration.
func NewRunner(c cache.Cache, keyer cache.Keyer, reg *soul.Registry, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Registry: reg,
		Logger:   logger,
	}
}

// HashFiles hashes paths concurrently and returns one Result per path in
// input order. Per-file failures are reported in Result.Err and never abort
// the batch; only context cancellation does.
//
// Souls are registered after all files are hashed, in input order, so the
// registry contents do not depend on scheduling.
func (r *Runner) HashFiles(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.hashFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		r.register(ctx, res)
	}
	return results, nil
}

// HashFile hashes a single file and registers its soul.
func (r *Runner) HashFile(ctx context.Context, path string, opts Options) Result {
	res := r.hashFile(ctx, path, opts)
	r.register(ctx, res)
	return res
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (r *Runner) register(ctx context.Context, res Result) {
	if r.Registry == nil || res.Err != nil || res.Soul == "" {
		return
	}
	r.Registry.Register(res.Soul, res.Path)
	observability.Hash().OnRegister(ctx, res.Soul, res.Path)
}

func (r *Runner) hashFile(ctx context.Context, path string, opts Options) Result {
	res := Result{Path: path}

	if err := errs.ValidateFilePath(path); err != nil {
		res.Err = err
		return res
	}

	info, err := os.Stat(path)
	if err != nil {
		observability.Hash().OnUnreadable(ctx, path)
		res.Err = errs.Wrap(errs.ErrCodeFileNotFound, err, "stat %s", path)
		return res
	}
	if info.IsDir() {
		res.Err = errs.New(errs.ErrCodeInvalidPath, "%s is a directory", path)
		return res
	}

	start := time.Now()
	content, ok := hasher.ReadFile(path)
	if !ok {
		observability.Hash().OnUnreadable(ctx, path)
		res.Err = errs.New(errs.ErrCodeFileNotFound, "could not read %s", path)
		return res
	}
	res.Size = int64(len(content))

	// The textual hash is the content digest, so there is nothing to cache.
	digest := hasher.TextHash(content)
	if !opts.Auto && opts.Mode == hasher.Textual {
		observability.Hash().OnHash(ctx, opts.modeName(), len(content), time.Since(start))
		res.Hash = digest
		return res
	}

	key := r.Keyer.FileKey(path, cache.FileKeyOpts{
		Size:   res.Size,
		Digest: digest,
		Mode:   opts.modeName(),
	})

	if rec, ok := r.lookup(ctx, key); ok {
		r.Logger.Debug("fingerprint cache hit", "path", path)
		res.Hash, res.Soul, res.Cached = rec.Hash, rec.Soul, true
		return res
	}

	h := computeHash(path, content, opts)
	observability.Hash().OnHash(ctx, opts.modeName(), len(content), time.Since(start))

	res.Hash = h
	res.Soul = soulOf(h)
	r.store(ctx, key, record{Hash: res.Hash, Soul: res.Soul}, opts.TTL)
	r.Logger.Debug("hashed file", "path", path, "mode", opts.modeName(), "hash", h)
	return res
}

func computeHash(path string, content []byte, opts Options) string {
	if opts.Auto {
		return hasher.AutoHash(content)
	}
	return hasher.HashContent(path, content, opts.Mode)
}

// soulOf extracts the semantic identity carried by a formatted hash.
func soulOf(h string) string {
	if d, ok := hasher.ParseDualHash(h); ok {
		return d.Semantic
	}
	if hasher.IsSemantic(h) {
		return h
	}
	return ""
}

// lookup reads a cached record. Backend errors and undecodable entries are
// logged and treated as misses.
func (r *Runner) lookup(ctx context.Context, key string) (record, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("fingerprint cache read failed", "err", err)
		return record{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeFile)
		return record{}, false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || rec.Hash == "" {
		observability.Cache().OnCacheMiss(ctx, keyTypeFile)
		return record{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeFile)
	return rec, true
}

func (r *Runner) store(ctx context.Context, key string, rec record, ttl time.Duration) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("fingerprint cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeFile, len(data))
}
