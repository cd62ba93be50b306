package fingerprint

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/soulhash/pkg/cache"
	errs "github.com/matzehuels/soulhash/pkg/errors"
	"github.com/matzehuels/soulhash/pkg/hasher"
	"github.com/matzehuels/soulhash/pkg/soul"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{})
}

func TestHashFilesModes(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.ts":   "function add(a, b) { return a + b; }",
		"b.json": `{"const": "=>"}`,
	})
	a, b := filepath.Join(dir, "a.ts"), filepath.Join(dir, "b.json")
	aContent, _ := os.ReadFile(a)
	bContent, _ := os.ReadFile(b)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"text", Options{Mode: hasher.Textual}, []string{hasher.TextHash(aContent), hasher.TextHash(bContent)}},
		{"semantic gated", Options{Mode: hasher.Semantic}, []string{hasher.ProteinHash(aContent), hasher.TextHash(bContent)}},
		{"dual", Options{Mode: hasher.Dual}, []string{hasher.Hash(aContent, hasher.Dual), hasher.Hash(bContent, hasher.Dual)}},
		{"auto", Options{Auto: true}, []string{hasher.AutoHash(aContent), hasher.AutoHash(bContent)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(nil, nil, nil, quietLogger())
			results, err := r.HashFiles(context.Background(), []string{a, b}, tt.opts)
			if err != nil {
				t.Fatalf("HashFiles: %v", err)
			}
			for i, res := range results {
				if res.Err != nil {
					t.Fatalf("%s: %v", res.Path, res.Err)
				}
				if res.Hash != tt.want[i] {
					t.Errorf("%s hash = %q, want %q", filepath.Base(res.Path), res.Hash, tt.want[i])
				}
			}
		})
	}
}

func TestHashFilesReportsMissing(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ok.go": "package ok"})
	paths := []string{filepath.Join(dir, "missing.go"), filepath.Join(dir, "ok.go"), dir, ""}

	r := NewRunner(nil, nil, nil, quietLogger())
	results, err := r.HashFiles(context.Background(), paths, Options{Mode: hasher.Textual})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}

	if !errs.Is(results[0].Err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", results[0].Err)
	}
	if results[1].Err != nil || results[1].Hash == "" {
		t.Errorf("ok.go = %+v", results[1])
	}
	if !errs.Is(results[2].Err, errs.ErrCodeInvalidPath) {
		t.Errorf("directory error = %v", results[2].Err)
	}
	if !errs.Is(results[3].Err, errs.ErrCodeInvalidPath) {
		t.Errorf("empty path error = %v", results[3].Err)
	}
}

func TestHashFilesRegistersSouls(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"add.js": "function add(a, b) { return a + b; }",
		"sum.js": "function sum(x, y) { return x + y; }",
		"imp.js": "import fs from 'fs';",
	})
	paths := []string{
		filepath.Join(dir, "add.js"),
		filepath.Join(dir, "imp.js"),
		filepath.Join(dir, "sum.js"),
	}

	reg := soul.New()
	r := NewRunner(nil, nil, reg, quietLogger())
	r.Workers = 2
	results, err := r.HashFiles(context.Background(), paths, Options{Mode: hasher.Dual})
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}

	siblings := reg.FindBySoul(results[0].Soul)
	if want := []string{paths[0], paths[2]}; !reflect.DeepEqual(siblings, want) {
		t.Errorf("siblings = %v, want %v", siblings, want)
	}
	if reg.Len() != 2 {
		t.Errorf("registry has %d souls, want 2", reg.Len())
	}
}

func TestHashFilesTextualRegistersNothing(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.go": "func main() {}"})
	reg := soul.New()
	r := NewRunner(nil, nil, reg, quietLogger())

	res := r.HashFile(context.Background(), filepath.Join(dir, "a.go"), Options{Mode: hasher.Textual})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.Soul != "" || reg.Len() != 0 {
		t.Errorf("textual hashing should not register souls: %+v", res)
	}
}

func TestHashFilesUsesCache(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.py": "def f(): pass"})
	path := filepath.Join(dir, "a.py")

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, soul.New(), quietLogger())
	ctx := context.Background()
	opts := Options{Mode: hasher.Semantic}

	first := r.HashFile(ctx, path, opts)
	if first.Err != nil || first.Cached {
		t.Fatalf("first run = %+v", first)
	}

	second := r.HashFile(ctx, path, opts)
	if !second.Cached {
		t.Error("second run should hit the cache")
	}
	if second.Hash != first.Hash || second.Soul != first.Soul {
		t.Errorf("cached result %+v differs from %+v", second, first)
	}

	// Another mode is another key.
	other := r.HashFile(ctx, path, Options{Mode: hasher.Textual})
	if other.Cached {
		t.Error("different mode should miss the cache")
	}

	if got := len(r.Registry.FindBySoul(first.Soul)); got != 2 {
		t.Errorf("cache hits should still register souls, got %d entries", got)
	}
}

func TestHashFilesCacheSeesRewriteWithRestoredMtime(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"text", Options{Mode: hasher.Textual}},
		{"semantic", Options{Mode: hasher.Semantic}},
		{"dual", Options{Mode: hasher.Dual}},
		{"auto", Options{Auto: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{"a.go": "if x"})
			path := filepath.Join(dir, "a.go")
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}

			c, err := cache.NewFileCache(t.TempDir())
			if err != nil {
				t.Fatal(err)
			}
			r := NewRunner(c, nil, nil, quietLogger())
			ctx := context.Background()

			first := r.HashFile(ctx, path, tt.opts)
			if first.Err != nil {
				t.Fatal(first.Err)
			}

			// Same size, mtime put back the way cp -p or rsync -a would.
			if err := os.WriteFile(path, []byte("fn x"), 0644); err != nil {
				t.Fatal(err)
			}
			if err := os.Chtimes(path, info.ModTime(), info.ModTime()); err != nil {
				t.Fatal(err)
			}

			second := r.HashFile(ctx, path, tt.opts)
			if second.Err != nil {
				t.Fatal(second.Err)
			}
			if second.Cached {
				t.Error("rewritten file should miss the cache")
			}
			if second.Hash == first.Hash {
				t.Errorf("hash unchanged after rewrite: %s", second.Hash)
			}
			if tt.opts.Mode == hasher.Textual && !tt.opts.Auto {
				if want := hasher.TextHash([]byte("fn x")); second.Hash != want {
					t.Errorf("hash = %s, want %s", second.Hash, want)
				}
			}
		})
	}
}

func TestHashFilesCacheHitAfterTouch(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.go": "package a"})
	path := filepath.Join(dir, "a.go")

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil, quietLogger())
	ctx := context.Background()
	opts := Options{Mode: hasher.Dual}

	first := r.HashFile(ctx, path, opts)
	if first.Err != nil {
		t.Fatal(first.Err)
	}

	// A fresh mtime with identical content is still a hit.
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	second := r.HashFile(ctx, path, opts)
	if !second.Cached || second.Hash != first.Hash {
		t.Errorf("touch without edit = %+v, want cached %s", second, first.Hash)
	}
}

func TestHashFilesCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.go": "package a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil, quietLogger())
	_, err := r.HashFiles(ctx, []string{filepath.Join(dir, "a.go")}, Options{})
	if err != context.Canceled {
		t.Errorf("HashFiles error = %v, want context.Canceled", err)
	}
}

func TestSoulOf(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"p0123456789abcdef:42", "p0123456789abcdef"},
		{"p0123456789abcdef", "p0123456789abcdef"},
		{"1234567890", ""},
	}
	for _, tt := range tests {
		if got := soulOf(tt.in); got != tt.want {
			t.Errorf("soulOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
