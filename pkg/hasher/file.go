package hasher

import (
	"os"
	"path/filepath"
	"strings"
)

// codeExtensions lists the file extensions eligible for semantic hashing.
var codeExtensions = map[string]struct{}{
	"js": {}, "ts": {}, "jsx": {}, "tsx": {},
	"rs": {}, "go": {}, "java": {}, "py": {},
}

// IsCodeExtension reports whether path's extension is on the semantic
// allow-list. The comparison is case-sensitive.
func IsCodeExtension(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	_, ok := codeExtensions[ext]
	return ok
}

// ReadFile performs the single read attempt shared by all file operations.
// A false second result means the file could not be read.
func ReadFile(path string) ([]byte, bool) {
	lg().Debug("reading file to hash", "path", path)
	content, err := os.ReadFile(path)
	if err != nil {
		lg().Debug("failed to read file", "path", path, "err", err)
		return nil, false
	}
	return content, true
}

// HashFile hashes the file at path. When semantic is set, only files with a
// code extension get ProteinHash; all others fall back to TextHash.
//
// A false second result means the file could not be read, which is distinct
// from a zero-length file.
func HashFile(path string, semantic bool) (string, bool) {
	content, ok := ReadFile(path)
	if !ok {
		return "", false
	}
	h := hashFileContent(path, content, semantic)
	lg().Debug("hashed file", "path", path, "semantic", semantic, "hash", h)
	return h, true
}

func hashFileContent(path string, content []byte, semantic bool) string {
	if semantic && IsCodeExtension(path) {
		return ProteinHash(content)
	}
	return TextHash(content)
}

// DualHashFile reads path once and computes both identities from that buffer.
func DualHashFile(path string) (DualHash, bool) {
	content, ok := ReadFile(path)
	if !ok {
		return DualHash{}, false
	}
	return ComputeDual(content), true
}

// HashFileMode reads path once and hashes it with mode. Semantic is subject to
// the same extension gate as HashFile; Dual always carries both halves.
func HashFileMode(path string, mode Mode) (string, bool) {
	content, ok := ReadFile(path)
	if !ok {
		return "", false
	}
	return HashContent(path, content, mode), true
}

// HashContent hashes content previously read from path. It applies the same
// extension gate as HashFileMode.
func HashContent(path string, content []byte, mode Mode) string {
	switch mode {
	case Semantic:
		return hashFileContent(path, content, true)
	case Dual:
		return ComputeDual(content).String()
	default:
		return TextHash(content)
	}
}

// AutoHashFile reads path once and hashes it with AutoHash.
func AutoHashFile(path string) (string, bool) {
	content, ok := ReadFile(path)
	if !ok {
		return "", false
	}
	return AutoHash(content), true
}
