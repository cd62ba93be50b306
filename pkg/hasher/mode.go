package hasher

import (
	"strings"

	errs "github.com/matzehuels/soulhash/pkg/errors"
)

// Mode selects which identity Hash computes.
type Mode uint8

const (
	// Textual selects the byte-exact TextHash.
	Textual Mode = iota
	// Semantic selects the feature-based ProteinHash.
	Semantic
	// Dual composes Semantic and Textual as "<semantic>:<textual>".
	Dual
)

// DualSeparator joins the two halves of a dual hash.
const DualSeparator = ":"

// String returns the canonical lowercase name of m.
func (m Mode) String() string {
	switch m {
	case Textual:
		return "text"
	case Semantic:
		return "semantic"
	case Dual:
		return "dual"
	}
	return "unknown"
}

// ParseMode converts a mode name into a Mode. Matching is case-insensitive;
// "textual" and "protein" are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "textual":
		return Textual, nil
	case "semantic", "protein":
		return Semantic, nil
	case "dual":
		return Dual, nil
	}
	return Textual, errs.New(errs.ErrCodeInvalidMode, "unknown hash mode %q (want text, semantic or dual)", s)
}

// Hash computes the identity of content selected by mode.
// Unknown modes hash textually.
func Hash(content []byte, mode Mode) string {
	switch mode {
	case Semantic:
		return ProteinHash(content)
	case Dual:
		return ComputeDual(content).String()
	default:
		return TextHash(content)
	}
}

// codeMarkers trigger semantic hashing in AutoHash.
var codeMarkers = []string{"function", "class", "import", "const", "=>", "async"}

// DetectMode returns Semantic if content looks like code and Textual otherwise.
func DetectMode(content []byte) Mode {
	text := decodeLossy(content)
	for _, m := range codeMarkers {
		if strings.Contains(text, m) {
			return Semantic
		}
	}
	return Textual
}

// AutoHash hashes content with the mode picked by DetectMode.
func AutoHash(content []byte) string {
	return Hash(content, DetectMode(content))
}

// DualHash pairs the semantic and textual identities of one artifact.
// Both fields are always populated together.
type DualHash struct {
	Semantic string `json:"semantic"`
	Textual  string `json:"textual"`
}

// ComputeDual computes both identities of content.
func ComputeDual(content []byte) DualHash {
	return DualHash{
		Semantic: ProteinHash(content),
		Textual:  TextHash(content),
	}
}

// String renders d in the "<semantic>:<textual>" wire format.
func (d DualHash) String() string {
	return d.Semantic + DualSeparator + d.Textual
}

// ParseDualHash splits a dual hash string on its first separator.
// It reports false if s has no separator or either half is empty.
func ParseDualHash(s string) (DualHash, bool) {
	sem, text, ok := strings.Cut(s, DualSeparator)
	if !ok || sem == "" || text == "" {
		return DualHash{}, false
	}
	return DualHash{Semantic: sem, Textual: text}, true
}

// IsSemantic reports whether h carries the semantic prefix.
func IsSemantic(h string) bool {
	return strings.HasPrefix(h, SemanticPrefix)
}
