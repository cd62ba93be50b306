package hasher

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/text/encoding/unicode"
)

// SemanticPrefix marks a semantic hash so its mode can be told from the string alone.
const SemanticPrefix = "p"

// proteinTag separates feature digests from any other XXH3 use of the same bytes.
const proteinTag = "PROTEIN:"

// Bucket indexes into a FeatureVector.
type Bucket int

const (
	// Declarations counts function declarations, arrows and async markers.
	Declarations Bucket = iota
	// ControlFlow counts conditionals, loops and switches.
	ControlFlow
	// DataTransform counts map/filter/reduce style operations.
	DataTransform
	// ModuleLinkage counts import/export/require declarations.
	ModuleLinkage

	numBuckets
)

// FeatureVector holds one occurrence count per Bucket. Order is part of the
// hash contract and must not change.
type FeatureVector [numBuckets]uint32

// Analyzer extracts a FeatureVector from decoded text.
//
// Implementations must be deterministic and total. Near-identical code should
// map to equal vectors more often than unrelated code.
type Analyzer interface {
	Analyze(text string) FeatureVector
}

// bucketMarkers lists the literal substrings counted for each bucket.
var bucketMarkers = [numBuckets][]string{
	Declarations:  {"function", "=>", "async"},
	ControlFlow:   {"if", "for", "while", "switch"},
	DataTransform: {"map", "filter", "reduce", "forEach"},
	ModuleLinkage: {"import", "export", "require"},
}

// PatternAnalyzer counts keyword occurrences per bucket. Each marker is counted
// independently with non-overlapping matches, so "forEach" adds to both the
// "for" and the "forEach" totals.
type PatternAnalyzer struct{}

// Analyze implements Analyzer.
func (PatternAnalyzer) Analyze(text string) FeatureVector {
	return Features(text)
}

// Features computes the default feature vector of text.
func Features(text string) FeatureVector {
	var fv FeatureVector
	for b, markers := range bucketMarkers {
		total := 0
		for _, m := range markers {
			total += strings.Count(text, m)
		}
		fv[b] = saturate(total)
	}
	return fv
}

func saturate(n int) uint32 {
	if uint64(n) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}

// ProteinHash returns the semantic hash of content using PatternAnalyzer.
func ProteinHash(content []byte) string {
	return ProteinHashWith(PatternAnalyzer{}, content)
}

// ProteinHashWith returns the semantic hash of content using a.
// A nil Analyzer falls back to PatternAnalyzer.
func ProteinHashWith(a Analyzer, content []byte) string {
	if a == nil {
		a = PatternAnalyzer{}
	}
	return FeatureDigest(a.Analyze(decodeLossy(content)))
}

// FeatureDigest folds fv into a prefixed, fixed-width hash string.
func FeatureDigest(fv FeatureVector) string {
	h := xxh3.New()
	_, _ = h.WriteString(proteinTag)

	var buf [4]byte
	for _, count := range fv {
		binary.LittleEndian.PutUint32(buf[:], count)
		_, _ = h.Write(buf[:])
	}
	return fmt.Sprintf("%s%016x", SemanticPrefix, h.Sum64())
}

// decodeLossy decodes content as UTF-8, replacing ill-formed sequences with U+FFFD.
func decodeLossy(content []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(content)
	if err != nil {
		return strings.ToValidUTF8(string(content), "�")
	}
	return string(out)
}
