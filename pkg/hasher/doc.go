// Package hasher computes identity fingerprints for source artifacts.
//
// Every input gets two independent identities:
//
//   - Textual hash: an XXH3-64 digest rendered as a decimal string. Any byte
//     change produces a different hash with overwhelming probability. Used for
//     byte-exact build-cache keys.
//   - Semantic ("protein") hash: a digest of a small feature vector extracted
//     from the content, rendered as "p" followed by 16 lowercase hex digits.
//     Inputs with similar structure tend to share it even when their bytes
//     differ.
//
// Neither hash is cryptographic. Both are optimized for speed and for staying
// stable across processes and platforms.
//
// # Modes
//
// [Hash] dispatches over the closed set of [Mode] values:
//
//	hasher.Hash(content, hasher.Textual)  // "1431857023981043224"
//	hasher.Hash(content, hasher.Semantic) // "p3f0c2d5e8a9b1c47"
//	hasher.Hash(content, hasher.Dual)     // "p3f0c2d5e8a9b1c47:1431857023981043224"
//
// A dual hash is always "<semantic>:<textual>". Consumers split it on the first
// colon, see [ParseDualHash].
//
// [AutoHash] picks Semantic when the content contains code-like keywords and
// Textual otherwise. It is a heuristic, not a language detector.
//
// # Files and arrays
//
// [HashFile] and [DualHashFile] read a file exactly once and report absence
// with a false second return value instead of an error. Semantic hashing of
// files is gated by extension (see [IsCodeExtension]) so data assets are never
// run through the code heuristic.
//
// [HashArray] joins a list of optional strings with commas, skipping absent
// entries, and hashes the result.
//
// # Feature extraction
//
// The default [PatternAnalyzer] counts literal keyword occurrences in four
// buckets. It is a placeholder for a real structural analyzer; any [Analyzer]
// can be plugged in through [ProteinHashWith].
//
// All functions in this package are pure and safe for concurrent use.
package hasher
