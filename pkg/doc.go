// Package pkg provides the libraries behind soulhash, a content fingerprinting
// tool for build caches and artifact deduplication.
//
// # Overview
//
// Every artifact gets two identities:
//
//   - a textual hash, the decimal XXH3-64 digest of its exact bytes, used as a
//     cache key
//   - a semantic "protein" hash, p followed by 16 hex digits, derived from
//     counts of coarse code features, shared by code with the same shape
//
// Artifacts that share a protein hash are "soul siblings". The pkg directory
// is organized as follows:
//
//  1. [hasher] - TextHash, ProteinHash, mode dispatch, file and array hashing
//  2. [soul] - Registry mapping protein hashes to the paths that produced them
//  3. [fingerprint] - Concurrent batch hashing with caching and registration
//  4. [cache] - Cache backends (file, Redis, MongoDB) and key derivation
//  5. [server] - HTTP API over the hashers and a shared registry
//  6. [errors], [observability], [buildinfo] - Supporting infrastructure
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/soulhash/pkg/hasher"
//	    "github.com/matzehuels/soulhash/pkg/soul"
//	)
//
//	reg := soul.New()
//	for _, path := range files {
//	    h, ok := hasher.HashFile(path, true)
//	    if ok && hasher.IsSemantic(h) {
//	        reg.Register(h, path)
//	    }
//	}
//	for _, g := range reg.Groups(2) {
//	    fmt.Println(g.Soul, g.Paths)
//	}
//
// Batch work with caching goes through [fingerprint.Runner]:
//
//	r := fingerprint.NewRunner(cache.NewNullCache(), nil, reg, logger)
//	results, err := r.HashFiles(ctx, files, fingerprint.Options{Mode: hasher.Dual})
//
// # Design
//
// The hashing core never fails. Unreadable files are reported as absence
// (ok == false) and invalid UTF-8 is decoded lossily before feature counting.
// Neither hash resists deliberate collisions; both are tuned for speed and
// cache-key stability.
//
// [hasher]: https://pkg.go.dev/github.com/matzehuels/soulhash/pkg/hasher
// [soul]: https://pkg.go.dev/github.com/matzehuels/soulhash/pkg/soul
// [fingerprint]: https://pkg.go.dev/github.com/matzehuels/soulhash/pkg/fingerprint
// [fingerprint.Runner]: https://pkg.go.dev/github.com/matzehuels/soulhash/pkg/fingerprint#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/soulhash/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/soulhash/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/soulhash/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/soulhash/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/soulhash/pkg/buildinfo
package pkg
