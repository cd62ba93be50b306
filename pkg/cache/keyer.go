package cache

import (
	"github.com/matzehuels/soulhash/pkg/hasher"
)

// FileKeyOpts identifies one revision of a file by its content.
//
// Digest is the textual hash of the full content. Stat metadata is not part
// of the key: tools such as cp -p, tar and rsync -a restore the mtime of
// rewritten files.
type FileKeyOpts struct {
	Size   int64
	Digest string
	Mode   string // hash mode name, e.g. "dual"
}

// Keyer derives cache keys.
type Keyer interface {
	// FileKey addresses the cached fingerprint of one file revision.
	FileKey(path string, opts FileKeyOpts) string

	// ArtifactKey addresses a build artifact by the dual hash of its source.
	// The dual hash is embedded verbatim so consumers can read it back.
	ArtifactKey(namespace string, d hasher.DualHash) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FileKey returns "file:<sha256>" over path, size, content digest and mode.
// The path stays in the key because the semantic extension gate depends on it.
func (DefaultKeyer) FileKey(path string, opts FileKeyOpts) string {
	return hashKey("file", path, opts.Size, opts.Digest, opts.Mode)
}

// ArtifactKey returns "artifact:<namespace>:<semantic>:<textual>".
func (DefaultKeyer) ArtifactKey(namespace string, d hasher.DualHash) string {
	return "artifact:" + namespace + ":" + d.String()
}

var _ Keyer = DefaultKeyer{}
