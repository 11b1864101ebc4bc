package cache

import "time"

// Keyer builds cache keys for each kind of cached value.
type Keyer interface {
	// ImageKey identifies the probed dimensions of an image file. The file
	// size and modification time are part of the key so edits invalidate it.
	ImageKey(path string, size int64, modTime time.Time) string

	// ArtifactKey identifies a rendered output for a given source document.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	ConfigHash string `json:"config_hash"`
	Width      int    `json:"width,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ImageKey implements Keyer.
func (DefaultKeyer) ImageKey(path string, size int64, modTime time.Time) string {
	return hashKey("image", path, size, modTime.UnixNano())
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, sourceHash, opts)
}
