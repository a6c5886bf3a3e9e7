package resource

import (
	"path"
	"path/filepath"
	"regexp"
)

const (
	// DefaultBase is the directory and object-key prefix the datasets
	// live under, in the repo and in the bucket alike.
	DefaultBase = "01_COMPUTE_data"

	dictionarySuffix = "_dictionary_compute.json"
	categorySuffix   = "_category_vars.json"
)

// sourceNamePattern restricts data-source names to the shape of the
// known datasets (gss, yrbs, mtf, ...). Names are interpolated into
// filesystem paths and object keys, so anything else is rejected
// before a path is ever built.
var sourceNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidSourceName reports whether name is safe to use as a data-source
// identifier.
func ValidSourceName(name string) bool {
	return sourceNamePattern.MatchString(name)
}

// Paths builds the filesystem paths and object keys for a data
// source's documents. Dir is the local data root; Prefix is the
// object-key prefix. Both default to DefaultBase, so the bucket is
// laid out as a mirror of the local data directory.
type Paths struct {
	Dir    string
	Prefix string
}

// DefaultPaths returns the layout used when nothing is configured.
func DefaultPaths() Paths {
	return Paths{Dir: DefaultBase, Prefix: DefaultBase}
}

// Dictionary returns the local path and remote key of a source's
// variable dictionary.
func (p Paths) Dictionary(source string) (localPath, remoteKey string) {
	return p.build(source, source+dictionarySuffix)
}

// Categories returns the local path and remote key of a source's
// category document.
func (p Paths) Categories(source string) (localPath, remoteKey string) {
	return p.build(source, source+categorySuffix)
}

func (p Paths) build(source, file string) (localPath, remoteKey string) {
	localPath = filepath.Join(p.Dir, source, file)
	remoteKey = path.Join(p.Prefix, source, file)
	return localPath, remoteKey
}
