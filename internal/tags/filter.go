package tags

import (
	"os"
	"path/filepath"
	"strings"
)

// SourceExtensions are the file kinds indexed by the line based engine:
// Clojure, ClojureScript, cross-platform Clojure and EDN data.
var SourceExtensions = map[string]bool{
	".clj":  true,
	".cljs": true,
	".cljc": true,
	".edn":  true,
}

// Filter decides which regular files are handed to the line based engine.
type Filter struct {
	// BuildFile is excluded wherever it appears, e.g. "project.clj".
	BuildFile string
	// MetadataDir excludes any path with this segment, e.g. "META-INF".
	MetadataDir string
	Extensions  map[string]bool
}

// DefaultFilter returns the filter for a Leiningen project.
func DefaultFilter() Filter {
	return Filter{BuildFile: "project.clj", MetadataDir: "META-INF", Extensions: SourceExtensions}
}

// Match reports whether path should be indexed. Directories never match.
func (f Filter) Match(path string, info os.FileInfo) bool {
	if info == nil || !info.Mode().IsRegular() {
		return false
	}
	return f.MatchPath(path)
}

// MatchPath applies the filter to path alone.
func (f Filter) MatchPath(path string) bool {
	slashed := filepath.ToSlash(path)
	if f.MetadataDir != "" && hasSegment(slashed, f.MetadataDir) {
		return false
	}
	if f.BuildFile != "" && strings.HasSuffix(slashed, f.BuildFile) {
		return false
	}
	return f.Extensions[strings.ToLower(filepath.Ext(slashed))]
}

func hasSegment(slashed, segment string) bool {
	for _, part := range strings.Split(slashed, "/") {
		if part == segment {
			return true
		}
	}
	return false
}
