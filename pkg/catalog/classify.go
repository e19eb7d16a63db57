// Package catalog implements the path classification, folder-tree grouping
// and filter/sort pipeline behind the browsable panels.
package catalog

import (
	"strings"
)

// BucketOther is the bucket assigned to paths without a recognized root folder.
const BucketOther = "other"

// rootFolders is the fixed set of recognized root folder names. Matching is
// case-insensitive; the canonical bucket name is the lower-case form.
var rootFolders = []string{
	"checkpoints",
	"loras",
	"embeddings",
	"vae",
	"controlnet",
	"upscale_models",
	"clip_vision",
}

// Classification is the result of classifying a raw item path.
type Classification struct {
	Bucket   string
	Segments []string
}

// Classify maps a raw path to a semantic bucket and the path segments after
// the recognized root folder. Every input produces a result: paths with no
// recognized root degrade to BucketOther with the full segment list.
func Classify(rawPath string) Classification {
	p := strings.ReplaceAll(rawPath, "\\", "/")
	lower := strings.ToLower(p)

	bestIdx := -1
	bestRoot := ""
	for _, root := range rootFolders {
		idx := indexBounded(lower, root)
		if idx >= 0 && (bestIdx == -1 || idx < bestIdx) {
			bestIdx = idx
			bestRoot = root
		}
	}

	if bestIdx == -1 {
		return Classification{Bucket: BucketOther, Segments: splitSegments(p)}
	}

	rest := p[bestIdx+len(bestRoot):]
	return Classification{Bucket: bestRoot, Segments: splitSegments(rest)}
}

// indexBounded finds the first occurrence of name in s that is bounded by
// '/' (or the string boundary) on both sides. Returns -1 if none.
func indexBounded(s, name string) int {
	from := 0
	for {
		idx := strings.Index(s[from:], name)
		if idx < 0 {
			return -1
		}
		idx += from
		startOK := idx == 0 || s[idx-1] == '/'
		end := idx + len(name)
		endOK := end == len(s) || s[end] == '/'
		if startOK && endOK {
			return idx
		}
		from = idx + 1
		if from >= len(s) {
			return -1
		}
	}
}

func splitSegments(p string) []string {
	parts := strings.Split(p, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
