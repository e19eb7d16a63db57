// Package scan discovers model files under the configured local roots and
// watches them for changes.
package scan

import (
	"crypto/sha1"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/easeltools/easel/pkg/models"
	"github.com/easeltools/easel/pkg/profiling"
)

// Scanner walks model roots into a flat item list. Ignore patterns use the
// dockerignore syntax, matched against the path relative to the root.
type Scanner struct {
	roots   []string
	matcher *patternmatcher.PatternMatcher
}

// NewScanner creates a scanner over the given roots. An empty pattern list
// means nothing is ignored.
func NewScanner(roots []string, ignorePatterns []string) (*Scanner, error) {
	var matcher *patternmatcher.PatternMatcher
	if len(ignorePatterns) > 0 {
		m, err := patternmatcher.New(ignorePatterns)
		if err != nil {
			return nil, err
		}
		matcher = m
	}
	return &Scanner{roots: roots, matcher: matcher}, nil
}

// Scan walks every root and returns the discovered items. The item id is a
// content-address stand-in: a hash of the relative path, stable across runs.
// Unreadable subtrees are skipped, not fatal.
func (s *Scanner) Scan() ([]models.Item, error) {
	defer profiling.Start("scan.walk-roots").Stop()

	var items []models.Item
	for _, root := range s.roots {
		root := filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if s.ignored(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
				return nil
			}

			info, infoErr := d.Info()
			var size int64
			if infoErr == nil {
				size = info.Size()
			}
			items = append(items, models.Item{
				Id:   hashId(rel),
				Path: rel,
				Info: map[string]interface{}{
					"name": strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
					"size": size,
				},
			})
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	return items, nil
}

func (s *Scanner) ignored(rel string) bool {
	if s.matcher == nil || rel == "." {
		return false
	}
	ok, err := s.matcher.MatchesOrParentMatches(rel)
	return err == nil && ok
}

func hashId(rel string) string {
	sum := sha1.Sum([]byte(rel))
	return hex.EncodeToString(sum[:])
}
