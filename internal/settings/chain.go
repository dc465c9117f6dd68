package settings

import (
	"os"
	"path/filepath"
)

// Discover walks from startDir up to the filesystem root and returns the
// path of every settings file found, nearest first. If the walk finds
// nothing, the home-directory fallback is checked independently.
func Discover(startDir string) []string {
	var found []string

	dir := startDir
	for {
		path := filepath.Join(dir, FileName)
		if fileExists(path) {
			found = append(found, path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if len(found) == 0 {
		if home, err := os.UserHomeDir(); err == nil {
			path := filepath.Join(home, FileName)
			if fileExists(path) {
				found = append(found, path)
			}
		}
	}

	return found
}

// ResolveChain discovers the settings chain starting at startDir and
// collapses it into a single Record under the given policy.
//
// An empty chain yields a zero Record. ClosestOnly loads only the
// nearest file. ParentWins and LocalWins load every discovered file and
// left-fold them near-to-far with Merge. Files that vanish or turn
// unreadable between discovery and load are skipped, matching the rule
// that a missing settings file is never an error.
func ResolveChain(startDir string, policy Policy) Record {
	paths := Discover(startDir)
	if len(paths) == 0 {
		return Record{}
	}

	if policy == ClosestOnly {
		rec, err := LoadFile(paths[0])
		if err != nil {
			return Record{}
		}
		return rec
	}

	var acc Record
	for _, path := range paths {
		rec, err := LoadFile(path)
		if err != nil {
			continue
		}
		acc = Merge(acc, rec, policy)
	}
	return acc
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
