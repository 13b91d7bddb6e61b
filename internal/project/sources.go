package project

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the declaration-dialect file extension.
const SourceExt = ".rx"

// GeneratedSuffix marks synthesized units; they are never re-read as
// inputs, which keeps generation idempotent.
const GeneratedSuffix = ".g.rx"

// IsGenerated reports whether path names a synthesized unit.
func IsGenerated(path string) bool {
	return strings.HasSuffix(path, GeneratedSuffix)
}

// ListSources returns every hand-written .rx file under dir, sorted, with
// skipDirs (absolute paths, typically the output dir) pruned.
func ListSources(dir string, skipDirs ...string) ([]string, error) {
	skip := make(map[string]struct{}, len(skipDirs))
	for _, d := range skipDirs {
		skip[filepath.Clean(d)] = struct{}{}
	}

	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skipped := skip[filepath.Clean(path)]; skipped {
				return filepath.SkipDir
			}
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, SourceExt) || IsGenerated(path) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
