package retention

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Pattern matches the backup files this tool writes.
const Pattern = "truenas_config_*.tar"

type backupFile struct {
	path  string
	mtime time.Time
}

// Prune deletes backup files in dir beyond the keep newest, by modification
// time. keep <= 0 means unbounded retention. Individual delete failures are
// ignored: a locked or already-removed file must not turn a successful
// backup run into a failure.
func Prune(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, Pattern))
	if err != nil {
		return err
	}
	files := make([]backupFile, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, backupFile{path: m, mtime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mtime.After(files[j].mtime) })
	if len(files) <= keep {
		return nil
	}
	for _, old := range files[keep:] {
		_ = os.Remove(old.path)
	}
	return nil
}
