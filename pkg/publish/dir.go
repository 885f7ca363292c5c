package publish

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vnest-dev/vnest/internal/errors"
)

// DirTarget stores objects as files under a directory.
type DirTarget struct {
	dir string
}

// NewDirTarget creates a target rooted at dir. The directory is created on
// first write.
func NewDirTarget(dir string) *DirTarget {
	return &DirTarget{dir: dir}
}

// Put writes body to dir/key, creating parent directories.
func (t *DirTarget) Put(_ context.Context, key, _ string, body []byte) error {
	path := filepath.Join(t.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(t.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.New("E401").WithDetail("key escapes the output directory: " + key)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("E401").Wrap(err)
	}

	// rename makes the write atomic for readers
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0644); err != nil {
		return errors.New("E401").Wrap(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.New("E401").Wrap(err)
	}
	return nil
}
