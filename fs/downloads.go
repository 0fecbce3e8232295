// Package fs reads saved pages from and delivers exports to the local
// filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/socialstats"
)

// Ensure Downloads implements socialstats.Deliverer at compile time.
var _ socialstats.Deliverer = (*Downloads)(nil)

// Downloads delivers exports as files in a directory. A file appears under
// its final name only once it is completely written.
type Downloads struct {
	dir string
}

// NewDownloads creates a Downloads writing to dir. The directory is created
// on first delivery.
func NewDownloads(dir string) *Downloads {
	return &Downloads{dir: dir}
}

// Deliver writes the export payload and returns the path of the file.
func (d *Downloads) Deliver(ctx context.Context, e *socialstats.Export) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := e.Filename
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", socialstats.Errorf(socialstats.EINVALID, "invalid export filename %q: path traversal not allowed", name)
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(d.dir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(e.Payload); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}

	path := filepath.Join(d.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
