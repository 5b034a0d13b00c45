// Package storage stores uploaded files on local disk and returns the
// public paths they are served under.
package storage

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/google/uuid"
)

// Disk writes uploads into a single directory. Saved files get a random
// prefix so concurrent uploads with the same original name never collide.
type Disk struct {
	root         string
	publicPrefix string
}

func NewDisk(root, publicPrefix string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create upload dir %q", root)
	}

	return &Disk{
		root:         root,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
	}, nil
}

// Root returns the directory uploads are written to.
func (d *Disk) Root() string {
	return d.root
}

// Save writes the content to disk and returns the public path, e.g.
// "/uploads/3f2a...-avatar.png".
func (d *Disk) Save(originalName string, content io.Reader) (string, error) {
	// strip any client-supplied directory components
	name := uuid.NewString() + "-" + filepath.Base(filepath.Clean(originalName))

	fp, err := os.Create(filepath.Join(d.root, name))
	if err != nil {
		return "", errors.Wrap(err, "create upload file")
	}
	defer fp.Close() //nolint:errcheck

	if _, err := io.Copy(fp, content); err != nil {
		return "", errors.Wrap(err, "write upload file")
	}
	if err := fp.Close(); err != nil {
		return "", errors.Wrap(err, "close upload file")
	}

	return path.Join(d.publicPrefix, name), nil
}
