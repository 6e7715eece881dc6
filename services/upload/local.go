// Package uploadsvc stores profile images on the local filesystem,
// served under /uploads/. Stored names are random UUIDs so uploads can
// never collide or overwrite each other.
package uploadsvc

import (
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/campushq/backend/core"
)

const urlPrefix = "/uploads/"

type localStorage struct {
	dir string
}

var _ core.FileStorage = (*localStorage)(nil)

func NewLocalStorage(conf *core.Config) (*localStorage, error) {
	if err := os.MkdirAll(conf.UploadDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating upload dir")
	}
	return &localStorage{dir: conf.UploadDir}, nil
}

func (s *localStorage) Save(filename string, r io.Reader) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, "creating upload file")
	}
	defer func() { _ = f.Close() }()

	if _, err = io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "writing upload file")
	}
	return urlPrefix + name, nil
}

func (s *localStorage) Delete(urlPath string) error {
	// keep deletes inside the upload dir
	name := path.Base(urlPath)
	if name == "." || name == "/" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "deleting upload file")
	}
	return nil
}

// Dir exposes the storage root for static file serving.
func (s *localStorage) Dir() string { return s.dir }
