package core

import "io"

// FileStorage is any service that can store and remove uploaded files.
// File side effects are not transactional with data writes.
type FileStorage interface {
	// Save stores the contents of r and returns the public URL path of
	// the stored file.
	Save(filename string, r io.Reader) (string, error)
	// Delete removes a previously stored file by its URL path. Deleting
	// an unknown path is a no-op.
	Delete(urlPath string) error
}
