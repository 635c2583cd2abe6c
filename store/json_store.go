package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"readerspace-backend/apperrors"
	"readerspace-backend/models"
)

const defaultFileMode fs.FileMode = 0o644

// JSONStore keeps the dataset in a single JSON file keyed by member code
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string {
	return s.path
}

// Load returns an empty dataset when the file does not exist yet
func (s *JSONStore) Load(ctx context.Context) (models.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Dataset{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("load", err)
	}

	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, apperrors.NewStorageError("load", fmt.Errorf("malformed %s: %w", s.path, err))
	}
	if ds == nil {
		// the file held a literal null
		return nil, apperrors.NewStorageError("load", fmt.Errorf("malformed %s: not an object", s.path))
	}
	if err := ds.Validate(); err != nil {
		return nil, apperrors.NewStorageError("load", fmt.Errorf("malformed %s: %w", s.path, err))
	}
	return ds, nil
}

// Save writes to a temporary file next to the target and renames it over the
// target, so readers see either the old or the new dataset.
func (s *JSONStore) Save(ctx context.Context, ds models.Dataset) error {
	if ds == nil {
		ds = models.Dataset{}
	}
	data, err := encode(ds)
	if err != nil {
		return apperrors.NewStorageError("save", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return apperrors.NewStorageError("save", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.NewStorageError("save", err)
	}
	if err := tmp.Chmod(targetMode(s.path)); err != nil {
		tmp.Close()
		return apperrors.NewStorageError("save", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperrors.NewStorageError("save", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewStorageError("save", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return apperrors.NewStorageError("save", err)
	}
	return nil
}

// targetMode keeps the permissions of an existing data file. CreateTemp makes
// 0600 files, which would lock out other readers after the rename.
func targetMode(path string) fs.FileMode {
	if fi, err := os.Stat(path); err == nil {
		return fi.Mode().Perm()
	}
	return defaultFileMode
}

func encode(ds models.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(ds); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
