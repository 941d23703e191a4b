// Package local implements filesystem-backed storage. File locations use
// absolute paths as keys, so artifacts written next to their source payload
// land in the same directory on disk.
package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/logger"
	"github.com/debatelab/speakerkit/storage"
)

func init() {
	storage.RegisterFactory(storage.SchemeFile, func(_ context.Context, _ storage.Location, _ storage.Config, _ *logger.Logger) (storage.Storage, error) {
		return NewStorage("/")
	})
}

// Storage implements storage.Storage using the local filesystem.
type Storage struct {
	basePath string
}

// NewStorage creates a filesystem storage rooted at basePath.
func NewStorage(basePath string) (*Storage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errors.InvalidInput("base_path", err.Error())
	}
	return &Storage{basePath: abs}, nil
}

func (s *Storage) fullPath(path string) string {
	return filepath.Join(s.basePath, filepath.Clean(path))
}

// Upload writes data from reader to a local file, creating parent
// directories as needed.
func (s *Storage) Upload(_ context.Context, path string, reader io.Reader) error {
	fullPath := s.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return errors.StoreFailed(path, err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return errors.StoreFailed(path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return errors.StoreFailed(path, err)
	}
	return nil
}

// Download returns a reader for the local file at the given path.
func (s *Storage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(s.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("object", path)
		}
		return nil, errors.FetchFailed(path, err)
	}
	return f, nil
}

// Delete removes a local file. Returns nil if the file does not exist.
func (s *Storage) Delete(_ context.Context, path string) error {
	if err := os.Remove(s.fullPath(path)); err != nil && !os.IsNotExist(err) {
		return errors.StoreFailed(path, err)
	}
	return nil
}

// Exists checks whether a local file exists.
func (s *Storage) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(s.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.FetchFailed(path, err)
	}
	return true, nil
}

// List returns metadata for all files whose path starts with prefix.
func (s *Storage) List(_ context.Context, prefix string) ([]storage.FileInfo, error) {
	prefixPath := s.fullPath(prefix)
	baseDir := filepath.Dir(prefixPath)

	var files []storage.FileInfo
	err := filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasPrefix(path, prefixPath) {
			relPath, err := filepath.Rel(s.basePath, path)
			if err != nil {
				return err
			}
			if s.basePath == "/" {
				relPath = "/" + relPath
			}
			files = append(files, storage.FileInfo{
				Path:         relPath,
				Size:         info.Size(),
				LastModified: info.ModTime(),
			})
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return []storage.FileInfo{}, nil
		}
		return nil, errors.FetchFailed(prefix, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// compile-time check
var _ storage.Storage = (*Storage)(nil)
