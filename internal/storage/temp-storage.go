package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

// TempStorage holds uploads for the duration of a single request.
type TempStorage interface {
	// Save writes r under a unique name derived from filename. The caller
	// owns the returned file and must call Remove on every exit path.
	Save(ctx context.Context, filename string, r io.Reader) (*TempFile, error)
}

type TempFile struct {
	Path string
	Size int64

	once      sync.Once
	removeErr error
}

// Remove deletes the file. It is safe to call more than once; only the
// first call touches the filesystem.
func (f *TempFile) Remove() error {
	f.once.Do(func() {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			f.removeErr = fmt.Errorf("failed to remove temporary file: %w", err)
		}
	})
	return f.removeErr
}

type localTempStorage struct {
	dir string
}

// NewLocalTempStorage stores uploads in dir, creating it if needed.
func NewLocalTempStorage(dir string) (TempStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localTempStorage{dir: dir}, nil
}

func (s *localTempStorage) Save(ctx context.Context, filename string, r io.Reader) (*TempFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := utils.SanitizeFilename(filename)
	if name == "" {
		name = "upload"
	}
	path := filepath.Join(s.dir, utils.GenerateID()+"_"+name)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}

	file := &TempFile{Path: path}
	n, copyErr := io.Copy(out, r)
	closeErr := out.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to write temporary file: %w", err), file.Remove())
	}

	file.Size = n
	return file, nil
}
