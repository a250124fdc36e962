package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalProvider stores files on disk beneath Root.
type LocalProvider struct {
	Root string
}

// NewLocalProvider creates the root directory and one subdirectory per group.
func NewLocalProvider(root string, groups ...string) (*LocalProvider, error) {
	for _, g := range append([]string{""}, groups...) {
		if err := os.MkdirAll(filepath.Join(root, g), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &LocalProvider{Root: root}, nil
}

func (l *LocalProvider) path(key string) string {
	return filepath.Join(l.Root, filepath.FromSlash(key))
}

// Save writes body to the file for key, creating parent directories.
func (l *LocalProvider) Save(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	p := l.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("write file: %w", err)
	}
	return f.Close()
}

// Open opens the file for key. Directories are reported as not found.
func (l *LocalProvider) Open(_ context.Context, key string) (*Object, error) {
	f, err := os.Open(l.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}

	return &Object{
		Body:    f,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
