package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File writes one <kind>.json per collection under dir.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("snapshot dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Name() string { return "file" }

func (f *File) path(kind Kind) string {
	return filepath.Join(f.dir, kind.String()+".json")
}

func (f *File) Load(ctx context.Context, kind Kind) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	payload, err := os.ReadFile(f.path(kind))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s snapshot: %w", kind, err)
	}
	return payload, true, nil
}

// Save writes a temp file and renames it over the old snapshot.
func (f *File) Save(ctx context.Context, kind Kind, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, kind.String()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s snapshot: %w", kind, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s snapshot: %w", kind, err)
	}
	if err := os.Rename(tmpName, f.path(kind)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s snapshot: %w", kind, err)
	}
	return nil
}
