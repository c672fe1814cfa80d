// Package fs implements a blob store on a local directory. Each blob is a
// file under the root with a JSON sidecar holding its metadata.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"restaurantcore/internal/blob/core"
)

const (
	defaultRoot = "./blobdata"
	metaSuffix  = ".meta"
)

// Store implements core.Store using the local filesystem.
type Store struct {
	root string
}

type sidecar struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// New returns a store rooted at root, creating the directory if needed.
func New(root string) (*Store, error) {
	if root == "" {
		root = defaultRoot
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the directory blobs are stored under.
func (s *Store) Root() string { return s.root }

func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

func (s *Store) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") || strings.HasSuffix(key, metaSuffix) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *Store) Put(_ context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	path, err := s.path(key)
	if err != nil {
		return core.Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return core.Info{}, fmt.Errorf("create dirs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if errors.Is(err, os.ErrExist) {
		return core.Info{}, fmt.Errorf("put %s: %w", key, core.ErrExists)
	}
	if err != nil {
		return core.Info{}, fmt.Errorf("create %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return core.Info{}, fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return core.Info{}, fmt.Errorf("close %s: %w", key, err)
	}
	meta, err := json.Marshal(sidecar{ContentType: opts.ContentType, Metadata: opts.Metadata})
	if err != nil {
		return core.Info{}, err
	}
	if err := os.WriteFile(path+metaSuffix, meta, 0o640); err != nil {
		return core.Info{}, fmt.Errorf("write metadata %s: %w", key, err)
	}
	return s.Head(context.Background(), key)
}

func (s *Store) Get(ctx context.Context, key string) (core.Info, io.ReadCloser, error) {
	info, err := s.Head(ctx, key)
	if err != nil {
		return core.Info{}, nil, err
	}
	path, _ := s.path(key)
	f, err := os.Open(path)
	if err != nil {
		return core.Info{}, nil, fmt.Errorf("open %s: %w", key, err)
	}
	return info, f, nil
}

func (s *Store) Head(_ context.Context, key string) (core.Info, error) {
	path, err := s.path(key)
	if err != nil {
		return core.Info{}, err
	}
	stat, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return core.Info{}, fmt.Errorf("head %s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return core.Info{}, fmt.Errorf("stat %s: %w", key, err)
	}
	info := core.Info{Key: key, Size: stat.Size(), LastModified: stat.ModTime().UTC()}
	if raw, err := os.ReadFile(path + metaSuffix); err == nil {
		var meta sidecar
		if err := json.Unmarshal(raw, &meta); err != nil {
			return core.Info{}, fmt.Errorf("decode metadata %s: %w", key, err)
		}
		info.ContentType = meta.ContentType
		info.Metadata = meta.Metadata
	}
	return info, nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("delete %s: %w", key, err)
	}
	_ = os.Remove(path + metaSuffix)
	return true, nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]core.Info, error) {
	var infos []core.Info
	err := filepath.WalkDir(s.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, metaSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := s.Head(ctx, key)
		if err != nil {
			return err
		}
		infos = append(infos, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}
