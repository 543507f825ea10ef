package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shashiranjanraj/bistro/config"
)

// localDisk stores files under a root directory on the local filesystem.
type localDisk struct {
	root    string
	baseURL string
}

func newLocalDisk() *localDisk {
	root := config.StorageLocalRoot()
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &localDisk{
		root:    root,
		baseURL: strings.TrimRight(config.StorageURL(), "/"),
	}
}

func (d *localDisk) resolve(path string) (string, error) {
	full := filepath.Join(d.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage/local: mkdir for %s: %w", path, err)
	}
	return full, nil
}

func (d *localDisk) Put(path string, content []byte) error {
	full, err := d.resolve(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", path, err)
	}
	return nil
}

func (d *localDisk) PutStream(path string, r io.Reader) error {
	full, err := d.resolve(path)
	if err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage/local: stream %s: %w", path, err)
	}
	return nil
}

func (d *localDisk) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("storage/local: get %s: %w", path, err)
	}
	return data, nil
}

func (d *localDisk) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(d.root, filepath.FromSlash(path)))
	return err == nil
}

func (d *localDisk) Delete(path string) error {
	err := os.Remove(filepath.Join(d.root, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", path, err)
	}
	return nil
}

func (d *localDisk) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(path), "/")
}
