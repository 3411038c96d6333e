package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ghostllm/internal/common/fsutil"
)

// Model describes one discoverable model file.
type Model struct {
	ID   string
	Name string
	Path string
}

// LoadDir scans a directory for *.gguf files and builds a registry from filenames.
// ID is the full filename (including extension); Path is the absolute file path.
func LoadDir(dir string) ([]Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".gguf") {
			continue
		}
		models = append(models, Model{ID: name, Name: name, Path: filepath.Join(abs, name)})
	}
	return models, nil
}

// Resolve maps a model reference to a loadable file path. The reference may
// be a registry ID from models or a direct filesystem path.
func Resolve(models []Model, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty model reference")
	}
	for _, m := range models {
		if m.ID == ref {
			return m.Path, nil
		}
	}
	p, err := fsutil.ExpandHome(ref)
	if err != nil {
		return "", err
	}
	if fsutil.IsRegularFile(p) {
		return p, nil
	}
	return "", fmt.Errorf("model not found: %s", ref)
}
