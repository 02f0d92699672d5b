package spritepack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader handles loading packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all pack files.
// Invalid files are skipped and reported in the second return value.
// Packs are sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]*Pack, map[string]error, error) {
	var packs []*Pack
	invalid := make(map[string]error)

	if _, err := os.Stat(l.Root); os.IsNotExist(err) {
		return nil, invalid, nil
	}

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		pack, err := l.LoadFile(path)
		if err != nil {
			invalid[path] = err
			return nil
		}
		packs = append(packs, pack)
		return nil
	})
	if err != nil {
		return nil, invalid, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs, invalid, nil
}

// LoadFile loads and validates a single pack file, including its graph.
func (l *Loader) LoadFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	pack, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if _, err := pack.Graph(); err != nil {
		return nil, fmt.Errorf("building pack %s: %w", path, err)
	}
	pack.FilePath = path
	return pack, nil
}

// LoadByID loads a specific pack by ID.
func (l *Loader) LoadByID(id string) (*Pack, error) {
	packs, _, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("pack not found: %s", id)
}

func isSupportedExtension(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
