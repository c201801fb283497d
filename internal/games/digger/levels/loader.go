package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed campaign/*.yaml
var campaignFS embed.FS

// Loader handles loading levels from a directory tree.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// Campaign returns a loader over the built-in campaign levels.
func Campaign() *Loader {
	sub, err := fs.Sub(campaignFS, "campaign")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded campaign: %v", err))
	}
	return &Loader{fsys: sub, root: "campaign"}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for deterministic
// ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	seen := make(map[string]bool)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		lvl, err := l.load(p)
		if err != nil || seen[lvl.ID] {
			return nil
		}
		seen[lvl.ID] = true
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (l *Loader) load(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}
	lvl.FilePath = path.Join(filepath.ToSlash(l.root), p)
	return lvl, nil
}

// LoadFile loads a single level file from disk.
func LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}
	lvl.FilePath = p
	return lvl, nil
}

// Resolve finds a level by reference: an existing file path is loaded from
// disk, anything else is looked up by ID in the campaign.
func Resolve(ref string) (Level, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return LoadFile(ref)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Level{}, fmt.Errorf("levels: %w", err)
	}
	return Campaign().LoadByID(ref)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
