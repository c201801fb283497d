// Package levels provides level loading for Digger.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-digger/internal/games/digger/core"
)

// ErrNotFound is returned when a level id is not known to a loader.
var ErrNotFound = errors.New("levels: level not found")

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Map      string // Map text, one row per line
	FilePath string
}

// yamlLevel represents the YAML structure for a level file.
type yamlLevel struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Map  string `yaml:"map"`
}

// Board parses the level map into a fresh board.
func (l Level) Board() (*core.Board, error) {
	b, err := core.ParseMapText(l.Map)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.ID, err)
	}
	return b, nil
}

// NewState creates a simulation state for a new attempt at this level.
func (l Level) NewState() (*core.State, error) {
	b, err := l.Board()
	if err != nil {
		return nil, err
	}
	return core.NewState(b), nil
}

// Parse validates and decodes a YAML level document.
func Parse(data []byte) (Level, error) {
	if err := validateSchema(data); err != nil {
		return Level{}, err
	}

	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("levels: yaml unmarshal: %w", err)
	}

	lvl := Level{
		ID:   yl.ID,
		Name: yl.Name,
		Map:  yl.Map,
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}

	if err := CheckMap(lvl.Map); err != nil {
		return Level{}, err
	}
	return lvl, nil
}
