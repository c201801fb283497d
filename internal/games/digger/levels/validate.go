package levels

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-digger/internal/games/digger/core"
)

//go:embed level.schema.json
var levelSchemaJSON string

var levelSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("level.schema.json", levelSchemaJSON)
})

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate reports whether data is a playable level document.
// Checks:
//   - the document matches the level schema
//   - the map parses into a rectangular board
//   - the map holds exactly one player and at least one gold
func Validate(data []byte) error {
	_, err := Parse(data)
	return err
}

// validateSchema runs the embedded JSON schema over a YAML document.
// The document is round-tripped through JSON so the validator only sees
// JSON types.
func validateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ValidationError{Code: "YAML", Message: err.Error()}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return ValidationError{Code: "YAML", Message: fmt.Sprintf("document is not JSON compatible: %v", err)}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ValidationError{Code: "YAML", Message: err.Error()}
	}

	schema, err := levelSchema()
	if err != nil {
		return fmt.Errorf("levels: compile schema: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return ValidationError{Code: "SCHEMA", Message: err.Error()}
	}
	return nil
}

// CheckMap verifies that map text parses and is playable.
func CheckMap(text string) error {
	b, err := core.ParseMapText(text)
	if err != nil {
		return ValidationError{Code: "MAP", Message: err.Error()}
	}

	if n := b.Count(core.KindPlayer); n != 1 {
		return ValidationError{
			Code:    "PLAYER_COUNT",
			Message: fmt.Sprintf("map has %d players, want exactly 1", n),
		}
	}
	if b.Count(core.KindGold) == 0 {
		return ValidationError{
			Code:    "NO_GOLD",
			Message: "map has no gold to collect",
		}
	}
	return nil
}
