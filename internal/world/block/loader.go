package block

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed palette.schema.json
var paletteSchemaJSON string

var (
	paletteSchema     *jsonschema.Schema
	paletteSchemaOnce sync.Once
)

func compiledPaletteSchema() *jsonschema.Schema {
	paletteSchemaOnce.Do(func() {
		paletteSchema = jsonschema.MustCompileString("palette.schema.json", paletteSchemaJSON)
	})
	return paletteSchema
}

type paletteFile struct {
	Blocks []paletteFileEntry `json:"blocks"`
}

type paletteFileEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Shape string `json:"shape"`
	Color []int  `json:"color,omitempty"`
}

// LoadPalette читает палитру из .yaml/.yml/.json файла
func LoadPalette(path string) (*Palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette %s: %w", path, err)
	}

	var p *Palette
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = ParsePaletteYAML(raw)
	case ".json":
		p, err = ParsePaletteJSON(raw)
	default:
		return nil, fmt.Errorf("palette %s: %w: unsupported extension", path, ErrInvalidPalette)
	}
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// ParsePaletteYAML разбирает YAML-палитру. YAML сначала переводится в JSON,
// чтобы схема проверяла одно и то же представление.
func ParsePaletteYAML(raw []byte) (*Palette, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrInvalidPalette, err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: yaml to json: %v", ErrInvalidPalette, err)
	}
	return ParsePaletteJSON(asJSON)
}

// ParsePaletteJSON проверяет документ по схеме и строит палитру
func ParsePaletteJSON(raw []byte) (*Palette, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrInvalidPalette, err)
	}
	if err := compiledPaletteSchema().Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPalette, err)
	}

	var file paletteFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrInvalidPalette, err)
	}

	entries := make([]PaletteEntry, 0, len(file.Blocks))
	for i, b := range file.Blocks {
		shape, err := ParseShape(b.Shape)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidPalette, i, err)
		}
		e := PaletteEntry{Name: b.Name, TextID: b.ID, Shape: shape}
		for c := 0; c < len(b.Color) && c < 4; c++ {
			e.Color[c] = uint8(b.Color[c])
		}
		entries = append(entries, e)
	}
	return NewPalette(entries)
}
