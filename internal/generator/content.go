package generator

import (
	"fmt"
	"os"

	"github.com/cory-johannsen/cardforge/content"
	"github.com/cory-johannsen/cardforge/internal/game/ability"
	"github.com/cory-johannsen/cardforge/internal/game/flavor"
)

// Content is the static input a run draws from besides the seed and counts.
type Content struct {
	Abilities *ability.Library
	Templates *flavor.Templates
}

// DefaultContent loads the embedded ability library and templates.
//
// Postcondition: Returns validated Content or a non-nil error.
func DefaultContent() (*Content, error) {
	data, err := content.FS.ReadFile(content.AbilitiesFile)
	if err != nil {
		return nil, fmt.Errorf("reading embedded abilities: %w", err)
	}
	lib, err := ability.LoadBytes(data, "yaml")
	if err != nil {
		return nil, fmt.Errorf("loading embedded abilities: %w", err)
	}
	tmpl, err := flavor.LoadTemplates(content.FS, content.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("loading embedded templates: %w", err)
	}
	return &Content{Abilities: lib, Templates: tmpl}, nil
}

// LoadContent loads content from disk. An empty abilitiesPath or
// templatesDir selects the embedded default for that part.
func LoadContent(abilitiesPath, templatesDir string) (*Content, error) {
	def, err := DefaultContent()
	if err != nil {
		return nil, err
	}
	if abilitiesPath != "" {
		lib, err := ability.LoadFile(abilitiesPath)
		if err != nil {
			return nil, err
		}
		def.Abilities = lib
	}
	if templatesDir != "" {
		tmpl, err := flavor.LoadTemplates(os.DirFS(templatesDir), ".")
		if err != nil {
			return nil, err
		}
		def.Templates = tmpl
	}
	return def, nil
}
