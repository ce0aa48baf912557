package ability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Library is the immutable, ordered set of abilities generation draws from.
type Library struct {
	abilities []*Ability
	byID      map[string]*Ability
}

// libraryFile is the object layout of a library file; a bare list is also accepted.
type libraryFile struct {
	Abilities []*Ability `yaml:"abilities" json:"abilities"`
}

// NewLibrary validates abilities and wraps them in a Library, preserving order.
//
// Postcondition: returns a Library whose ids are unique, or a non-nil error.
func NewLibrary(abilities []*Ability) (*Library, error) {
	lib := &Library{
		abilities: make([]*Ability, 0, len(abilities)),
		byID:      make(map[string]*Ability, len(abilities)),
	}
	for i, a := range abilities {
		if a == nil {
			return nil, fmt.Errorf("ability[%d] must not be nil", i)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("ability[%d]: %w", i, err)
		}
		if _, dup := lib.byID[a.ID]; dup {
			return nil, fmt.Errorf("ability[%d]: duplicate id %q", i, a.ID)
		}
		lib.abilities = append(lib.abilities, a)
		lib.byID[a.ID] = a
	}
	if len(lib.abilities) == 0 {
		return nil, fmt.Errorf("ability library must not be empty")
	}
	return lib, nil
}

// LoadFile reads a library from a .yaml, .yml or .json file.
//
// Precondition: path must point to a readable file.
// Postcondition: Returns a validated Library or a non-nil error.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ability library %s: %w", path, err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	lib, err := LoadBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading ability library %s: %w", path, err)
	}
	return lib, nil
}

// LoadBytes parses a library in the given format ("yaml" or "json"). Both an
// object with an "abilities" list and a bare list are accepted.
func LoadBytes(data []byte, format string) (*Library, error) {
	var list []*Ability
	switch format {
	case "json":
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, fmt.Errorf("parsing ability JSON: %w", err)
			}
			break
		}
		var f libraryFile
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return nil, fmt.Errorf("parsing ability JSON: %w", err)
		}
		if f.Abilities == nil {
			return nil, fmt.Errorf("ability JSON must contain an abilities array")
		}
		list = f.Abilities
	case "yaml":
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parsing ability YAML: %w", err)
		}
		if len(root.Content) == 0 {
			return nil, fmt.Errorf("ability YAML is empty")
		}
		if root.Content[0].Kind == yaml.SequenceNode {
			if err := root.Content[0].Decode(&list); err != nil {
				return nil, fmt.Errorf("decoding ability YAML: %w", err)
			}
			break
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		var f libraryFile
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding ability YAML: %w", err)
		}
		list = f.Abilities
	default:
		return nil, fmt.Errorf("unknown ability library format %q", format)
	}
	return NewLibrary(list)
}

// All returns the abilities in file order. The slice must not be modified.
func (l *Library) All() []*Ability {
	return l.abilities
}

// Len returns the number of abilities.
func (l *Library) Len() int {
	return len(l.abilities)
}

// Get returns the ability with id, or (nil, false).
func (l *Library) Get(id string) (*Ability, bool) {
	a, ok := l.byID[id]
	return a, ok
}

// Without returns a copy of l lacking every ability for which drop returns
// true. It is used to probe content-coverage gaps.
func (l *Library) Without(drop func(*Ability) bool) *Library {
	out := &Library{byID: make(map[string]*Ability, len(l.abilities))}
	for _, a := range l.abilities {
		if drop(a) {
			continue
		}
		out.abilities = append(out.abilities, a)
		out.byID[a.ID] = a
	}
	return out
}
