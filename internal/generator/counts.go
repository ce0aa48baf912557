package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// MergeCounts overlays each layer of overrides, in order, onto the default
// per-faction counts. Keys match faction names case-insensitively, since
// viper lowercases map keys. Values that are not positive integers, and
// unknown factions, are ignored. Overrides are loosely typed because they
// come from JSON, YAML or viper.
func MergeCounts(layers ...map[string]any) map[ruleset.Faction]int {
	counts := ruleset.DefaultTargetCounts()
	for _, overrides := range layers {
		for _, f := range ruleset.Factions {
			for key, raw := range overrides {
				if !strings.EqualFold(key, string(f)) {
					continue
				}
				if n, ok := positiveInt(raw); ok {
					counts[f] = n
				}
			}
		}
	}
	return counts
}

func positiveInt(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		// Numeric strings are accepted, as a command-line flag would pass them.
		x, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// ReadCountsFile reads a raw faction→count mapping from a JSON or YAML file.
//
// Precondition: path must point to a readable .json, .yaml or .yml file.
func ReadCountsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading counts file %s: %w", path, err)
	}
	raw := make(map[string]any)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing counts file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing counts file %s: %w", path, err)
	}
	return raw, nil
}

// LoadCountsFile reads a counts file and merges it over the defaults.
func LoadCountsFile(path string) (map[ruleset.Faction]int, error) {
	raw, err := ReadCountsFile(path)
	if err != nil {
		return nil, err
	}
	return MergeCounts(raw), nil
}
