// Package exporter writes a generation result to its output files and reads
// them back for validation and preview.
package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/deckpack"
	"github.com/cory-johannsen/cardforge/internal/generator"
	"github.com/cory-johannsen/cardforge/internal/schema"
)

// Output file names.
const (
	CardsFile     = "cards.generated.json"
	PromptsFile   = "prompts.generated.txt"
	ReportFile    = "report.generated.md"
	DeckPacksFile = "deckpacks.generated.json"
)

// Exporter writes results to an output directory.
type Exporter struct {
	validator *schema.Validator
	progress  io.Writer
}

// New constructs an Exporter that checks documents with validator and
// reports per-file timings to progress.
//
// Precondition: validator and progress must be non-nil.
func New(validator *schema.Validator, progress io.Writer) *Exporter {
	return &Exporter{validator: validator, progress: progress}
}

type document struct {
	name string
	data []byte
	note string
}

// Write renders every output, checks the two JSON documents and the prompts
// listing, and only then writes the four files to outDir.
//
// Precondition: outDir must exist or be creatable.
// Postcondition: either all four files are written, or none are and a
// non-nil error is returned.
func (e *Exporter) Write(res *generator.Result, outDir string) error {
	overall := time.Now()

	cardsJSON, err := EncodeJSON(res.Cards)
	if err != nil {
		return fmt.Errorf("serialising cards: %w", err)
	}
	packsJSON, err := EncodeJSON(res.DeckPacks)
	if err != nil {
		return fmt.Errorf("serialising deck packs: %w", err)
	}

	var failures []string
	_, errs := e.validator.Cards(cardsJSON)
	failures = append(failures, prefixed("cards", errs)...)
	failures = append(failures, prefixed("deckpacks", e.validator.DeckPacks(packsJSON, res.Cards))...)
	failures = append(failures, prefixed("prompts", schema.Prompts(res.PromptsText, res.Cards))...)
	if len(failures) > 0 {
		return fmt.Errorf("%w:\n%s", schema.ErrInvalid, strings.Join(failures, "\n"))
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}
	docs := []document{
		{CardsFile, cardsJSON, fmt.Sprintf("%d cards", len(res.Cards))},
		{PromptsFile, []byte(res.PromptsText), fmt.Sprintf("%d prompts", len(res.Cards))},
		{ReportFile, []byte(res.ReportMarkdown), fmt.Sprintf("%d warnings", len(res.Warnings))},
		{DeckPacksFile, packsJSON, fmt.Sprintf("%d factions", len(res.DeckPacks.Packs))},
	}
	for _, d := range docs {
		t0 := time.Now()
		outPath := filepath.Join(outDir, d.name)
		if err := os.WriteFile(outPath, d.data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Fprintf(e.progress, "wrote   %s  (%s)  in %s\n", outPath, d.note, time.Since(t0).Round(time.Millisecond))
	}
	fmt.Fprintf(e.progress, "total   %s\n", time.Since(overall).Round(time.Millisecond))
	return nil
}

// EncodeJSON renders v with two-space indentation, unescaped HTML
// characters and a trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func prefixed(kind string, errs []string) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = kind + ": " + e
	}
	return out
}

// Files holds the raw bytes of the checked output files.
type Files struct {
	Cards     []byte
	DeckPacks []byte
	Prompts   []byte
}

// ReadFiles reads the cards, deck-pack and prompts files from dir.
func ReadFiles(dir string) (*Files, error) {
	var f Files
	for _, item := range []struct {
		name string
		dst  *[]byte
	}{
		{CardsFile, &f.Cards},
		{DeckPacksFile, &f.DeckPacks},
		{PromptsFile, &f.Prompts},
	} {
		data, err := os.ReadFile(filepath.Join(dir, item.name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", item.name, err)
		}
		*item.dst = data
	}
	return &f, nil
}

// Verification is the outcome of checking an output directory.
type Verification struct {
	Cards    []*card.Card
	Failures []string
}

// Err returns nil when no check failed, or an error wrapping
// schema.ErrInvalid that lists every failure.
func (v *Verification) Err() error {
	if len(v.Failures) == 0 {
		return nil
	}
	return fmt.Errorf("%w:\n%s", schema.ErrInvalid, strings.Join(v.Failures, "\n"))
}

// Verify checks the output files in dir. I/O failures are returned as
// errors; content failures are collected in the Verification.
func Verify(validator *schema.Validator, dir string) (*Verification, error) {
	files, err := ReadFiles(dir)
	if err != nil {
		return nil, err
	}
	cards, errs := validator.Cards(files.Cards)
	v := &Verification{Cards: cards}
	v.Failures = append(v.Failures, prefixed("cards", errs)...)
	v.Failures = append(v.Failures, prefixed("deckpacks", validator.DeckPacks(files.DeckPacks, cards))...)
	v.Failures = append(v.Failures, prefixed("prompts", schema.Prompts(string(files.Prompts), cards))...)
	return v, nil
}

// Output is a decoded output directory.
type Output struct {
	Cards     []*card.Card
	DeckPacks *deckpack.Bundle
}

// Load decodes the cards and deck-pack files in dir without checking them.
func Load(dir string) (*Output, error) {
	files, err := ReadFiles(dir)
	if err != nil {
		return nil, err
	}
	var out Output
	if err := json.Unmarshal(files.Cards, &out.Cards); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", CardsFile, err)
	}
	out.DeckPacks = new(deckpack.Bundle)
	if err := json.Unmarshal(files.DeckPacks, out.DeckPacks); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", DeckPacksFile, err)
	}
	return &out, nil
}
