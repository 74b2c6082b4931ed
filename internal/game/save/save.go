// Package save persists the world grid as a JSON array of block records.
//
// A save file looks like
//
//	[
//	    {"x": 0, "y": 0, "z": 0, "type": "grass"},
//	    ...
//	]
//
// indented with four spaces. Paths ending in ".zst" are zstd-compressed.
// Each element is checked against an embedded JSON Schema on load; bad
// elements are skipped, but a file that is not a JSON array fails as a whole.
package save

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/Faultbox/blockworld/internal/game/world"
	"github.com/Faultbox/blockworld/internal/logger"
)

// CompressedExt marks a zstd-compressed save.
const CompressedExt = ".zst"

// ErrNotArray is returned when a save decodes to something other than a
// JSON array.
var ErrNotArray = errors.New("save file is not a JSON array of blocks")

// ErrTrailingData is returned when a save holds anything after its array.
var ErrTrailingData = errors.New("save file has data after the block array")

//go:embed record.schema.json
var recordSchemaJSON string

var recordSchema = jsonschema.MustCompileString("record.schema.json", recordSchemaJSON)

// Record is one block in a save file.
type Record struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Z    int    `json:"z"`
	Type string `json:"type"`
}

// Coord returns the grid coordinate of the record.
func (r Record) Coord() world.Coord {
	return world.Coord{X: r.X, Y: r.Y, Z: r.Z}
}

// ImportStats summarizes a load.
type ImportStats struct {
	Loaded     int // blocks placed into the grid
	Invalid    int // elements rejected for missing or malformed fields
	Duplicates int // records whose coordinate was already loaded
}

// Skipped is the number of records that did not make it into the grid.
func (s ImportStats) Skipped() int {
	return s.Invalid + s.Duplicates
}

// Export returns one record per block, in grid snapshot order.
func Export(g *world.Grid) []Record {
	blocks := g.Blocks()
	records := make([]Record, len(blocks))
	for i, b := range blocks {
		records[i] = Record{X: b.Coord.X, Y: b.Coord.Y, Z: b.Coord.Z, Type: string(b.Type)}
	}
	return records
}

// Import clears g and inserts the records. Records without a type and
// repeats of an already imported coordinate are skipped with a warning.
func Import(g *world.Grid, records []Record) ImportStats {
	log := logger.Named("save")
	var stats ImportStats

	g.Clear()
	for _, r := range records {
		if r.Type == "" {
			log.Warn("skipping block without type", zap.Int("x", r.X), zap.Int("y", r.Y), zap.Int("z", r.Z))
			stats.Invalid++
			continue
		}
		if !g.Insert(r.Coord(), world.BlockType(r.Type)) {
			log.Warn("skipping duplicate block",
				zap.Int("x", r.X), zap.Int("y", r.Y), zap.Int("z", r.Z), zap.String("type", r.Type))
			stats.Duplicates++
			continue
		}
		stats.Loaded++
	}
	return stats
}

// Encode writes records as an indented JSON array.
func Encode(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(records)
}

// Decode parses a JSON array of records. Elements that fail validation are
// counted in the returned stats and left out.
func Decode(r io.Reader) ([]Record, ImportStats, error) {
	var stats ImportStats

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, stats, fmt.Errorf("decoding save: %w", err)
	}
	elems, ok := doc.([]any)
	if !ok {
		return nil, stats, ErrNotArray
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, stats, ErrTrailingData
	}

	log := logger.Named("save")
	records := make([]Record, 0, len(elems))
	for i, elem := range elems {
		rec, err := decodeRecord(elem)
		if err != nil {
			log.Warn("skipping invalid block entry", zap.Int("index", i), zap.Error(err))
			stats.Invalid++
			continue
		}
		records = append(records, rec)
	}
	return records, stats, nil
}

func decodeRecord(elem any) (Record, error) {
	if err := recordSchema.Validate(elem); err != nil {
		return Record{}, err
	}
	obj := elem.(map[string]any)

	var rec Record
	var err error
	if rec.X, err = toInt(obj["x"]); err != nil {
		return Record{}, fmt.Errorf("x: %w", err)
	}
	if rec.Y, err = toInt(obj["y"]); err != nil {
		return Record{}, fmt.Errorf("y: %w", err)
	}
	if rec.Z, err = toInt(obj["z"]); err != nil {
		return Record{}, fmt.Errorf("z: %w", err)
	}
	rec.Type = obj["type"].(string)
	return rec, nil
}

// toInt accepts integral JSON numbers, including forms like 2.0.
func toInt(v any) (int, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("not a number: %v", v)
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %s", n)
	}
	return int(f), nil
}

// Write stores records at path, replacing any existing file atomically.
// Parent directories are created as needed.
func Write(path string, records []Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating save dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp save: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := writeTo(tmp, path, records); err != nil {
		cleanup()
		return fmt.Errorf("writing save: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing save: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing save: %w", err)
	}
	return nil
}

func writeTo(w io.Writer, path string, records []Record) error {
	if !IsCompressed(path) {
		return Encode(w, records)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := Encode(enc, records); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Read loads and validates the records stored at path.
func Read(path string) ([]Record, ImportStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ImportStats{}, fmt.Errorf("reading save: %w", err)
	}

	var r io.Reader = bytes.NewReader(data)
	if IsCompressed(path) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, ImportStats{}, fmt.Errorf("opening compressed save: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	return Decode(r)
}

// LoadInto replaces the contents of g with the save at path. The grid is
// only touched once the whole file has been read and parsed.
func LoadInto(path string, g *world.Grid) (ImportStats, error) {
	records, stats, err := Read(path)
	if err != nil {
		return stats, err
	}

	imported := Import(g, records)
	stats.Loaded = imported.Loaded
	stats.Invalid += imported.Invalid
	stats.Duplicates = imported.Duplicates

	logger.Named("save").Info("world loaded",
		zap.String("path", path),
		zap.Int("blocks", stats.Loaded),
		zap.Int("skipped", stats.Skipped()))
	return stats, nil
}

// Store writes the contents of g to path and returns the number of blocks
// written.
func Store(path string, g *world.Grid) (int, error) {
	records := Export(g)
	if err := Write(path, records); err != nil {
		return 0, err
	}
	logger.Named("save").Info("world saved", zap.String("path", path), zap.Int("blocks", len(records)))
	return len(records), nil
}

// IsCompressed reports whether path names a zstd save.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CompressedExt)
}
