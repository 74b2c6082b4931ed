package save

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/blockworld/internal/game/world"
)

func sampleGrid() *world.Grid {
	g := world.NewGrid()
	g.Insert(world.Coord{X: 0, Y: 0, Z: 0}, world.Grass)
	g.Insert(world.Coord{X: 1, Y: 0, Z: 0}, world.Stone)
	g.Insert(world.Coord{X: -3, Y: 2, Z: 5}, world.RedBlock)
	g.Insert(world.Coord{X: 4, Y: 4, Z: -1}, "unobtainium")
	return g
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"world.json", "world.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "saves", name)
			src := sampleGrid()

			n, err := Store(path, src)
			require.NoError(t, err)
			assert.Equal(t, src.Len(), n)

			dst := world.NewGrid()
			stats, err := LoadInto(path, dst)
			require.NoError(t, err)
			assert.Equal(t, src.Len(), stats.Loaded)
			assert.Zero(t, stats.Skipped())
			assert.Equal(t, src.Blocks(), dst.Blocks())
		})
	}
}

func TestGeneratedWorldRoundTrip(t *testing.T) {
	src := world.NewGrid()
	world.Generate(src, world.DefaultGenParams())

	path := filepath.Join(t.TempDir(), "gen.json")
	require.NoError(t, Write(path, Export(src)))

	dst := world.NewGrid()
	_, err := LoadInto(path, dst)
	require.NoError(t, err)
	assert.Equal(t, 300, dst.Len())
	assert.Equal(t, src.Blocks(), dst.Blocks())
}

func TestEncodeFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []Record{{X: 1, Y: -2, Z: 3, Type: "grass"}}))

	want := "[\n    {\n        \"x\": 1,\n        \"y\": -2,\n        \"z\": 3,\n        \"type\": \"grass\"\n    }\n]\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestCompressedFileIsZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.zst")
	require.NoError(t, Write(path, Export(sampleGrid())))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 4)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, data[:4])
}

func TestDecodeSkipsBadElements(t *testing.T) {
	input := `[
		{"x": 0, "y": 0, "z": 0, "type": "grass"},
		{"x": 1, "y": 0, "type": "stone"},
		"not an object",
		{"x": 1.5, "y": 0, "z": 0, "type": "stone"},
		{"x": 2.0, "y": 0, "z": 0, "type": "stone"},
		{"x": 3, "y": 0, "z": 0, "type": ""},
		{"x": 4, "y": 0, "z": 0, "type": 7},
		{"x": 5, "y": 0, "z": 0, "type": "red_block", "extra": true}
	]`

	records, stats, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Invalid)
	assert.Equal(t, []Record{
		{X: 0, Y: 0, Z: 0, Type: "grass"},
		{X: 2, Y: 0, Z: 0, Type: "stone"},
		{X: 5, Y: 0, Z: 0, Type: "red_block"},
	}, records)
}

func TestDecodeTrailingData(t *testing.T) {
	_, _, err := Decode(strings.NewReader("[]\n{\"x\": 1, \"y\": 2, \"z\""))
	assert.True(t, errors.Is(err, ErrTrailingData))

	_, _, err = Decode(strings.NewReader(`[{"x": 0, "y": 0, "z": 0, "type": "grass"}] 7`))
	assert.True(t, errors.Is(err, ErrTrailingData))

	records, _, err := Decode(strings.NewReader("[]\n\n  "))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRoundTripRecordOrder(t *testing.T) {
	src := world.NewGrid()
	world.Generate(src, world.DefaultGenParams())
	records := Export(src)

	reversed := make([]Record, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	shuffled := make([]Record, 0, len(records))
	for i := 0; i < len(records); i += 2 {
		shuffled = append(shuffled, records[i])
	}
	for i := 1; i < len(records); i += 2 {
		shuffled = append(shuffled, records[i])
	}

	for name, recs := range map[string][]Record{"reversed": reversed, "interleaved": shuffled} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "w.json")
			require.NoError(t, Write(path, recs))

			dst := world.NewGrid()
			stats, err := LoadInto(path, dst)
			require.NoError(t, err)
			assert.Equal(t, src.Len(), stats.Loaded)
			assert.Equal(t, src.Blocks(), dst.Blocks())
		})
	}
}

func TestDecodeRejectsNonArray(t *testing.T) {
	_, _, err := Decode(strings.NewReader(`{"x": 0, "y": 0, "z": 0, "type": "grass"}`))
	assert.True(t, errors.Is(err, ErrNotArray))

	_, _, err = Decode(strings.NewReader(`[{"x": 0,`))
	assert.Error(t, err)
}

func TestImportDuplicates(t *testing.T) {
	g := world.NewGrid()
	g.Insert(world.Coord{X: 9, Y: 9, Z: 9}, world.Stone)

	stats := Import(g, []Record{
		{X: 0, Y: 0, Z: 0, Type: "grass"},
		{X: 0, Y: 0, Z: 0, Type: "stone"},
		{X: 1, Y: 0, Z: 0},
	})

	assert.Equal(t, ImportStats{Loaded: 1, Invalid: 1, Duplicates: 1}, stats)
	assert.Equal(t, 1, g.Len(), "import replaces previous contents")
	b, ok := g.Get(world.Coord{})
	require.True(t, ok)
	assert.Equal(t, world.Grass, b.Type, "first record for a coordinate wins")
}

func TestLoadCorruptFileLeavesGrid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"truncated.json": `[{"x": 0, "y": 0`,
		"object.json":    `{"blocks": []}`,
		"garbage.zst":    "definitely not zstd",
		"trailing.json":  "[]\n{\"x\": 1, \"y\": 2, \"z\"",
		"two.json":       `[] []`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			g := sampleGrid()
			before := g.Blocks()
			_, err := LoadInto(path, g)
			require.Error(t, err)
			assert.Equal(t, before, g.Blocks())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	g := sampleGrid()
	_, err := LoadInto(filepath.Join(t.TempDir(), "nope.json"), g)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, 4, g.Len())
}

func TestWriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")

	require.NoError(t, Write(path, []Record{{X: 1, Type: "stone"}}))
	require.NoError(t, Write(path, []Record{{X: 2, Type: "grass"}}))

	records, _, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []Record{{X: 2, Type: "grass"}}, records)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestIsCompressed(t *testing.T) {
	assert.True(t, IsCompressed("a/b/world.json.zst"))
	assert.True(t, IsCompressed("WORLD.ZST"))
	assert.False(t, IsCompressed("world.json"))
}
