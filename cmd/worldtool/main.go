// worldtool is a CLI utility for generating and inspecting world saves.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Faultbox/blockworld/internal/config"
	"github.com/Faultbox/blockworld/internal/game/save"
	"github.com/Faultbox/blockworld/internal/game/sim"
	"github.com/Faultbox/blockworld/internal/game/world"
	"github.com/Faultbox/blockworld/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "gen":
		cmdGen(args)
	case "info":
		cmdInfo(args)
	case "convert":
		cmdConvert(args)
	case "drop":
		cmdDrop(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`worldtool - block world save utility

Usage:
  worldtool <command> [options]

Commands:
  gen [flags] <out>           Generate the layered starting world
  info <save>                 Show block counts by type
  convert <in> <out>          Re-encode a save (.zst output is compressed)
  drop [flags] <save>         Drop the player into a world and report where it rests

Examples:
  worldtool gen -size-x 32 -size-y 32 saves/big.json.zst
  worldtool info saves/world_save.json
  worldtool convert saves/world_save.json saves/world_save.json.zst
  worldtool drop -x 0 -y 0 -z 5 saves/world_save.json`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func cmdGen(args []string) {
	def := world.DefaultGenParams()
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	sizeX := fs.Int("size-x", def.SizeX, "World size along X")
	sizeY := fs.Int("size-y", def.SizeY, "World size along Y")
	ground := fs.Int("ground", def.GroundHeight, "Z of the top layer")
	grass := fs.Int("grass", def.GrassDepth, "Grass layers")
	stone := fs.Int("stone", def.StoneDepth, "Stone layers under the grass")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: worldtool gen [flags] <out>")
		os.Exit(1)
	}

	g := world.NewGrid()
	n := world.Generate(g, world.GenParams{
		SizeX:        *sizeX,
		SizeY:        *sizeY,
		GroundHeight: *ground,
		GrassDepth:   *grass,
		StoneDepth:   *stone,
	})
	if err := save.Write(fs.Arg(0), save.Export(g)); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %d blocks to %s\n", n, fs.Arg(0))
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: worldtool info <save>")
		os.Exit(1)
	}

	g := world.NewGrid()
	stats, err := save.LoadInto(args[0], g)
	if err != nil {
		fail("%v", err)
	}

	counts := make(map[world.BlockType]int)
	var lo, hi world.Coord
	for i, b := range g.Blocks() {
		counts[b.Type]++
		if i == 0 {
			lo, hi = b.Coord, b.Coord
			continue
		}
		lo = world.Coord{X: min(lo.X, b.Coord.X), Y: min(lo.Y, b.Coord.Y), Z: min(lo.Z, b.Coord.Z)}
		hi = world.Coord{X: max(hi.X, b.Coord.X), Y: max(hi.Y, b.Coord.Y), Z: max(hi.Z, b.Coord.Z)}
	}

	fmt.Printf("Save:    %s\n", args[0])
	fmt.Printf("Blocks:  %d\n", stats.Loaded)
	fmt.Printf("Skipped: %d (%d invalid, %d duplicate)\n", stats.Skipped(), stats.Invalid, stats.Duplicates)
	if g.Len() > 0 {
		fmt.Printf("Bounds:  (%d,%d,%d) .. (%d,%d,%d)\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	}
	fmt.Println()
	fmt.Println("Blocks by type:")

	type typeStat struct {
		name  world.BlockType
		count int
	}
	var byType []typeStat
	for name, count := range counts {
		byType = append(byType, typeStat{name, count})
	}
	sort.Slice(byType, func(i, j int) bool {
		if byType[i].count != byType[j].count {
			return byType[i].count > byType[j].count
		}
		return byType[i].name < byType[j].name
	})

	reg := world.DefaultRegistry()
	for _, s := range byType {
		note := ""
		if _, ok := reg.Lookup(s.name); !ok {
			note = " (unknown type)"
		}
		fmt.Printf("  %-14s %d%s\n", s.name, s.count, note)
	}
}

func cmdConvert(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: worldtool convert <in> <out>")
		os.Exit(1)
	}

	records, stats, err := save.Read(args[0])
	if err != nil {
		fail("%v", err)
	}

	// Import drops duplicates so the output is clean.
	g := world.NewGrid()
	imported := save.Import(g, records)
	if err := save.Write(args[1], save.Export(g)); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Converted %d blocks (%d skipped) to %s\n",
		imported.Loaded, stats.Invalid+imported.Skipped(), args[1])
}

func cmdDrop(args []string) {
	cfg := config.Default()
	fs := flag.NewFlagSet("drop", flag.ExitOnError)
	x := fs.Float64("x", float64(cfg.Physics.Spawn[0]), "Start X")
	y := fs.Float64("y", float64(cfg.Physics.Spawn[1]), "Start Y")
	z := fs.Float64("z", float64(cfg.Physics.Spawn[2]), "Start Z")
	seconds := fs.Float64("seconds", 3, "Simulated time")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: worldtool drop [flags] <save>")
		os.Exit(1)
	}

	cfg.Physics.Spawn = [3]float32{float32(*x), float32(*y), float32(*z)}
	s := sim.New(sim.OptionsFromConfig(cfg, nil))
	if _, err := s.Load(fs.Arg(0)); err != nil {
		fail("%v", err)
	}

	ticks := int(*seconds / float64(sim.MaxStep))
	landedAt := -1
	for i := 0; i < ticks; i++ {
		s.Step(sim.MaxStep, sim.Frame{})
		if landedAt < 0 && s.PlayerState().OnGround {
			landedAt = i + 1
		}
	}

	st := s.PlayerState()
	fmt.Printf("Start:    (%.2f, %.2f, %.2f)\n", *x, *y, *z)
	fmt.Printf("Rest:     (%.3f, %.3f, %.3f)\n", st.Position.X, st.Position.Y, st.Position.Z)
	fmt.Printf("Phase:    %s\n", s.Player().Phase())
	if landedAt >= 0 {
		fmt.Printf("Landed:   after %.3fs\n", float64(landedAt)*float64(sim.MaxStep))
	}
	cell := world.CoordOf(st.Position.Sub(math.Vec3{Z: 1}))
	if b, ok := s.Grid().Get(cell); ok {
		fmt.Printf("Standing: %s at (%d,%d,%d)\n", b.Type, cell.X, cell.Y, cell.Z)
	}
}
