package world

// GenParams describes a flat layered world.
type GenParams struct {
	SizeX        int
	SizeY        int
	GroundHeight int
	GrassDepth   int
	StoneDepth   int
}

// DefaultGenParams returns the standard 10x10 world: one layer of grass on
// two layers of stone with the surface at Z=0.
func DefaultGenParams() GenParams {
	return GenParams{
		SizeX:        10,
		SizeY:        10,
		GroundHeight: 0,
		GrassDepth:   1,
		StoneDepth:   2,
	}
}

// Generate fills g with the layered world and returns how many blocks were
// inserted. Occupied cells are left alone. Columns span
// [floor(-size/2), size/2), so odd sizes get the extra column on the
// negative side.
func Generate(g *Grid, p GenParams) int {
	added := 0
	for x := lowerHalf(p.SizeX); x < p.SizeX/2; x++ {
		for y := lowerHalf(p.SizeY); y < p.SizeY/2; y++ {
			for d := 0; d < p.GrassDepth+p.StoneDepth; d++ {
				t := Stone
				if d < p.GrassDepth {
					t = Grass
				}
				if g.Insert(Coord{x, y, p.GroundHeight - d}, t) {
					added++
				}
			}
		}
	}
	return added
}

func lowerHalf(size int) int {
	return -(size + 1) / 2
}
