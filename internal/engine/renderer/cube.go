package renderer

import "github.com/Faultbox/blockworld/internal/game/world"

// cubeVertices is a block-sized cube centered on the origin: 6 faces of
// 2 counter-clockwise triangles, interleaved position and normal.
var cubeVertices = buildCube(world.HalfExtent)

func buildCube(h float32) []float32 {
	type face struct {
		normal  [3]float32
		corners [4][3]float32 // counter-clockwise seen from outside
	}
	faces := []face{
		{[3]float32{1, 0, 0}, [4][3]float32{{h, -h, -h}, {h, h, -h}, {h, h, h}, {h, -h, h}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-h, h, -h}, {-h, -h, -h}, {-h, -h, h}, {-h, h, h}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{h, h, -h}, {-h, h, -h}, {-h, h, h}, {h, h, h}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{-h, h, -h}, {h, h, -h}, {h, -h, -h}, {-h, -h, -h}}},
	}

	out := make([]float32, 0, len(faces)*6*6)
	for _, f := range faces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			c := f.corners[i]
			out = append(out, c[0], c[1], c[2], f.normal[0], f.normal[1], f.normal[2])
		}
	}
	return out
}
