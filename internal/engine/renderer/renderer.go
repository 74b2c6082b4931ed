// Package renderer draws the block world with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/blockworld/internal/engine/lighting"
	"github.com/Faultbox/blockworld/internal/engine/shader"
	"github.com/Faultbox/blockworld/internal/game/world"
	"github.com/Faultbox/blockworld/internal/logger"
	"github.com/Faultbox/blockworld/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	// LightDir is the direction the sun shines in.
	LightDir math.Vec3
}

// DefaultLightDir points forward along +Y and 60 degrees down.
var DefaultLightDir = lighting.Sun(0, -60)

// Renderer draws one unit cube per block.
type Renderer struct {
	config Config

	program *shader.Program
	cubeVAO uint32
	cubeVBO uint32

	locViewProj  int32
	locOffset    int32
	locColor     int32
	locLightDir  int32
	locAmbient   int32
	locHighlight int32
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uViewProj;
uniform vec3 uOffset;

out vec3 vNormal;

void main() {
	vNormal = aNormal;
	gl_Position = uViewProj * vec4(aPos + uOffset, 1.0);
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;
out vec4 FragColor;

uniform vec4 uColor;
uniform vec3 uLightDir;
uniform float uAmbient;
uniform float uHighlight;

void main() {
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	vec3 lit = uColor.rgb * (uAmbient + (1.0 - uAmbient) * diffuse);
	FragColor = vec4(mix(lit, vec3(1.0), uHighlight), uColor.a);
}
`

// New creates a renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if cfg.LightDir.Length() == 0 {
		cfg.LightDir = DefaultLightDir
	}
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.53, 0.81, 0.92, 1.0) // sky
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.Link(vertexShader, fragmentShader,
		"uViewProj", "uOffset", "uColor", "uLightDir", "uAmbient", "uHighlight")
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.locViewProj = r.program.Loc("uViewProj")
	r.locOffset = r.program.Loc("uOffset")
	r.locColor = r.program.Loc("uColor")
	r.locLightDir = r.program.Loc("uLightDir")
	r.locAmbient = r.program.Loc("uAmbient")
	r.locHighlight = r.program.Loc("uHighlight")

	r.createCube()
	return r, nil
}

// Close releases GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.cubeVAO != 0 {
		gl.DeleteVertexArrays(1, &r.cubeVAO)
	}
	if r.cubeVBO != 0 {
		gl.DeleteBuffers(1, &r.cubeVBO)
	}
	r.program.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport width/height ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawBlocks draws every block in its registry colour. The block at target,
// if any, is drawn lightened.
func (r *Renderer) DrawBlocks(viewProj math.Mat4, blocks []world.Block, reg *world.Registry, target *world.Coord) {
	r.program.Use()
	gl.UniformMatrix4fv(r.locViewProj, 1, false, viewProj.Ptr())
	light := r.config.LightDir.Normalize()
	gl.Uniform3f(r.locLightDir, light.X, light.Y, light.Z)
	gl.Uniform1f(r.locAmbient, lighting.Ambient)
	gl.BindVertexArray(r.cubeVAO)

	for _, b := range blocks {
		c := reg.Color(b.Type)
		gl.Uniform4f(r.locColor, c[0], c[1], c[2], c[3])

		highlight := float32(0)
		if target != nil && *target == b.Coord {
			highlight = 0.25
		}
		gl.Uniform1f(r.locHighlight, highlight)

		gl.Uniform3f(r.locOffset, float32(b.Coord.X), float32(b.Coord.Y), float32(b.Coord.Z))
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(cubeVertices)/6))
	}

	gl.BindVertexArray(0)
}

// ReadPixels returns the current framebuffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) createCube() {
	gl.GenVertexArrays(1, &r.cubeVAO)
	gl.BindVertexArray(r.cubeVAO)

	gl.GenBuffers(1, &r.cubeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, unsafe.Pointer(&cubeVertices[0]), gl.STATIC_DRAW)

	// position (location = 0), normal (location = 1)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("cube mesh created",
		zap.Uint32("vao", r.cubeVAO),
		zap.Uint32("vbo", r.cubeVBO),
	)
}
