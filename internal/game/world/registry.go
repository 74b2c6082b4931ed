package world

import "sort"

// Default block types.
const (
	Stone        BlockType = "stone"
	Grass        BlockType = "grass"
	Checkerboard BlockType = "checkerboard"
	RedBlock     BlockType = "red_block"
	BlueBlock    BlockType = "blue_block"
	GreenBlock   BlockType = "green_block"
)

// FallbackColor is used for types missing from the registry.
var FallbackColor = [4]float32{0.8, 0.8, 0.8, 1}

// TypeInfo describes one block type.
type TypeInfo struct {
	Name  BlockType
	Color [4]float32 // RGBA
	Slot  int        // hotkey digit, -1 when unbound
}

// Registry resolves block types to their properties. Build it once and pass
// it to whoever needs it; the physics core only uses the type tag.
type Registry struct {
	types map[BlockType]TypeInfo
	slots map[int]BlockType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[BlockType]TypeInfo),
		slots: make(map[int]BlockType),
	}
}

// DefaultRegistry returns the built-in block types.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeInfo{Name: Stone, Color: [4]float32{0.5, 0.5, 0.5, 1}, Slot: 1})
	r.Register(TypeInfo{Name: Grass, Color: [4]float32{0, 0.5, 0, 1}, Slot: 2})
	r.Register(TypeInfo{Name: Checkerboard, Color: [4]float32{0.55, 0.55, 0.55, 1}, Slot: 3})
	r.Register(TypeInfo{Name: RedBlock, Color: [4]float32{1, 0, 0, 1}, Slot: 4})
	r.Register(TypeInfo{Name: BlueBlock, Color: [4]float32{0, 0, 1, 1}, Slot: 5})
	r.Register(TypeInfo{Name: GreenBlock, Color: [4]float32{0, 1, 0, 1}, Slot: 0})
	return r
}

// Register adds or replaces a type. A slot already taken by another type is
// reassigned to the new one.
func (r *Registry) Register(info TypeInfo) {
	if old, ok := r.types[info.Name]; ok && old.Slot >= 0 {
		delete(r.slots, old.Slot)
	}
	r.types[info.Name] = info
	if info.Slot >= 0 {
		if prev, ok := r.slots[info.Slot]; ok && prev != info.Name {
			prevInfo := r.types[prev]
			prevInfo.Slot = -1
			r.types[prev] = prevInfo
		}
		r.slots[info.Slot] = info.Name
	}
}

// Lookup returns the info for a type.
func (r *Registry) Lookup(t BlockType) (TypeInfo, bool) {
	info, ok := r.types[t]
	return info, ok
}

// BySlot returns the type bound to a hotkey digit.
func (r *Registry) BySlot(slot int) (BlockType, bool) {
	t, ok := r.slots[slot]
	return t, ok
}

// Color returns the display color for t.
func (r *Registry) Color(t BlockType) [4]float32 {
	if info, ok := r.types[t]; ok {
		return info.Color
	}
	return FallbackColor
}

// Names returns the registered types in sorted order.
func (r *Registry) Names() []BlockType {
	out := make([]BlockType, 0, len(r.types))
	for name := range r.types {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
