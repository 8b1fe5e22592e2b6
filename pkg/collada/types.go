// Package collada loads COLLADA (.dae) scene documents into renderable models.
//
// A load resolves the document's instance, library, effect and image
// references and fuses the per-corner index channels of every triangulated
// primitive into Triangle records. Problems inside the document never abort a
// load: the affected attribute falls back to its default and a Diagnostic is
// recorded on the Model.
package collada

import (
	"fmt"
	"image/color"
)

// UpAxis is the decoded value of asset/up_axis.
type UpAxis int

const (
	XUp        UpAxis = iota // X_UP
	YUp                      // Y_UP
	ZUp                      // Z_UP
	InvalidUp                // up_axis present with an unknown value
	UpNotFound               // asset or up_axis missing
)

// String returns the COLLADA spelling of the axis.
func (a UpAxis) String() string {
	switch a {
	case XUp:
		return "X_UP"
	case YUp:
		return "Y_UP"
	case ZUp:
		return "Z_UP"
	case InvalidUp:
		return "INVALID"
	case UpNotFound:
		return "NOT_FOUND"
	default:
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
}

// Vertex is a vertex position.
type Vertex struct {
	X, Y, Z float32
}

// Normal is a vertex normal.
type Normal struct {
	NX, NY, NZ float32
}

// TextureCoord is a texture coordinate from the first UV set.
type TextureCoord struct {
	U, V float32
}

// VertexColor is a per-vertex RGBA color. A defaults to 1 when the source has
// no alpha column.
type VertexColor struct {
	R, G, B, A float32
}

// Index is an optional position in one of a ModelNode's attribute streams.
// The zero value is unset.
type Index struct {
	value int
	set   bool
}

// IndexOf returns a set index. Negative values yield an unset index.
func IndexOf(i int) Index {
	if i < 0 {
		return Index{}
	}
	return Index{value: i, set: true}
}

// Get returns the index and whether it is set.
func (x Index) Get() (int, bool) {
	return x.value, x.set
}

// IsSet reports whether the index refers to a stream element.
func (x Index) IsSet() bool {
	return x.set
}

// String returns the index, or "-" when unset.
func (x Index) String() string {
	if !x.set {
		return "-"
	}
	return fmt.Sprintf("%d", x.value)
}

// Triangle holds the four index channels of each of its three corners.
type Triangle struct {
	Position [3]Index
	Normal   [3]Index
	UV       [3]Index
	Color    [3]Index
}

// Material is the resolved appearance of a bound COLLADA material.
// Materials are shared: every ModelNode bound to the same material name
// points at the same instance.
type Material struct {
	Name         string
	Texture      string  // diffuse image filename, empty for flat color
	Color        uint32  // packed 0xRRGGBBAA diffuse color
	Transparency float32 // 1 is opaque
	Shading      string  // technique element, e.g. "phong", "lambert"
}

// DefaultColor is the diffuse color of a material without a diffuse color.
const DefaultColor uint32 = 0xFFFFFFFF

func newMaterial(name string) *Material {
	return &Material{
		Name:         name,
		Color:        DefaultColor,
		Transparency: 1.0,
	}
}

// HasTexture reports whether the diffuse channel resolved to an image file.
func (m *Material) HasTexture() bool {
	return m.Texture != ""
}

// RGBA unpacks the diffuse color.
func (m *Material) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(m.Color >> 24),
		G: uint8(m.Color >> 16),
		B: uint8(m.Color >> 8),
		A: uint8(m.Color),
	}
}

// ModelNode is the geometry of one triangulated primitive element together
// with its bound material.
type ModelNode struct {
	Geometry string // id of the source geometry
	Symbol   string // material symbol of the primitive element

	Triangles []Triangle
	Vertices  []Vertex
	Normals   []Normal
	TexCoords []TextureCoord

	// ColorGroup names the color channel that Triangle.Color indexes into.
	// Empty when no COLOR input with set 0 was bound.
	ColorGroup string

	colors     map[string][]VertexColor
	colorOrder []string

	Material *Material
}

func newModelNode(geometry, symbol string) *ModelNode {
	return &ModelNode{
		Geometry: geometry,
		Symbol:   symbol,
		colors:   make(map[string][]VertexColor),
	}
}

func (n *ModelNode) addVertexColor(group string, vc VertexColor) {
	if _, ok := n.colors[group]; !ok {
		n.colorOrder = append(n.colorOrder, group)
	}
	n.colors[group] = append(n.colors[group], vc)
}

// ColorGroups returns the names of the vertex color channels in the order
// they were first bound.
func (n *ModelNode) ColorGroups() []string {
	out := make([]string, len(n.colorOrder))
	copy(out, n.colorOrder)
	return out
}

// FirstColorGroup returns the first bound color channel name, or "".
func (n *ModelNode) FirstColorGroup() string {
	if len(n.colorOrder) == 0 {
		return ""
	}
	return n.colorOrder[0]
}

// VertexColors returns the colors of the named channel.
func (n *ModelNode) VertexColors(group string) []VertexColor {
	return n.colors[group]
}

// VertexColor returns one color of the named channel.
func (n *ModelNode) VertexColor(group string, i int) (VertexColor, bool) {
	cs := n.colors[group]
	if i < 0 || i >= len(cs) {
		return VertexColor{}, false
	}
	return cs[i], true
}

// Model is the result of loading a COLLADA document.
type Model struct {
	Nodes       []*ModelNode
	Materials   []*Material
	UpAxis      UpAxis
	Diagnostics []Diagnostic
}

// TriangleCount returns the number of triangles across all nodes.
func (m *Model) TriangleCount() int {
	total := 0
	for _, n := range m.Nodes {
		total += len(n.Triangles)
	}
	return total
}

// VertexCount returns the number of vertex positions across all nodes.
func (m *Model) VertexCount() int {
	total := 0
	for _, n := range m.Nodes {
		total += len(n.Vertices)
	}
	return total
}

// MaterialByName returns the material with the given name, or nil.
func (m *Model) MaterialByName(name string) *Material {
	for _, mat := range m.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}
