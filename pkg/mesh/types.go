// Package mesh flattens a loaded COLLADA model into render-ready buffers.
package mesh

import "github.com/Faultbox/daeloader/pkg/collada"

// Vertex is one interleaved mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	Color    [4]float32
}

// Group is the index range drawn with one material.
type Group struct {
	Node       int // index into Model.Nodes
	Material   *collada.Material
	StartIndex int32
	IndexCount int32
}

// Mesh holds the complete mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []Group
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// ConvertToYUp rotates X_UP and Z_UP models so that +Y points up.
	ConvertToYUp bool
	// FlipV replaces each texture V coordinate with 1-V.
	FlipV bool
	// FlatNormals ignores authored normals and uses face normals.
	FlatNormals bool
	// ColorGroup selects the vertex color channel. Empty uses the channel
	// bound by each node.
	ColorGroup string
}
