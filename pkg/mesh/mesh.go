package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/daeloader/pkg/collada"
)

// Build creates a mesh from a loaded model. Every triangle corner becomes
// its own vertex; groups follow the order of model.Nodes. Triangles with
// an unset position index are skipped. Returns nil if nothing is drawable.
func Build(model *collada.Model, opts BuildOptions) *Mesh {
	if model == nil || len(model.Nodes) == 0 {
		return nil
	}

	upMatrix := mgl32.Ident4()
	if opts.ConvertToYUp {
		upMatrix = UpAxisMatrix(model.UpAxis)
	}

	var vertices []Vertex
	var indices []uint32
	var groups []Group

	bounds := Bounds{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}

	for ni, node := range model.Nodes {
		start := len(indices)
		colorGroup := node.ColorGroup
		if opts.ColorGroup != "" && node.VertexColors(opts.ColorGroup) != nil {
			colorGroup = opts.ColorGroup
		}
		fallback := materialColor(node.Material)

		for _, tri := range node.Triangles {
			var pos [3]mgl32.Vec3
			valid := true
			for c := 0; c < 3; c++ {
				i, ok := tri.Position[c].Get()
				if !ok {
					valid = false
					break
				}
				v := node.Vertices[i]
				pos[c] = upMatrix.Mul4x1(mgl32.Vec3{v.X, v.Y, v.Z}.Vec4(1)).Vec3()
			}
			if !valid {
				continue
			}
			faceNormal := FaceNormal(pos[0], pos[1], pos[2])

			base := uint32(len(vertices))
			for c := 0; c < 3; c++ {
				vert := Vertex{
					Position: pos[c],
					Normal:   faceNormal,
					Color:    fallback,
				}
				if i, ok := tri.Normal[c].Get(); ok && !opts.FlatNormals {
					n := node.Normals[i]
					vert.Normal = normalize(upMatrix.Mul4x1(mgl32.Vec3{n.NX, n.NY, n.NZ}.Vec4(0)).Vec3())
				}
				if i, ok := tri.UV[c].Get(); ok {
					tc := node.TexCoords[i]
					vert.TexCoord = [2]float32{tc.U, tc.V}
					if opts.FlipV {
						vert.TexCoord[1] = 1 - tc.V
					}
				}
				if i, ok := tri.Color[c].Get(); ok {
					if vc, ok := node.VertexColor(colorGroup, i); ok {
						vert.Color = [4]float32{vc.R, vc.G, vc.B, vc.A}
					}
				}
				updateBounds(&bounds, vert.Position)
				vertices = append(vertices, vert)
			}
			indices = append(indices, base, base+1, base+2)
		}

		if count := len(indices) - start; count > 0 {
			groups = append(groups, Group{
				Node:       ni,
				Material:   node.Material,
				StartIndex: int32(start),
				IndexCount: int32(count),
			})
		}
	}

	if len(vertices) == 0 {
		return nil
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Groups:   groups,
		Bounds:   bounds,
	}
}

// UpAxisMatrix returns the rotation that maps the given up axis onto +Y.
// Y_UP and unknown axes map to the identity.
func UpAxisMatrix(axis collada.UpAxis) mgl32.Mat4 {
	switch axis {
	case collada.XUp:
		return mgl32.HomogRotate3DZ(math.Pi / 2)
	case collada.ZUp:
		return mgl32.HomogRotate3DX(-math.Pi / 2)
	default:
		return mgl32.Ident4()
	}
}

// FaceNormal returns the unit normal of a counter-clockwise triangle.
// Degenerate triangles get +Y.
func FaceNormal(a, b, c mgl32.Vec3) [3]float32 {
	return normalize(b.Sub(a).Cross(c.Sub(a)))
}

func normalize(v mgl32.Vec3) [3]float32 {
	if v.Len() < 1e-6 {
		return [3]float32{0, 1, 0}
	}
	return v.Normalize()
}

// materialColor is the vertex color used where no color channel is bound.
func materialColor(m *collada.Material) [4]float32 {
	if m == nil {
		return [4]float32{1, 1, 1, 1}
	}
	c := m.RGBA()
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255 * m.Transparency,
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// CenterXZ centers the mesh horizontally but preserves its vertical offset.
// Returns the offset applied.
func CenterXZ(m *Mesh) (centerX, centerZ float32) {
	centerX = (m.Bounds.Min[0] + m.Bounds.Max[0]) / 2
	centerZ = (m.Bounds.Min[2] + m.Bounds.Max[2]) / 2

	for i := range m.Vertices {
		m.Vertices[i].Position[0] -= centerX
		m.Vertices[i].Position[2] -= centerZ
	}

	m.Bounds.Min[0] -= centerX
	m.Bounds.Max[0] -= centerX
	m.Bounds.Min[2] -= centerZ
	m.Bounds.Max[2] -= centerZ

	return centerX, centerZ
}
