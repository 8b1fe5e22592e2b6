package collada

import "github.com/Faultbox/daeloader/pkg/xmltree"

// offsets looks up every named column, failing if any is missing.
func (s *MeshSource) offsets(names ...string) ([]int, bool) {
	out := make([]int, len(names))
	for i, name := range names {
		off, ok := s.ParamOffset(name)
		if !ok {
			return nil, false
		}
		out[i] = off
	}
	return out, true
}

// rows calls fn with the requested columns of each of Count elements. It
// stops at the first element the float array cannot fully back.
func (l *loader) rows(src *MeshSource, cols []int, fn func(vals []float32)) {
	vals := make([]float32, len(cols))
	for i := 0; i < src.Count; i++ {
		for c, off := range cols {
			v, ok := src.at(i, off)
			if !ok {
				l.diag.missing("float_array", "source %q holds %d values, too few for %d elements of stride %d",
					src.Name, len(src.Floats), src.Count, src.Stride)
				return
			}
			vals[c] = v
		}
		fn(vals)
	}
}

func (l *loader) extractPositions(source *xmltree.Node, node *ModelNode) {
	src := l.decodeSource(source)
	if src.Err != SourceOK {
		return
	}
	cols, ok := src.offsets("X", "Y", "Z")
	if !ok {
		return
	}
	l.rows(&src, cols, func(v []float32) {
		node.Vertices = append(node.Vertices, Vertex{X: v[0], Y: v[1], Z: v[2]})
	})
}

func (l *loader) extractNormals(source *xmltree.Node, node *ModelNode) {
	src := l.decodeSource(source)
	if src.Err != SourceOK {
		return
	}
	cols, ok := src.offsets("X", "Y", "Z")
	if !ok {
		return
	}
	l.rows(&src, cols, func(v []float32) {
		node.Normals = append(node.Normals, Normal{NX: v[0], NY: v[1], NZ: v[2]})
	})
}

func (l *loader) extractTexCoords(source *xmltree.Node, node *ModelNode) {
	src := l.decodeSource(source)
	if src.Err != SourceOK {
		return
	}
	cols, ok := src.offsets("S", "T")
	if !ok {
		return
	}
	l.rows(&src, cols, func(v []float32) {
		node.TexCoords = append(node.TexCoords, TextureCoord{U: v[0], V: v[1]})
	})
}

// extractColors appends to the color group named after the source and
// returns that name.
func (l *loader) extractColors(source *xmltree.Node, node *ModelNode) string {
	src := l.decodeSource(source)
	if src.Err != SourceOK || src.Stride < 3 {
		return ""
	}
	cols, ok := src.offsets("R", "G", "B")
	if !ok {
		return ""
	}
	if a, ok := src.ParamOffset("A"); ok && src.Stride > 3 {
		cols = append(cols, a)
	}
	l.rows(&src, cols, func(v []float32) {
		vc := VertexColor{R: v[0], G: v[1], B: v[2], A: 1.0}
		if len(v) > 3 {
			vc.A = v[3]
		}
		node.addVertexColor(src.Name, vc)
	})
	return src.Name
}
