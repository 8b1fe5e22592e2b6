package collada

import "github.com/Faultbox/daeloader/pkg/xmltree"

// channel is an input offset within a primitive's per-corner index group.
type channel struct {
	offset int
	bound  bool
}

func (c *channel) bind(input *xmltree.Node) {
	c.offset = 0
	if v, ok := input.Attr("offset"); ok {
		c.offset, _ = parseCount(v)
	}
	c.bound = true
}

// semanticOffsets holds the channel layout of one primitive element.
type semanticOffsets struct {
	vertex   channel
	normal   channel
	texCoord channel
	color    channel
}

// isTriangulated reports whether every polylist face has exactly 3 corners.
// A polylist without vcount is not considered triangulated.
func isTriangulated(polylist *xmltree.Node) bool {
	vcount := polylist.First("vcount")
	if vcount == nil {
		return false
	}
	for _, n := range parseInts(vcount.Text) {
		if n != 3 {
			return false
		}
	}
	return true
}

// parseVertices extracts the POSITION and NORMAL inputs of a <vertices>.
func (l *loader) parseVertices(vertices *xmltree.Node, node *ModelNode) {
	for _, input := range vertices.ChildrenNamed("input") {
		semantic, ok1 := input.Attr("semantic")
		ref, ok2 := input.Attr("source")
		if !ok1 || !ok2 {
			continue
		}
		switch semantic {
		case "POSITION":
			l.extractPositions(l.geometryRef(ref), node)
		case "NORMAL":
			l.extractNormals(l.geometryRef(ref), node)
		}
	}
}

// parseInputs binds the channels of a primitive element and extracts the
// data each one references into node.
func (l *loader) parseInputs(prim *xmltree.Node, node *ModelNode) semanticOffsets {
	var offs semanticOffsets
	for _, input := range prim.ChildrenNamed("input") {
		semantic, ok1 := input.Attr("semantic")
		ref, ok2 := input.Attr("source")
		if !ok1 || !ok2 {
			continue
		}
		set, hasSet := input.Attr("set")

		switch semantic {
		case "VERTEX":
			vertices := l.geometryRef(ref)
			if vertices == nil {
				l.diag.missing("vertices", "vertices %q not found", ref)
			} else {
				l.parseVertices(vertices, node)
			}
			offs.vertex.bind(input)
		case "NORMAL":
			l.extractNormals(l.geometryRef(ref), node)
			offs.normal.bind(input)
		case "TEXCOORD":
			// Only the first UV set is kept.
			if !hasSet || set == "0" {
				l.extractTexCoords(l.geometryRef(ref), node)
				offs.texCoord.bind(input)
			}
		case "COLOR":
			group := l.extractColors(l.geometryRef(ref), node)
			if hasSet && set == "0" {
				offs.color.bind(input)
				node.ColorGroup = group
			}
		}
	}
	return offs
}

// assembleTriangles fuses the index channels of a <triangles> or triangulated
// <polylist> into node.Triangles.
func (l *loader) assembleTriangles(prim *xmltree.Node, node *ModelNode) {
	p := prim.First("p")
	countAttr, hasCount := prim.Attr("count")
	if p == nil || !hasCount {
		l.diag.missing("p", "%s of geometry %q has no index list or count", prim.Name, node.Geometry)
		return
	}

	triCount, ok := parseCount(countAttr)
	if !ok {
		l.diag.missing("count", "%s of geometry %q has invalid count %q", prim.Name, node.Geometry, countAttr)
		return
	}

	offs := l.parseInputs(prim, node)

	indices := parseInts(p.Text)
	if triCount == 0 {
		return
	}
	// Checked before multiplying so a huge count cannot overflow.
	if triCount > len(indices)/3 {
		l.diag.missing("p", "%s of geometry %q has %d indices for %d triangles",
			prim.Name, node.Geometry, len(indices), triCount)
		return
	}
	stride := len(indices) / (triCount * 3)

	// Sketchup convention: normals can travel inside <vertices> and share the
	// vertex index instead of having a channel of their own.
	normal := offs.normal
	if !normal.bound && len(node.Normals) > 0 && offs.vertex.bound {
		normal = offs.vertex
	}

	colorLen := len(node.VertexColors(node.ColorGroup))
	channels := []struct {
		name   string
		ch     channel
		limit  int
		target func(t *Triangle) *[3]Index
	}{
		{"VERTEX", offs.vertex, len(node.Vertices), func(t *Triangle) *[3]Index { return &t.Position }},
		{"NORMAL", normal, len(node.Normals), func(t *Triangle) *[3]Index { return &t.Normal }},
		{"TEXCOORD", offs.texCoord, len(node.TexCoords), func(t *Triangle) *[3]Index { return &t.UV }},
		{"COLOR", offs.color, colorLen, func(t *Triangle) *[3]Index { return &t.Color }},
	}
	for i := range channels {
		c := &channels[i]
		if c.ch.bound && c.ch.offset >= stride {
			l.diag.missing("input", "%s offset %d exceeds index stride %d in geometry %q",
				c.name, c.ch.offset, stride, node.Geometry)
			c.ch.bound = false
		}
	}

	outOfRange := make([]bool, len(channels))
	node.Triangles = make([]Triangle, 0, triCount)
	for i := 0; i < triCount; i++ {
		var tri Triangle
		for corner := 0; corner < 3; corner++ {
			base := i*stride*3 + corner*stride
			for ci, c := range channels {
				if !c.ch.bound {
					continue
				}
				idx := indices[base+c.ch.offset]
				if idx >= c.limit {
					outOfRange[ci] = true
					continue
				}
				c.target(&tri)[corner] = IndexOf(idx)
			}
		}
		node.Triangles = append(node.Triangles, tri)
	}

	for ci, bad := range outOfRange {
		if bad {
			l.diag.missing(channels[ci].name, "indices past the end of the %s stream of geometry %q left unset",
				channels[ci].name, node.Geometry)
		}
	}
}

// geometryRef resolves a "#id" reference inside library_geometries.
func (l *loader) geometryRef(ref string) *xmltree.Node {
	id, local := fragment(ref)
	if !local {
		return nil
	}
	return l.libs.geometries[id]
}
