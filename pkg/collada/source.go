package collada

import "github.com/Faultbox/daeloader/pkg/xmltree"

// SourceError records why a <source> could not be decoded.
type SourceError int

const (
	SourceOK               SourceError = 0
	SourceMissingTechnique SourceError = 1 // no technique_common
	SourceMissingAccessor  SourceError = 2 // no accessor
	SourceMissingArray     SourceError = 3 // accessor source not found
)

// String returns a human-readable error name.
func (e SourceError) String() string {
	switch e {
	case SourceOK:
		return "OK"
	case SourceMissingTechnique:
		return "MissingTechnique"
	case SourceMissingAccessor:
		return "MissingAccessor"
	case SourceMissingArray:
		return "MissingArray"
	default:
		return "Unknown"
	}
}

// AccessorParam is one column of an accessor.
type AccessorParam struct {
	Name string
	Type string
}

// MeshSource is a decoded <source>: a flat float array read as Count rows of
// Stride values, with named columns. Indexing is only valid when Err is
// SourceOK.
type MeshSource struct {
	Name   string
	Count  int
	Stride int
	Params []AccessorParam
	Floats []float32
	Err    SourceError
}

// ParamOffset returns the column of the named parameter.
func (s *MeshSource) ParamOffset(name string) (int, bool) {
	for i, p := range s.Params {
		if p.Name != "" && p.Name == name {
			return i, true
		}
	}
	return 0, false
}

// at returns the float at column offset of element i, or false if the
// array is too short.
func (s *MeshSource) at(i, offset int) (float32, bool) {
	idx := i*s.Stride + offset
	if idx < 0 || idx >= len(s.Floats) {
		return 0, false
	}
	return s.Floats[idx], true
}

// decodeSource reads the accessor of a <source> and the float array it
// references.
func (l *loader) decodeSource(src *xmltree.Node) MeshSource {
	var ms MeshSource
	if src == nil {
		l.diag.missing("source", "source element not found")
		ms.Err = SourceMissingArray
		return ms
	}

	if name, ok := src.Attr("name"); ok {
		ms.Name = name
	} else if id, ok := src.Attr("id"); ok {
		ms.Name = id
	}

	common := src.First("technique_common")
	if common == nil {
		l.diag.missing("technique_common", "source %q has no technique_common", ms.Name)
		ms.Err = SourceMissingTechnique
		return ms
	}
	accessor := common.First("accessor")
	if accessor == nil {
		l.diag.missing("accessor", "source %q has no accessor", ms.Name)
		ms.Err = SourceMissingAccessor
		return ms
	}

	ref, _ := accessor.Attr("source")
	id, local := fragment(ref)
	array := l.libs.geometries[id]
	if !local || array == nil {
		l.diag.missing("float_array", "accessor source %q of %q not found", ref, ms.Name)
		ms.Err = SourceMissingArray
		return ms
	}

	ms.Stride = 1
	if v, ok := accessor.Attr("stride"); ok {
		if stride, ok := parseCount(v); ok && stride > 0 {
			ms.Stride = stride
		}
	}
	if v, ok := accessor.Attr("count"); ok {
		ms.Count, _ = parseCount(v)
	}

	for _, p := range accessor.ChildrenNamed("param") {
		name, _ := p.Attr("name")
		typ, _ := p.Attr("type")
		ms.Params = append(ms.Params, AccessorParam{Name: name, Type: typ})
	}
	ms.Floats = parseFloats(array.Text)
	return ms
}
