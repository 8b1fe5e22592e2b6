package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/daeloader/pkg/collada"
	"github.com/Faultbox/daeloader/pkg/mesh"
)

// report is the YAML view of a loaded model.
type report struct {
	File        string           `yaml:"file"`
	UpAxis      string           `yaml:"up_axis"`
	Triangles   int              `yaml:"triangles"`
	Nodes       []nodeReport     `yaml:"nodes"`
	Materials   []materialReport `yaml:"materials"`
	Mesh        *meshReport      `yaml:"mesh,omitempty"`
	Diagnostics []string         `yaml:"diagnostics,omitempty"`
}

type nodeReport struct {
	Geometry    string   `yaml:"geometry"`
	Symbol      string   `yaml:"symbol,omitempty"`
	Material    string   `yaml:"material,omitempty"`
	Triangles   int      `yaml:"triangles"`
	Vertices    int      `yaml:"vertices"`
	Normals     int      `yaml:"normals"`
	TexCoords   int      `yaml:"tex_coords"`
	ColorGroups []string `yaml:"color_groups,omitempty"`
}

type materialReport struct {
	Name         string  `yaml:"name"`
	Shading      string  `yaml:"shading,omitempty"`
	Color        string  `yaml:"color"`
	Transparency float32 `yaml:"transparency"`
	Texture      string  `yaml:"texture,omitempty"`
}

type meshReport struct {
	Vertices int        `yaml:"vertices"`
	Indices  int        `yaml:"indices"`
	Groups   int        `yaml:"groups"`
	Min      [3]float32 `yaml:"min,flow"`
	Max      [3]float32 `yaml:"max,flow"`
}

func newReport(path string, model *collada.Model, built *mesh.Mesh) report {
	r := report{
		File:      path,
		UpAxis:    model.UpAxis.String(),
		Triangles: model.TriangleCount(),
	}
	for _, n := range model.Nodes {
		nr := nodeReport{
			Geometry:  n.Geometry,
			Symbol:    n.Symbol,
			Triangles: len(n.Triangles),
			Vertices:  len(n.Vertices),
			Normals:   len(n.Normals),
			TexCoords: len(n.TexCoords),
		}
		if groups := n.ColorGroups(); len(groups) > 0 {
			nr.ColorGroups = groups
		}
		if n.Material != nil {
			nr.Material = n.Material.Name
		}
		r.Nodes = append(r.Nodes, nr)
	}
	for _, m := range model.Materials {
		r.Materials = append(r.Materials, materialReport{
			Name:         m.Name,
			Shading:      m.Shading,
			Color:        fmt.Sprintf("#%08X", m.Color),
			Transparency: m.Transparency,
			Texture:      m.Texture,
		})
	}
	if built != nil {
		r.Mesh = &meshReport{
			Vertices: len(built.Vertices),
			Indices:  len(built.Indices),
			Groups:   len(built.Groups),
			Min:      built.Bounds.Min,
			Max:      built.Bounds.Max,
		}
	}
	for _, d := range model.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, d.String())
	}
	return r
}

func writeReport(w io.Writer, r report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}
