package collada

import "github.com/Faultbox/daeloader/pkg/xmltree"

// parseScene walks the instanced visual scene and loads every geometry
// instance it reaches.
func (l *loader) parseScene(scene *xmltree.Node) {
	if scene == nil {
		l.diag.missing("scene", "document has no scene")
		return
	}
	ivs := scene.First("instance_visual_scene")
	if ivs == nil {
		l.diag.missing("instance_visual_scene", "scene has no instance_visual_scene")
		return
	}
	url, ok := ivs.Attr("url")
	if !ok {
		l.diag.missing("url", "instance_visual_scene has no url")
		return
	}
	id, local := fragment(url)
	visual := l.libs.visualScenes[id]
	if !local || visual == nil {
		l.diag.missing("visual_scene", "visual scene %q not found", url)
		return
	}

	var instances []*xmltree.Node
	l.findInstanceGeometries(visual, make(map[*xmltree.Node]bool), &instances)
	for _, inst := range instances {
		symbols := l.bindMaterials(inst)
		url, ok := inst.Attr("url")
		if !ok {
			l.diag.missing("url", "instance_geometry has no url")
			continue
		}
		id, local := fragment(url)
		geometry := l.libs.geometries[id]
		if !local || geometry == nil {
			l.diag.missing("geometry", "geometry %q not found", url)
			continue
		}
		l.parseGeometry(geometry, id, symbols)
	}
}

// findInstanceGeometries collects instance_geometry elements below current.
// instance_node references are followed, so a shared subgraph is visited once
// per instancing path. Nodes already on the current path are not re-entered.
func (l *loader) findInstanceGeometries(current *xmltree.Node, onPath map[*xmltree.Node]bool, out *[]*xmltree.Node) {
	switch current.Name {
	case "instance_geometry":
		*out = append(*out, current)
		return
	case "instance_node":
		url, ok := current.Attr("url")
		if !ok {
			l.diag.missing("url", "instance_node has no url")
			return
		}
		target := l.nodeRef(url)
		if target == nil {
			l.diag.missing("node", "instanced node %q not found", url)
			return
		}
		current = target
	}

	if onPath[current] {
		id, _ := current.Attr("id")
		l.diag.missing("instance_node", "instance cycle through node %q ignored", id)
		return
	}
	onPath[current] = true
	for _, child := range current.Children {
		l.findInstanceGeometries(child, onPath, out)
	}
	delete(onPath, current)
}

// nodeRef resolves an instance_node url against library_nodes, then against
// nodes declared inside visual scenes.
func (l *loader) nodeRef(url string) *xmltree.Node {
	id, local := fragment(url)
	if !local {
		return nil
	}
	if n := l.libs.nodes[id]; n != nil {
		return n
	}
	return l.libs.visualScenes[id]
}

// parseGeometry creates one ModelNode per triangles or triangulated polylist.
func (l *loader) parseGeometry(geometry *xmltree.Node, id string, symbols symbolTable) {
	mesh := geometry.First("mesh")
	if mesh == nil {
		l.diag.missing("mesh", "geometry %q has no mesh", id)
		return
	}
	for _, prim := range mesh.Children {
		switch prim.Name {
		case "triangles":
		case "polylist":
			if !isTriangulated(prim) {
				l.diag.mismatch("polylist", "polylist of geometry %q is not triangulated", id)
				continue
			}
		default:
			continue
		}

		symbol, hasMaterial := prim.Attr("material")
		node := newModelNode(id, symbol)
		if hasMaterial {
			matNode, ok := symbols[symbol]
			if !ok {
				l.diag.missing("instance_material", "material symbol %q of geometry %q is not bound", symbol, id)
			} else {
				node.Material = l.resolveMaterial(matNode)
			}
		}
		l.assembleTriangles(prim, node)
		l.model.Nodes = append(l.model.Nodes, node)
	}
}
