package collada

import "github.com/Faultbox/daeloader/pkg/xmltree"

// LibraryIndex maps an identifying attribute value to its element.
type LibraryIndex map[string]*xmltree.Node

// BuildIndex walks root in pre-order and records every element carrying attr.
// On duplicate values the last element visited wins. A nil root yields an
// empty index.
func BuildIndex(root *xmltree.Node, attr string) LibraryIndex {
	index := make(LibraryIndex)
	root.Walk(func(n *xmltree.Node) {
		if v, ok := n.Attr(attr); ok {
			index[v] = n
		}
	})
	return index
}

// libraries holds the id indexes of one document.
type libraries struct {
	visualScenes LibraryIndex
	nodes        LibraryIndex
	geometries   LibraryIndex
	materials    LibraryIndex
	effects      LibraryIndex
	images       LibraryIndex
}

// buildLibraries indexes every library section of the document. A document
// may split one category over several sections; later sections win on
// duplicate ids.
func buildLibraries(root *xmltree.Node) *libraries {
	return &libraries{
		visualScenes: sectionIndex(root, "library_visual_scenes"),
		nodes:        sectionIndex(root, "library_nodes"),
		geometries:   sectionIndex(root, "library_geometries"),
		materials:    sectionIndex(root, "library_materials"),
		effects:      sectionIndex(root, "library_effects"),
		images:       sectionIndex(root, "library_images"),
	}
}

func sectionIndex(root *xmltree.Node, section string) LibraryIndex {
	index := make(LibraryIndex)
	for _, lib := range root.ChildrenNamed(section) {
		for id, n := range BuildIndex(lib, "id") {
			index[id] = n
		}
	}
	return index
}
