package collada

import "github.com/Faultbox/daeloader/pkg/xmltree"

// symbolTable maps the material symbols of one instance_geometry to
// library_materials entries.
type symbolTable map[string]*xmltree.Node

// bindMaterials reads bind_material/technique_common/instance_material.
func (l *loader) bindMaterials(instance *xmltree.Node) symbolTable {
	symbols := make(symbolTable)
	bind := instance.First("bind_material")
	if bind == nil {
		l.diag.missing("bind_material", "instance_geometry %s has no bind_material", instanceURL(instance))
		return symbols
	}
	common := bind.First("technique_common")
	if common == nil {
		l.diag.missing("technique_common", "bind_material of %s has no technique_common", instanceURL(instance))
		return symbols
	}
	for _, im := range common.ChildrenNamed("instance_material") {
		target, ok1 := im.Attr("target")
		symbol, ok2 := im.Attr("symbol")
		if !ok1 || !ok2 {
			continue
		}
		id, _ := fragment(target)
		symbols[symbol] = l.libs.materials[id]
	}
	return symbols
}

func instanceURL(n *xmltree.Node) string {
	url, _ := n.Attr("url")
	return url
}

// resolveMaterial returns the shared Material for a library_materials entry,
// resolving it on first use.
func (l *loader) resolveMaterial(matNode *xmltree.Node) *Material {
	if matNode == nil {
		l.diag.missing("material", "material node not found")
		return nil
	}

	name, ok := matNode.Attr("name")
	if !ok {
		name, _ = matNode.Attr("id")
	}
	if mat, ok := l.materials[name]; ok {
		return mat
	}

	mat := newMaterial(name)
	l.materials[name] = mat
	l.model.Materials = append(l.model.Materials, mat)

	instanceEffect := matNode.First("instance_effect")
	if instanceEffect == nil {
		l.diag.missing("instance_effect", "material %q has no instance_effect", name)
		return mat
	}
	url, ok := instanceEffect.Attr("url")
	if !ok {
		l.diag.missing("url", "instance_effect of material %q has no url", name)
		return mat
	}
	id, _ := fragment(url)
	effect := l.libs.effects[id]
	if effect == nil {
		l.diag.missing("effect", "effect %q of material %q not found", url, name)
		return mat
	}
	profile := effect.First("profile_COMMON")
	if profile == nil {
		l.diag.missing("profile_COMMON", "effect %q has no profile_COMMON", id)
		return mat
	}
	shader := profile.First("technique").FirstElement()
	if shader == nil {
		l.diag.missing("technique", "profile_COMMON of effect %q has no technique", id)
		return mat
	}
	mat.Shading = shader.Name

	sids := BuildIndex(profile, "sid")
	if diffuse := shader.First("diffuse"); diffuse != nil {
		l.resolveDiffuse(mat, diffuse, sids)
	}
	if transparent := shader.First("transparent"); transparent != nil {
		l.resolveTransparency(mat, transparent)
	}
	return mat
}

// resolveDiffuse prefers a texture over a flat color.
func (l *loader) resolveDiffuse(mat *Material, diffuse *xmltree.Node, sids LibraryIndex) {
	if texture := diffuse.First("texture"); texture != nil {
		if file, ok := l.resolveTexture(mat.Name, texture, sids); ok {
			mat.Texture = file
		}
		return
	}
	if c := diffuse.First("color"); c != nil {
		rgba := parseFloats(c.Text)
		if len(rgba) < 3 {
			l.diag.missing("color", "diffuse color of material %q has %d components", mat.Name, len(rgba))
			return
		}
		mat.Color = packRGB(rgba[0], rgba[1], rgba[2])
	}
}

// resolveTexture follows texture -> sampler2D -> surface -> image -> file.
func (l *loader) resolveTexture(matName string, texture *xmltree.Node, sids LibraryIndex) (string, bool) {
	ref, ok := texture.Attr("texture")
	if !ok {
		l.diag.missing("texture", "diffuse texture of material %q has no texture attribute", matName)
		return "", false
	}

	samplerParam := sids[ref]
	if samplerParam == nil {
		// Some exporters name the image directly instead of a sampler.
		if image := l.libs.images[ref]; image != nil {
			return l.imageFile(image)
		}
	}
	sampler := samplerParam.First("sampler2D")
	source := sampler.First("source")
	if source == nil {
		l.diag.missing("sampler2D", "sampler %q of material %q not found", ref, matName)
		return "", false
	}
	surfaceRef := source.TrimmedText()
	surface := sids[surfaceRef].First("surface")
	if surface == nil {
		l.diag.missing("surface", "surface %q of material %q not found", surfaceRef, matName)
		return "", false
	}
	initFrom := surface.First("init_from")
	if initFrom == nil {
		l.diag.missing("init_from", "surface %q of material %q has no init_from", surfaceRef, matName)
		return "", false
	}
	imageID := initFrom.TrimmedText()
	image := l.libs.images[imageID]
	if image == nil {
		l.diag.missing("image", "image %q of material %q not found", imageID, matName)
		return "", false
	}
	return l.imageFile(image)
}

func (l *loader) imageFile(image *xmltree.Node) (string, bool) {
	initFrom := image.First("init_from")
	if initFrom == nil {
		id, _ := image.Attr("id")
		l.diag.missing("init_from", "image %q has no init_from", id)
		return "", false
	}
	return initFrom.TrimmedText(), true
}

// resolveTransparency reads the opacity of a <transparent> color.
// COLLADA defaults the opaque mode to A_ONE.
func (l *loader) resolveTransparency(mat *Material, transparent *xmltree.Node) {
	mode, ok := transparent.Attr("opaque")
	if !ok {
		mode = "A_ONE"
	}
	if mode != "A_ONE" && mode != "RGB_ZERO" {
		return
	}
	c := transparent.First("color")
	if c == nil {
		l.diag.missing("color", "transparent of material %q has no color", mat.Name)
		return
	}
	rgba := parseFloats(c.Text)
	switch mode {
	case "A_ONE":
		if len(rgba) < 4 {
			l.diag.missing("color", "transparent color of material %q has no alpha", mat.Name)
			return
		}
		mat.Transparency = rgba[3]
	case "RGB_ZERO":
		if len(rgba) < 3 {
			l.diag.missing("color", "transparent color of material %q has %d components", mat.Name, len(rgba))
			return
		}
		mat.Transparency = max(rgba[0], rgba[1], rgba[2])
	}
}

// packRGB packs a [0,1] color into 0xRRGGBBFF.
func packRGB(r, g, b float32) uint32 {
	return uint32(toByte(r))<<24 | uint32(toByte(g))<<16 | uint32(toByte(b))<<8 | 0xFF
}

func toByte(v float32) uint8 {
	v = min(max(v, 0), 1)
	return uint8(v * 255)
}
