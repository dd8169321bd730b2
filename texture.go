package addonpack

import (
	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

// RemoteTexture is downloaded at save time and written to Path inside the
// resource pack (or the skin pack root).
type RemoteTexture struct {
	Path string
	URL  string
}

// TextureVariant is one weighted path of a terrain texture. A zero Weight
// is left out.
type TextureVariant struct {
	Path   string
	Weight int
}

// TerrainTexture is an entry of terrain_texture.json. It points at a single
// Path unless Variants are given.
type TerrainTexture struct {
	Name     string
	Path     string
	Variants []TextureVariant
}

func (t *TerrainTexture) document() *jsondoc.Object {
	obj := jsondoc.NewObject()
	if len(t.Variants) == 0 {
		obj.AddProperty("textures", t.Path)
		return obj
	}
	variants := jsondoc.NewArray()
	for _, v := range t.Variants {
		variant := jsondoc.NewObject()
		variant.AddProperty("path", v.Path)
		if v.Weight != 0 {
			variant.AddProperty("weight", v.Weight)
		}
		variants.Add(variant)
	}
	textures := jsondoc.NewObject()
	textures.Add("variants", variants)
	obj.Add("textures", textures)
	return obj
}

// terrainDocument builds terrain_texture.json for the given textures.
func terrainDocument(s Scope, textures []*TerrainTexture) *jsondoc.Object {
	ns := s.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	doc := jsondoc.NewObject()
	doc.AddProperty("resource_pack_name", ns)
	doc.AddProperty("texture_name", "atlas.terrain")
	doc.AddProperty("padding", 8)
	doc.AddProperty("num_mip_levels", 4)

	data := jsondoc.NewObject()
	for _, t := range textures {
		data.Add(t.Name, t.document())
	}
	doc.Add("texture_data", data)
	return doc
}
