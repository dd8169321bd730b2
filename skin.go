package addonpack

import (
	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

const (
	DefaultSkinGeometry = "geometry.humanoid.custom"
	DefaultSkinPackName = "skin_pack_example"
)

// Skin is one entry of a skin pack. Type is always "free".
type Skin struct {
	Name     string
	Texture  string
	Geometry string
	Type     string
}

func NewSkin(name, texture, geometry string) *Skin {
	if geometry == "" {
		geometry = DefaultSkinGeometry
	}
	return &Skin{Name: name, Texture: texture, Geometry: geometry, Type: "free"}
}

func (s *Skin) document() *jsondoc.Object {
	obj := jsondoc.NewObject()
	obj.AddProperty("localization_name", s.Name)
	obj.AddProperty("geometry", s.Geometry)
	obj.AddProperty("texture", s.Texture)
	obj.AddProperty("type", s.Type)
	return obj
}

func skinsDocument(skins []*Skin, packName string) *jsondoc.Object {
	if packName == "" {
		packName = DefaultSkinPackName
	}
	list := jsondoc.NewArray()
	for _, s := range skins {
		list.Add(s.document())
	}
	doc := jsondoc.NewObject()
	doc.Add("skins", list)
	doc.AddProperty("serialize_name", packName)
	doc.AddProperty("localization_name", packName)
	return doc
}
