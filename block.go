package addonpack

import (
	"sort"

	"golang.org/x/exp/slices"

	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

const blockFormatVersion = "1.12"

// ExperimentalComponents only apply to blocks marked experimental; other
// blocks drop them silently.
var ExperimentalComponents = []string{
	"unit_cube",
	"crafting_table",
	"entity_collision",
	"pick_collision",
	"breakonpush",
	"display_name",
	"breathability",
	"immovable",
	"onlypistonpush",
	"preventsjumping",
	"rotation",
	"unwalkable",
}

func isExperimentalComponent(name string) bool {
	return slices.Contains(ExperimentalComponents, name)
}

// Block is anything that can be written to the behavior pack's blocks
// folder. ClientData adds the block's entry to the shared blocks.json.
type Block interface {
	Path() string
	ServerData(s Scope) *jsondoc.Object
	ClientData(s Scope, blocks *jsondoc.Object)
}

// Component is one entry of a SimpleBlock's component bag. Its value is a
// scalar, a slice, or Fields / map[string]any for an object.
type Component struct {
	Name  string
	Value any
}

// Field is one property of a component object.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered component object.
type Fields []Field

// BlockTextures names the textures of a block: All for every face, or Up
// and Down plus either Side or all four of North, South, East and West.
type BlockTextures struct {
	All   string
	Up    string
	Down  string
	Side  string
	North string
	South string
	East  string
	West  string
}

// SimpleBlock is a block described entirely by data.
type SimpleBlock struct {
	path         string
	Experimental bool
	CreativeMenu bool
	Components   []Component
	Textures     BlockTextures
	Sound        string
	// Shape is the optional client blockshape, e.g. "cross_texture".
	Shape string
}

func NewSimpleBlock(path string, experimental, creativeMenu bool, components []Component, textures BlockTextures) *SimpleBlock {
	return &SimpleBlock{
		path:         path,
		Experimental: experimental,
		CreativeMenu: creativeMenu,
		Components:   components,
		Textures:     textures,
		Sound:        "stone",
	}
}

func (b *SimpleBlock) Path() string {
	return b.path
}

func (b *SimpleBlock) ServerData(s Scope) *jsondoc.Object {
	doc := jsondoc.NewObject()
	doc.AddProperty("format_version", blockFormatVersion)

	block := jsondoc.NewObject()
	block.Add("description", blockDescription(s, IDFromPath(b.path), b.Experimental, b.CreativeMenu))

	components := jsondoc.NewObject()
	for _, c := range b.Components {
		if !b.Experimental && isExperimentalComponent(c.Name) {
			continue
		}
		addComponent(components, "minecraft:"+c.Name, c.Value)
	}
	block.Add("components", components)

	doc.Add("minecraft:block", block)
	return doc
}

func (b *SimpleBlock) ClientData(s Scope, blocks *jsondoc.Object) {
	block := jsondoc.NewObject()
	if b.Shape != "" {
		block.AddProperty("blockshape", b.Shape)
	}

	t := b.Textures
	if t.All != "" {
		block.AddProperty("textures", t.All)
	} else {
		textures := jsondoc.NewObject()
		textures.AddProperty("up", t.Up)
		textures.AddProperty("down", t.Down)
		switch {
		case t.Side != "":
			textures.AddProperty("side", t.Side)
		case t.North != "" && t.East != "" && t.South != "" && t.West != "":
			textures.AddProperty("north", t.North)
			textures.AddProperty("south", t.South)
			textures.AddProperty("east", t.East)
			textures.AddProperty("west", t.West)
		default:
			textures.AddProperty("side", t.Up)
		}
		block.Add("textures", textures)
	}

	sound := b.Sound
	if sound == "" {
		sound = "stone"
	}
	block.AddProperty("sound", sound)

	blocks.Add(s.ID(IDFromPath(b.path)), block)
}

func blockDescription(s Scope, id string, experimental, creativeMenu bool) *jsondoc.Object {
	desc := jsondoc.NewObject()
	desc.AddProperty("identifier", s.ID(id))
	desc.AddProperty("is_experimental", experimental)
	desc.AddProperty("register_to_creative_menu", creativeMenu)
	return desc
}

// addComponent lowers one bag entry: objects are copied one level deep,
// slices become lists and anything else is a scalar.
func addComponent(components *jsondoc.Object, key string, value any) {
	switch v := value.(type) {
	case jsondoc.Node:
		components.Add(key, v)
	case Fields:
		obj := jsondoc.NewObject()
		for _, f := range v {
			obj.AddProperty(f.Name, f.Value)
		}
		components.Add(key, obj)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := jsondoc.NewObject()
		for _, k := range keys {
			obj.AddProperty(k, v[k])
		}
		components.Add(key, obj)
	default:
		if items, ok := sliceValues(value); ok {
			components.Add(key, jsondoc.NewArray(items...))
			return
		}
		components.AddProperty(key, value)
	}
}

// sliceValues spreads the common slice kinds into []any.
func sliceValues(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		return spread(s), true
	case []int:
		return spread(s), true
	case []float64:
		return spread(s), true
	case []bool:
		return spread(s), true
	case [3]int:
		return spread(s[:]), true
	case [3]float64:
		return spread(s[:]), true
	}
	return nil, false
}

func spread[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
