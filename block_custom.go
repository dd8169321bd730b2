package addonpack

import (
	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

// Event is a conditional block event fired on the block itself.
type Event struct {
	Name      string
	Condition string
}

func (e *Event) document() *jsondoc.Object {
	obj := jsondoc.NewObject()
	obj.AddProperty("target", "self")
	obj.AddProperty("event", e.Name)
	obj.AddProperty("condition", e.Condition)
	return obj
}

// Hook returns the event to attach to a trigger, or nil for none.
type Hook func() *Event

// BlockHooks are the event triggers of a CustomBlock.
type BlockHooks struct {
	OnPlaced          Hook
	OnFallOn          Hook
	OnInteract        Hook
	OnPlayerDestroyed Hook
	OnPlayerPlacing   Hook
	OnStepOff         Hook
	OnStepOn          Hook
}

// CollisionBox is a pick or entity collision volume.
type CollisionBox struct {
	Width, Height, Depth       float64
	OriginX, OriginY, OriginZ float64
}

func NewCollisionBox(width, height, depth, originX, originY, originZ float64) *CollisionBox {
	return &CollisionBox{
		Width: width, Height: height, Depth: depth,
		OriginX: originX, OriginY: originY, OriginZ: originZ,
	}
}

func (c *CollisionBox) document() *jsondoc.Object {
	obj := jsondoc.NewObject()
	obj.Add("origin", jsondoc.NewArray(c.OriginX, c.OriginY, c.OriginZ))
	obj.Add("size", jsondoc.NewArray(c.Width, c.Height, c.Depth))
	return obj
}

// Property is a custom block state; a slice Value lists the allowed values.
type Property struct {
	Name  string
	Value any
}

// CustomBlock is a block built from BlockProperties with optional collision
// boxes and event hooks. Client holds the block's blocks.json entry, if any.
type CustomBlock struct {
	path             string
	Properties       *BlockProperties
	Experimental     bool
	CreativeMenu     bool
	CustomProperties []Property
	PickCollision    *CollisionBox
	EntityCollision  *CollisionBox
	Hooks            BlockHooks
	Client           func(s Scope, blocks *jsondoc.Object)
}

func NewCustomBlock(path string, props *BlockProperties) *CustomBlock {
	if props == nil {
		props = NewBlockProperties()
	}
	return &CustomBlock{
		path:         path,
		Properties:   props,
		CreativeMenu: true,
	}
}

func (b *CustomBlock) Path() string {
	return b.path
}

// Register adds the block to a pack's block registry.
func (b *CustomBlock) Register(reg *Registry[Block]) {
	reg.Register(b)
}

func (b *CustomBlock) ServerData(s Scope) *jsondoc.Object {
	doc := jsondoc.NewObject()
	doc.AddProperty("format_version", blockFormatVersion)

	block := jsondoc.NewObject()
	desc := blockDescription(s, IDFromPath(b.path), b.Experimental, b.CreativeMenu)
	if len(b.CustomProperties) > 0 {
		props := jsondoc.NewObject()
		for _, p := range b.CustomProperties {
			if items, ok := sliceValues(p.Value); ok {
				props.Add(s.ID(p.Name), jsondoc.NewArray(items...))
			} else {
				props.AddProperty(s.ID(p.Name), p.Value)
			}
		}
		desc.Add("properties", props)
	}
	block.Add("description", desc)

	components := jsondoc.NewObject()
	if b.Properties != nil {
		b.Properties.addTo(components)
	}
	if b.PickCollision != nil {
		components.Add("minecraft:pick_collision", b.PickCollision.document())
	}
	if b.EntityCollision != nil {
		components.Add("minecraft:entity_collision", b.EntityCollision.document())
	}

	for _, h := range []struct {
		key  string
		hook Hook
	}{
		{"minecraft:on_placed", b.Hooks.OnPlaced},
		{"minecraft:on_fall_on", b.Hooks.OnFallOn},
		{"minecraft:on_interact", b.Hooks.OnInteract},
		{"minecraft:on_player_destroyed", b.Hooks.OnPlayerDestroyed},
		{"minecraft:on_player_placing", b.Hooks.OnPlayerPlacing},
		{"minecraft:on_step_off", b.Hooks.OnStepOff},
		{"minecraft:on_step_on", b.Hooks.OnStepOn},
	} {
		if h.hook == nil {
			continue
		}
		if ev := h.hook(); ev != nil {
			components.Add(h.key, ev.document())
		}
	}

	block.Add("components", components)
	doc.Add("minecraft:block", block)
	return doc
}

func (b *CustomBlock) ClientData(s Scope, blocks *jsondoc.Object) {
	if b.Client != nil {
		b.Client(s, blocks)
	}
}
