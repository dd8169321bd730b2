package addonpack

import (
	"strings"

	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

// optional is a component value that is only written once it has been set.
type optional struct {
	value any
	set   bool
}

func (c *optional) put(v any) {
	c.value = v
	c.set = true
}

func (c *optional) addTo(obj *jsondoc.Object, name string) {
	if !c.set {
		return
	}
	if n, ok := c.value.(jsondoc.Node); ok {
		obj.Add(name, n)
		return
	}
	obj.AddProperty(name, c.value)
}

// BlockProperties is a fluent set of block components for CustomBlock.
// Only the components that were set end up in the block file. The zero
// value is ready to use.
type BlockProperties struct {
	destroyTime         optional
	explosionResistance optional
	friction            optional
	drops               optional
	lightAbsorption     optional
	lightEmission       optional
	mapColor            optional
	breakOnPush         optional
	breathability       optional
	immovable           optional
	onlyPistonPush      optional
	preventsJumping     optional
	flammable           optional
	rotation            optional
	unwalkable          optional
	unitCube            optional
	displayName         optional
	craftingTable       optional
}

func NewBlockProperties() *BlockProperties {
	return &BlockProperties{}
}

func (p *BlockProperties) DestroyTime(seconds float64) *BlockProperties {
	p.destroyTime.put(seconds)
	return p
}

func (p *BlockProperties) ExplosionResistance(v float64) *BlockProperties {
	p.explosionResistance.put(v)
	return p
}

// Strength sets destroy time and explosion resistance; resistance defaults
// to the destroy time.
func (p *BlockProperties) Strength(destroyTime float64, resistance ...float64) *BlockProperties {
	r := destroyTime
	if len(resistance) > 0 {
		r = resistance[0]
	}
	return p.DestroyTime(destroyTime).ExplosionResistance(r)
}

func (p *BlockProperties) Friction(v float64) *BlockProperties {
	p.friction.put(v)
	return p
}

// Drops sets the loot table the block drops, e.g. "loot_tables/blocks/ore.json".
func (p *BlockProperties) Drops(lootTable string) *BlockProperties {
	p.drops.put(lootTable)
	return p
}

func (p *BlockProperties) LightLevel(emission float64) *BlockProperties {
	p.lightEmission.put(emission)
	return p
}

func (p *BlockProperties) LightAbsorption(level int) *BlockProperties {
	p.lightAbsorption.put(level)
	return p
}

func (p *BlockProperties) Light(absorption int, emission float64) *BlockProperties {
	return p.LightAbsorption(absorption).LightLevel(emission)
}

// MapColor sets a "#rrggbb" color; other values are ignored.
func (p *BlockProperties) MapColor(hex string) *BlockProperties {
	if strings.HasPrefix(hex, "#") {
		p.mapColor.put(hex)
	}
	return p
}

func (p *BlockProperties) BreakOnPush() *BlockProperties {
	p.breakOnPush.put(true)
	return p
}

// Breathability is "solid" or "air".
func (p *BlockProperties) Breathability(v string) *BlockProperties {
	p.breathability.put(v)
	return p
}

func (p *BlockProperties) Immovable() *BlockProperties {
	p.immovable.put(true)
	return p
}

func (p *BlockProperties) OnlyPistonPush() *BlockProperties {
	p.onlyPistonPush.put(true)
	return p
}

func (p *BlockProperties) PreventsJump() *BlockProperties {
	p.preventsJumping.put(true)
	return p
}

func (p *BlockProperties) Flammable(flameOdds, burnOdds int) *BlockProperties {
	obj := jsondoc.NewObject()
	obj.AddProperty("flame_odds", flameOdds)
	obj.AddProperty("burn_odds", burnOdds)
	p.flammable.put(obj)
	return p
}

func (p *BlockProperties) Rotation(x, y, z float64) *BlockProperties {
	p.rotation.put(jsondoc.NewArray(x, y, z))
	return p
}

func (p *BlockProperties) Unwalkable() *BlockProperties {
	p.unwalkable.put(true)
	return p
}

func (p *BlockProperties) UnitCube() *BlockProperties {
	p.unitCube.put(true)
	return p
}

func (p *BlockProperties) DisplayName(name string) *BlockProperties {
	p.displayName.put(name)
	return p
}

func (p *BlockProperties) CraftingTable(description string, gridSize int, tags ...string) *BlockProperties {
	obj := jsondoc.NewObject()
	obj.AddProperty("custom_description", description)
	obj.AddProperty("grid_size", gridSize)
	obj.Add("crafting_tags", jsondoc.NewArray(spread(tags)...))
	p.craftingTable.put(obj)
	return p
}

// addTo writes the set components in a fixed order.
func (p *BlockProperties) addTo(components *jsondoc.Object) {
	for _, c := range []struct {
		name string
		opt  *optional
	}{
		{"minecraft:destroy_time", &p.destroyTime},
		{"minecraft:explosion_resistance", &p.explosionResistance},
		{"minecraft:friction", &p.friction},
		{"minecraft:loot", &p.drops},
		{"minecraft:block_light_absorption", &p.lightAbsorption},
		{"minecraft:block_light_emission", &p.lightEmission},
		{"minecraft:map_color", &p.mapColor},
		{"minecraft:breakonpush", &p.breakOnPush},
		{"minecraft:breathability", &p.breathability},
		{"minecraft:immovable", &p.immovable},
		{"minecraft:onlypistonpush", &p.onlyPistonPush},
		{"minecraft:preventsjumping", &p.preventsJumping},
		{"minecraft:flammable", &p.flammable},
		{"minecraft:rotation", &p.rotation},
		{"minecraft:unwalkable", &p.unwalkable},
		{"minecraft:unit_cube", &p.unitCube},
		{"minecraft:display_name", &p.displayName},
		{"minecraft:crafting_table", &p.craftingTable},
	} {
		c.opt.addTo(components, c.name)
	}
}
