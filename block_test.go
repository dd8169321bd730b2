package addonpack

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

func TestSimpleBlockExperimentalComponents(t *testing.T) {
	components := []Component{
		{Name: "destroy_time", Value: 3},
		{Name: "unit_cube", Value: Fields{}},
		{Name: "loot", Value: "loot_tables/blocks/ore.json"},
	}
	for _, tc := range []struct {
		experimental bool
		unitCube     bool
	}{
		{false, false},
		{true, true},
	} {
		b := NewSimpleBlock("ores/ruby_ore", tc.experimental, true, components, BlockTextures{All: "ruby_ore"})
		doc := render(t, b.ServerData(Scope{Namespace: "ores"}))
		comps := doc.Get(`minecraft:block.components`)
		if got := comps.Get(`minecraft:unit_cube`).Exists(); got != tc.unitCube {
			t.Errorf("experimental=%v: unit_cube present = %v", tc.experimental, got)
		}
		if comps.Get(`minecraft:destroy_time`).Int() != 3 {
			t.Errorf("destroy_time missing: %s", comps.Raw)
		}
		desc := doc.Get(`minecraft:block.description`)
		if desc.Get("identifier").String() != "ores:ruby_ore" {
			t.Errorf("identifier = %s", desc.Get("identifier").Raw)
		}
		if desc.Get("is_experimental").Bool() != tc.experimental {
			t.Errorf("is_experimental = %s", desc.Get("is_experimental").Raw)
		}
		if doc.Get("format_version").String() != "1.12" {
			t.Errorf("format_version = %s", doc.Get("format_version").Raw)
		}
	}
}

func TestSimpleBlockComponentValues(t *testing.T) {
	b := NewSimpleBlock("b", false, true, []Component{
		{Name: "flammable", Value: Fields{{"flame_odds", 5}, {"burn_odds", 20}}},
		{Name: "map_color", Value: map[string]any{"b": 1, "a": 2}},
		{Name: "geometry", Value: []string{"a", "b"}},
	}, BlockTextures{All: "b"})

	comps := render(t, b.ServerData(Scope{})).Get(`minecraft:block.components`)
	if got := compact(comps.Get(`minecraft:flammable`).Raw); got != `{"flame_odds":5,"burn_odds":20}` {
		t.Errorf("flammable = %s", got)
	}
	if got := compact(comps.Get(`minecraft:map_color`).Raw); got != `{"a":2,"b":1}` {
		t.Errorf("map_color = %s", got)
	}
	if got := compact(comps.Get(`minecraft:geometry`).Raw); got != `["a","b"]` {
		t.Errorf("geometry = %s", got)
	}
}

func TestSimpleBlockClientTextures(t *testing.T) {
	for _, tc := range []struct {
		name     string
		textures BlockTextures
		want     string
	}{
		{"single", BlockTextures{All: "stone"}, `"stone"`},
		{"side", BlockTextures{Up: "u", Down: "d", Side: "s"}, `{"up":"u","down":"d","side":"s"}`},
		{"directions", BlockTextures{Up: "u", Down: "d", North: "n", South: "s", East: "e", West: "w"}, `{"up":"u","down":"d","north":"n","south":"s","east":"e","west":"w"}`},
		{"partial directions", BlockTextures{Up: "u", Down: "d", North: "n", East: "e"}, `{"up":"u","down":"d","side":"u"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := NewSimpleBlock("deco/log", false, true, nil, tc.textures)
			blocks := jsondoc.NewObject()
			b.ClientData(Scope{Namespace: "deco"}, blocks)
			entry := render(t, blocks).Get(`deco:log`)
			if got := compact(entry.Get("textures").Raw); got != tc.want {
				t.Errorf("textures = %s, want %s", got, tc.want)
			}
			if entry.Get("sound").String() != "stone" {
				t.Errorf("sound = %s", entry.Get("sound").Raw)
			}
			if entry.Get("blockshape").Exists() {
				t.Errorf("unexpected blockshape")
			}
		})
	}
}

func TestCustomBlockServerData(t *testing.T) {
	props := NewBlockProperties().
		Strength(3, 6).
		Friction(0.4).
		Drops("loot_tables/blocks/ruby.json").
		MapColor("#ff0000").
		Light(0, 0.5).
		Flammable(5, 20).
		DestroyTime(0)
	b := NewCustomBlock("ores/ruby_block", props)
	b.CustomProperties = []Property{
		{Name: "lit", Value: []bool{false, true}},
		{Name: "stage", Value: []int{0, 1, 2}},
	}
	b.PickCollision = NewCollisionBox(16, 8, 16, -8, 0, -8)

	var calls []string
	hook := func(name string, emit bool) Hook {
		return func() *Event {
			calls = append(calls, name)
			if !emit {
				return nil
			}
			return &Event{Name: name + "_event", Condition: "query.is_sneaking"}
		}
	}
	b.Hooks = BlockHooks{
		OnStepOn:          hook("step_on", true),
		OnPlaced:          hook("placed", true),
		OnInteract:        hook("interact", false),
		OnFallOn:          hook("fall_on", true),
		OnPlayerPlacing:   hook("player_placing", true),
		OnPlayerDestroyed: hook("player_destroyed", true),
		OnStepOff:         hook("step_off", true),
	}

	doc := render(t, b.ServerData(Scope{Namespace: "ores"}))
	block := doc.Get(`minecraft:block`)

	wantCalls := []string{"placed", "fall_on", "interact", "player_destroyed", "player_placing", "step_off", "step_on"}
	if len(calls) != len(wantCalls) {
		t.Fatalf("hook calls = %v", calls)
	}
	for i := range wantCalls {
		if calls[i] != wantCalls[i] {
			t.Errorf("hook call %d = %s, want %s", i, calls[i], wantCalls[i])
		}
	}

	if got := compact(block.Get("description.properties").Raw); got != `{"ores:lit":[false,true],"ores:stage":[0,1,2]}` {
		t.Errorf("properties = %s", got)
	}
	if !block.Get("description.register_to_creative_menu").Bool() {
		t.Errorf("creative menu should default to true")
	}

	var keys []string
	block.Get("components").ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	want := []string{
		"minecraft:destroy_time",
		"minecraft:explosion_resistance",
		"minecraft:friction",
		"minecraft:loot",
		"minecraft:block_light_absorption",
		"minecraft:block_light_emission",
		"minecraft:map_color",
		"minecraft:flammable",
		"minecraft:pick_collision",
		"minecraft:on_placed",
		"minecraft:on_fall_on",
		"minecraft:on_player_destroyed",
		"minecraft:on_player_placing",
		"minecraft:on_step_off",
		"minecraft:on_step_on",
	}
	if len(keys) != len(want) {
		t.Fatalf("components = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("component %d = %s, want %s", i, keys[i], want[i])
		}
	}

	comps := block.Get("components")
	if comps.Get(`minecraft:destroy_time`).Raw != "0" {
		t.Errorf("destroy_time = %s, want 0", comps.Get(`minecraft:destroy_time`).Raw)
	}
	if got := compact(comps.Get(`minecraft:pick_collision`).Raw); got != `{"origin":[-8,0,-8],"size":[16,8,16]}` {
		t.Errorf("pick_collision = %s", got)
	}
	if got := compact(comps.Get(`minecraft:on_placed`).Raw); got != `{"target":"self","event":"placed_event","condition":"query.is_sneaking"}` {
		t.Errorf("on_placed = %s", got)
	}
}

func TestBlockPropertiesMapColorNeedsHash(t *testing.T) {
	comps := jsondoc.NewObject()
	NewBlockProperties().MapColor("ff0000").addTo(comps)
	if comps.Has("minecraft:map_color") {
		t.Errorf("map color without # should be ignored")
	}
}

func TestCustomBlockClientHook(t *testing.T) {
	b := NewCustomBlock("lamp", nil)
	blocks := jsondoc.NewObject()
	b.ClientData(Scope{}, blocks)
	if blocks.Len() != 0 {
		t.Fatalf("default client data should be empty")
	}

	b.Client = func(s Scope, blocks *jsondoc.Object) {
		entry := jsondoc.NewObject()
		entry.AddProperty("sound", "glass")
		blocks.Add(s.ID("lamp"), entry)
	}
	b.ClientData(Scope{Namespace: "deco"}, blocks)
	if !blocks.Has("deco:lamp") {
		t.Errorf("client hook not applied")
	}
}

func TestRegisterBlock(t *testing.T) {
	reg := NewRegistry[Block]()
	NewCustomBlock("a", nil).Register(reg)
	NewCustomBlock("a", nil).Register(reg)
	if reg.Len() != 2 {
		t.Errorf("registry should keep duplicates, len = %d", reg.Len())
	}
}

func TestBlockPropertiesZeroValue(t *testing.T) {
	b := NewCustomBlock("x", new(BlockProperties).DestroyTime(2).Friction(0.5))
	doc := render(t, b.ServerData(Scope{}))
	components := doc.Get(`minecraft:block.components`)

	var keys []string
	components.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	if len(keys) != 2 || keys[0] != "minecraft:destroy_time" || keys[1] != "minecraft:friction" {
		t.Fatalf("component keys = %v", keys)
	}
	if v := components.Get(`minecraft:destroy_time`).Float(); v != 2 {
		t.Errorf("destroy_time = %v", v)
	}
	if v := components.Get(`minecraft:friction`).Float(); v != 0.5 {
		t.Errorf("friction = %v", v)
	}
}
