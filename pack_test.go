package addonpack

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

func newTestPack(opts ...Option) *Pack {
	return NewPack(append([]Option{WithLogger(log.New(io.Discard))}, opts...)...)
}

func readFile(t *testing.T, parts ...string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(parts...))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func exists(parts ...string) bool {
	_, err := os.Stat(filepath.Join(parts...))
	return err == nil
}

func TestClassify(t *testing.T) {
	p := newTestPack()
	res := &Resources{}
	if got := p.Classify(res); got != ResourcePack {
		t.Errorf("empty pack = %s, want resource_pack", got)
	}
	p.Block("b", false, true, nil, BlockTextures{All: "b"}, "", "")
	if got := p.Classify(res); got != ResourcePack {
		t.Errorf("blocks only = %s, want resource_pack", got)
	}

	p.Recipes().Register(NewPotionRecipe("p", "a", "b", "c"))
	if got := p.Classify(res); got != AddonPack {
		t.Errorf("one recipe = %s, want addon_pack", got)
	}

	q := newTestPack()
	q.SmokerRecipe("beef", "minecraft:beef", "minecraft:cooked_beef")
	if got := q.Classify(nil); got != AddonPack {
		t.Errorf("declared recipe = %s, want addon_pack", got)
	}

	r := newTestPack()
	if got := r.Classify(&Resources{Trading: []File{{Rel: "trading/a.json"}}}); got != AddonPack {
		t.Errorf("trading file = %s, want addon_pack", got)
	}

	p.Skin("Steve", "steve.png", "")
	if got := p.Classify(res); got != SkinPack {
		t.Errorf("with skin = %s, want skin_pack", got)
	}
}

func TestLangMerge(t *testing.T) {
	for _, tc := range []struct {
		replace bool
		want    string
	}{
		{false, "a=1\nb=2"},
		{true, "b=2"},
	} {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"resources/lang/en_us.json": `{"a": "1"}`})
		res, err := DiscoverResources(filepath.Join(dir, "resources"))
		if err != nil {
			t.Fatal(err)
		}

		p := newTestPack()
		p.Lang("en_US", []Translation{{"b", "2"}}, tc.replace)
		cfg := &Config{Name: Plain("Langs"), SavePath: dir}
		if err := p.Save(context.Background(), cfg, res); err != nil {
			t.Fatal(err)
		}
		if got := readFile(t, OutputRoot(cfg), "texts", "en_US.lang"); got != tc.want {
			t.Errorf("replace=%v: lang = %q, want %q", tc.replace, got, tc.want)
		}
	}
}

func TestLangSourceOrderAndName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"lang/pt_br.json": `{"z": "last?", "a": "first?", "m": "x=y"}`})
	res, err := DiscoverResources(dir)
	if err != nil {
		t.Fatal(err)
	}
	p := newTestPack()
	cfg := &Config{Name: Plain("Order"), SavePath: dir}
	if err := p.Save(context.Background(), cfg, res); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, OutputRoot(cfg), "texts", "pt_BR.lang"); got != "z=last?\na=first?\nm=x=y" {
		t.Errorf("lang = %q", got)
	}
}

func TestSaveShapedRecipe(t *testing.T) {
	dir := t.TempDir()
	p := newTestPack()
	Shaped("minecraft:torch", 1).
		Define("C", "minecraft:coal").
		Pattern("C").
		Save(p.Recipes(), "torch_recipe")

	cfg := &Config{Name: Plain("Torches"), SavePath: dir}
	if err := p.Save(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}

	root := OutputRoot(cfg)
	if exists(root) {
		t.Errorf("addon pack should not create %s", root)
	}
	recipe := gjson.Parse(readFile(t, root+" (BP)", "recipes", "torch_recipe.json"))
	shaped := recipe.Get(`minecraft:recipe_shaped`)
	if got := compact(shaped.Get("pattern").Raw); got != `["C"]` {
		t.Errorf("pattern = %s", got)
	}
	if got := compact(shaped.Get("keys.C").Raw); got != `{"item":"minecraft:coal","data":0}` {
		t.Errorf("keys.C = %s", got)
	}

	rp := gjson.Parse(readFile(t, root+" (RP)", "manifest.json"))
	bp := gjson.Parse(readFile(t, root+" (BP)", "manifest.json"))
	if rp.Get("modules.0.type").String() != "resources" || bp.Get("modules.0.type").String() != "data" {
		t.Errorf("wrong manifest templates: rp=%s bp=%s", rp.Get("modules").Raw, bp.Get("modules").Raw)
	}
	if dep := bp.Get("dependencies.0.uuid").String(); dep == "" || dep != rp.Get("header.uuid").String() {
		t.Errorf("behavior pack dependency = %q, want resource pack uuid %q", dep, rp.Get("header.uuid").String())
	}
}

func TestSaveBehaviorPack(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"res/recipes/copied.json":          `{"copied": true}`,
		"res/loot_tables/blocks/ruby.json": `{"pools": []}`,
		"res/pack_icon.png":                "icon",
	})
	res, err := DiscoverResources(filepath.Join(dir, "res"))
	if err != nil {
		t.Fatal(err)
	}
	res.Trading = append(res.Trading, File{Abs: filepath.Join(dir, "res", "trading", "gone.json"), Rel: "trading/gone.json"})

	p := newTestPack()
	p.FurnaceRecipe("smelt/ruby", nil, "ores:ruby_ore", "ores:ruby")
	p.Recipes().Register(NewPotionRecipe("smelt/ruby", "a", "b", "c"))
	p.Block("ruby_ore", false, true, []Component{{Name: "destroy_time", Value: 3}}, BlockTextures{All: "ruby_ore"}, "", "")
	NewCustomBlock("deco/ruby_block", NewBlockProperties().DestroyTime(5)).Register(p.Blocks())

	cfg := &Config{Name: Plain("Ruby"), Namespace: "ores", SavePath: dir, PackIcon: "pack_icon.png"}
	if err := p.Save(context.Background(), cfg, res); err != nil {
		t.Fatal(err)
	}
	bp := OutputRoot(cfg) + " (BP)"
	rp := OutputRoot(cfg) + " (RP)"

	if got := readFile(t, bp, "recipes", "copied.json"); got != `{"copied": true}` {
		t.Errorf("copied recipe = %q", got)
	}
	if !exists(bp, "loot_tables", "blocks", "ruby.json") {
		t.Errorf("loot table not copied")
	}
	if exists(bp, "trading", "gone.json") {
		t.Errorf("missing trading file should be skipped")
	}
	// the declared recipe is written after the registered one
	if !gjson.Parse(readFile(t, bp, "recipes", "smelt", "ruby.json")).Get(`minecraft:recipe_furnace`).Exists() {
		t.Errorf("declared recipe should overwrite registered recipe with the same path")
	}
	ore := gjson.Parse(readFile(t, bp, "blocks", "ruby_ore.json"))
	if ore.Get(`minecraft:block.description.identifier`).String() != "ores:ruby_ore" {
		t.Errorf("block = %s", ore.Raw)
	}
	if !exists(bp, "blocks", "deco", "ruby_block.json") {
		t.Errorf("registered block not written")
	}
	for _, root := range []string{rp, bp} {
		if got := readFile(t, root, "pack_icon.png"); got != "icon" {
			t.Errorf("%s: pack icon = %q", root, got)
		}
	}
	blocks := readFile(t, rp, "blocks.json")
	if !strings.HasPrefix(blocks, "{\n  \"format_version\": [1, 1, 0],\n") {
		t.Errorf("blocks.json = %s", blocks)
	}
	if gjson.Get(blocks, `ores:ruby_ore.textures`).String() != "ruby_ore" {
		t.Errorf("blocks.json = %s", blocks)
	}
}

func TestSaveBlockFilesLayout(t *testing.T) {
	dir := t.TempDir()
	p := newTestPack()
	p.SmokerRecipe("smoke/ruby", "minecraft:ruby_raw", "minecraft:ruby")
	p.TerrainTexture("ruby", "textures/blocks/ruby")
	p.Block("custom/ruby", false, true, []Component{{Name: "destroy_time", Value: 3}}, BlockTextures{All: "ruby"}, "", "")

	cfg := &Config{Name: Plain("Layout"), SavePath: dir}
	if err := p.Save(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}
	rp := OutputRoot(cfg) + " (RP)"
	bp := OutputRoot(cfg) + " (BP)"

	for _, tc := range []struct {
		path []string
		want string
	}{
		{[]string{rp, "blocks.json"}, `{
  "format_version": [1, 1, 0],
  "minecraft:ruby": {
    "textures": "ruby",
    "sound": "stone"
  }
}`},
		{[]string{rp, "textures", "terrain_texture.json"}, `{
  "resource_pack_name": "minecraft",
  "texture_name": "atlas.terrain",
  "padding": 8,
  "num_mip_levels": 4,
  "texture_data": {
    "ruby": {
      "textures": "textures/blocks/ruby"
    }
  }
}`},
		{[]string{bp, "blocks", "custom", "ruby.json"}, `{
  "format_version": "1.12",
  "minecraft:block": {
    "description": {
      "identifier": "minecraft:ruby",
      "is_experimental": false,
      "register_to_creative_menu": true
    },
    "components": {
      "minecraft:destroy_time": 3
    }
  }
}`},
	} {
		if got := readFile(t, tc.path...); got != tc.want {
			t.Errorf("%s =\n%s\nwant\n%s", filepath.Join(tc.path...), got, tc.want)
		}
	}
}

func TestSaveResourcePack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"res/textures/blocks/ruby.png":   "png",
		"res/ui/hud_screen.json":         `{}`,
		"res/texts/splashes.txt":         "one\r\ntwo\r\n",
		"res/texts/loading_messages.txt": "",
	})
	res, err := DiscoverResources(filepath.Join(dir, "res"))
	if err != nil {
		t.Fatal(err)
	}

	p := newTestPack(WithFetcher(&HTTPFetcher{Client: srv.Client()}), WithFetchConcurrency(2))
	p.Texture("textures/items/missing.png", srv.URL+"/missing.png")
	p.Texture("textures/items/ok.png", srv.URL+"/ok.png")
	p.TerrainTexture("ruby", "textures/blocks/ruby")
	p.TerrainTextureVariants("grass", TextureVariant{Path: "textures/blocks/grass1", Weight: 3}, TextureVariant{Path: "textures/blocks/grass2"})
	p.Block("deco/ruby", false, true, nil, BlockTextures{All: "ruby"}, "glass", "")

	cfg := &Config{Name: Styled(Segment{Text: "Gems", Color: "aqua"}), SavePath: dir, Version: &Version{2, 0, 1}}
	if err := p.Save(context.Background(), cfg, res); err != nil {
		t.Fatal(err)
	}
	root := OutputRoot(cfg)

	if got := readFile(t, root, "textures", "items", "ok.png"); got != "remote" {
		t.Errorf("remote texture = %q", got)
	}
	if exists(root, "textures", "items", "missing.png") {
		t.Errorf("failed fetch should not be written")
	}
	list := readFile(t, root, "textures", "textures_list.json")
	if want := "[\n  \"textures/blocks/ruby\",\n  \"textures/items/ok\"\n]"; list != want {
		t.Errorf("textures_list.json = %q, want %q", list, want)
	}

	if got := readFile(t, root, "ui", "_ui_defs.json"); got != "{\n  \"ui_defs\": [\n    \"ui/hud_screen.json\"\n  ]\n}" {
		t.Errorf("_ui_defs.json = %q", got)
	}
	if got := compact(readFile(t, root, "splashes.json")); got != `{"splashes":["one","two"]}` {
		t.Errorf("splashes.json = %s", got)
	}
	if exists(root, "loading_messages.json") {
		t.Errorf("empty loading messages should not be written")
	}

	terrain := gjson.Parse(readFile(t, root, "textures", "terrain_texture.json"))
	if terrain.Get("resource_pack_name").String() != DefaultNamespace {
		t.Errorf("terrain = %s", terrain.Raw)
	}
	if terrain.Get("texture_data.ruby.textures").String() != "textures/blocks/ruby" {
		t.Errorf("terrain ruby = %s", terrain.Get("texture_data.ruby").Raw)
	}
	if got := compact(terrain.Get("texture_data.grass.textures.variants").Raw); got != `[{"path":"textures/blocks/grass1","weight":3},{"path":"textures/blocks/grass2"}]` {
		t.Errorf("terrain grass = %s", got)
	}
	if gjson.Get(readFile(t, root, "blocks.json"), `minecraft:ruby.sound`).String() != "glass" {
		t.Errorf("block sound not written")
	}

	manifest := readFile(t, root, "manifest.json")
	m := gjson.Parse(manifest)
	if m.Get("header.name").String() != "§bGems§r" {
		t.Errorf("manifest name = %q", m.Get("header.name").String())
	}
	if !strings.Contains(manifest, `"version": [2, 0, 1]`) {
		t.Errorf("manifest version not compacted:\n%s", manifest)
	}
	if m.Get("modules.0.version").Raw != "[2, 0, 1]" {
		t.Errorf("module version = %s", m.Get("modules.0.version").Raw)
	}
	if exists(root, "blocks") {
		t.Errorf("resource pack should not carry server block files")
	}
}

func TestSaveSkinPack(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"res/textures/skins/steve.png": "skin",
		"res/pack_icon.png":            "icon",
	})
	res, err := DiscoverResources(filepath.Join(dir, "res"))
	if err != nil {
		t.Fatal(err)
	}

	p := newTestPack()
	p.Skin("Steve", "steve.png", "")
	p.Skin("Alex", "alex.png", "geometry.humanoid.customSlim")
	cfg := &Config{Name: Plain("Skins"), SavePath: dir, PackIcon: "pack_icon.png", SkinPackName: "my_skins"}
	if err := p.Save(context.Background(), cfg, res); err != nil {
		t.Fatal(err)
	}
	root := OutputRoot(cfg)

	if got := readFile(t, root, "steve.png"); got != "skin" {
		t.Errorf("skin texture = %q", got)
	}
	if exists(root, "pack_icon.png") {
		t.Errorf("skin packs do not get a pack icon")
	}
	skins := gjson.Parse(readFile(t, root, "skins.json"))
	if got := compact(skins.Get("skins.0").Raw); got != `{"localization_name":"Steve","geometry":"geometry.humanoid.custom","texture":"steve.png","type":"free"}` {
		t.Errorf("skin = %s", got)
	}
	if skins.Get("skins.1.geometry").String() != "geometry.humanoid.customSlim" {
		t.Errorf("skin geometry = %s", skins.Get("skins.1").Raw)
	}
	if skins.Get("serialize_name").String() != "my_skins" || skins.Get("localization_name").String() != "my_skins" {
		t.Errorf("skins.json = %s", skins.Raw)
	}
	if gjson.Parse(readFile(t, root, "manifest.json")).Get("modules.0.type").String() != "skin_pack" {
		t.Errorf("wrong manifest template")
	}
}

func TestSaveReplacesOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Name: Plain("Fresh"), SavePath: dir}
	writeFiles(t, OutputRoot(cfg), map[string]string{"stale.txt": "old"})

	if err := newTestPack().Save(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}
	if exists(OutputRoot(cfg), "stale.txt") {
		t.Errorf("output directory was not recreated")
	}
	if !exists(OutputRoot(cfg), "manifest.json") {
		t.Errorf("manifest missing")
	}
}

func TestSaveOnce(t *testing.T) {
	p := newTestPack()
	cfg := &Config{Name: Plain("Once"), SavePath: t.TempDir()}
	if err := p.Save(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(context.Background(), cfg, nil); !errors.Is(err, ErrPackSaved) {
		t.Errorf("second save err = %v, want ErrPackSaved", err)
	}
}

func TestSaveMissingTemplate(t *testing.T) {
	p := newTestPack(WithTemplates(os.DirFS(t.TempDir())))
	cfg := &Config{Name: Plain("Broken"), SavePath: t.TempDir()}
	if err := p.Save(context.Background(), cfg, nil); err == nil {
		t.Errorf("expected an error for a missing manifest template")
	}
}

func TestSaveProject(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"addon.json": `{
			"name": "Project Pack",
			"namespace": "proj",
			"version": "1.2.3",
			"resources": "assets",
			"build": {"dev": ["go run ./pack"]}
		}`,
		"assets/recipes/extra.json": `{}`,
	})

	project, err := LoadProject(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(project.Build.Dev) != 1 || project.Namespace != "proj" {
		t.Errorf("project = %+v", project)
	}

	p := newTestPack()
	p.PotionRecipe("brew", "a", "b", "c")
	if err := p.SaveProject(context.Background(), dir); err != nil {
		t.Fatal(err)
	}
	bp := filepath.Join(dir, "out", "Project Pack (BP)")
	if !exists(bp, "recipes", "extra.json") {
		t.Errorf("resources from the project resources dir not copied")
	}
	brew := gjson.Parse(readFile(t, bp, "recipes", "brew.json"))
	if brew.Get(`minecraft:recipe_brewing_mix.description.identifier`).String() != "proj:brew" {
		t.Errorf("namespace not applied: %s", brew.Raw)
	}
	if gjson.Parse(readFile(t, bp, "manifest.json")).Get("header.version").Raw != "[1, 2, 3]" {
		t.Errorf("version not applied")
	}
}

func TestSplitLines(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"one", []string{"one"}},
		{"one\r\ntwo\r\n", []string{"one", "two"}},
		{"one\ntwo", []string{"one", "two"}},
		{"one\r\n\r\n", []string{"one", ""}},
	} {
		got := splitLines(tc.in)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") || len(got) != len(tc.want) {
			t.Errorf("splitLines(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
