package addonpack

import (
	"errors"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

var ErrPackSaved = errors.New("pack has already been saved")

type PackType int

const (
	ResourcePack PackType = iota
	SkinPack
	AddonPack
)

func (t PackType) String() string {
	switch t {
	case SkinPack:
		return "skin_pack"
	case AddonPack:
		return "addon_pack"
	default:
		return "resource_pack"
	}
}

const defaultFetchConcurrency = 4

// Pack collects the content of one pack and writes it with Save. Content
// is either declared through the Pack methods or registered on Recipes()
// and Blocks(); both end up in the same output.
type Pack struct {
	logger           *log.Logger
	fetcher          Fetcher
	templates        fs.FS
	namespace        string
	fetchConcurrency int

	skins    []*Skin
	textures []*RemoteTexture
	terrain  []*TerrainTexture
	langs    []*Lang
	recipes  []Recipe
	blocks   []Block

	recipeRegistry *Registry[Recipe]
	blockRegistry  *Registry[Block]

	saved bool
}

type Option func(*Pack)

func WithLogger(l *log.Logger) Option {
	return func(p *Pack) { p.logger = l }
}

func WithFetcher(f Fetcher) Option {
	return func(p *Pack) { p.fetcher = f }
}

// WithTemplates replaces the bundled manifest templates.
func WithTemplates(fsys fs.FS) Option {
	return func(p *Pack) { p.templates = fsys }
}

// WithNamespace sets the namespace used unless the Config names one.
func WithNamespace(ns string) Option {
	return func(p *Pack) { p.namespace = ns }
}

func WithFetchConcurrency(n int) Option {
	return func(p *Pack) { p.fetchConcurrency = n }
}

func NewPack(opts ...Option) *Pack {
	p := &Pack{
		fetcher:          &HTTPFetcher{},
		templates:        DefaultTemplates(),
		namespace:        DefaultNamespace,
		fetchConcurrency: defaultFetchConcurrency,
		recipeRegistry:   NewRegistry[Recipe](),
		blockRegistry:    NewRegistry[Block](),
	}
	for _, o := range opts {
		o(p)
	}
	if p.logger == nil {
		p.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "addonpack",
		})
	}
	if p.fetchConcurrency < 1 {
		p.fetchConcurrency = 1
	}
	return p
}

func (p *Pack) Recipes() *Registry[Recipe] {
	return p.recipeRegistry
}

func (p *Pack) Blocks() *Registry[Block] {
	return p.blockRegistry
}

// Skin adds a skin; an empty geometry means the default humanoid model.
// Declaring any skin turns the output into a skin pack.
func (p *Pack) Skin(name, texture, geometry string) {
	p.skins = append(p.skins, NewSkin(name, texture, geometry))
}

// Texture downloads url into path when the pack is saved.
func (p *Pack) Texture(path, url string) {
	p.textures = append(p.textures, &RemoteTexture{Path: path, URL: url})
}

func (p *Pack) TerrainTexture(name, path string) {
	p.terrain = append(p.terrain, &TerrainTexture{Name: name, Path: path})
}

func (p *Pack) TerrainTextureVariants(name string, variants ...TextureVariant) {
	p.terrain = append(p.terrain, &TerrainTexture{Name: name, Variants: variants})
}

// Lang adds entries to texts/<path>.lang.
func (p *Pack) Lang(path string, entries []Translation, replace bool) {
	p.langs = append(p.langs, NewLang(path, entries, replace))
}

// FurnaceRecipe declares a cooking recipe; nil tags means furnace only.
func (p *Pack) FurnaceRecipe(path string, tags []CookingTag, input, output string) {
	p.recipes = append(p.recipes, NewFurnaceRecipe(path, tags, input, output))
}

func (p *Pack) SmokerRecipe(path, input, output string) {
	p.recipes = append(p.recipes, NewSmokerRecipe(path, input, output))
}

func (p *Pack) BlastFurnaceRecipe(path, input, output string) {
	p.recipes = append(p.recipes, NewBlastFurnaceRecipe(path, input, output))
}

func (p *Pack) CampfireRecipe(path, input, output string) {
	p.recipes = append(p.recipes, NewCampfireRecipe(path, input, output))
}

func (p *Pack) ShapelessRecipe(path string, ingredients []string, result string, priority int) {
	p.recipes = append(p.recipes, NewShapelessRecipe(path, ingredients, result, priority))
}

func (p *Pack) ShapedRecipe(path string, pattern []string, keys []RecipeKey, result string, priority int) {
	p.recipes = append(p.recipes, NewShapedRecipe(path, pattern, keys, result, priority))
}

func (p *Pack) PotionRecipe(path, input, reagent, output string) {
	p.recipes = append(p.recipes, NewPotionRecipe(path, input, reagent, output))
}

// Block declares a SimpleBlock. An empty sound means "stone".
func (p *Pack) Block(path string, experimental, creativeMenu bool, components []Component, textures BlockTextures, sound, shape string) *SimpleBlock {
	b := NewSimpleBlock(path, experimental, creativeMenu, components, textures)
	if sound != "" {
		b.Sound = sound
	}
	b.Shape = shape
	p.blocks = append(p.blocks, b)
	return b
}

// Classify picks the layout Save will write. Skins win; behavior files or
// recipes make an addon pack; anything else is a resource pack.
func (p *Pack) Classify(res *Resources) PackType {
	switch {
	case len(p.skins) > 0:
		return SkinPack
	case res.hasBehaviorFiles(), len(p.recipes) > 0, p.recipeRegistry.Len() > 0:
		return AddonPack
	default:
		return ResourcePack
	}
}

func (p *Pack) scope(cfg *Config) Scope {
	ns := cfg.Namespace
	if ns == "" {
		ns = p.namespace
	}
	if ns == "" {
		ns = DefaultNamespace
	}
	return Scope{Namespace: ns, ShapedResultCount: cfg.ShapedResultCount}
}

// allRecipes lists registered recipes before declared ones.
func (p *Pack) allRecipes() []Recipe {
	return append(p.recipeRegistry.All(), p.recipes...)
}

// allBlocks lists declared blocks before registered ones.
func (p *Pack) allBlocks() []Block {
	return append(append([]Block(nil), p.blocks...), p.blockRegistry.All()...)
}
