package addonpack

import (
	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

const recipeFormatVersion = "1.12"

// Recipe is anything written to the behavior pack's recipes folder.
type Recipe interface {
	Path() string
	ID() string
	Document(s Scope) *jsondoc.Object
}

// CookingTag names the station a cooking recipe applies to.
type CookingTag string

const (
	Furnace      CookingTag = "furnace"
	Smoker       CookingTag = "smoker"
	BlastFurnace CookingTag = "blast_furnace"
	Campfire     CookingTag = "campfire"
)

// CookingRecipe covers the furnace family; Tags pick the stations.
type CookingRecipe struct {
	path   string
	Tags   []CookingTag
	Input  string
	Output string
}

// NewFurnaceRecipe builds a cooking recipe; no tags means furnace only and
// an empty output means the input item.
func NewFurnaceRecipe(path string, tags []CookingTag, input, output string) *CookingRecipe {
	if len(tags) == 0 {
		tags = []CookingTag{Furnace}
	}
	if output == "" {
		output = input
	}
	return &CookingRecipe{path: path, Tags: tags, Input: input, Output: output}
}

func NewSmokerRecipe(path, input, output string) *CookingRecipe {
	return NewFurnaceRecipe(path, []CookingTag{Smoker}, input, output)
}

func NewBlastFurnaceRecipe(path, input, output string) *CookingRecipe {
	return NewFurnaceRecipe(path, []CookingTag{BlastFurnace}, input, output)
}

func NewCampfireRecipe(path, input, output string) *CookingRecipe {
	return NewFurnaceRecipe(path, []CookingTag{Campfire}, input, output)
}

func (r *CookingRecipe) Path() string { return r.path }
func (r *CookingRecipe) ID() string   { return IDFromPath(r.path) }

func (r *CookingRecipe) Document(s Scope) *jsondoc.Object {
	tags := jsondoc.NewArray()
	for _, t := range r.Tags {
		tags.Add(string(t))
	}

	recipe := jsondoc.NewObject()
	recipe.Add("description", recipeDescription(s, r.ID()))
	recipe.Add("tags", tags)
	recipe.Add("input", itemRef(r.Input))
	recipe.AddProperty("output", r.Output)

	return recipeDocument("minecraft:recipe_furnace", recipe)
}

// RecipeKey maps one pattern character to an item.
type RecipeKey struct {
	Char string
	Item string
}

type ShapedRecipe struct {
	path     string
	Pattern  []string
	Keys     []RecipeKey
	Result   string
	Count    int
	Priority int
}

func NewShapedRecipe(path string, pattern []string, keys []RecipeKey, result string, priority int) *ShapedRecipe {
	return &ShapedRecipe{
		path:     path,
		Pattern:  pattern,
		Keys:     keys,
		Result:   result,
		Count:    1,
		Priority: priority,
	}
}

func (r *ShapedRecipe) Path() string { return r.path }
func (r *ShapedRecipe) ID() string   { return IDFromPath(r.path) }

// Document writes the recipe. The result count is only written when the
// scope asks for it; older packs never carried it.
func (r *ShapedRecipe) Document(s Scope) *jsondoc.Object {
	recipe := jsondoc.NewObject()
	recipe.Add("description", recipeDescription(s, r.ID()))
	recipe.AddProperty("priority", r.Priority)
	recipe.Add("pattern", jsondoc.NewArray(spread(r.Pattern)...))

	keys := jsondoc.NewObject()
	for _, k := range r.Keys {
		keys.Add(k.Char, itemRef(k.Item))
	}
	recipe.Add("keys", keys)

	result := itemRef(r.Result)
	if s.ShapedResultCount {
		result.AddProperty("count", r.Count)
	}
	recipe.Add("result", result)

	return recipeDocument("minecraft:recipe_shaped", recipe)
}

type ShapelessRecipe struct {
	path string
	// Ingredients holds one entry per required unit.
	Ingredients []string
	Result      string
	Count       int
	Priority    int
}

func NewShapelessRecipe(path string, ingredients []string, result string, priority int) *ShapelessRecipe {
	return &ShapelessRecipe{
		path:        path,
		Ingredients: ingredients,
		Result:      result,
		Count:       1,
		Priority:    priority,
	}
}

func (r *ShapelessRecipe) Path() string { return r.path }
func (r *ShapelessRecipe) ID() string   { return IDFromPath(r.path) }

func (r *ShapelessRecipe) Document(s Scope) *jsondoc.Object {
	recipe := jsondoc.NewObject()
	recipe.Add("description", recipeDescription(s, r.ID()))
	recipe.AddProperty("priority", r.Priority)

	ingredients := jsondoc.NewArray()
	for _, in := range countIngredients(r.Ingredients) {
		item := itemRef(in.item)
		item.AddProperty("count", in.count)
		ingredients.Add(item)
	}
	recipe.Add("ingredients", ingredients)

	result := itemRef(r.Result)
	result.AddProperty("count", r.Count)
	recipe.Add("result", result)

	return recipeDocument("minecraft:recipe_shapeless", recipe)
}

type ingredientCount struct {
	item  string
	count int
}

// countIngredients folds the per-unit list into counts, ordered by first
// appearance.
func countIngredients(items []string) []ingredientCount {
	var out []ingredientCount
	index := make(map[string]int)
	for _, it := range items {
		if i, ok := index[it]; ok {
			out[i].count++
			continue
		}
		index[it] = len(out)
		out = append(out, ingredientCount{item: it, count: 1})
	}
	return out
}

// PotionRecipe is a brewing stand mix.
type PotionRecipe struct {
	path    string
	Input   string
	Reagent string
	Output  string
}

func NewPotionRecipe(path, input, reagent, output string) *PotionRecipe {
	return &PotionRecipe{path: path, Input: input, Reagent: reagent, Output: output}
}

func (r *PotionRecipe) Path() string { return r.path }
func (r *PotionRecipe) ID() string   { return IDFromPath(r.path) }

func (r *PotionRecipe) Document(s Scope) *jsondoc.Object {
	recipe := jsondoc.NewObject()
	recipe.Add("description", recipeDescription(s, r.ID()))
	recipe.Add("tags", jsondoc.NewArray("brewing_stand"))
	recipe.AddProperty("input", r.Input)
	recipe.AddProperty("reagent", r.Reagent)
	recipe.AddProperty("output", r.Output)

	return recipeDocument("minecraft:recipe_brewing_mix", recipe)
}

func recipeDocument(key string, recipe *jsondoc.Object) *jsondoc.Object {
	doc := jsondoc.NewObject()
	doc.AddProperty("format_version", recipeFormatVersion)
	doc.Add(key, recipe)
	return doc
}

func recipeDescription(s Scope, id string) *jsondoc.Object {
	desc := jsondoc.NewObject()
	desc.AddProperty("identifier", s.ID(id))
	return desc
}

func itemRef(item string) *jsondoc.Object {
	obj := jsondoc.NewObject()
	obj.AddProperty("item", item)
	obj.AddProperty("data", 0)
	return obj
}
