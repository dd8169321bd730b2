package addonpack

// ShapedRecipeBuilder assembles a ShapedRecipe row by row:
//
//	addonpack.Shaped("minecraft:torch", 4).
//		Define("C", "minecraft:coal").
//		Define("S", "minecraft:stick").
//		Pattern("C").
//		Pattern("S").
//		Save(pack.Recipes(), "torch_recipe")
type ShapedRecipeBuilder struct {
	result   string
	count    int
	priority int
	rows     []string
	keys     []RecipeKey
}

func Shaped(item string, count int) *ShapedRecipeBuilder {
	return &ShapedRecipeBuilder{result: item, count: count}
}

// Define maps a pattern character to an item. Redefining a character keeps
// its first position.
func (b *ShapedRecipeBuilder) Define(char, item string) *ShapedRecipeBuilder {
	for i := range b.keys {
		if b.keys[i].Char == char {
			b.keys[i].Item = item
			return b
		}
	}
	b.keys = append(b.keys, RecipeKey{Char: char, Item: item})
	return b
}

func (b *ShapedRecipeBuilder) Pattern(row string) *ShapedRecipeBuilder {
	b.rows = append(b.rows, row)
	return b
}

func (b *ShapedRecipeBuilder) Priority(p int) *ShapedRecipeBuilder {
	b.priority = p
	return b
}

func (b *ShapedRecipeBuilder) Build(path string) *ShapedRecipe {
	r := NewShapedRecipe(path, append([]string(nil), b.rows...), append([]RecipeKey(nil), b.keys...), b.result, b.priority)
	r.Count = b.count
	return r
}

func (b *ShapedRecipeBuilder) Save(reg *Registry[Recipe], path string) {
	reg.Register(b.Build(path))
}

type ShapelessRecipeBuilder struct {
	result      string
	count       int
	priority    int
	ingredients []string
}

func Shapeless(item string, count int) *ShapelessRecipeBuilder {
	return &ShapelessRecipeBuilder{result: item, count: count}
}

// Requires adds n units of item.
func (b *ShapelessRecipeBuilder) Requires(item string, n int) *ShapelessRecipeBuilder {
	for i := 0; i < n; i++ {
		b.ingredients = append(b.ingredients, item)
	}
	return b
}

func (b *ShapelessRecipeBuilder) Priority(p int) *ShapelessRecipeBuilder {
	b.priority = p
	return b
}

func (b *ShapelessRecipeBuilder) Build(path string) *ShapelessRecipe {
	r := NewShapelessRecipe(path, append([]string(nil), b.ingredients...), b.result, b.priority)
	r.Count = b.count
	return r
}

func (b *ShapelessRecipeBuilder) Save(reg *Registry[Recipe], path string) {
	reg.Register(b.Build(path))
}

type CookingRecipeBuilder struct {
	input  string
	output string
	tags   []CookingTag
}

func Cooking(input, output string, tags ...CookingTag) *CookingRecipeBuilder {
	return &CookingRecipeBuilder{input: input, output: output, tags: tags}
}

func Smelting(input, output string) *CookingRecipeBuilder {
	return Cooking(input, output, Furnace)
}

func Blasting(input, output string) *CookingRecipeBuilder {
	return Cooking(input, output, BlastFurnace)
}

func Smoking(input, output string) *CookingRecipeBuilder {
	return Cooking(input, output, Smoker)
}

func CampfireCooking(input, output string) *CookingRecipeBuilder {
	return Cooking(input, output, Campfire)
}

func (b *CookingRecipeBuilder) Build(path string) *CookingRecipe {
	return NewFurnaceRecipe(path, append([]CookingTag(nil), b.tags...), b.input, b.output)
}

func (b *CookingRecipeBuilder) Save(reg *Registry[Recipe], path string) {
	reg.Register(b.Build(path))
}

type PotionRecipeBuilder struct {
	input, reagent, output string
}

func Brewing(input, reagent, output string) *PotionRecipeBuilder {
	return &PotionRecipeBuilder{input: input, reagent: reagent, output: output}
}

func (b *PotionRecipeBuilder) Build(path string) *PotionRecipe {
	return NewPotionRecipe(path, b.input, b.reagent, b.output)
}

func (b *PotionRecipeBuilder) Save(reg *Registry[Recipe], path string) {
	reg.Register(b.Build(path))
}
