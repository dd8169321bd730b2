package addonpack

import (
	"path"
)

func (p *Pack) saveBehaviorPack(w *packWriter, cfg *Config, s Scope, res *Resources, rp manifestRef) error {
	if _, err := w.writeManifest(p, behaviorManifest, cfg, s, rp); err != nil {
		return err
	}

	for _, group := range []struct {
		dir   string
		files []File
	}{
		{"recipes", res.Recipes},
		{"loot_tables", res.LootTables},
		{"trading", res.Trading},
	} {
		if len(group.files) == 0 {
			continue
		}
		if err := w.mkdir(group.dir); err != nil {
			return err
		}
		for _, f := range group.files {
			if _, err := w.copyIfExists(f.Abs, f.Rel); err != nil {
				return err
			}
		}
	}

	seen := make(map[string]bool)
	for _, r := range p.allRecipes() {
		rel := path.Join("recipes", r.Path()+".json")
		p.warnDuplicate(seen, rel)
		if err := w.writeDocument(rel, r.Document(s), 2); err != nil {
			return err
		}
	}

	blocks := p.allBlocks()
	if len(blocks) > 0 {
		if err := w.mkdir("blocks"); err != nil {
			return err
		}
	}
	for _, b := range blocks {
		rel := path.Join("blocks", b.Path()+".json")
		p.warnDuplicate(seen, rel)
		if err := w.writeDocument(rel, b.ServerData(s), 2); err != nil {
			return err
		}
	}
	return nil
}

// warnDuplicate logs when two entities share an output file. The later one
// wins.
func (p *Pack) warnDuplicate(seen map[string]bool, rel string) {
	if seen[rel] {
		p.logger.Warn("overwriting output of an earlier entity with the same path", "path", rel)
	}
	seen[rel] = true
}
