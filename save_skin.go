package addonpack

import (
	"context"
	"path"
)

func (p *Pack) saveSkinPack(ctx context.Context, w *packWriter, cfg *Config, s Scope, res *Resources) error {
	if _, err := w.writeManifest(p, skinManifest, cfg, s); err != nil {
		return err
	}
	if err := p.saveLangs(w, res); err != nil {
		return err
	}

	// skin textures live next to skins.json
	for _, f := range res.Textures {
		if err := w.copy(f.Abs, path.Base(f.Rel)); err != nil {
			return err
		}
	}
	fetched, err := p.fetchTextures(ctx)
	if err != nil {
		return err
	}
	for i, t := range p.textures {
		if fetched[i] == nil {
			continue
		}
		if err := w.write(t.Path, fetched[i]); err != nil {
			return err
		}
	}

	return w.writeDocument("skins.json", skinsDocument(p.skins, cfg.SkinPackName), 2)
}
