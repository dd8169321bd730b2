package addonpack

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

const uiDefsPath = "ui/_ui_defs.json"

// textLists are the text resources converted to JSON line lists.
var textLists = map[string]string{
	"splashes.txt":          "splashes",
	"splashes.text":         "splashes",
	"loading_messages.txt":  "loading_messages",
	"loading_messages.text": "loading_messages",
}

func (p *Pack) saveResourcePack(ctx context.Context, w *packWriter, cfg *Config, s Scope, res *Resources) (manifestRef, error) {
	ref, err := w.writeManifest(p, resourceManifest, cfg, s)
	if err != nil {
		return manifestRef{}, err
	}
	if err := p.saveLangs(w, res); err != nil {
		return manifestRef{}, err
	}
	if err := p.saveTextures(ctx, w, res); err != nil {
		return manifestRef{}, err
	}
	if err := p.saveTexts(w, res); err != nil {
		return manifestRef{}, err
	}
	if err := p.saveUI(w, res); err != nil {
		return manifestRef{}, err
	}
	if err := p.saveClientBlocks(w, s); err != nil {
		return manifestRef{}, err
	}
	return ref, nil
}

func (p *Pack) saveTextures(ctx context.Context, w *packWriter, res *Resources) error {
	if err := w.mkdir("textures"); err != nil {
		return err
	}
	list := make([]string, 0, len(res.Textures)+len(p.textures))
	for _, f := range res.Textures {
		if err := w.copy(f.Abs, f.Rel); err != nil {
			return err
		}
		list = append(list, texturePath(f.Rel))
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
		list = append(list, texturePath(t.Path))
	}

	return w.writeIndented("textures/textures_list.json", list)
}

// saveTexts converts splash and loading message text files to JSON.
func (p *Pack) saveTexts(w *packWriter, res *Resources) error {
	for _, f := range res.Texts {
		key, ok := textLists[path.Base(f.Rel)]
		if !ok {
			continue
		}
		b, err := os.ReadFile(f.Abs)
		if err != nil {
			w.logger.Warn("skipping text file", "path", f.Abs, "err", err)
			continue
		}
		lines := splitLines(string(b))
		if len(lines) == 0 {
			continue
		}
		doc := jsondoc.NewObject()
		doc.Add(key, jsondoc.NewArray(spread(lines)...))
		if err := w.writeIndented(key+".json", doc); err != nil {
			return err
		}
	}
	return nil
}

// splitLines splits on CRLF or LF and drops one trailing empty line.
// Packs built by earlier releases split on CRLF only and kept the trailing
// empty entry, so "one\r\ntwo\r\n" used to give ["one", "two", ""].
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (p *Pack) saveUI(w *packWriter, res *Resources) error {
	defs := jsondoc.NewArray()
	for _, f := range res.UI {
		if f.Rel == uiDefsPath {
			continue
		}
		if err := w.copy(f.Abs, f.Rel); err != nil {
			return err
		}
		defs.Add(f.Rel)
	}
	if defs.Len() == 0 {
		return nil
	}
	doc := jsondoc.NewObject()
	doc.Add("ui_defs", defs)
	return w.writeIndented(uiDefsPath, doc)
}

// saveClientBlocks writes blocks.json and terrain_texture.json when the
// pack has blocks.
func (p *Pack) saveClientBlocks(w *packWriter, s Scope) error {
	blocks := p.allBlocks()
	if len(blocks) == 0 {
		return nil
	}
	doc := jsondoc.NewObject()
	doc.Add("format_version", jsondoc.NewArray(1, 1, 0))
	for _, b := range blocks {
		b.ClientData(s, doc)
	}
	if err := w.writeDocument("blocks.json", doc, 2); err != nil {
		return err
	}
	return w.writeDocument("textures/terrain_texture.json", terrainDocument(s, p.terrain), 2)
}
