package addonpack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

// OutputRoot is where Save writes a pack named by cfg: <SavePath>/out/<name>.
// Addon packs use the sibling directories "<root> (RP)" and "<root> (BP)".
func OutputRoot(cfg *Config) string {
	base := cfg.SavePath
	if base == "" {
		base = "."
	}
	return filepath.Join(base, "out", cfg.Name.String())
}

// Save writes the pack described by cfg. Existing output directories are
// replaced. A Pack can only be saved once.
func (p *Pack) Save(ctx context.Context, cfg *Config, res *Resources) error {
	if p.saved {
		return ErrPackSaved
	}
	p.saved = true

	if err := cfg.Validate(); err != nil {
		return err
	}
	if res == nil {
		res = &Resources{}
	}

	s := p.scope(cfg)
	root := OutputRoot(cfg)
	kind := p.Classify(res)
	p.logger.Info("saving pack", "type", kind, "root", root, "namespace", s.Namespace)

	switch kind {
	case SkinPack:
		w, err := p.newWriter(root)
		if err != nil {
			return err
		}
		return p.saveSkinPack(ctx, w, cfg, s, res)
	case AddonPack:
		rp, err := p.newWriter(root + " (RP)")
		if err != nil {
			return err
		}
		bp, err := p.newWriter(root + " (BP)")
		if err != nil {
			return err
		}
		for _, w := range []*packWriter{rp, bp} {
			if err := w.copyIcon(cfg, res); err != nil {
				return err
			}
		}
		ref, err := p.saveResourcePack(ctx, rp, cfg, s, res)
		if err != nil {
			return err
		}
		return p.saveBehaviorPack(bp, cfg, s, res, ref)
	default:
		w, err := p.newWriter(root)
		if err != nil {
			return err
		}
		if err := w.copyIcon(cfg, res); err != nil {
			return err
		}
		_, err = p.saveResourcePack(ctx, w, cfg, s, res)
		return err
	}
}

// packWriter writes files below one pack root.
type packWriter struct {
	root   string
	logger *log.Logger
}

// newWriter recreates root as an empty directory.
func (p *Pack) newWriter(root string) (*packWriter, error) {
	if err := os.RemoveAll(root); err != nil {
		return nil, fmt.Errorf("remove %s: %w", root, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", root, err)
	}
	return &packWriter{root: root, logger: p.logger}, nil
}

func (w *packWriter) path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

func (w *packWriter) mkdir(rel string) error {
	return os.MkdirAll(w.path(rel), 0o755)
}

func (w *packWriter) write(rel string, data []byte) error {
	dst := w.path(rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	w.logger.Debug("wrote file", "path", dst)
	return nil
}

// writeDocument writes v with the compact array layout.
func (w *packWriter) writeDocument(rel string, v any, indent int) error {
	b, err := jsondoc.Marshal(v, indent)
	if err != nil {
		return fmt.Errorf("encode %s: %w", rel, err)
	}
	return w.write(rel, b)
}

// writeIndented writes v with every array expanded.
func (w *packWriter) writeIndented(rel string, v any) error {
	b, err := jsondoc.MarshalIndent(v, 2)
	if err != nil {
		return fmt.Errorf("encode %s: %w", rel, err)
	}
	return w.write(rel, b)
}

func (w *packWriter) read(rel string) (string, bool, error) {
	b, err := os.ReadFile(w.path(rel))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (w *packWriter) copy(src, rel string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	dst := w.path(rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", rel, err)
	}
	w.logger.Debug("copied file", "from", src, "path", dst)
	return out.Close()
}

// copyIfExists copies src when it exists and reports whether it did.
func (w *packWriter) copyIfExists(src, rel string) (bool, error) {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.logger.Debug("skipping missing file", "path", src)
			return false, nil
		}
		return false, err
	}
	return true, w.copy(src, rel)
}

func (w *packWriter) copyIcon(cfg *Config, res *Resources) error {
	if cfg.PackIcon == "" {
		return nil
	}
	_, err := w.copyIfExists(filepath.Join(res.Dir, filepath.FromSlash(cfg.PackIcon)), "pack_icon.png")
	return err
}

func (w *packWriter) writeManifest(p *Pack, kind manifestKind, cfg *Config, s Scope, deps ...manifestRef) (manifestRef, error) {
	b, ref, err := buildManifest(p.templates, kind, cfg, s, deps...)
	if err != nil {
		return manifestRef{}, err
	}
	return ref, w.write("manifest.json", b)
}

// saveLangs converts the lang sources to .lang files, then applies the
// declared entries on top.
func (p *Pack) saveLangs(w *packWriter, res *Resources) error {
	if err := w.mkdir("texts"); err != nil {
		return err
	}
	for _, f := range res.Langs {
		b, err := os.ReadFile(f.Abs)
		if err != nil {
			return fmt.Errorf("read lang %s: %w", f.Rel, err)
		}
		entries, err := readLangSource(b)
		if err != nil {
			return fmt.Errorf("lang %s: %w", f.Rel, err)
		}
		name := langFileName(strings.TrimPrefix(f.Rel, "lang/"))
		if err := w.write(path.Join("texts", name), []byte(langData(entries))); err != nil {
			return err
		}
	}
	for _, l := range p.langs {
		rel := path.Join("texts", l.Path+".lang")
		existing, ok, err := w.read(rel)
		if err != nil {
			return err
		}
		if err := w.write(rel, []byte(l.merge(existing, ok))); err != nil {
			return err
		}
	}
	return nil
}

// fetchTextures downloads the remote textures. Failed downloads are logged
// and left nil.
func (p *Pack) fetchTextures(ctx context.Context) ([][]byte, error) {
	results := make([][]byte, len(p.textures))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.fetchConcurrency)
	for i, t := range p.textures {
		i, t := i, t
		g.Go(func() error {
			data, err := p.fetcher.Fetch(gctx, t.URL)
			if err != nil {
				p.logger.Warn("skipping texture", "path", t.Path, "url", t.URL, "err", err)
				return nil
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// texturePath is the textures_list.json form of a texture file path.
func texturePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.TrimSuffix(p, path.Ext(p))
}
