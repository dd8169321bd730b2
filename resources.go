package addonpack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// File is a resource on disk. Rel is relative to the resources directory
// and always uses "/".
type File struct {
	Abs string
	Rel string
}

// Resources lists the files found under a project's resources directory.
type Resources struct {
	Dir        string
	Langs      []File
	UI         []File
	Texts      []File
	Textures   []File
	Recipes    []File
	LootTables []File
	Trading    []File
}

// resourcePatterns are matched relative to the resources directory.
var resourcePatterns = []struct {
	pattern string
	list    func(r *Resources) *[]File
}{
	{"lang/**/*.json", func(r *Resources) *[]File { return &r.Langs }},
	{"ui/**/*.json", func(r *Resources) *[]File { return &r.UI }},
	{"texts/**/*.{txt,text}", func(r *Resources) *[]File { return &r.Texts }},
	{"textures/**/*.{png,tga,jpg,jpeg}", func(r *Resources) *[]File { return &r.Textures }},
	{"recipes/**/*.json", func(r *Resources) *[]File { return &r.Recipes }},
	{"loot_tables/**/*.json", func(r *Resources) *[]File { return &r.LootTables }},
	{"trading/**/*.json", func(r *Resources) *[]File { return &r.Trading }},
}

// DiscoverResources collects the resources under dir. A missing directory
// yields empty Resources.
func DiscoverResources(dir string) (*Resources, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	res := &Resources{Dir: abs}
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		return res, nil
	}

	fsys := os.DirFS(abs)
	for _, p := range resourcePatterns {
		matches, err := doublestar.Glob(fsys, p.pattern)
		if err != nil {
			return nil, fmt.Errorf("cannot glob %s: %w", p.pattern, err)
		}
		sort.Strings(matches)
		list := p.list(res)
		for _, m := range matches {
			if info, err := fs.Stat(fsys, m); err != nil || info.IsDir() {
				continue
			}
			*list = append(*list, File{Abs: filepath.Join(abs, filepath.FromSlash(m)), Rel: m})
		}
	}
	return res, nil
}

func (r *Resources) hasBehaviorFiles() bool {
	return r != nil && (len(r.LootTables) > 0 || len(r.Recipes) > 0 || len(r.Trading) > 0)
}
