package internal

import (
	"path/filepath"

	addonpack "github.com/boardzilla/boardzilla-addonpack"
)

type BuildCommand struct {
	Dev        []string `json:"dev"`
	Production []string `json:"prod"`
}

// ProjectV1 is the part of addon.json the devtool cares about.
type ProjectV1 struct {
	Name       addonpack.Text `json:"name"`
	SavePath   string         `json:"savePath"`
	Resources  string         `json:"resources"`
	Build      BuildCommand   `json:"build"`
	WatchPaths []string       `json:"watchPaths"`
}

// OutDir is the directory packs are written to for a project in root.
func (p *ProjectV1) OutDir(root string) string {
	return filepath.Join(root, p.SavePath, "out")
}

func (p *ProjectV1) ResourcesDir(root string) string {
	if p.Resources == "" {
		return filepath.Join(root, "resources")
	}
	return filepath.Join(root, p.Resources)
}
