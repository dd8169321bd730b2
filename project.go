package addonpack

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ProjectFile is the name of the project file in a project root.
const ProjectFile = "addon.json"

const defaultResourcesDir = "resources"

// BuildCommands are the commands the devtool runs to produce the pack.
type BuildCommands struct {
	Dev  []string `json:"dev"`
	Prod []string `json:"prod"`
}

// Project is the content of addon.json:
//
//	{
//	  "name": [{"text": "Ores", "color": "gold"}, " pack"],
//	  "description": "More ores",
//	  "namespace": "ores",
//	  "version": "1.0.0",
//	  "packIcon": "pack_icon.png",
//	  "resources": "resources",
//	  "build": {"dev": ["go run ./pack"], "prod": ["go run ./pack"]},
//	  "watchPaths": ["pack"]
//	}
type Project struct {
	Config
	Resources  string        `json:"resources,omitempty"`
	Build      BuildCommands `json:"build"`
	WatchPaths []string      `json:"watchPaths,omitempty"`
}

// LoadProject reads the project file in root.
func LoadProject(root string) (*Project, error) {
	f, err := os.Open(filepath.Join(root, ProjectFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	project := &Project{}
	if err := json.NewDecoder(f).Decode(project); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ProjectFile, err)
	}
	if project.Resources == "" {
		project.Resources = defaultResourcesDir
	}
	return project, nil
}

// ResourcesDir is the absolute resources directory of a project in root.
func (p *Project) ResourcesDir(root string) string {
	if filepath.IsAbs(p.Resources) {
		return p.Resources
	}
	return filepath.Join(root, p.Resources)
}

// SaveProject loads the project in root, discovers its resources and saves
// the pack relative to root.
func (p *Pack) SaveProject(ctx context.Context, root string) error {
	project, err := LoadProject(root)
	if err != nil {
		return err
	}
	res, err := DiscoverResources(project.ResourcesDir(root))
	if err != nil {
		return err
	}
	cfg := project.Config
	if !filepath.IsAbs(cfg.SavePath) {
		cfg.SavePath = filepath.Join(root, cfg.SavePath)
	}
	return p.Save(ctx, &cfg, res)
}
