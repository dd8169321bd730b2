package addonpack

import (
	"embed"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

//go:embed templates/*.json
var templateFS embed.FS

// DefaultTemplates holds the bundled manifest templates:
// skin_pack_manifest.json, resource_pack_manifest.json and
// behavior_pack_manifest.json.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

type manifestKind string

const (
	skinManifest     manifestKind = "skin_pack"
	resourceManifest manifestKind = "resource_pack"
	behaviorManifest manifestKind = "behavior_pack"
)

func (k manifestKind) template() string {
	return string(k) + "_manifest.json"
}

// manifestNamespace seeds the name based uuids of generated manifests so
// that rebuilding a pack keeps its identity.
var manifestNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/boardzilla/boardzilla-addonpack"))

func packUUID(s Scope, cfg *Config, kind manifestKind, part string) string {
	name := s.ID(cfg.Name.String()) + "/" + string(kind) + "/" + part
	return uuid.NewSHA1(manifestNamespace, []byte(name)).String()
}

// manifestRef identifies a written manifest for other packs to depend on.
type manifestRef struct {
	UUID    string
	Version string
}

// buildManifest fills in the template for kind. Empty uuids are replaced
// with stable generated ones and deps are appended to "dependencies".
func buildManifest(templates fs.FS, kind manifestKind, cfg *Config, s Scope, deps ...manifestRef) ([]byte, manifestRef, error) {
	raw, err := fs.ReadFile(templates, kind.template())
	if err != nil {
		return nil, manifestRef{}, fmt.Errorf("cannot read manifest template %s: %w", kind.template(), err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, manifestRef{}, fmt.Errorf("manifest template %s: %w", kind.template(), jsondoc.ErrInvalidJSON)
	}
	doc := string(raw)

	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("header.name", cfg.Name.Render())
	if !cfg.Description.IsZero() {
		set("header.description", cfg.Description.Render())
	}
	if cfg.Version != nil {
		set("header.version", *cfg.Version)
		set("modules.0.version", *cfg.Version)
	}
	if cfg.MinEngineVersion != nil {
		set("header.min_engine_version", *cfg.MinEngineVersion)
	}
	if gjson.Get(doc, "header.uuid").String() == "" {
		set("header.uuid", packUUID(s, cfg, kind, "header"))
	}
	for i := range gjson.Get(doc, "modules").Array() {
		p := "modules." + strconv.Itoa(i) + ".uuid"
		if gjson.Get(doc, p).String() == "" {
			set(p, packUUID(s, cfg, kind, "module"+strconv.Itoa(i)))
		}
	}
	for _, d := range deps {
		if err != nil {
			break
		}
		doc, err = sjson.SetRaw(doc, "dependencies.-1", `{"uuid":`+strconv.Quote(d.UUID)+`,"version":`+d.Version+`}`)
	}
	if err != nil {
		return nil, manifestRef{}, fmt.Errorf("cannot edit manifest %s: %w", kind.template(), err)
	}

	ref := manifestRef{
		UUID:    gjson.Get(doc, "header.uuid").String(),
		Version: gjson.Get(doc, "header.version").Raw,
	}
	if ref.Version == "" {
		ref.Version = "[1,0,0]"
	}

	tree, err := jsondoc.Parse([]byte(doc))
	if err != nil {
		return nil, manifestRef{}, err
	}
	out, err := jsondoc.Marshal(tree, 2)
	if err != nil {
		return nil, manifestRef{}, err
	}
	return out, ref, nil
}
