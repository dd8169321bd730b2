// Package addonpack declares Bedrock add-on content (blocks, recipes,
// textures, skins and translations) and writes it out as resource, behavior
// or skin packs.
package addonpack

import "strings"

// DefaultNamespace prefixes every emitted identifier unless the pack or its
// config names another one.
const DefaultNamespace = "minecraft"

// Scope carries the per-save settings every entity needs while lowering
// itself into documents.
type Scope struct {
	Namespace string
	// ShapedResultCount writes the result count of shaped recipes. Off by
	// default to match packs generated by earlier releases.
	ShapedResultCount bool
}

// ID joins the namespace and id as "<namespace>:<id>".
func (s Scope) ID(id string) string {
	ns := s.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	return ns + ":" + id
}

// IDFromPath returns the final segment of a "/" separated path, or
// "unknown" if there is none.
func IDFromPath(path string) string {
	id := path[strings.LastIndex(path, "/")+1:]
	if id == "" {
		return "unknown"
	}
	return id
}
