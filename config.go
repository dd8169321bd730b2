package addonpack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	ErrNoName         = errors.New("pack name is required")
	ErrInvalidName    = errors.New("pack name cannot be used as a directory name")
	ErrInvalidVersion = errors.New("invalid version")
)

// Config describes the pack being written.
type Config struct {
	// Name of the pack; also names the output directory.
	Name        Text `json:"name"`
	Description Text `json:"description,omitempty"`
	// Namespace overrides the pack's namespace for this save.
	Namespace        string   `json:"namespace,omitempty"`
	Version          *Version `json:"version,omitempty"`
	MinEngineVersion *Version `json:"minEngineVersion,omitempty"`
	// PackIcon is relative to the resources directory.
	PackIcon string `json:"packIcon,omitempty"`
	// SavePath is the directory the "out" folder is created in.
	SavePath string `json:"savePath,omitempty"`
	// SkinPackName is the localization name of a skin pack.
	SkinPackName      string `json:"skinPackName,omitempty"`
	ShapedResultCount bool   `json:"shapedResultCount,omitempty"`
}

// Validate checks that the name can be used as the output directory.
func (c *Config) Validate() error {
	name := c.Name.String()
	if strings.TrimSpace(name) == "" {
		return ErrNoName
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Version is a major.minor.patch triple as used in pack manifests.
type Version [3]int

// ParseVersion reads "1.2.3" (an optional leading "v" is allowed). Missing
// minor or patch parts are zero; prereleases are rejected.
func ParseVersion(s string) (Version, error) {
	v := s
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	var out Version
	for i, p := range strings.SplitN(strings.TrimPrefix(semver.Canonical(v), "v"), ".", 3) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		out[i] = n
	}
	return out, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// UnmarshalJSON accepts "1.2.3" or [1, 2, 3].
func (v *Version) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseVersion(s)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	}
	var parts []int
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidVersion, b)
	}
	if len(parts) != 3 {
		return fmt.Errorf("%w: want 3 parts, got %d", ErrInvalidVersion, len(parts))
	}
	copy(v[:], parts)
	return nil
}

func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v[:])
}
