package orchestrator

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ErrThemeNotFound is returned when a selector has no manifest for the
// requested theme or variant.
var ErrThemeNotFound = errors.New("orchestrator: theme not found")

// ManifestSelector selects themes from an in-memory set of go-theme manifests.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes the manifests by name. The first manifest is
// selected when a caller asks for a variant without naming a theme.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{manifests: map[string]*theme.Manifest{}}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if manifest.Name == "" {
			return nil, fmt.Errorf("orchestrator: theme manifest without name")
		}
		if _, exists := s.manifests[manifest.Name]; exists {
			return nil, fmt.Errorf("orchestrator: duplicate theme %q", manifest.Name)
		}
		s.manifests[manifest.Name] = manifest
		if s.fallback == "" {
			s.fallback = manifest.Name
		}
	}
	return s, nil
}

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrThemeNotFound, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Names lists the indexed themes in lexical order.
func (s *ManifestSelector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type manifestFile struct {
	Name     string                  `yaml:"name"`
	Version  string                  `yaml:"version"`
	Tokens   map[string]string       `yaml:"tokens"`
	Partials map[string]string       `yaml:"templates"`
	Assets   assetsFile              `yaml:"assets"`
	Variants map[string]variantEntry `yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantEntry struct {
	Tokens   map[string]string `yaml:"tokens"`
	Partials map[string]string `yaml:"templates"`
	Assets   assetsFile        `yaml:"assets"`
}

// ParseThemeManifest decodes a YAML or JSON theme manifest.
func ParseThemeManifest(raw []byte) (*theme.Manifest, error) {
	var file manifestFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("orchestrator: decode theme manifest: %w", err)
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, fmt.Errorf("orchestrator: theme manifest without name")
	}
	manifest := &theme.Manifest{
		Name:      file.Name,
		Version:   file.Version,
		Tokens:    file.Tokens,
		Templates: file.Partials,
		Assets:    theme.Assets{Prefix: file.Assets.Prefix, Files: file.Assets.Files},
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, v := range file.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    v.Tokens,
				Templates: v.Partials,
				Assets:    theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// LoadThemeManifests reads every .yaml, .yml and .json manifest directly
// under dir.
func LoadThemeManifests(fsys fs.FS, dir string) (*ManifestSelector, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read themes %s: %w", dir, err)
	}
	var manifests []*theme.Manifest
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		name := path.Join(dir, entry.Name())
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: read %s: %w", name, err)
		}
		manifest, err := ParseThemeManifest(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		manifests = append(manifests, manifest)
	}
	return NewManifestSelector(manifests...)
}
