// Package store provides the playlist and privacy backend boundary.
// The core reads an initial item list from it at startup and otherwise
// does not call back into it.
package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/panebox/panebox/internal/domain/media"
)

// Playlist is a named, ordered list of media specs.
type Playlist struct {
	Name    string
	Entries []media.Spec
}

// Privacy holds the user-visible privacy flags persisted alongside
// playlists. Gating (password/OTP) happens outside this core.
type Privacy struct {
	HideTitles    bool `yaml:"hide_titles"`
	RequireUnlock bool `yaml:"require_unlock"`
}

// entry is the loosely-typed on-disk shape of a playlist item. Files are
// hand-edited, so entries are decoded tolerantly.
type entry struct {
	Source string `mapstructure:"source"`
	Title  string `mapstructure:"title"`
	Type   string `mapstructure:"type"`
}

// playlistFile is the on-disk playlist document.
type playlistFile struct {
	Name    string           `yaml:"name"`
	Entries []map[string]any `yaml:"entries"`
}

// FileStore persists playlists as YAML files in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at the given directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the named playlist.
func (s *FileStore) Load(name string) (*Playlist, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read playlist %q", name)
	}

	var doc playlistFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse playlist %q", name)
	}

	specs := make([]media.Spec, 0, len(doc.Entries))
	for i, raw := range doc.Entries {
		var e entry
		if err := mapstructure.Decode(raw, &e); err != nil {
			return nil, errors.Wrapf(err, "playlist %q: bad entry %d", name, i)
		}
		spec := media.Spec{Source: e.Source, Title: e.Title}
		if e.Type != "" {
			t, ok := media.ParseType(e.Type)
			if !ok {
				return nil, errors.Newf("playlist %q: entry %d: unknown media type %q", name, i, e.Type)
			}
			spec.Type = &t
		}
		specs = append(specs, spec)
	}

	displayName := doc.Name
	if displayName == "" {
		displayName = name
	}
	return &Playlist{Name: displayName, Entries: specs}, nil
}

// Save writes the playlist under the given name, creating the directory
// if needed.
func (s *FileStore) Save(name string, p *Playlist) error {
	doc := playlistFile{Name: p.Name}
	for _, spec := range p.Entries {
		e := map[string]any{"source": spec.Source}
		if spec.Title != "" {
			e["title"] = spec.Title
		}
		if spec.Type != nil {
			e["type"] = spec.Type.String()
		}
		doc.Entries = append(doc.Entries, e)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal playlist %q", name)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create playlist directory")
	}
	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write playlist %q", name)
	}
	return nil
}

// List returns the names of all stored playlists, sorted.
func (s *FileStore) List() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read playlist directory")
	}

	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".yaml") {
			continue
		}
		if de.Name() == "privacy.yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(de.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadPrivacy reads the privacy flags. Missing file means all defaults.
func (s *FileStore) LoadPrivacy() (*Privacy, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, "privacy.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Privacy{}, nil
		}
		return nil, errors.Wrap(err, "failed to read privacy flags")
	}

	var p Privacy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "failed to parse privacy flags")
	}
	return &p, nil
}

// SavePrivacy writes the privacy flags.
func (s *FileStore) SavePrivacy(p *Privacy) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "failed to marshal privacy flags")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create playlist directory")
	}
	if err := os.WriteFile(filepath.Join(s.dir, "privacy.yaml"), data, 0644); err != nil {
		return errors.Wrap(err, "failed to write privacy flags")
	}
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".yaml")
}
