/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package manifest reads the per-recipe config.yml that maps version labels
// to the subfolder holding the conanfile for that version.
//
// A manifest looks like:
//
//	versions:
//	  "1.0":
//	    folder: all
//	  "2.0":
//	    folder: all
package manifest

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"bennypowers.dev/conanx/fs"
)

// FileName is the only manifest file name conanx understands.
const FileName = "config.yml"

var (
	// ErrConfigMissing is returned when a recipe directory has no config.yml.
	ErrConfigMissing = errors.New("config.yml does not exist")
	// ErrConfigParse is returned when config.yml is not valid YAML.
	ErrConfigParse = errors.New("config.yml is not valid YAML")
	// ErrConfigShape is returned when config.yml parses but does not have a
	// versions mapping of {folder: string} entries.
	ErrConfigShape = errors.New("possibly incorrect conan config.yml")
	// ErrConfigUnreadable is returned when config.yml exists but cannot be
	// read, e.g. it is a directory or lacks read permission.
	ErrConfigUnreadable = errors.New("config.yml cannot be read")
)

// Entry is a single version's build instructions.
type Entry struct {
	Folder string
}

// Manifest is a parsed config.yml.
type Manifest struct {
	// Path is the file the manifest was loaded from, if any.
	Path    string
	Entries map[string]Entry
}

// Path returns the manifest location for a recipe directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Exists reports whether dir contains a manifest. Only a definite "not
// found" counts as absent; other stat failures surface from Load instead.
func Exists(fsys fs.FileSystem, dir string) bool {
	_, err := fsys.Stat(Path(dir))
	return !errors.Is(err, iofs.ErrNotExist)
}

// Load reads and parses the manifest in dir.
func Load(fsys fs.FileSystem, dir string) (*Manifest, error) {
	path := Path(dir)
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrConfigMissing, dir)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigUnreadable, path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Parse parses manifest data.
//
// Version labels are taken verbatim from the YAML source, so an unquoted
// 1.0 key is the label "1.0" rather than the number 1.
func Parse(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: missing versions", ErrConfigShape)
	}
	root := deref(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrConfigShape)
	}

	versions := lookup(root, "versions")
	if versions == nil {
		return nil, fmt.Errorf("%w: missing versions", ErrConfigShape)
	}
	if versions.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: versions is not a mapping (line %d)", ErrConfigShape, versions.Line)
	}

	m := &Manifest{Entries: make(map[string]Entry, len(versions.Content)/2)}
	for i := 0; i+1 < len(versions.Content); i += 2 {
		key := deref(versions.Content[i])
		if key.Kind != yaml.ScalarNode || key.ShortTag() == "!!null" {
			return nil, fmt.Errorf("%w: version label on line %d is not a scalar", ErrConfigShape, key.Line)
		}
		if _, ok := m.Entries[key.Value]; ok {
			return nil, fmt.Errorf("%w: version %q defined twice (line %d)", ErrConfigParse, key.Value, key.Line)
		}
		folder, err := folderOf(key.Value, deref(versions.Content[i+1]))
		if err != nil {
			return nil, err
		}
		m.Entries[key.Value] = Entry{Folder: folder}
	}
	return m, nil
}

func folderOf(label string, entry *yaml.Node) (string, error) {
	if entry.Kind != yaml.MappingNode {
		return "", fmt.Errorf("%w: version %q is not a mapping", ErrConfigShape, label)
	}
	folder := lookup(entry, "folder")
	if folder == nil {
		return "", fmt.Errorf("%w: version %q has no folder", ErrConfigShape, label)
	}
	if folder.Kind != yaml.ScalarNode || folder.ShortTag() != "!!str" {
		return "", fmt.Errorf("%w: folder of version %q is not a string", ErrConfigShape, label)
	}
	return folder.Value, nil
}

// lookup finds the value for a string key in a mapping node.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k := deref(mapping.Content[i])
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return deref(mapping.Content[i+1])
		}
	}
	return nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
