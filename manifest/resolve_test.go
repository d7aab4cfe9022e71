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

package manifest_test

import (
	"errors"
	"slices"
	"testing"

	"bennypowers.dev/conanx/manifest"
)

func newManifest(folders map[string]string) *manifest.Manifest {
	m := &manifest.Manifest{Entries: make(map[string]manifest.Entry, len(folders))}
	for label, folder := range folders {
		m.Entries[label] = manifest.Entry{Folder: folder}
	}
	return m
}

func TestResolveLatest(t *testing.T) {
	tests := []struct {
		name        string
		folders     map[string]string
		wantVersion string
		wantFolder  string
	}{
		{
			name:        "single version",
			folders:     map[string]string{"1.0": "all"},
			wantVersion: "1.0",
			wantFolder:  "all",
		},
		{
			name:        "two versions",
			folders:     map[string]string{"1.0": "all", "2.0": "all"},
			wantVersion: "2.0",
			wantFolder:  "all",
		},
		{
			// String ordering, not semver: "9.0" > "10.0".
			name:        "lexicographic not numeric",
			folders:     map[string]string{"9.0": "old", "10.0": "new"},
			wantVersion: "9.0",
			wantFolder:  "old",
		},
		{
			name:        "patch level",
			folders:     map[string]string{"1.2.9": "a", "1.2.10": "b", "1.2.1": "c"},
			wantVersion: "1.2.9",
			wantFolder:  "a",
		},
		{
			name:        "non numeric labels",
			folders:     map[string]string{"cci.20230101": "all", "1.0": "legacy"},
			wantVersion: "cci.20230101",
			wantFolder:  "all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManifest(tt.folders)
			for range 5 {
				version, folder, err := m.Resolve(manifest.Latest)
				if err != nil {
					t.Fatalf("Resolve failed: %v", err)
				}
				if version != tt.wantVersion || folder != tt.wantFolder {
					t.Fatalf("Expected (%q, %q), got (%q, %q)", tt.wantVersion, tt.wantFolder, version, folder)
				}
			}

			if want := slices.Max(m.Versions()); want != tt.wantVersion {
				t.Errorf("Expected latest to be the string maximum %q, got %q", want, tt.wantVersion)
			}
		})
	}
}

func TestResolveExact(t *testing.T) {
	m := newManifest(map[string]string{"1.0": "legacy", "2.0": "all", "10.0": "next"})

	for _, label := range []string{"1.0", "2.0", "10.0"} {
		version, folder, err := m.Resolve(label)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", label, err)
		}
		if version != label {
			t.Errorf("Resolve(%q) returned version %q", label, version)
		}
		if folder != m.Entries[label].Folder {
			t.Errorf("Resolve(%q) returned folder %q, want %q", label, folder, m.Entries[label].Folder)
		}
	}

	for _, label := range []string{"3.0", "1", "1.0.0", "Latest", ""} {
		if _, _, err := m.Resolve(label); !errors.Is(err, manifest.ErrVersionNotFound) {
			t.Errorf("Resolve(%q): expected ErrVersionNotFound, got %v", label, err)
		}
	}
}

func TestResolveEmpty(t *testing.T) {
	m := newManifest(nil)

	for _, requested := range []string{manifest.Latest, "1.0"} {
		if _, _, err := m.Resolve(requested); !errors.Is(err, manifest.ErrVersionNotFound) {
			t.Errorf("Resolve(%q) on empty manifest: expected ErrVersionNotFound, got %v", requested, err)
		}
	}
}

func TestVersions(t *testing.T) {
	m := newManifest(map[string]string{"2.0": "a", "10.0": "b", "1.0": "c"})

	got := m.Versions()
	want := []string{"1.0", "10.0", "2.0"}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
