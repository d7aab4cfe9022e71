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

// Package testutil provides testing utilities for conanx packages.
package testutil

import (
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"bennypowers.dev/conanx/internal/mapfs"
)

// fixturePath locates a directory under testdata, trying parent directories
// since go test runs each package in its own directory.
func fixturePath(t *testing.T, fixtureDir string) string {
	t.Helper()

	possiblePaths := []string{
		filepath.Join("testdata", fixtureDir),
		filepath.Join("..", "testdata", fixtureDir),
		filepath.Join("..", "..", "testdata", fixtureDir),
	}
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Fatalf("Could not find fixtures at %s (tried all paths)", fixtureDir)
	return ""
}

// NewFixtureFS loads a testdata directory into a MapFileSystem rooted at
// rootPath. Directories are added explicitly so empty ones survive.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	src := fixturePath(t, fixtureDir)
	mfs := mapfs.New()

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		virtualPath := filepath.Join(rootPath, relPath)

		if d.IsDir() {
			mfs.AddDir(virtualPath, 0755)
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		mfs.AddFile(virtualPath, string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}

	return mfs
}

// LogTree logs every path in mfs, sorted, so a failing test shows the tree
// it ran against.
func LogTree(t *testing.T, mfs *mapfs.MapFileSystem) {
	t.Helper()

	files := mfs.ListFiles()
	for _, p := range slices.Sorted(maps.Keys(files)) {
		t.Logf("  %s (%s)", p, files[p])
	}
}

// CopyFixture copies a testdata directory into a fresh temporary directory
// and returns its path, for tests that need a real filesystem.
func CopyFixture(t *testing.T, fixtureDir string) string {
	t.Helper()

	src := fixturePath(t, fixtureDir)
	dst := filepath.Join(t.TempDir(), filepath.Base(fixtureDir))
	if err := os.CopyFS(dst, os.DirFS(src)); err != nil {
		t.Fatalf("Failed to copy fixtures from %s: %v", fixtureDir, err)
	}
	return dst
}
