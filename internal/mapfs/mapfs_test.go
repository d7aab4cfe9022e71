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

package mapfs_test

import (
	"errors"
	"io/fs"
	"testing"

	"bennypowers.dev/conanx/internal/mapfs"
)

func TestListFiles(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddDir("/pkgs/empty", 0755)
	mfs.AddFile("/pkgs/foo/config.yml", "versions: {}\n", 0644)

	got := mfs.ListFiles()
	want := map[string]string{
		"/pkgs/empty":          "directory",
		"/pkgs/foo/config.yml": "file",
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %v", len(want), got)
	}
	for p, kind := range want {
		if got[p] != kind {
			t.Errorf("Expected %s to be %q, got %q", p, kind, got[p])
		}
	}
}

func TestReadFileOnDirectory(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddDir("/pkgs/foo/config.yml", 0755)

	_, err := mfs.ReadFile("/pkgs/foo/config.yml")
	if err == nil {
		t.Fatal("Expected an error reading a directory")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected a non-ErrNotExist error, got %v", err)
	}
}

func TestDeny(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddDir("/pkgs", 0755)
	mfs.Deny("/pkgs")

	if _, err := mfs.ReadDir("/pkgs"); !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Expected ErrPermission, got %v", err)
	}
	if !mfs.Exists("/pkgs") {
		t.Error("Expected denied directory to still exist")
	}
}
