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

// Package match selects recipe directories below a root by regular expression.
package match

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"iter"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/conanx/fs"
)

var (
	// ErrPatternInvalid is returned when a pattern does not compile.
	ErrPatternInvalid = errors.New("invalid pattern")
	// ErrDirectoryUnreadable is yielded when the root cannot be listed.
	ErrDirectoryUnreadable = errors.New("directory unreadable")
)

// Children returns the immediate subdirectories of root matched by pattern.
// The unanchored expression is tried against the full path
// filepath.Join(root, name) and then against name alone, so both
// "pkgs/lib" and "^lib" select /pkgs/libA.
//
// The sequence lists root every time it is ranged over. A listing failure
// is yielded once as ErrDirectoryUnreadable and ends the sequence. Order
// follows the underlying ReadDir and is not part of the contract.
func Children(fsys fs.FileSystem, root, pattern string) (iter.Seq2[string, error], error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrPatternInvalid, pattern, err)
	}

	return func(yield func(string, error) bool) {
		entries, err := fsys.ReadDir(root)
		if err != nil {
			yield("", fmt.Errorf("%w: %s: %w", ErrDirectoryUnreadable, root, err))
			return
		}
		for _, entry := range entries {
			path := filepath.Join(root, entry.Name())
			if !isDir(fsys, path, entry) || !matches(re, path, entry.Name()) {
				continue
			}
			if !yield(path, nil) {
				return
			}
		}
	}, nil
}

func matches(re *regexp.Regexp, path, name string) bool {
	return re.MatchString(path) || re.MatchString(name)
}

// isDir reports whether entry is a directory, following symbolic links.
func isDir(fsys fs.FileSystem, path string, entry iofs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&iofs.ModeSymlink == 0 {
		return false
	}
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// ValidateGlobs checks that every exclusion glob is well formed.
func ValidateGlobs(globs []string) error {
	for _, glob := range globs {
		if !doublestar.ValidatePattern(glob) {
			return fmt.Errorf("%w %q: malformed glob", ErrPatternInvalid, glob)
		}
	}
	return nil
}

// Excluding filters seq, dropping paths whose base name matches any of globs.
// Errors pass through unchanged.
func Excluding(seq iter.Seq2[string, error], globs []string) iter.Seq2[string, error] {
	if len(globs) == 0 {
		return seq
	}
	return func(yield func(string, error) bool) {
		for path, err := range seq {
			if err == nil && excluded(filepath.Base(path), globs) {
				continue
			}
			if !yield(path, err) {
				return
			}
		}
	}
}

func excluded(name string, globs []string) bool {
	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, name); ok {
			return true
		}
	}
	return false
}
