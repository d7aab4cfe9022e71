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

package manifest

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Latest selects the greatest version label.
const Latest = "latest"

// ErrVersionNotFound is returned when no manifest entry satisfies a request.
var ErrVersionNotFound = errors.New("version not found in config.yml")

// Resolve picks the version label and build folder for a requested version.
//
// Latest picks the greatest label under plain string ordering. This is not
// semantic versioning: "10.0" sorts below "2.0".
func (m *Manifest) Resolve(requested string) (version, folder string, err error) {
	if requested == Latest {
		found := false
		for label := range m.Entries {
			if !found || label > version {
				version = label
				found = true
			}
		}
		if !found {
			return "", "", fmt.Errorf("%w: %s (no versions defined)", ErrVersionNotFound, requested)
		}
		return version, m.Entries[version].Folder, nil
	}

	entry, ok := m.Entries[requested]
	if !ok {
		return "", "", fmt.Errorf("%w: %s (available: %s)",
			ErrVersionNotFound, requested, strings.Join(m.Versions(), ", "))
	}
	return requested, entry.Folder, nil
}

// Versions returns every version label in ascending string order.
func (m *Manifest) Versions() []string {
	return slices.Sorted(maps.Keys(m.Entries))
}
