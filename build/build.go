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

// Package build runs the external `conan create` command for a resolved recipe.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
)

// DefaultTool is the build tool looked up on PATH when none is configured.
const DefaultTool = "conan"

// ErrBuildFailed is returned when the build tool cannot be started or exits
// non-zero.
var ErrBuildFailed = errors.New("build failed")

// Target is a fully resolved package build.
type Target struct {
	Dir     string // recipe directory holding config.yml
	Package string
	Version string
	Folder  string // subfolder of Dir holding the conanfile
	Profile string
}

// Reference returns the package reference passed to the build tool,
// e.g. "zlib/1.3@".
func (t Target) Reference() string {
	return fmt.Sprintf("%s/%s@", t.Package, t.Version)
}

// RecipeFolder returns the directory passed to the build tool.
func (t Target) RecipeFolder() string {
	return filepath.Join(t.Dir, t.Folder)
}

// Result is the outcome of a finished build.
type Result struct {
	Output []byte // combined stdout and stderr
}

// Invoker runs one build and blocks until it finishes.
type Invoker interface {
	Invoke(ctx context.Context, target Target) (Result, error)
}

// Args returns the build tool arguments for target.
func Args(target Target) []string {
	return []string{
		"create",
		target.RecipeFolder(),
		target.Reference(),
		"-pr=" + target.Profile,
	}
}

// Conan invokes the conan CLI (or a compatible tool) as a child process.
type Conan struct {
	// Tool is the executable name or path. Defaults to DefaultTool.
	Tool string
	// Stream, when set, receives build output as it is produced.
	Stream io.Writer
}

// Invoke implements Invoker.
func (c *Conan) Invoke(ctx context.Context, target Target) (Result, error) {
	tool := c.Tool
	if tool == "" {
		tool = DefaultTool
	}

	var buf bytes.Buffer
	var out io.Writer = &buf
	if c.Stream != nil {
		out = io.MultiWriter(&buf, c.Stream)
	}

	cmd := exec.CommandContext(ctx, tool, Args(target)...)
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	result := Result{Output: buf.Bytes()}
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return result, &Error{
			Target:   target,
			ExitCode: exitCode,
			Output:   result.Output,
			Err:      err,
		}
	}
	return result, nil
}

// Error describes a failed build. It matches ErrBuildFailed with errors.Is.
type Error struct {
	Target   Target
	ExitCode int // -1 when the process never started
	Output   []byte
	Err      error
}

func (e *Error) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s: %s: exit status %d", ErrBuildFailed, e.Target.Reference(), e.ExitCode)
	}
	return fmt.Sprintf("%s: %s: %v", ErrBuildFailed, e.Target.Reference(), e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrBuildFailed, e.Err}
}
