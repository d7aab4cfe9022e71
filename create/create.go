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

// Package create drives `conan create` over one recipe directory or a
// pattern-selected set of sibling recipe directories.
//
// A request without a pattern is a direct build: the directory must hold a
// config.yml, the requested version is resolved against it and the build
// tool runs once. A request with a pattern is a sweep: every matching
// subdirectory is processed as a direct build, in listing order, and the
// first failure stops the sweep.
package create

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"bennypowers.dev/conanx/build"
	"bennypowers.dev/conanx/fs"
	"bennypowers.dev/conanx/internal/logging"
	"bennypowers.dev/conanx/internal/output"
	"bennypowers.dev/conanx/manifest"
	"bennypowers.dev/conanx/match"
)

// DefaultMaxDepth caps recursion. A sweep descends exactly one level, since
// derived requests carry no pattern, so the limit is only a safeguard.
const DefaultMaxDepth = 8

// ErrDepthExceeded is returned when processing descends past the limit.
var ErrDepthExceeded = errors.New("maximum recursion depth exceeded")

// Request is one unit of work: a recipe directory, or a directory to sweep
// when Pattern is set.
type Request struct {
	Path    string
	Version string // manifest.Latest or an exact label
	Profile string
	Pattern string // regular expression; empty for a direct build
}

// Descend derives the request for a matched subdirectory.
func (r Request) Descend(path string) Request {
	r.Path = path
	r.Pattern = ""
	return r
}

// Option configures a Creator.
type Option func(*Creator)

// WithReporter sets where progress notifications go.
func WithReporter(r output.Reporter) Option {
	return func(c *Creator) { c.reporter = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Creator) { c.logger = l }
}

// WithDryRun resolves every target but never invokes the build tool.
func WithDryRun(dryRun bool) Option {
	return func(c *Creator) { c.dryRun = dryRun }
}

// WithExclude skips swept directories whose name matches any glob.
func WithExclude(globs []string) Option {
	return func(c *Creator) { c.exclude = globs }
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *Creator) { c.maxDepth = depth }
}

// Creator processes Requests sequentially. It is not safe for concurrent use.
type Creator struct {
	fsys     fs.FileSystem
	invoker  build.Invoker
	reporter output.Reporter
	logger   *log.Logger
	dryRun   bool
	exclude  []string
	maxDepth int

	built []build.Target
}

// New creates a Creator.
func New(fsys fs.FileSystem, invoker build.Invoker, opts ...Option) *Creator {
	c := &Creator{
		fsys:     fsys,
		invoker:  invoker,
		reporter: output.Discard{},
		logger:   logging.Discard(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Built returns the targets built (or planned, in dry-run mode) so far.
func (c *Creator) Built() []build.Target {
	return c.built
}

// Process handles req and everything below it. Builds that completed before
// a failure are not undone.
func (c *Creator) Process(ctx context.Context, req Request) error {
	if err := match.ValidateGlobs(c.exclude); err != nil {
		return err
	}
	return c.process(ctx, req, 0)
}

func (c *Creator) process(ctx context.Context, req Request, depth int) error {
	if depth > c.maxDepth {
		return fmt.Errorf("%w (%d) at %s", ErrDepthExceeded, c.maxDepth, req.Path)
	}
	if req.Pattern != "" {
		return c.sweep(ctx, req, depth)
	}
	return c.createOne(ctx, req)
}

func (c *Creator) sweep(ctx context.Context, req Request, depth int) error {
	children, err := match.Children(c.fsys, req.Path, req.Pattern)
	if err != nil {
		return err
	}

	c.logger.Debug("sweeping", "path", req.Path, "pattern", req.Pattern, "exclude", c.exclude)
	for dir, err := range match.Excluding(children, c.exclude) {
		if err != nil {
			return err
		}
		if err := c.process(ctx, req.Descend(dir), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (c *Creator) createOne(ctx context.Context, req Request) error {
	if !manifest.Exists(c.fsys, req.Path) {
		return fmt.Errorf("%w in %s (only config.yml is supported)", manifest.ErrConfigMissing, req.Path)
	}

	m, err := manifest.Load(c.fsys, req.Path)
	if err != nil {
		return err
	}
	version, folder, err := m.Resolve(req.Version)
	if err != nil {
		return fmt.Errorf("%s: %w", m.Path, err)
	}

	name := filepath.Base(filepath.Clean(req.Path))
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("cannot derive a package name from %q", req.Path)
	}

	target := build.Target{
		Dir:     req.Path,
		Package: name,
		Version: version,
		Folder:  folder,
		Profile: req.Profile,
	}
	c.logger.Debug("resolved",
		"package", target.Package,
		"requested", req.Version,
		"version", version,
		"folder", folder,
		"available", m.Versions(),
	)

	if c.dryRun {
		c.reporter.Planned(target)
		c.built = append(c.built, target)
		return nil
	}

	c.reporter.Creating(target)
	if _, err := c.invoker.Invoke(ctx, target); err != nil {
		if !errors.Is(err, build.ErrBuildFailed) {
			err = fmt.Errorf("%w: %s: %w", build.ErrBuildFailed, target.Reference(), err)
		}
		return err
	}
	c.reporter.Created(target)
	c.built = append(c.built, target)
	return nil
}
