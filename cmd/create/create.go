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

// Package create provides the create command for conanx.
package create

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/conanx/build"
	"bennypowers.dev/conanx/create"
	"bennypowers.dev/conanx/fs"
	"bennypowers.dev/conanx/internal/logging"
	"bennypowers.dev/conanx/internal/output"
	"bennypowers.dev/conanx/manifest"
)

// Cmd is the create cobra command, a wrapper on `conan create` that builds
// one or more recipes at a chosen version.
var Cmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Run conan create for a recipe, or for every recipe matching a pattern",
	Long: `Run conan create for the recipe at <path>.

The recipe directory must contain a config.yml whose versions mapping names
the subfolder holding the conanfile for each version. With --pattern, <path>
is a directory of recipes and every subdirectory matching the regular
expression is created in turn. The first failure stops the run.

--version latest picks the greatest version label by plain string
comparison, so "9.0" is newer than "10.0".`,
	Example: `  # Build the newest version of a recipe
  conanx create recipes/zlib

  # Build a specific version with a profile
  conanx create recipes/zlib --version 1.2.13 --profile linux-gcc

  # Build every recipe whose name starts with "lib"
  conanx create recipes --pattern '^lib'

  # Show what would be built without running conan
  conanx create recipes --pattern '.' --exclude 'test-*' --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("version", manifest.Latest, "Desired version, or \"latest\"")
	Cmd.Flags().String("profile", "default", "Profile passed to conan create")
	Cmd.Flags().String("pattern", "", "Regular expression selecting recipe directories under <path>")
	Cmd.Flags().BoolP("verbose", "v", false, "Log resolution details and stream build output")
	Cmd.Flags().String("tool", build.DefaultTool, "Build tool executable")
	Cmd.Flags().Bool("dry-run", false, "Resolve recipes without running the build tool")
	Cmd.Flags().StringArray("exclude", nil, "Glob of recipe directory names to skip during a pattern sweep (can be repeated)")

	_ = viper.BindPFlag("version", Cmd.Flags().Lookup("version"))
	_ = viper.BindPFlag("profile", Cmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("pattern", Cmd.Flags().Lookup("pattern"))
	_ = viper.BindPFlag("verbose", Cmd.Flags().Lookup("verbose"))
	_ = viper.BindPFlag("tool", Cmd.Flags().Lookup("tool"))
	_ = viper.BindPFlag("dry-run", Cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("exclude", Cmd.Flags().Lookup("exclude"))
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	verbose := viper.GetBool("verbose")
	dryRun := viper.GetBool("dry-run")
	logger := logging.New(cmd.ErrOrStderr(), verbose)
	printer := output.NewPrinter(cmd.OutOrStdout())

	invoker := &build.Conan{Tool: viper.GetString("tool")}
	if verbose {
		invoker.Stream = cmd.ErrOrStderr()
	}

	creator := create.New(fs.NewOSFileSystem(), invoker,
		create.WithReporter(printer),
		create.WithLogger(logger),
		create.WithDryRun(dryRun),
		create.WithExclude(viper.GetStringSlice("exclude")),
	)

	req := create.Request{
		Path:    path,
		Version: viper.GetString("version"),
		Profile: viper.GetString("profile"),
		Pattern: viper.GetString("pattern"),
	}
	logger.Debug("create", "path", req.Path, "version", req.Version, "profile", req.Profile, "pattern", req.Pattern)

	if err := creator.Process(cmd.Context(), req); err != nil {
		return err
	}
	if req.Pattern != "" {
		printer.Summary(len(creator.Built()), dryRun)
	}
	return nil
}
