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

// Package output prints build progress for conanx CLI commands.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"bennypowers.dev/conanx/build"
)

// Palette for status lines. Colors are dropped automatically when the
// destination is not a terminal.
const (
	colorAction  = lipgloss.Color("#22D3EE") // cyan
	colorPackage = lipgloss.Color("#10B981") // green
	colorError   = lipgloss.Color("#EF4444") // red
	colorMuted   = lipgloss.Color("#9CA3AF") // gray
)

// Reporter receives build lifecycle notifications.
type Reporter interface {
	Creating(target build.Target)
	Created(target build.Target)
	// Planned is reported instead of Creating/Created in dry-run mode.
	Planned(target build.Target)
}

// Printer is a Reporter that writes styled lines to a writer.
type Printer struct {
	w io.Writer

	action    lipgloss.Style
	actionDim lipgloss.Style
	pkg       lipgloss.Style
	pkgBold   lipgloss.Style
	muted     lipgloss.Style
	errMarker lipgloss.Style
	errText   lipgloss.Style
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:         w,
		action:    r.NewStyle().Bold(true).Foreground(colorAction),
		actionDim: r.NewStyle().Foreground(colorAction),
		pkg:       r.NewStyle().Foreground(colorPackage),
		pkgBold:   r.NewStyle().Bold(true).Foreground(colorPackage),
		muted:     r.NewStyle().Foreground(colorMuted),
		errMarker: r.NewStyle().Foreground(colorError),
		errText:   r.NewStyle().Bold(true),
	}
}

// Creating prints "creating <ref>".
func (p *Printer) Creating(target build.Target) {
	fmt.Fprintf(p.w, "%s %s\n", p.action.Render("creating"), p.pkg.Render(target.Reference()))
}

// Created prints "<ref> - created".
func (p *Printer) Created(target build.Target) {
	fmt.Fprintf(p.w, "%s - %s\n", p.pkgBold.Render(target.Reference()), p.actionDim.Render("created"))
}

// Planned prints the build that would run.
func (p *Printer) Planned(target build.Target) {
	fmt.Fprintf(p.w, "%s %s %s\n",
		p.action.Render("would create"),
		p.pkg.Render(target.Reference()),
		p.muted.Render("from "+target.RecipeFolder()+" with profile "+target.Profile),
	)
}

// Summary prints the number of packages handled by a run.
func (p *Printer) Summary(count int, dryRun bool) {
	verb := "created"
	if dryRun {
		verb = "planned"
	}
	noun := "packages"
	if count == 1 {
		noun = "package"
	}
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf("%d %s %s", count, noun, verb)))
}

// Error prints "ERROR: <message>".
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.w, "%s: %s\n", p.errMarker.Render("ERROR"), p.errText.Render(err.Error()))
}

// Output copies captured build tool output verbatim.
func (p *Printer) Output(data []byte) {
	if len(data) == 0 {
		return
	}
	_, _ = p.w.Write(data)
	if data[len(data)-1] != '\n' {
		fmt.Fprintln(p.w)
	}
}

// Discard is a Reporter that prints nothing.
type Discard struct{}

func (Discard) Creating(build.Target) {}
func (Discard) Created(build.Target)  {}
func (Discard) Planned(build.Target)  {}
