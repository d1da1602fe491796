// seehuhn.de/go/fontmerge - composite fonts from per-script subsets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command fontmerge builds composite fonts from per-script subsets.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"

	"seehuhn.de/go/fontmerge"
	"seehuhn.de/go/fontmerge/charset"
)

func main() {
	commando.
		SetExecutableName("fontmerge").
		SetVersion("v0.1.0").
		SetDescription("Build one composite font from per-script source fonts.")

	commando.
		Register("build").
		SetDescription("Run the composition pipeline and write the font file.").
		SetShortDescription("build the composite font").
		AddFlag("config,c", "build configuration (TOML)", commando.String, "fontmerge.toml").
		AddFlag("weight,w", "build a single weight", commando.String, "-").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runBuildCommand)

	commando.
		Register("dry-run").
		SetDescription("Report resolved codepoints, cache status and merge order without touching any font data.").
		SetShortDescription("preview a build").
		AddFlag("config,c", "build configuration (TOML)", commando.String, "fontmerge.toml").
		AddFlag("weight,w", "preview a single weight", commando.String, "-").
		SetAction(runDryRunCommand)

	commando.
		Register("charset").
		SetDescription("Derive a reference CJK charset file from a Unihan database file.").
		SetShortDescription("derive a charset").
		AddArgument("unihan", "Unihan database file (e.g. Unihan_DictionaryLikeData.txt)", "").
		AddFlag("output,o", "charset file to write", commando.String, "charset.txt").
		SetAction(runCharsetCommand)

	commando.Parse(nil)
}

func runBuildCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagBool(flags["verbose"], "verbose"))

	cfg := loadConfig(flags)
	weight := flagString(flags["weight"], "weight")
	if weight != "" {
		cfg = cfg.ForWeight(weight)
		cfg.Weights = nil
	}

	reports, err := fontmerge.BuildAll(context.Background(), cfg)
	if err != nil {
		fatalf("%v", err)
	}
	for _, report := range reports {
		printReport(report)
		pterm.Success.Printfln("wrote %s", report.Output)
	}
}

func runDryRunCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(false)

	cfg := loadConfig(flags)
	if weight := flagString(flags["weight"], "weight"); weight != "" {
		cfg = cfg.ForWeight(weight)
	}

	report, err := fontmerge.DryRun(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	printDryRun(report)
}

func runCharsetCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(false)

	fname := strings.TrimSpace(args["unihan"].Value)
	if fname == "" {
		fatalf("Unihan database file is required")
	}
	fd, err := os.Open(fname)
	if err != nil {
		fatalf("%v", err)
	}
	defer fd.Close()

	set, err := charset.FromUnihan(fd)
	if err != nil {
		fatalf("%v", err)
	}

	out := flagString(flags["output"], "output")
	if out == "" {
		fatalf("output path is empty")
	}
	err = set.WriteFile(out)
	if err != nil {
		fatalf("%v", err)
	}
	pterm.Success.Printfln("wrote %d codepoints to %s", set.Len(), out)
}

func printReport(report *fontmerge.Report) {
	data := pterm.TableData{
		{"script", "resolved", "requested", "glyphs", "coverage", "scale", ""},
	}
	for _, sr := range report.Scripts {
		data = append(data, []string{
			sr.Name,
			fmt.Sprintf("%d", sr.Resolved),
			fmt.Sprintf("%d", sr.Requested),
			fmt.Sprintf("%d", sr.Glyphs),
			fmt.Sprintf("%.1f%%", 100*sr.Coverage),
			fmt.Sprintf("%.4f", sr.Scale),
			sr.Skipped,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printfln("outline format: %s", report.Format)
	pterm.Printfln("merged glyphs:  %d", report.MergedGlyphs)
	if report.PrunedGlyphs > 0 {
		pterm.Printfln("pruned glyphs:  %d", report.PrunedGlyphs)
	}
}

func printDryRun(report *fontmerge.Report) {
	data := pterm.TableData{
		{"script", "resolved", "requested", "cached", ""},
	}
	for _, sr := range report.Scripts {
		cached := "no"
		if sr.Cached {
			cached = "yes"
		}
		data = append(data, []string{
			sr.Name,
			fmt.Sprintf("%d", sr.Resolved),
			fmt.Sprintf("%d", sr.Requested),
			cached,
			sr.Skipped,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printfln("would write %s", report.Output)
}

func loadConfig(flags map[string]commando.FlagValue) *fontmerge.Config {
	fname := flagString(flags["config"], "config")
	if fname == "" {
		fatalf("configuration file is required")
	}
	cfg, err := fontmerge.LoadConfig(fname)
	if err != nil {
		fatalf("%v", err)
	}
	return cfg
}

func setupTracing(verbose bool) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	level := "Error"
	if verbose {
		level = "Debug"
	}
	conf := testconfig.Conf{
		"tracing.adapter":          "go",
		"trace.fontmerge.pipeline": level,
		"trace.fontmerge.fetch":    level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func flagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "fontmerge: "+format+"\n", args...)
	os.Exit(1)
}
