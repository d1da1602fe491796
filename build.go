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

package fontmerge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fontmerge/charset"
	"seehuhn.de/go/fontmerge/fetch"
	"seehuhn.de/go/fontmerge/merge"
	"seehuhn.de/go/fontmerge/prune"
	"seehuhn.de/go/fontmerge/reconcile"
	"seehuhn.de/go/fontmerge/subset"
	"seehuhn.de/go/fontmerge/visual"
)

// ErrNothingToBuild indicates that no enabled script contributed a
// subset, so there is no font to write.
var ErrNothingToBuild = errors.New("no scripts contribute any glyphs")

// ScriptReport collects the diagnostics for one script of a build.
type ScriptReport struct {
	Name string

	// Resolved is the number of codepoints the script's ranges and
	// charset resolve to.  Requested is what remains after removing
	// codepoints already covered by earlier scripts.
	Resolved  int
	Requested int

	// Glyphs is the size of the script's subset, Coverage the
	// fraction of requested codepoints the source font could supply.
	Glyphs   int
	Coverage float64

	// Scale is the cap-height correction factor, 1 if unscaled.
	Scale float64

	// Cached reports whether the source font was already in the
	// cache.  Only set by [DryRun].
	Cached bool

	// Skipped gives the reason the script was left out, or "".
	Skipped string
}

// Report collects the diagnostics of one build.
type Report struct {
	Scripts []*ScriptReport

	Format       reconcile.Format
	MergedGlyphs int
	PrunedGlyphs int // glyphs removed by the pruner
	Output       string
}

// Build runs the whole composition pipeline for one weight and writes
// the resulting font to cfg.Output.  On failure no output is written
// and a previously existing output file is left untouched.
func Build(ctx context.Context, cfg *Config) (*Report, error) {
	report := &Report{Output: cfg.Output}

	subsets, noScale, err := collectSubsets(ctx, cfg, report)
	if err != nil {
		return nil, err
	}
	if len(subsets) == 0 {
		return nil, ErrNothingToBuild
	}

	targetRatio := cfg.TargetRatio
	if targetRatio <= 0 {
		targetRatio = visual.Ratio(subsets[0])
		if targetRatio > 0 {
			tracer().Infof("cap-height ratio %.4f taken from first script", targetRatio)
		} else {
			tracer().Infof("first script has no cap height, scaling disabled")
		}
	}
	active := activeScripts(report)
	for i, font := range subsets {
		sr := active[i]
		sr.Scale = 1
		if noScale[i] || targetRatio <= 0 {
			continue
		}
		res, err := visual.Scale(font, targetRatio)
		if err != nil {
			return nil, fmt.Errorf("script %q: %w", sr.Name, err)
		}
		if res.Applied {
			sr.Scale = res.Scale
			tracer().Debugf("script %q scaled by %.4f", sr.Name, res.Scale)
		}
	}

	report.Format = reconcile.Choose(subsets)
	fonts, err := reconcile.Reconcile(subsets)
	if err != nil {
		return nil, err
	}

	merged, err := merge.Merge(&merge.Plan{
		Fonts:      fonts,
		DropTables: cfg.DropTables,
	})
	if err != nil {
		return nil, err
	}
	report.MergedGlyphs = merged.NumGlyphs()
	tracer().Infof("merged %d scripts into %d glyphs",
		len(fonts), report.MergedGlyphs)

	merged, pruned, err := prune.Prune(merged, cfg.KeepFeatures)
	if err != nil {
		return nil, err
	}
	report.PrunedGlyphs = pruned.GlyphsBefore - pruned.GlyphsAfter

	FixMetrics(merged, cfg.Ascender, cfg.Descender)
	Rename(merged, cfg.Family, cfg.Subfamily)

	err = writeFont(merged, cfg.Output)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// BuildAll runs one build per configured weight.  Without a weight
// table it is equivalent to a single Build.
func BuildAll(ctx context.Context, cfg *Config) ([]*Report, error) {
	weights := cfg.Weights
	if len(weights) == 0 {
		report, err := Build(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return []*Report{report}, nil
	}

	var reports []*Report
	for _, weight := range weights {
		tracer().Infof("building weight %q", weight)
		report, err := Build(ctx, cfg.ForWeight(weight))
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", weight, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// DryRun computes the build report without reading or writing any
// font data: per-script resolved codepoint counts, dedup results,
// source cache status, merge order and the output path.
func DryRun(cfg *Config) (*Report, error) {
	report := &Report{Output: cfg.Output}

	covered := charset.New()
	enabled := 0
	for _, spec := range cfg.Scripts {
		if !spec.Enabled {
			continue
		}
		enabled++

		sr := &ScriptReport{Name: spec.Name, Scale: 1}
		report.Scripts = append(report.Scripts, sr)

		set, err := spec.resolve()
		if err != nil {
			return nil, fmt.Errorf("script %q: %w", spec.Name, err)
		}
		sr.Resolved = set.Len()

		remainder := set.Subtract(covered)
		sr.Requested = remainder.Len()
		if remainder.Len() == 0 {
			sr.Skipped = "all codepoints already covered"
			continue
		}
		// without reading the font, assume full coverage
		covered = covered.Union(remainder)
		sr.Cached = fetch.Stat(cfg.CacheDir, spec.Source)
	}
	if enabled == 0 {
		return nil, ErrNothingToBuild
	}
	return report, nil
}

// collectSubsets runs resolver, dedup, fetch and subsetting for every
// enabled script.  It returns the surviving subsets in script order,
// together with their scale opt-out flags.
func collectSubsets(ctx context.Context, cfg *Config, report *Report) ([]*sfnt.Font, []bool, error) {
	var subsets []*sfnt.Font
	var noScale []bool

	covered := charset.New()
	enabled := 0
	for _, spec := range cfg.Scripts {
		if !spec.Enabled {
			continue
		}
		enabled++

		sr := &ScriptReport{Name: spec.Name}
		report.Scripts = append(report.Scripts, sr)

		set, err := spec.resolve()
		if err != nil {
			return nil, nil, fmt.Errorf("script %q: %w", spec.Name, err)
		}
		sr.Resolved = set.Len()

		remainder := set.Subtract(covered)
		sr.Requested = remainder.Len()
		if remainder.Len() == 0 {
			sr.Skipped = "all codepoints already covered"
			tracer().Infof("script %q: %s", spec.Name, sr.Skipped)
			continue
		}

		source, err := openSource(ctx, cfg, spec)
		if err != nil {
			return nil, nil, fmt.Errorf("script %q: %w", spec.Name, err)
		}

		font, coverage, err := subset.Subset(source, remainder)
		if errors.Is(err, subset.ErrNoMatchingGlyphs) {
			sr.Skipped = "no matching glyphs in source font"
			tracer().Errorf("script %q: %s", spec.Name, sr.Skipped)
			continue
		} else if err != nil {
			return nil, nil, fmt.Errorf("script %q: %w", spec.Name, err)
		}
		sr.Glyphs = font.NumGlyphs()
		sr.Coverage = coverage.Ratio()

		// dedup against what the font actually covers, not against
		// the request
		actual := remainder
		for _, r := range coverage.Missing {
			delete(actual, r)
		}
		covered = covered.Union(actual)

		subsets = append(subsets, font)
		noScale = append(noScale, spec.NoScale)
	}

	if enabled == 0 {
		return nil, nil, ErrNothingToBuild
	}
	return subsets, noScale, nil
}

// activeScripts returns the report entries of scripts which were not
// skipped, aligned with the subset list.
func activeScripts(report *Report) []*ScriptReport {
	var res []*ScriptReport
	for _, sr := range report.Scripts {
		if sr.Skipped == "" {
			res = append(res, sr)
		}
	}
	return res
}

// openSource fetches (or finds in the cache) and parses a script's
// source font.
func openSource(ctx context.Context, cfg *Config, spec *ScriptSpec) (*sfnt.Font, error) {
	fname := filepath.Join(cfg.CacheDir, spec.Source)
	if spec.URL != "" {
		var err error
		fname, err = fetch.Fetch(ctx, cfg.CacheDir, spec.Source, spec.URL)
		if err != nil {
			return nil, err
		}
	}
	return sfnt.ReadFile(fname)
}

// writeFont writes the font atomically: the bytes go to a temporary
// file which is renamed over the target only after a complete write.
func writeFont(font *sfnt.Font, fname string) error {
	dir := filepath.Dir(fname)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(fname)+".*")
	if err != nil {
		return err
	}

	_, err = font.Write(tmp)
	if err2 := tmp.Close(); err == nil {
		err = err2
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return os.Rename(tmp.Name(), fname)
}
