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
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"seehuhn.de/go/fontmerge/charset"
)

// weightToken is the placeholder replaced by the weight name in
// family names, file names and URLs for multi-weight builds.
const weightToken = "Regular"

// Config describes one composite font build.
type Config struct {
	// Family is the family name of the composite font.
	Family string `toml:"family"`

	// Subfamily is the style name, e.g. "Regular" or "Bold".
	Subfamily string `toml:"subfamily"`

	// Output is the path of the font file to write.
	Output string `toml:"output"`

	// CacheDir is the directory for downloaded source fonts.
	CacheDir string `toml:"cache-dir"`

	// TargetRatio is the cap-height to units-per-em ratio all scripts
	// are scaled to.  Zero or negative means "use the ratio of the
	// first enabled script".
	TargetRatio float64 `toml:"target-ratio"`

	// Ascender and Descender give the vertical metrics window of the
	// composite font, in units of the merged font.
	Ascender  int `toml:"ascender"`
	Descender int `toml:"descender"`

	// DropTables lists sfnt tables removed from every input before
	// merging.
	DropTables []string `toml:"drop-tables"`

	// KeepFeatures is the layout feature allow-list applied after the
	// merge.  An absent list disables pruning.
	KeepFeatures []string `toml:"keep-features"`

	// Weights lists the weight names for multi-weight builds.
	Weights []string `toml:"weights"`

	Scripts []*ScriptSpec `toml:"script"`
}

// ScriptSpec describes one script's contribution to the composite
// font.  Values are fixed after configuration loading.
type ScriptSpec struct {
	Name    string `toml:"name"`
	Enabled bool   `toml:"enabled"`

	// Source is the file name of the source font, also used as the
	// cache key.  URL, if set, tells the fetcher where to get it.
	Source string `toml:"source"`
	URL    string `toml:"url"`

	// Ranges lists codepoint ranges in "U+XXXX" or "U+XXXX-YYYY" form.
	Ranges []string `toml:"ranges"`

	// Charset optionally names a charset file whose codepoints are
	// added to the ranges.
	Charset string `toml:"charset"`

	// NoScale exempts the script from cap-height normalization.
	NoScale bool `toml:"no-scale"`

	// Weights restricts the script to the given weights.  An empty
	// list applies to all weights.
	Weights []string `toml:"weights"`
}

// LoadConfig reads and validates a build configuration.
func LoadConfig(fname string) (*Config, error) {
	cfg := &Config{}
	_, err := toml.DecodeFile(fname, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", fname, err)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", fname, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors which would otherwise
// only surface in the middle of a build.
func (cfg *Config) Validate() error {
	if cfg.Family == "" {
		return fmt.Errorf("missing family name")
	}
	if cfg.Output == "" {
		return fmt.Errorf("missing output path")
	}
	if len(cfg.Scripts) == 0 {
		return fmt.Errorf("no scripts configured")
	}
	for _, spec := range cfg.Scripts {
		if spec.Name == "" {
			return fmt.Errorf("script without a name")
		}
		if spec.Source == "" {
			return fmt.Errorf("script %q: missing source font", spec.Name)
		}
		if len(spec.Ranges) == 0 && spec.Charset == "" {
			return fmt.Errorf("script %q: no ranges and no charset",
				spec.Name)
		}
		_, err := charset.ParseRanges(spec.Ranges)
		if err != nil {
			return fmt.Errorf("script %q: %w", spec.Name, err)
		}
	}
	if cfg.Subfamily == "" {
		cfg.Subfamily = "Regular"
	}
	return nil
}

// AppliesTo reports whether the script takes part in a build for the
// given weight.
func (spec *ScriptSpec) AppliesTo(weight string) bool {
	if len(spec.Weights) == 0 {
		return true
	}
	for _, w := range spec.Weights {
		if w == weight {
			return true
		}
	}
	return false
}

// ForWeight returns a copy of the configuration specialized for one
// weight: the weight name replaces the "Regular" token in the family
// name, output path, source file names and URLs, and scripts not
// applicable to the weight are disabled.
func (cfg *Config) ForWeight(weight string) *Config {
	sub := func(s string) string {
		return strings.ReplaceAll(s, weightToken, weight)
	}

	res := *cfg
	res.Family = sub(cfg.Family)
	res.Subfamily = weight
	res.Output = sub(cfg.Output)
	res.Scripts = make([]*ScriptSpec, len(cfg.Scripts))
	for i, spec := range cfg.Scripts {
		s := *spec
		s.Source = sub(spec.Source)
		s.URL = sub(spec.URL)
		s.Enabled = spec.Enabled && spec.AppliesTo(weight)
		res.Scripts[i] = &s
	}
	return &res
}

// resolve turns the script's range and charset specification into a
// concrete codepoint set.
func (spec *ScriptSpec) resolve() (charset.Set, error) {
	set, err := charset.ParseRanges(spec.Ranges)
	if err != nil {
		return nil, err
	}
	if spec.Charset != "" {
		ideographs, err := charset.ReadFile(spec.Charset)
		if err != nil {
			return nil, err
		}
		set = set.Union(ideographs)
	}
	return set, nil
}
