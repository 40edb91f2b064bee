// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"image/color"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mskilab-org/gOS-sub001/lib/layout"
	"github.com/mskilab-org/gOS-sub001/lib/matrix"
	"github.com/mskilab-org/gOS-sub001/lib/memosort"
	"github.com/mskilab-org/gOS-sub001/lib/render"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "ONCOPRINT_CONFIG"

// Config is the master configuration.
type Config struct {
	// Layout is the pixel geometry used by raster output.
	Layout GeometryConfig `yaml:"layout"`

	// Terminal is the geometry used by the interactive viewer, in
	// terminal units.
	Terminal GeometryConfig `yaml:"terminal"`

	Matrix   MatrixConfig   `yaml:"matrix"`
	Sort     SortConfig     `yaml:"sort"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Cache    CacheConfig    `yaml:"cache"`
	Palette  PaletteConfig  `yaml:"palette"`
	Output   OutputConfig   `yaml:"output"`
}

// GeometryConfig configures cell sizing and labels for one backend.
type GeometryConfig struct {
	Margins    layout.Margins `yaml:"margins"`
	CellWidth  layout.Band    `yaml:"cell_width"`
	CellHeight layout.Band    `yaml:"cell_height"`
	CellGap    float64        `yaml:"cell_gap"`

	// Buffer widens the virtualized column window on both sides, in
	// the same units as the margins.
	Buffer float64 `yaml:"buffer"`

	// LabelThreshold is the minimum cell width for column labels.
	LabelThreshold float64 `yaml:"label_threshold"`

	// LabelPadding separates labels from the grid.
	LabelPadding float64 `yaml:"label_padding"`
}

// Geometry converts the section into a layout configuration.
func (g GeometryConfig) Geometry() layout.Config {
	return layout.Config{
		Margins:    g.Margins,
		CellWidth:  g.CellWidth,
		CellHeight: g.CellHeight,
		CellGap:    g.CellGap,
	}
}

// MatrixConfig configures the build strategies.
type MatrixConfig struct {
	// CategoricalRowLimit truncates the candidate feature list. Zero
	// means unlimited.
	CategoricalRowLimit int `yaml:"categorical_row_limit"`

	// NumericRowLimit caps the attribute key union.
	// Default: 100
	NumericRowLimit int `yaml:"numeric_row_limit"`
}

// SortConfig configures the memo sort.
type SortConfig struct {
	// Enabled is the initial state of the sort toggle.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Precision is "exact" or "float64".
	// Default: exact
	Precision string `yaml:"precision"`
}

// ScheduleConfig configures the engine's deferred work.
type ScheduleConfig struct {
	// RebuildDelay defers a rebuild after a structural input change so
	// a loading indicator can be shown first. Newer changes restart
	// the delay.
	// Default: 16ms
	RebuildDelay time.Duration `yaml:"rebuild_delay"`

	// FrameInterval coalesces scroll events: at most one visible-range
	// recompute per interval.
	// Default: 16ms
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// CacheConfig sizes the caches.
type CacheConfig struct {
	// Results is the number of builds kept in the result cache.
	// Default: 8
	Results int `yaml:"results"`

	// Records is the number of records whose parsed summaries are
	// kept.
	// Default: 4096
	Records int `yaml:"records"`
}

// PaletteConfig holds colours as "#rrggbb" strings. Empty values keep
// the defaults; category entries are merged over the default map.
type PaletteConfig struct {
	Categories map[string]string `yaml:"categories"`
	NoData     string            `yaml:"no_data"`
	Low        string            `yaml:"low"`
	High       string            `yaml:"high"`
	Label      string            `yaml:"label"`
	Background string            `yaml:"background"`
}

// OutputConfig configures file output.
type OutputConfig struct {
	// Directory receives rendered files when no explicit output path is
	// given. Supports ${VAR:-default} expansion.
	// Default: .
	Directory string `yaml:"directory"`
}

// Default returns the default configuration. Every field has a usable
// value, so a config file only needs the settings it changes.
func Default() *Config {
	pixel := layout.DefaultConfig()
	return &Config{
		Layout: GeometryConfig{
			Margins:        pixel.Margins,
			CellWidth:      pixel.CellWidth,
			CellHeight:     pixel.CellHeight,
			CellGap:        pixel.CellGap,
			Buffer:         50,
			LabelThreshold: 12,
			LabelPadding:   4,
		},
		Terminal: GeometryConfig{
			Margins:        layout.Margins{Top: 2, Right: 0, Bottom: 0, Left: 12},
			CellWidth:      layout.Band{Min: 1, Max: 3},
			CellHeight:     layout.Band{Min: 1, Max: 2},
			CellGap:        0,
			Buffer:         4,
			LabelThreshold: 8,
			LabelPadding:   1,
		},
		Matrix: MatrixConfig{
			CategoricalRowLimit: 0,
			NumericRowLimit:     matrix.DefaultNumericRowLimit,
		},
		Sort: SortConfig{
			Enabled:   true,
			Precision: memosort.PrecisionExact.String(),
		},
		Schedule: ScheduleConfig{
			RebuildDelay:  16 * time.Millisecond,
			FrameInterval: 16 * time.Millisecond,
		},
		Cache: CacheConfig{
			Results: 8,
			Records: 4096,
		},
		Output: OutputConfig{
			Directory: ".",
		},
	}
}

// Load loads configuration from the ONCOPRINT_CONFIG environment
// variable. It fails when the variable is not set; callers that want
// defaults without a file use Default directly.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your oncoprint.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path over the
// defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current
// config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Output.Directory = expandVars(c.Output.Directory, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Precision returns the parsed sort precision.
func (c *Config) Precision() (memosort.Precision, error) {
	return memosort.ParsePrecision(c.Sort.Precision)
}

// RenderPalette merges the palette section over render.DefaultPalette.
func (c *Config) RenderPalette() (render.Palette, error) {
	palette := render.DefaultPalette()
	var errs []error

	colors := []struct {
		field  string
		value  string
		target *color.RGBA
	}{
		{"no_data", c.Palette.NoData, &palette.NoData},
		{"low", c.Palette.Low, &palette.Low},
		{"high", c.Palette.High, &palette.High},
		{"label", c.Palette.Label, &palette.Label},
		{"background", c.Palette.Background, &palette.Background},
	}
	for _, entry := range colors {
		if entry.value == "" {
			continue
		}
		parsed, err := render.ParseHex(entry.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("palette.%s: %w", entry.field, err))
			continue
		}
		*entry.target = parsed
	}

	for _, category := range slices.Sorted(maps.Keys(c.Palette.Categories)) {
		parsed, err := render.ParseHex(c.Palette.Categories[category])
		if err != nil {
			errs = append(errs, fmt.Errorf("palette.categories.%s: %w", category, err))
			continue
		}
		// Keys match parsed categories: lower-case, underscores.
		normalized := strings.Join(strings.Fields(strings.ToLower(category)), "_")
		palette.Categories[normalized] = parsed
	}

	if len(errs) > 0 {
		return render.Palette{}, errors.Join(errs...)
	}
	return palette, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	errs = append(errs, validateGeometry("layout", c.Layout)...)
	errs = append(errs, validateGeometry("terminal", c.Terminal)...)

	if c.Matrix.CategoricalRowLimit < 0 {
		errs = append(errs, fmt.Errorf("matrix.categorical_row_limit must not be negative"))
	}
	if c.Matrix.NumericRowLimit < 0 {
		errs = append(errs, fmt.Errorf("matrix.numeric_row_limit must not be negative"))
	}

	if _, err := c.Precision(); err != nil {
		errs = append(errs, fmt.Errorf("sort.precision: %w", err))
	}

	if c.Schedule.RebuildDelay < 0 {
		errs = append(errs, fmt.Errorf("schedule.rebuild_delay must not be negative"))
	}
	if c.Schedule.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("schedule.frame_interval must be positive"))
	}

	if c.Cache.Results < 0 {
		errs = append(errs, fmt.Errorf("cache.results must not be negative"))
	}
	if c.Cache.Records < 0 {
		errs = append(errs, fmt.Errorf("cache.records must not be negative"))
	}

	if _, err := c.RenderPalette(); err != nil {
		errs = append(errs, err)
	}

	if c.Output.Directory == "" {
		errs = append(errs, fmt.Errorf("output.directory is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateGeometry(section string, g GeometryConfig) []error {
	var errs []error
	margins := []struct {
		name  string
		value float64
	}{
		{"top", g.Margins.Top},
		{"right", g.Margins.Right},
		{"bottom", g.Margins.Bottom},
		{"left", g.Margins.Left},
	}
	for _, margin := range margins {
		if margin.value < 0 {
			errs = append(errs, fmt.Errorf("%s.margins.%s must not be negative", section, margin.name))
		}
	}
	bands := []struct {
		name string
		band layout.Band
	}{
		{"cell_width", g.CellWidth},
		{"cell_height", g.CellHeight},
	}
	for _, entry := range bands {
		if entry.band.Min <= 0 {
			errs = append(errs, fmt.Errorf("%s.%s.min must be positive", section, entry.name))
		}
		if entry.band.Max < entry.band.Min {
			errs = append(errs, fmt.Errorf("%s.%s.max must be at least min", section, entry.name))
		}
	}
	if g.CellGap < 0 {
		errs = append(errs, fmt.Errorf("%s.cell_gap must not be negative", section))
	}
	if g.Buffer < 0 {
		errs = append(errs, fmt.Errorf("%s.buffer must not be negative", section))
	}
	if g.LabelPadding < 0 {
		errs = append(errs, fmt.Errorf("%s.label_padding must not be negative", section))
	}
	return errs
}
