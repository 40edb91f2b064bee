// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mskilab-org/gOS-sub001/cmd/oncoprint/cli"
	"github.com/mskilab-org/gOS-sub001/lib/cohort"
	"github.com/mskilab-org/gOS-sub001/lib/config"
	"github.com/mskilab-org/gOS-sub001/lib/engine"
	"github.com/mskilab-org/gOS-sub001/lib/matrix"
	"github.com/mskilab-org/gOS-sub001/lib/memosort"
	"github.com/mskilab-org/gOS-sub001/lib/render"
	"github.com/mskilab-org/gOS-sub001/lib/resultcache"
)

// SelectionParams are the flags shared by every command that builds a
// matrix.
type SelectionParams struct {
	Config    string   `flag:"config,c" desc:"configuration file (default: $ONCOPRINT_CONFIG, then built-in defaults)"`
	Mode      string   `flag:"mode,m" desc:"matrix mode: categorical or numeric" default:"categorical"`
	Features  []string `flag:"features,f" desc:"candidate features for categorical mode, comma-separated"`
	Attribute string   `flag:"attribute,a" desc:"numeric attribute for numeric mode"`
	NoSort    bool     `flag:"no-sort" desc:"keep input order instead of the memo sort"`
	Precision string   `flag:"precision" desc:"column score precision: exact or float64 (default: sort.precision from the config)"`
	LogLevel  string   `flag:"log-level" desc:"log level: debug, info, warn or error" default:"warn"`
}

// selection is a loaded cohort plus everything needed to build it.
type selection struct {
	path      string
	config    *config.Config
	cohort    *cohort.Cohort
	inputs    engine.Inputs
	precision memosort.Precision
	palette   render.Palette
	logger    *slog.Logger
}

func (params *SelectionParams) level() (slog.Level, error) {
	return cli.ParseLevel(params.LogLevel)
}

// load resolves the configuration, reads the cohort named by the single
// positional argument and assembles the engine inputs. The viewport is
// left zero for the caller to set.
func (params *SelectionParams) load(args []string, logger *slog.Logger) (*selection, error) {
	if len(args) != 1 {
		return nil, cli.Validation("expected one cohort file argument, got %d", len(args))
	}

	mode, err := matrix.ParseMode(params.Mode)
	if err != nil {
		return nil, cli.Validation("--mode: %w", err)
	}

	cfg, err := loadConfig(params.Config)
	if err != nil {
		return nil, err
	}

	precisionText := cfg.Sort.Precision
	if params.Precision != "" {
		precisionText = params.Precision
	}
	precision, err := memosort.ParsePrecision(precisionText)
	if err != nil {
		return nil, cli.Validation("--precision: %w", err)
	}

	palette, err := cfg.RenderPalette()
	if err != nil {
		return nil, cli.Validation("config: %w", err)
	}

	loaded, err := loadCohort(args[0])
	if err != nil {
		return nil, err
	}
	if loaded.Skipped > 0 {
		logger.Warn("skipped malformed cohort entries", "path", args[0], "count", loaded.Skipped)
	}
	logger.Debug("loaded cohort", "path", args[0], "records", len(loaded.Records))

	return &selection{
		path:   args[0],
		config: cfg,
		cohort: loaded,
		inputs: engine.Inputs{
			Records:     loaded.Records,
			Mode:        mode,
			Features:    params.Features,
			Attribute:   params.Attribute,
			SortEnabled: cfg.Sort.Enabled && !params.NoSort,
		},
		precision: precision,
		palette:   palette,
		logger:    logger,
	}, nil
}

// loadConfig reads an explicit --config file, then $ONCOPRINT_CONFIG,
// and otherwise uses the defaults.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("config file: %w", err)
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config: %w", err)
	}
	return cfg, nil
}

func loadCohort(path string) (*cohort.Cohort, error) {
	loaded, err := cohort.LoadFile(path)
	switch {
	case err == nil:
		return loaded, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, cli.NotFound("cohort file: %w", err)
	case errors.Is(err, cohort.ErrMalformedCohort):
		return nil, cli.Validation("%w", err)
	default:
		return nil, cli.Internal("%w", err)
	}
}

// engineOptions returns engine options for geometry with no scheduling
// delays. Interactive callers set the delays and callbacks afterwards.
func (s *selection) engineOptions(geometry config.GeometryConfig) engine.Options {
	return engine.Options{
		Logger:              s.logger,
		Geometry:            geometry.Geometry(),
		Buffer:              geometry.Buffer,
		Precision:           s.precision,
		CategoricalRowLimit: s.config.Matrix.CategoricalRowLimit,
		NumericRowLimit:     s.config.Matrix.NumericRowLimit,
		Cache:               resultcache.New(s.config.Cache.Results),
		Parser:              cohort.NewParser(s.config.Cache.Records),
	}
}

// renderer returns a renderer with the configured palette and the label
// settings of geometry.
func (s *selection) renderer(geometry config.GeometryConfig) *render.Renderer {
	return &render.Renderer{
		Palette:        s.palette,
		LabelThreshold: geometry.LabelThreshold,
		LabelPadding:   geometry.LabelPadding,
	}
}

// build runs one synchronous build at viewport and returns the engine.
// The caller closes it.
func (s *selection) build(geometry config.GeometryConfig, viewportInputs func(*engine.Inputs)) (*engine.Engine, error) {
	eng := engine.New(s.engineOptions(geometry))
	inputs := s.inputs
	if viewportInputs != nil {
		viewportInputs(&inputs)
	}
	if err := eng.SetInputs(inputs); err != nil {
		eng.Close()
		return nil, cli.Validation("%w", err)
	}
	snapshot := eng.Snapshot()
	s.logger.Info("built oncoprint",
		"status", snapshot.Status.String(),
		"rows", len(snapshot.OrderedRows),
		"columns", len(snapshot.OrderedCols),
		"sorted", snapshot.SortEnabled,
	)
	return eng, nil
}
