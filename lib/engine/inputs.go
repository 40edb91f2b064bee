// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/mskilab-org/gOS-sub001/lib/cohort"
	"github.com/mskilab-org/gOS-sub001/lib/layout"
	"github.com/mskilab-org/gOS-sub001/lib/matrix"
)

// ErrInvalidInputs is wrapped by every Inputs validation failure.
var ErrInvalidInputs = errors.New("invalid engine inputs")

// Inputs is the full external configuration of the engine.
type Inputs struct {
	// Records is the cohort. The engine never mutates records or the
	// slice; callers must not mutate them while the engine holds them.
	Records []*cohort.Record

	Mode matrix.Mode

	// Features is the candidate row set for categorical mode, matched
	// case-insensitively.
	Features []string

	// Attribute names the numeric attribute for numeric mode.
	Attribute string

	SortEnabled bool

	Viewport layout.Viewport

	// ScrollX is the horizontal scroll offset. Negative values clamp
	// to zero.
	ScrollX float64
}

// Validate checks inputs at the boundary, before any work is
// scheduled. Empty cohorts, feature sets and attribute names are valid:
// they produce an empty result, not an error.
func (in Inputs) Validate() error {
	var errs []error
	if !in.Mode.Valid() {
		errs = append(errs, fmt.Errorf("unknown mode %v", in.Mode))
	}
	if err := validateViewport(in.Viewport); err != nil {
		errs = append(errs, err)
	}
	if math.IsNaN(in.ScrollX) || math.IsInf(in.ScrollX, 0) {
		errs = append(errs, fmt.Errorf("scroll offset must be finite, got %v", in.ScrollX))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInputs, errors.Join(errs...))
	}
	return nil
}

func validateViewport(viewport layout.Viewport) error {
	for _, dimension := range []struct {
		name  string
		value float64
	}{
		{"width", viewport.Width},
		{"height", viewport.Height},
	} {
		if math.IsNaN(dimension.value) || math.IsInf(dimension.value, 0) || dimension.value < 0 {
			return fmt.Errorf("viewport %s must be a non-negative number, got %v", dimension.name, dimension.value)
		}
	}
	return nil
}
