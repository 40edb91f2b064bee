// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/mskilab-org/gOS-sub001/cmd/oncoprint/cli"
	"github.com/mskilab-org/gOS-sub001/lib/codec"
	"github.com/mskilab-org/gOS-sub001/lib/engine"
	"github.com/mskilab-org/gOS-sub001/lib/matrix"
)

type orderParams struct {
	SelectionParams
	Format string `flag:"format" desc:"output format: json or cbor" default:"json"`
	Cells  bool   `flag:"cells" desc:"include every matrix cell in the output"`
}

// orderResult is the output of the order command. CBOR output uses the
// same field names.
type orderResult struct {
	Status      string         `json:"status"`
	EmptyReason string         `json:"empty_reason,omitempty"`
	Mode        string         `json:"mode"`
	Sorted      bool           `json:"sorted"`
	Precision   string         `json:"precision"`
	Rows        []string       `json:"rows"`
	Cols        []string       `json:"cols"`
	Cells       []matrix.Entry `json:"cells,omitempty"`
}

func orderCommand(stdout io.Writer) *cli.Command {
	var params orderParams

	return &cli.Command{
		Name:    "order",
		Summary: "Print the ordered rows and columns of a cohort",
		Description: `Build the matrix for a cohort and print its row and column order.

Rows are features (categorical mode) or attribute keys (numeric mode);
columns are the samples with at least one entry among the rows. With
the memo sort on, rows are ordered by descending sample count and
columns by their presence pattern over the ranked rows.

JSON output is indented for reading. CBOR output uses deterministic
encoding, so identical inputs always produce identical bytes.`,
		Usage: "oncoprint order <cohort.json> [flags]",
		Examples: []cli.Example{
			{
				Description: "Memo-sorted order for two genes",
				Command:     "oncoprint order cohort.json --features TP53,ATM",
			},
			{
				Description: "Input order with every cell, as CBOR",
				Command:     "oncoprint order cohort.json -f TP53,ATM --no-sort --cells --format cbor > order.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("order", &params)
		},
		Run: func(args []string) error {
			return runOrder(args, &params, stdout)
		},
	}
}

func runOrder(args []string, params *orderParams, stdout io.Writer) error {
	if params.Format != "json" && params.Format != "cbor" {
		return cli.Validation("--format must be json or cbor, got %q", params.Format)
	}
	level, err := params.level()
	if err != nil {
		return err
	}
	logger := cli.NewCommandLogger(level).With("command", "order")

	sel, err := params.load(args, logger)
	if err != nil {
		return err
	}
	eng, err := sel.build(sel.config.Layout, nil)
	if err != nil {
		return err
	}
	defer eng.Close()

	result := newOrderResult(eng.Snapshot(), sel)
	if params.Cells {
		result.Cells = eng.Matrix().Entries()
	}

	if params.Format == "cbor" {
		data, err := codec.Marshal(result)
		if err != nil {
			return cli.Internal("encoding order: %w", err)
		}
		if _, err := stdout.Write(data); err != nil {
			return cli.Internal("writing order: %w", err)
		}
		return nil
	}
	if err := cli.WriteJSON(stdout, result); err != nil {
		return cli.Internal("writing order: %w", err)
	}
	return nil
}

func newOrderResult(snapshot engine.Snapshot, sel *selection) orderResult {
	result := orderResult{
		Status:    snapshot.Status.String(),
		Mode:      snapshot.Mode.String(),
		Sorted:    snapshot.SortEnabled,
		Precision: sel.precision.String(),
		Rows:      nonNil(snapshot.OrderedRows),
		Cols:      nonNil(snapshot.OrderedCols),
	}
	if snapshot.Status == engine.StatusEmpty {
		result.EmptyReason = snapshot.EmptyReason.String()
	}
	return result
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

