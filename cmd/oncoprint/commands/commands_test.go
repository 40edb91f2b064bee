// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mskilab-org/gOS-sub001/cmd/oncoprint/cli"
	"github.com/mskilab-org/gOS-sub001/lib/codec"
	"github.com/mskilab-org/gOS-sub001/lib/config"
)

const testCohort = `[
	// TP53 only
	{"sample_id": "S0", "summary": "Missense: TP53"},
	{"sample_id": "S1", "summary": "Missense: TP53\nTrunc: ATM"},
	{"sample_id": "S2", "summary": "Amp: EGFR"},
	{"sample_id": "S3", "attributes": {"cnv": {"MYC": 2.5, "TP53": 1}}},
	{"sample_id": 7},
]`

// writeCohort writes the test cohort and returns its path.
func writeCohort(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cohort.jsonc")
	if err := os.WriteFile(path, []byte(testCohort), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
	var stdout, stderr bytes.Buffer
	err := Root(&stdout, &stderr).Execute(args)
	return stdout.String(), err
}

func decodeOrder(t *testing.T, output string) orderResult {
	t.Helper()
	var result orderResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding order output: %v\n%s", err, output)
	}
	return result
}

func TestOrderSorted(t *testing.T) {
	output, err := execute(t, "order", writeCohort(t), "--features", "atm,TP53")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	result := decodeOrder(t, output)

	if result.Status != "ready" || !result.Sorted || result.Precision != "exact" || result.Mode != "categorical" {
		t.Errorf("result = %+v", result)
	}
	if !slices.Equal(result.Rows, []string{"TP53", "ATM"}) {
		t.Errorf("rows = %v, want [TP53 ATM]", result.Rows)
	}
	if !slices.Equal(result.Cols, []string{"S1", "S0"}) {
		t.Errorf("cols = %v, want [S1 S0]", result.Cols)
	}
	if result.Cells != nil {
		t.Errorf("cells present without --cells: %v", result.Cells)
	}
}

func TestOrderNoSortKeepsInputOrder(t *testing.T) {
	output, err := execute(t, "order", writeCohort(t), "-f", "ATM,TP53", "--no-sort")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	result := decodeOrder(t, output)
	if result.Sorted {
		t.Error("sorted = true with --no-sort")
	}
	if !slices.Equal(result.Rows, []string{"ATM", "TP53"}) || !slices.Equal(result.Cols, []string{"S0", "S1"}) {
		t.Errorf("order = %v × %v, want [ATM TP53] × [S0 S1]", result.Rows, result.Cols)
	}
}

func TestOrderCells(t *testing.T) {
	output, err := execute(t, "order", writeCohort(t), "-f", "TP53,ATM", "--cells")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	result := decodeOrder(t, output)
	if len(result.Cells) != 3 {
		t.Fatalf("cells = %d, want 3", len(result.Cells))
	}
	// Entries are sorted by feature, then sample.
	first := result.Cells[0]
	if first.Key.Feature != "ATM" || first.Key.SampleID != "S1" {
		t.Errorf("first cell key = %+v, want ATM × S1", first.Key)
	}
	if len(first.Cell.Alterations) != 1 {
		t.Errorf("ATM × S1 alterations = %v", first.Cell.Alterations)
	}
}

func TestOrderNumeric(t *testing.T) {
	output, err := execute(t, "order", writeCohort(t), "--mode", "numeric", "--attribute", "cnv")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	result := decodeOrder(t, output)
	if result.Mode != "numeric" {
		t.Errorf("mode = %q", result.Mode)
	}
	if len(result.Rows) != 2 || !slices.Contains(result.Rows, "MYC") || !slices.Contains(result.Rows, "TP53") {
		t.Errorf("rows = %v, want MYC and TP53", result.Rows)
	}
	if !slices.Equal(result.Cols, []string{"S3"}) {
		t.Errorf("cols = %v, want [S3]", result.Cols)
	}
}

func TestOrderEmptyResult(t *testing.T) {
	output, err := execute(t, "order", writeCohort(t), "-f", "KRAS")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	result := decodeOrder(t, output)
	if result.Status != "empty" || result.EmptyReason != "no_signal" {
		t.Errorf("status = %q (%q), want empty (no_signal)", result.Status, result.EmptyReason)
	}
	if result.Cols == nil || len(result.Cols) != 0 {
		t.Errorf("cols = %#v, want an empty list", result.Cols)
	}
	if !strings.Contains(output, `"cols": []`) {
		t.Errorf("empty columns not written as []:\n%s", output)
	}
}

func TestOrderCBORIsDeterministic(t *testing.T) {
	path := writeCohort(t)
	args := []string{"order", path, "-f", "TP53,ATM,EGFR", "--cells", "--format", "cbor"}

	first, err := execute(t, args...)
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	second, err := execute(t, args...)
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	if first != second {
		t.Error("CBOR output differs between identical runs")
	}

	var result orderResult
	if err := codec.Unmarshal([]byte(first), &result); err != nil {
		t.Fatalf("decoding CBOR: %v", err)
	}
	if !slices.Equal(result.Rows, []string{"TP53", "ATM", "EGFR"}) {
		t.Errorf("rows = %v", result.Rows)
	}
	if len(result.Cells) != 4 {
		t.Errorf("cells = %d, want 4", len(result.Cells))
	}
}

func TestConfigFile(t *testing.T) {
	directory := t.TempDir()
	configPath := filepath.Join(directory, "oncoprint.yaml")
	content := "sort:\n  enabled: false\n  precision: float64\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := execute(t, "order", writeCohort(t), "-f", "ATM,TP53", "--config", configPath)
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	result := decodeOrder(t, output)
	if result.Sorted || result.Precision != "float64" {
		t.Errorf("sorted = %v, precision = %q; want the config values", result.Sorted, result.Precision)
	}

	output, err = execute(t, "order", writeCohort(t), "-f", "ATM", "-c", configPath, "--precision", "exact")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	if result := decodeOrder(t, output); result.Precision != "exact" {
		t.Errorf("precision = %q, want the flag to override the config", result.Precision)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "oncoprint.yaml")
	if err := os.WriteFile(configPath, []byte("sort:\n  enabled: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cohortPath := writeCohort(t)

	t.Setenv(config.EnvironmentVariable, configPath)
	var stdout, stderr bytes.Buffer
	if err := Root(&stdout, &stderr).Execute([]string{"order", cohortPath, "-f", "TP53"}); err != nil {
		t.Fatalf("order: %v", err)
	}
	if decodeOrder(t, stdout.String()).Sorted {
		t.Error("sorted = true, want the environment config to disable sorting")
	}
}

func TestErrorCategories(t *testing.T) {
	cohortPath := writeCohort(t)
	malformed := filepath.Join(t.TempDir(), "malformed.json")
	if err := os.WriteFile(malformed, []byte(`{"sample_id": "S1"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	badConfig := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(badConfig, []byte("cache:\n  results: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing cohort", []string{"order", filepath.Join(t.TempDir(), "absent.json")}, cli.ExitNotFound},
		{"missing config", []string{"order", cohortPath, "--config", filepath.Join(t.TempDir(), "absent.yaml")}, cli.ExitNotFound},
		{"malformed cohort", []string{"order", malformed}, cli.ExitValidation},
		{"invalid config", []string{"order", cohortPath, "--config", badConfig}, cli.ExitValidation},
		{"no cohort argument", []string{"order"}, cli.ExitValidation},
		{"unknown mode", []string{"order", cohortPath, "--mode", "ordinal"}, cli.ExitValidation},
		{"unknown precision", []string{"order", cohortPath, "--precision", "half"}, cli.ExitValidation},
		{"unknown format", []string{"order", cohortPath, "--format", "xml"}, cli.ExitValidation},
		{"unknown log level", []string{"order", cohortPath, "--log-level", "loud"}, cli.ExitValidation},
		{"negative width", []string{"render", cohortPath, "--width", "-1"}, cli.ExitValidation},
		{"unknown command", []string{"oder"}, cli.ExitValidation},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := execute(t, test.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if code, _ := cli.ExitCode(err); code != test.want {
				t.Errorf("exit code = %d, want %d (error: %v)", code, test.want, err)
			}
		})
	}
}

func TestRenderPNGFitsEveryColumn(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "matrix.png")
	output, err := execute(t, "render", writeCohort(t), "-f", "TP53,ATM", "-o", outputPath)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(output) != outputPath {
		t.Errorf("stdout = %q, want the output path", output)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}

	geometry := config.Default().Layout
	wantWidth := geometry.Margins.Left + geometry.Margins.Right + 2*(geometry.CellWidth.Max+geometry.CellGap)
	wantWidth = max(wantWidth, minimumPNGWidth)
	bounds := decoded.Bounds()
	if float64(bounds.Dx()) != wantWidth || bounds.Dy() != defaultPNGHeight {
		t.Errorf("image = %dx%d, want %vx%d", bounds.Dx(), bounds.Dy(), wantWidth, defaultPNGHeight)
	}
}

func TestRenderPNGUsesOutputDirectory(t *testing.T) {
	directory := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "oncoprint.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  directory: "+directory+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "render", writeCohort(t), "-f", "TP53", "-c", configPath, "--width", "500", "--height", "200")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	file, err := os.Open(filepath.Join(directory, defaultPNGName))
	if err != nil {
		t.Fatalf("default output file: %v", err)
	}
	defer file.Close()
	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	if bounds := decoded.Bounds(); bounds.Dx() != 500 || bounds.Dy() != 200 {
		t.Errorf("image = %dx%d, want the 500x200 viewport", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderANSI(t *testing.T) {
	output, err := execute(t, "render", writeCohort(t), "-f", "TP53,ATM", "--format", "ansi", "--width", "40", "--height", "6")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 6 {
		t.Errorf("lines = %d, want 6:\n%s", len(lines), output)
	}
	// A buffer is not a terminal: no escape sequences.
	if strings.Contains(output, "\x1b[") {
		t.Errorf("output contains escape sequences: %q", output)
	}
	if !strings.Contains(output, "TP53") || !strings.Contains(output, "ATM") {
		t.Errorf("row labels missing:\n%s", output)
	}
}

func TestVersion(t *testing.T) {
	output, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(output, "oncoprint ") {
		t.Errorf("version = %q", output)
	}

	flagOutput, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if flagOutput != output {
		t.Errorf("--version = %q, want %q", flagOutput, output)
	}

	jsonOutput, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(jsonOutput), &info); err != nil {
		t.Fatalf("version --json: %v\n%s", err, jsonOutput)
	}
	if _, ok := info["go"]; !ok {
		t.Errorf("version --json = %v, want a go field", info)
	}
}

func TestRootWithoutCommandPrintsHelp(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	var stdout, stderr bytes.Buffer
	err := Root(&stdout, &stderr).Execute(nil)
	if code, _ := cli.ExitCode(err); code != cli.ExitValidation {
		t.Errorf("exit code = %d, want %d", code, cli.ExitValidation)
	}
	for _, name := range []string{"order", "render", "view", "version"} {
		if !strings.Contains(stderr.String(), name) {
			t.Errorf("help does not list %q:\n%s", name, stderr.String())
		}
	}
}
