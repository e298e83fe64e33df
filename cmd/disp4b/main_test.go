package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/disp4b/internal/config"
	"github.com/san-kum/disp4b/internal/scan"
	"github.com/san-kum/disp4b/internal/storage"
)

func TestParsePoints(t *testing.T) {
	q, err := parsePoints("0,0,0; 1,0,0; 0.5,0.5,0; 0, 0, 2.5")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if q[3].Z != 2.5 || q[2].X != 0.5 {
		t.Errorf("unexpected points %v", q)
	}

	bad := []string{
		"0,0,0;1,0,0;0,1,0",
		"0,0,0;1,0,0;0,1,0;0,0",
		"0,0,0;1,0,0;0,1,0;a,0,0",
		"0,0,0;1,0,0;0,1,0;NaN,0,0",
	}
	for _, s := range bad {
		if _, err := parsePoints(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func newFlagCmd(t *testing.T) *cobra.Command {
	t.Helper()
	preset, configFile, triplets = "", "", ""
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&triplets, "triplets", "", "")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "")
	return cmd
}

func TestResolveConfig(t *testing.T) {
	cmd := newFlagCmd(t)
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Dispersion.Triplets != "chained" {
		t.Errorf("expected chained triplets, got %s", cfg.Dispersion.Triplets)
	}

	cmd = newFlagCmd(t)
	preset = "unit"
	if err := cmd.Flags().Parse([]string{"--triplets", "symmetric", "--samples", "9"}); err != nil {
		t.Fatal(err)
	}
	cfg, err = resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Coefficient.Provider != "fixed" {
		t.Errorf("expected preset provider, got %s", cfg.Coefficient.Provider)
	}
	if cfg.Dispersion.Triplets != "symmetric" || cfg.Scan.Samples != 9 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if config.Presets["unit"].Dispersion.Triplets != "chained" {
		t.Error("preset was modified")
	}

	cmd = newFlagCmd(t)
	preset = "nope"
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestResolveConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := config.DefaultConfig()
	cfg.Scan.Shape = "square"
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	cmd := newFlagCmd(t)
	configFile = path
	defer func() { configFile = "" }()

	got, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Scan.Shape != "square" {
		t.Errorf("expected square, got %s", got.Scan.Shape)
	}
}

func TestEvalEnergy(t *testing.T) {
	cmd := newFlagCmd(t)
	preset = "unit"
	defer func() { preset = "" }()
	side, points = 1.0, ""

	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := evalEnergy(cmd, []string{"tetrahedron"}); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if !strings.Contains(out.String(), "-1.437500000000e+01") {
		t.Errorf("expected total -14.375 in output:\n%s", out.String())
	}

	if err := evalEnergy(cmd, []string{"cube"}); err == nil {
		t.Error("expected error for unknown shape")
	}

	side = math.Inf(-1)
	if err := evalEnergy(cmd, []string{"square"}); err == nil {
		t.Error("expected error for negative side")
	}
}

func TestExportRun(t *testing.T) {
	dataDir = t.TempDir()
	defer func() { dataDir, outFile = ".disp4b", "" }()

	st := storage.New(dataDir)
	runID, err := st.Save(storage.RunMetadata{Provider: "fixed"}, &scan.Result{
		Request: scan.Request{Shape: "square", Min: 1, Max: 2, Samples: 2},
		Samples: []scan.Sample{{Side: 1, Total: math.NaN()}, {Side: 2, Total: -0.5}},
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cmd := &cobra.Command{Use: "export"}
	var out bytes.Buffer
	cmd.SetOut(&out)

	outFile = ""
	if err := exportRun(cmd, []string{runID}); err != nil {
		t.Fatalf("export to stdout failed: %v", err)
	}
	if !strings.Contains(out.String(), runID) {
		t.Errorf("stdout export missing run id:\n%s", out.String())
	}

	outFile = filepath.Join(t.TempDir(), "run.json")
	if err := exportRun(cmd, []string{runID}); err != nil {
		t.Fatalf("export to file failed: %v", err)
	}
	raw, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	var data storage.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.Metadata.ID != runID || len(data.Samples) != 2 || !math.IsNaN(data.Samples[0].Total) {
		t.Errorf("unexpected export %+v", data)
	}

	if err := exportRun(cmd, []string{"missing"}); err == nil {
		t.Error("expected error for unknown run")
	}
}
