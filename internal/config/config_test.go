package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/copula.report/internal/copula"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, "full.json", `{
		"selector": {
			"grid_k": 6,
			"neg_tau_tolerance": -0.1,
			"families": ["gaussian", "frank"]
		},
		"harness": {
			"trials": 25,
			"sample_size": 500,
			"dims": 3,
			"tau_step": 0.1
		}
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	sel, err := cfg.BuildSelector()
	if err != nil {
		t.Fatalf("BuildSelector: %v", err)
	}
	if sel.K != 6 {
		t.Errorf("K = %d, want 6", sel.K)
	}
	if sel.NegTauTolerance != -0.1 {
		t.Errorf("NegTauTolerance = %v, want -0.1", sel.NegTauTolerance)
	}
	if len(sel.Families) != 2 || sel.Families[0] != copula.Gaussian || sel.Families[1] != copula.Frank {
		t.Errorf("Families = %v, want [gaussian frank]", sel.Families)
	}

	trials, sampleSize, dims, tauStep := cfg.HarnessValues()
	if trials != 25 || sampleSize != 500 || dims != 3 || tauStep != 0.1 {
		t.Errorf("harness values = (%d,%d,%d,%v)", trials, sampleSize, dims, tauStep)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"selector": {"grid_k": 8}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	sel, err := cfg.BuildSelector()
	if err != nil {
		t.Fatalf("BuildSelector: %v", err)
	}
	if sel.K != 8 {
		t.Errorf("K = %d, want 8", sel.K)
	}
	if sel.NegTauTolerance != -0.05 {
		t.Errorf("NegTauTolerance = %v, want default -0.05", sel.NegTauTolerance)
	}
	if len(sel.Families) != 4 {
		t.Errorf("Families = %v, want the 4 defaults", sel.Families)
	}

	trials, sampleSize, dims, tauStep := cfg.HarnessValues()
	if trials != DefaultTrials || sampleSize != DefaultSampleSize || dims != DefaultDims || tauStep != DefaultTauStep {
		t.Errorf("harness values = (%d,%d,%d,%v), want defaults", trials, sampleSize, dims, tauStep)
	}
}

func TestBuildSelector_NilConfig(t *testing.T) {
	var cfg *Config
	sel, err := cfg.BuildSelector()
	if err != nil {
		t.Fatalf("BuildSelector: %v", err)
	}
	if sel.K != 4 || sel.NegTauTolerance != -0.05 {
		t.Errorf("nil config did not yield defaults: K=%d tol=%v", sel.K, sel.NegTauTolerance)
	}
}

func TestBuildSelector_Invalid(t *testing.T) {
	cases := map[string]string{
		"grid_k":    `{"selector": {"grid_k": 0}}`,
		"tolerance": `{"selector": {"neg_tau_tolerance": 0.2}}`,
		"family":    `{"selector": {"families": ["weibull"]}}`,
	}
	for name, content := range cases {
		path := writeConfig(t, name+".json", content)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if _, err := cfg.BuildSelector(); err == nil {
			t.Errorf("%s: expected BuildSelector error", name)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(writeConfig(t, "bad.txt", "{}")); err == nil {
		t.Error("expected error for non-json extension")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "garbage.json", "{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
