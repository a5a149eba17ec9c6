package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadTuningConfig_Partial(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{"gap_limit": 4.0}`)
	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig: %v", err)
	}
	if cfg.GapLimit == nil || *cfg.GapLimit != 4.0 {
		t.Errorf("gap_limit not loaded: %+v", cfg.GapLimit)
	}
	if cfg.Divider != nil || cfg.CloseIterations != nil || cfg.Workers != nil {
		t.Error("unset fields must stay nil")
	}
}

func TestLoadTuningConfig_Full(t *testing.T) {
	path := writeConfig(t, "tuning.json",
		`{"gap_limit": 3.0, "divider": 4, "close_iterations": 5, "workers": 2}`)
	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig: %v", err)
	}
	if *cfg.Divider != 4 || *cfg.CloseIterations != 5 || *cfg.Workers != 2 {
		t.Errorf("fields not loaded: %+v", cfg)
	}
}

func TestLoadTuningConfig_WrongExtension(t *testing.T) {
	path := writeConfig(t, "tuning.yaml", `gap_limit: 3`)
	if _, err := LoadTuningConfig(path); err == nil {
		t.Error("non-JSON extension should fail")
	}
}

func TestLoadTuningConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"negative gap":     `{"gap_limit": -1}`,
		"zero divider":     `{"divider": 0}`,
		"negative closing": `{"close_iterations": -2}`,
		"zero workers":     `{"workers": 0}`,
		"bad json":         `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, "tuning.json", body)
			if _, err := LoadTuningConfig(path); err == nil {
				t.Errorf("config %q should be rejected", body)
			}
		})
	}
}

func TestLoadTuningConfig_Missing(t *testing.T) {
	if _, err := LoadTuningConfig(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("missing file should fail")
	}
}
