package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Bins != 15 || c.SampleRows != 5 || c.OutputFormat != "markdown" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.AllLabel != "Semua" || c.ScoreColumn != dataset.ColScore {
		t.Fatalf("unexpected filter defaults: %+v", c)
	}
	s := c.Schema()
	if s.DateColumn != dataset.ColDate || s.Layout() != dataset.DefaultDateLayout {
		t.Fatalf("unexpected schema: %+v", s)
	}
}

func TestSaveAndReload(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.Bins = 8
	c.NumericColumns = []string{"Harga", "Jumlah"}
	c.ModeColumns = []string{"Produk"}
	if err := Save(c, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".examdash", "config.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got, err := Load("")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Bins != 8 {
		t.Fatalf("bins not persisted: %d", got.Bins)
	}
	s := got.Schema()
	if len(s.Numeric) != 2 || s.Numeric[0] != "Harga" || s.ModeColumns[0] != "Produk" {
		t.Fatalf("schema overrides not applied: %+v", s)
	}
	if len(s.Categories) != 2 {
		t.Fatalf("categories should keep the exam defaults: %+v", s.Categories)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EXAMDASH_BINS", "4")
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Bins != 4 {
		t.Fatalf("env override ignored: %d", c.Bins)
	}
}

func TestExplicitMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Bins != 15 {
		t.Fatalf("unexpected bins: %d", c.Bins)
	}
}

func TestMalformedFileFails(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("bins: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}

func TestDefaultsMatchLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	loaded, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d := Defaults()
	if d.Bins != loaded.Bins || d.AllLabel != loaded.AllLabel || d.OutputFormat != loaded.OutputFormat {
		t.Fatalf("defaults %+v differ from load %+v", d, loaded)
	}
}
