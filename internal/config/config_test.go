package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
startline = 5
endline = 40
transform = ["TrimTrailingWhitespace"]
check = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StartLine != 5 || cfg.EndLine != 40 {
		t.Errorf("window = %d..%d, want 5..40", cfg.StartLine, cfg.EndLine)
	}
	if len(cfg.Transform) != 1 || cfg.Transform[0] != "TrimTrailingWhitespace" {
		t.Errorf("transform = %v", cfg.Transform)
	}
	if !cfg.Check {
		t.Errorf("check should be set")
	}
	if cfg.Diff || cfg.NoCache || cfg.Jobs != 0 {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestLoadRejectsBadWindow(t *testing.T) {
	dir := t.TempDir()

	for _, content := range []string{
		"startline = 10\nendline = 5\n",
		"endline = 5\n",
		"startline = -1\n",
	} {
		path := writeManifest(t, dir, content)
		if _, err := Load(path); err == nil {
			t.Errorf("manifest %q should be rejected", content)
		}
	}
}

func TestLoadRejectsBadExclude(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "exclude = \"[unclosed\"\n")
	if _, err := Load(path); err == nil {
		t.Errorf("invalid exclude pattern should be rejected")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "check = true\n")
	nested := filepath.Join(root, "suites", "smoke")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %s, want manifest in %s", path, root)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != "" {
		t.Errorf("no manifest expected, found %s", path)
	}
	if cfg.StartLine != 0 || cfg.EndLine != 0 || cfg.Check || len(cfg.Transform) != 0 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}
