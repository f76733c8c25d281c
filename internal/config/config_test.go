package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFallsBackToDefaultsWithNoManifest(t *testing.T) {
	dir := t.TempDir()
	manifest, found, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Fatal("expected no manifest to be found in an empty tempdir")
	}
	if manifest.Config.Run.Algo != "markcompact" {
		t.Fatalf("default algo = %q, want markcompact", manifest.Config.Run.Algo)
	}
}

func TestLoadReadsManifestValues(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
[run]
algo = "copy"
heap_size = 4000
out_dir = "out"
cache = true
`)
	if err := os.WriteFile(filepath.Join(dir, "gcworkbench.toml"), content, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	manifest, found, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatal("expected manifest to be found")
	}
	if manifest.Config.Run.Algo != "copy" || manifest.Config.Run.HeapSize != 4000 || !manifest.Config.Run.Cache {
		t.Fatalf("decoded config = %+v", manifest.Config.Run)
	}
}

func TestFindSearchesAncestorDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "gcworkbench.toml"), []byte("[run]\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("expected to find the ancestor manifest")
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found manifest at %q, want directory %q", path, root)
	}
}
