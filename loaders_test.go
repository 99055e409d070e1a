package timespeak

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedLoaderServesDefaults(t *testing.T) {
	loader := NewEmbeddedLoader()

	for _, name := range []string{"en", "de", NormalizerPackName} {
		pack, err := loader.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if pack.Locale != name {
			t.Fatalf("Load(%q) locale = %q", name, pack.Locale)
		}
	}
}

func TestEmbeddedLoaderNames(t *testing.T) {
	names := NewEmbeddedLoader().Names()

	want := map[string]bool{"en": false, "de": false, NormalizerPackName: false}
	for _, name := range names {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("Names() = %v, missing %q", names, name)
		}
	}
}

func TestFSLoaderMissingPack(t *testing.T) {
	_, err := NewEmbeddedLoader().Load("xx")
	if !errors.Is(err, ErrPackNotFound) {
		t.Fatalf("expected ErrPackNotFound, got %v", err)
	}
}

func TestFSLoaderRejectsPathTraversal(t *testing.T) {
	for _, name := range []string{"", "../en", `..\en`} {
		if _, err := NewEmbeddedLoader().Load(name); !errors.Is(err, ErrPackNotFound) {
			t.Fatalf("Load(%q): expected ErrPackNotFound, got %v", name, err)
		}
	}
}

func TestDirLoaderYAML(t *testing.T) {
	dir := t.TempDir()
	data := []byte("numbers:\n  one: uno\n")
	if err := os.WriteFile(filepath.Join(dir, "es.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	pack, err := NewDirLoader(dir).Load("es")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := pack.Variants(CategoryNumbers, "one"); len(got) != 1 || got[0] != "uno" {
		t.Fatalf("Variants(one) = %v", got)
	}
}

func TestChainLoaderPrecedence(t *testing.T) {
	dir := t.TempDir()
	override := []byte(`{"responses": {"timer_set": "overridden"}}`)
	if err := os.WriteFile(filepath.Join(dir, "en.json"), override, 0o644); err != nil {
		t.Fatal(err)
	}

	chain := NewChainLoader(NewDirLoader(dir), NewEmbeddedLoader())

	pack, err := chain.Load("en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pack.Responses["timer_set"] != "overridden" {
		t.Fatalf("expected on-disk pack to win, got %q", pack.Responses["timer_set"])
	}

	// Packs absent from the override directory fall through to the
	// embedded set.
	if _, err := chain.Load("de"); err != nil {
		t.Fatalf("Load(de): %v", err)
	}
}

func TestChainLoaderEmpty(t *testing.T) {
	if _, err := NewChainLoader().Load("en"); !errors.Is(err, ErrPackNotFound) {
		t.Fatalf("expected ErrPackNotFound, got %v", err)
	}
}
