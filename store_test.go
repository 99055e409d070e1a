package timespeak

import (
	"errors"
	"sync/atomic"
	"testing"
)

func newTestStore(t *testing.T) *PackStore {
	t.Helper()
	return NewPackStore(NewEmbeddedLoader(), nil)
}

func TestStorePackLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	embedded := NewEmbeddedLoader()
	loader := PackLoaderFunc(func(name string) (*LanguagePack, error) {
		calls.Add(1)
		return embedded.Load(name)
	})
	store := NewPackStore(loader, nil)

	first, err := store.Pack("en")
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	second, err := store.Pack("en")
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	if first != second {
		t.Fatal("expected the cached pack instance on the second call")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStoreResolveFallback(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		locale string
		want   string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"de", "de"},
		{"de_DE", "de"},
		{"fr", "en"},
		{"", "en"},
		{"nonsense", "en"},
	}

	for _, tc := range tests {
		pack, err := store.Resolve(tc.locale)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tc.locale, err)
		}
		if pack.Locale != tc.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.locale, pack.Locale, tc.want)
		}
	}
}

func TestStoreResolveNoPacks(t *testing.T) {
	store := NewPackStore(NewChainLoader(), nil)
	if _, err := store.Resolve("en"); !errors.Is(err, ErrPackNotFound) {
		t.Fatalf("expected ErrPackNotFound, got %v", err)
	}
}

func TestStoreLocalesExcludesNormalizer(t *testing.T) {
	store := newTestStore(t)
	for _, locale := range store.Locales() {
		if locale == NormalizerPackName {
			t.Fatal("normalizer pack listed as a locale")
		}
	}
}

func TestLocaleFallbackChain(t *testing.T) {
	tests := []struct {
		locale string
		want   []string
	}{
		{"de-DE", []string{"de", "en"}},
		{"de_AT", []string{"de", "en"}},
		{"en-GB", []string{"en"}},
		{"", []string{"en"}},
	}

	for _, tc := range tests {
		got := localeFallbackChain(tc.locale)
		if len(got) != len(tc.want) {
			t.Fatalf("localeFallbackChain(%q) = %v, want %v", tc.locale, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("localeFallbackChain(%q) = %v, want %v", tc.locale, got, tc.want)
			}
		}
	}
}
