package timespeak

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

//go:embed langpacks/*.json
var embeddedPacks embed.FS

// NormalizerPackName is the reserved pack name holding the shared regex
// component vocabulary, independent of any locale.
const NormalizerPackName = "normalizer"

// PackLoader retrieves a single language pack by name. Names are two
// character locale codes plus the reserved NormalizerPackName.
type PackLoader interface {
	Load(name string) (*LanguagePack, error)
}

// PackLoaderFunc adapts a bare function to the PackLoader interface.
type PackLoaderFunc func(name string) (*LanguagePack, error)

// Load implements PackLoader.
func (fn PackLoaderFunc) Load(name string) (*LanguagePack, error) {
	return fn(name)
}

var packExtensions = []string{".json", ".yaml", ".yml"}

// FSLoader loads packs from a filesystem, trying <root>/<name>.json then the
// YAML extensions. It serves both the embedded defaults (embed.FS) and
// on-disk pack directories (os.DirFS).
type FSLoader struct {
	fsys fs.FS
	root string
}

// NewFSLoader creates a loader rooted at dir within fsys. Pass "." to load
// from the filesystem root.
func NewFSLoader(fsys fs.FS, dir string) *FSLoader {
	return &FSLoader{fsys: fsys, root: dir}
}

// NewDirLoader creates a loader for an on-disk pack directory.
func NewDirLoader(dir string) *FSLoader {
	return NewFSLoader(os.DirFS(dir), ".")
}

// NewEmbeddedLoader returns the loader for the packs compiled into the
// binary. It always resolves "en" and NormalizerPackName.
func NewEmbeddedLoader() *FSLoader {
	return NewFSLoader(embeddedPacks, "langpacks")
}

// Load reads and parses the pack file for name.
func (l *FSLoader) Load(name string) (*LanguagePack, error) {
	if l == nil || l.fsys == nil {
		return nil, ErrPackNotFound
	}
	if name == "" || strings.ContainsAny(name, "/\\") {
		return nil, fmt.Errorf("%w: invalid pack name %q", ErrPackNotFound, name)
	}

	for _, ext := range packExtensions {
		path := l.root + "/" + name + ext
		if l.root == "." || l.root == "" {
			path = name + ext
		}
		data, err := fs.ReadFile(l.fsys, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("timespeak: read %s: %w", path, err)
		}
		return ParsePack(name, path, data)
	}

	return nil, fmt.Errorf("%w: %s", ErrPackNotFound, name)
}

// Names lists the pack names available from this loader, sorted.
func (l *FSLoader) Names() []string {
	if l == nil || l.fsys == nil {
		return nil
	}

	seen := make(map[string]struct{})
	for _, ext := range packExtensions {
		pattern := l.root + "/*" + ext
		if l.root == "." || l.root == "" {
			pattern = "*" + ext
		}
		matches, err := fs.Glob(l.fsys, pattern)
		if err != nil {
			continue
		}
		for _, match := range matches {
			base := match
			if idx := strings.LastIndex(base, "/"); idx >= 0 {
				base = base[idx+1:]
			}
			base = strings.TrimSuffix(base, ext)
			if base == "" {
				continue
			}
			seen[base] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChainLoader tries each loader in order until one resolves the pack,
// letting an on-disk directory override embedded defaults.
type ChainLoader struct {
	loaders []PackLoader
}

// NewChainLoader composes loaders. Earlier loaders take precedence.
func NewChainLoader(loaders ...PackLoader) *ChainLoader {
	filtered := make([]PackLoader, 0, len(loaders))
	for _, loader := range loaders {
		if loader == nil {
			continue
		}
		filtered = append(filtered, loader)
	}
	return &ChainLoader{loaders: filtered}
}

// Load implements PackLoader.
func (l *ChainLoader) Load(name string) (*LanguagePack, error) {
	if l == nil || len(l.loaders) == 0 {
		return nil, ErrPackNotFound
	}
	for _, loader := range l.loaders {
		pack, err := loader.Load(name)
		if err == nil {
			return pack, nil
		}
		if !errors.Is(err, ErrPackNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPackNotFound, name)
}

// Names merges the names of all chained loaders.
func (l *ChainLoader) Names() []string {
	if l == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, loader := range l.loaders {
		lister, ok := loader.(packLister)
		if !ok {
			continue
		}
		for _, name := range lister.Names() {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type packLister interface {
	Names() []string
}
